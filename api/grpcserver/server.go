package grpcserver

import (
	"context"
	"strconv"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"arbor/domain/bst"
	"arbor/infra/logging"
	"arbor/service"
)

// Server adapts TreeService to gRPC.
type Server struct {
	svc    *service.TreeService
	logger logging.Logger
}

var _ TreeServer = (*Server)(nil)

func NewServer(svc *service.TreeService, logger logging.Logger) *Server {
	return &Server{svc: svc, logger: logging.Prefixed(logger, "gRPC")}
}

// -------------------- Commands --------------------

func (s *Server) Insert(
	ctx context.Context,
	req *wrapperspb.Int64Value,
) (*wrapperspb.BoolValue, error) {
	ok, err := s.svc.Insert(ctx, req.GetValue())
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	s.logger.Infof("Insert value=%d inserted=%t", req.GetValue(), ok)

	return wrapperspb.Bool(ok), nil
}

// -------------------- Queries --------------------

func (s *Server) Traverse(
	ctx context.Context,
	_ *emptypb.Empty,
) (*structpb.ListValue, error) {
	return encodeVisits(s.svc.Traverse()), nil
}

func (s *Server) Height(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.Int64Value, error) {
	return wrapperspb.Int64(int64(s.svc.Height())), nil
}

func (s *Server) Depth(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.Int64Value, error) {
	return wrapperspb.Int64(int64(s.svc.Depth())), nil
}

// -------------------- Converters --------------------

// Values travel as decimal strings; a protobuf number is a double and
// would round anything beyond 2^53.
func encodeVisits(visits []bst.Visit[int64]) *structpb.ListValue {
	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(visits))}
	for _, v := range visits {
		list.Values = append(list.Values, structpb.NewStructValue(&structpb.Struct{
			Fields: map[string]*structpb.Value{
				"value": structpb.NewStringValue(strconv.FormatInt(v.Value, 10)),
				"depth": structpb.NewNumberValue(float64(v.Depth)),
			},
		}))
	}
	return list
}

func decodeVisits(list *structpb.ListValue) ([]bst.Visit[int64], error) {
	if len(list.GetValues()) == 0 {
		return nil, nil
	}
	out := make([]bst.Visit[int64], 0, len(list.GetValues()))
	for i, item := range list.GetValues() {
		fields := item.GetStructValue().GetFields()
		value, err := strconv.ParseInt(fields["value"].GetStringValue(), 10, 64)
		if err != nil {
			return nil, status.Errorf(codes.DataLoss, "visit %d: %v", i, err)
		}
		out = append(out, bst.Visit[int64]{
			Value: value,
			Depth: int(fields["depth"].GetNumberValue()),
		})
	}
	return out, nil
}
