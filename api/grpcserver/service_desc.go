package grpcserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "arbor.Tree"

const (
	insertMethod   = "/" + ServiceName + "/Insert"
	traverseMethod = "/" + ServiceName + "/Traverse"
	heightMethod   = "/" + ServiceName + "/Height"
	depthMethod    = "/" + ServiceName + "/Depth"
)

// TreeServer is the server API for the arbor.Tree service. Messages are
// protobuf well-known types, so no generated code is involved.
type TreeServer interface {
	Insert(context.Context, *wrapperspb.Int64Value) (*wrapperspb.BoolValue, error)
	Traverse(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	Height(context.Context, *emptypb.Empty) (*wrapperspb.Int64Value, error)
	Depth(context.Context, *emptypb.Empty) (*wrapperspb.Int64Value, error)
}

// ServiceDesc describes arbor.Tree for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TreeServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Insert",
			Handler:    unary(insertMethod, newInt64, TreeServer.Insert),
		},
		{
			MethodName: "Traverse",
			Handler:    unary(traverseMethod, newEmpty, TreeServer.Traverse),
		},
		{
			MethodName: "Height",
			Handler:    unary(heightMethod, newEmpty, TreeServer.Height),
		},
		{
			MethodName: "Depth",
			Handler:    unary(depthMethod, newEmpty, TreeServer.Depth),
		},
	},
	Streams: []grpc.StreamDesc{},
}

// Register attaches srv to s.
func Register(s grpc.ServiceRegistrar, srv TreeServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func newInt64() *wrapperspb.Int64Value { return new(wrapperspb.Int64Value) }

func newEmpty() *emptypb.Empty { return new(emptypb.Empty) }

// unary adapts a TreeServer method to a grpc.MethodHandler.
func unary[Req, Resp proto.Message](
	fullMethod string,
	newReq func() Req,
	call func(TreeServer, context.Context, Req) (Resp, error),
) grpc.MethodHandler {
	return func(
		srv any,
		ctx context.Context,
		dec func(any) error,
		interceptor grpc.UnaryServerInterceptor,
	) (any, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(TreeServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(TreeServer), ctx, req.(Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
