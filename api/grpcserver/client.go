package grpcserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"arbor/domain/bst"
)

// Client calls a remote arbor.Tree service.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Insert(ctx context.Context, value int64, opts ...grpc.CallOption) (bool, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, insertMethod, wrapperspb.Int64(value), out, opts...); err != nil {
		return false, err
	}
	return out.GetValue(), nil
}

func (c *Client) Traverse(ctx context.Context, opts ...grpc.CallOption) ([]bst.Visit[int64], error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, traverseMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return decodeVisits(out)
}

func (c *Client) Height(ctx context.Context, opts ...grpc.CallOption) (int, error) {
	return c.intCall(ctx, heightMethod, opts...)
}

func (c *Client) Depth(ctx context.Context, opts ...grpc.CallOption) (int, error) {
	return c.intCall(ctx, depthMethod, opts...)
}

func (c *Client) intCall(ctx context.Context, method string, opts ...grpc.CallOption) (int, error) {
	out := new(wrapperspb.Int64Value)
	if err := c.cc.Invoke(ctx, method, &emptypb.Empty{}, out, opts...); err != nil {
		return 0, err
	}
	return int(out.GetValue()), nil
}
