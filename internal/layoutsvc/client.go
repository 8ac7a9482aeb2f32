package layoutsvc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Compute(ctx context.Context, req Request, opts ...grpc.CallOption) (Response, error) {
	in, err := req.toStruct()
	if err != nil {
		return Response{}, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ComputeMethod, in, out, opts...); err != nil {
		return Response{}, err
	}
	return responseFromStruct(out)
}
