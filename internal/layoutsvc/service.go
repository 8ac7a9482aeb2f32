// Package layoutsvc computes settled force layouts over gRPC for callers that have no
// view of their own, such as batch exporters.
package layoutsvc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName   = "assetmap.layout.v1.Layout"
	ComputeMethod = "/" + ServiceName + "/Compute"
)

// LayoutServer is the server API for the Layout service.
type LayoutServer interface {
	Compute(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func computeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LayoutServer).Compute(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ComputeMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LayoutServer).Compute(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// ServiceDesc describes the Layout service. Requests and responses are
// google.protobuf.Struct so no generated code is needed on either side.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LayoutServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Compute",
			Handler:    computeHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "assetmap/layout/v1/layout.proto",
}

func Register(s grpc.ServiceRegistrar, srv LayoutServer) {
	s.RegisterService(&ServiceDesc, srv)
}
