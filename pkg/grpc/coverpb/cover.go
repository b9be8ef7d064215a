// Package coverpb holds the CoverService messages, service descriptor and
// client. Messages travel as JSON.
package coverpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ServiceName              = "coverhub.CoverService"
	CoverService_ListCovers  = "/coverhub.CoverService/ListCovers"
	CoverService_RandomCover = "/coverhub.CoverService/RandomCover"
)

type Cover struct {
	Id       string `json:"id"`
	Url      string `json:"url"`
	Position int32  `json:"position"`
}

type ListCoversRequest struct{}

type ListCoversResponse struct {
	Total int32    `json:"total"`
	Items []*Cover `json:"items"`
}

type RandomCoverRequest struct{}

type RandomCoverResponse struct {
	Url             string `json:"url"`
	BackgroundImage string `json:"background_image"`
}

type CoverServiceServer interface {
	ListCovers(context.Context, *ListCoversRequest) (*ListCoversResponse, error)
	RandomCover(context.Context, *RandomCoverRequest) (*RandomCoverResponse, error)
}

type UnimplementedCoverServiceServer struct{}

func (UnimplementedCoverServiceServer) ListCovers(context.Context, *ListCoversRequest) (*ListCoversResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListCovers not implemented")
}

func (UnimplementedCoverServiceServer) RandomCover(context.Context, *RandomCoverRequest) (*RandomCoverResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RandomCover not implemented")
}

func RegisterCoverServiceServer(s grpc.ServiceRegistrar, srv CoverServiceServer) {
	s.RegisterService(&CoverServiceDesc, srv)
}

var CoverServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CoverServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListCovers", Handler: listCoversHandler},
		{MethodName: "RandomCover", Handler: randomCoverHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "coverhub/cover.proto",
}

func listCoversHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListCoversRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CoverServiceServer).ListCovers(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: CoverService_ListCovers}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CoverServiceServer).ListCovers(ctx, req.(*ListCoversRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func randomCoverHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(RandomCoverRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CoverServiceServer).RandomCover(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: CoverService_RandomCover}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CoverServiceServer).RandomCover(ctx, req.(*RandomCoverRequest))
	}
	return interceptor(ctx, in, info, handler)
}

type CoverServiceClient interface {
	ListCovers(ctx context.Context, in *ListCoversRequest, opts ...grpc.CallOption) (*ListCoversResponse, error)
	RandomCover(ctx context.Context, in *RandomCoverRequest, opts ...grpc.CallOption) (*RandomCoverResponse, error)
}

type coverServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCoverServiceClient(cc grpc.ClientConnInterface) CoverServiceClient {
	return &coverServiceClient{cc: cc}
}

func (c *coverServiceClient) ListCovers(ctx context.Context, in *ListCoversRequest, opts ...grpc.CallOption) (*ListCoversResponse, error) {
	out := new(ListCoversResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(ContentSubtype)}, opts...)
	if err := c.cc.Invoke(ctx, CoverService_ListCovers, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *coverServiceClient) RandomCover(ctx context.Context, in *RandomCoverRequest, opts ...grpc.CallOption) (*RandomCoverResponse, error) {
	out := new(RandomCoverResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(ContentSubtype)}, opts...)
	if err := c.cc.Invoke(ctx, CoverService_RandomCover, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
