package grpcserver

import (
	"context"
	"log"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"coverhub/internal/covers"
	"coverhub/pkg/cover"
	"coverhub/pkg/grpc/coverpb"
	"coverhub/pkg/models"
)

type Server struct {
	coverpb.UnimplementedCoverServiceServer
	CoverRepo *covers.Repo
}

func NewServer(coverRepo *covers.Repo) *Server {
	return &Server{CoverRepo: coverRepo}
}

func (s *Server) ListCovers(ctx context.Context, req *coverpb.ListCoversRequest) (*coverpb.ListCoversResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request required")
	}

	items, err := s.CoverRepo.List(ctx)
	if err != nil {
		log.Printf("[grpc] list covers: %v", err)
		return nil, status.Error(codes.Internal, "list failed")
	}

	resp := &coverpb.ListCoversResponse{
		Total: int32(len(items)),
		Items: make([]*coverpb.Cover, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, coverToProto(item))
	}
	return resp, nil
}

func (s *Server) RandomCover(ctx context.Context, req *coverpb.RandomCoverRequest) (*coverpb.RandomCoverResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request required")
	}

	urls, err := s.CoverRepo.URLs(ctx)
	if err != nil {
		log.Printf("[grpc] random cover: %v", err)
		return nil, status.Error(codes.Internal, "list failed")
	}

	ref, ok := cover.NewSelector(urls).Pick()
	if !ok {
		return nil, status.Error(codes.NotFound, "no covers")
	}
	return &coverpb.RandomCoverResponse{Url: ref, BackgroundImage: cover.CSSURL(ref)}, nil
}

func coverToProto(item models.Cover) *coverpb.Cover {
	return &coverpb.Cover{
		Id:       item.ID,
		Url:      item.URL,
		Position: int32(item.Position),
	}
}
