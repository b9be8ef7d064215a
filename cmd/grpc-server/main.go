package main

import (
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"coverhub/internal/covers"
	"coverhub/internal/grpcserver"
	"coverhub/pkg/database"
	"coverhub/pkg/grpc/coverpb"
	"coverhub/pkg/utils"
)

func main() {
	cfg := database.DefaultConfig()
	db := database.MustOpen(cfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	grpcCfg := utils.LoadGrpcConfig()
	listener, err := net.Listen("tcp", grpcCfg.Addr)
	if err != nil {
		log.Fatalf("grpc listen failed: %v", err)
	}

	grpcServer := grpc.NewServer()
	coverpb.RegisterCoverServiceServer(grpcServer, grpcserver.NewServer(covers.NewRepo(db)))

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		log.Printf("shutdown signal received: %s", sig)
		grpcServer.GracefulStop()
	}()

	log.Printf("gRPC server listening on %s", grpcCfg.Addr)
	if err := grpcServer.Serve(listener); err != nil {
		log.Fatalf("grpc server stopped: %v", err)
	}
}
