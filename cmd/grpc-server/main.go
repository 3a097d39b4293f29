package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"cataloghub/internal/catalog"
	"cataloghub/internal/grpcserver"
	"cataloghub/internal/store"
	"cataloghub/pkg/database"
	"cataloghub/pkg/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "grpc-server:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, _, err := utils.Load()
	if err != nil {
		return err
	}
	log, err := utils.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	listener, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}

	engine := catalog.NewEngine(store.NewSQLiteStore(db), log, nil)
	gs := grpc.NewServer()
	grpcserver.Register(gs, grpcserver.NewServer(engine, log))

	go func() {
		<-ctx.Done()
		log.Info("stopping grpc server")
		gs.GracefulStop()
	}()

	log.Info("grpc server listening", zap.String("addr", cfg.GRPC.Addr), zap.String("db", cfg.Database.Path))
	if err := gs.Serve(listener); err != nil {
		return fmt.Errorf("grpc serve: %w", err)
	}
	return nil
}
