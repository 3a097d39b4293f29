package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cataloghub/internal/catalog"
	"cataloghub/internal/feed"
	"cataloghub/internal/store"
	"cataloghub/pkg/database"
	"cataloghub/pkg/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "api-server:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, cfgPath, err := utils.Load()
	if err != nil {
		return err
	}
	log, err := utils.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

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

	// start the feed first so binding errors show up early
	hub := feed.NewHub(log)
	tcpSrv := feed.NewServer(cfg.Feed.Addr, hub, log)
	udpSrv := feed.NewUDPServer(cfg.Notify.Addr, log)

	engine := catalog.NewEngine(store.NewSQLiteStore(db), log, catalog.Publishers{hub, udpSrv})
	httpSrv := &http.Server{
		Addr: cfg.HTTP.Addr,
		Handler: newRouter(deps{
			cfg:    cfg,
			db:     db,
			engine: engine,
			hub:    hub,
			udp:    udpSrv,
			log:    log,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("starting",
		zap.String("config", cfgPath),
		zap.String("db", cfg.Database.Path),
		zap.String("http", cfg.HTTP.Addr),
		zap.String("feed", cfg.Feed.Addr),
		zap.String("notify", cfg.Notify.Addr),
		zap.Bool("auth", !cfg.Auth.Disabled),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return tcpSrv.ListenAndServe()
	})

	g.Go(func() error {
		return udpSrv.ListenAndServe()
	})

	g.Go(func() error {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down servers")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Warn("http shutdown", zap.Error(err))
		}
		if err := tcpSrv.Close(); err != nil {
			log.Warn("feed shutdown", zap.Error(err))
		}
		if err := udpSrv.Close(); err != nil {
			log.Warn("notify shutdown", zap.Error(err))
		}
		return nil
	})

	err = g.Wait()
	log.Info("servers stopped")
	return err
}
