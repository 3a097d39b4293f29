package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cataloghub/internal/auth"
	"cataloghub/internal/catalog"
	"cataloghub/internal/characters"
	"cataloghub/internal/feed"
	"cataloghub/internal/genres"
	"cataloghub/internal/httpx"
	"cataloghub/internal/works"
	"cataloghub/pkg/utils"
)

type deps struct {
	cfg    utils.Config
	db     *sql.DB
	engine *catalog.Engine
	hub    *feed.Hub
	udp    *feed.UDPServer
	log    *zap.Logger
}

func newRouter(d deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), httpx.RequestLogger(d.log))
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/ws", feed.WSHandler(d.hub))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": d.cfg.Database.Path})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := d.hub.Stats()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := d.db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":      "not_ready",
				"db_error":    err.Error(),
				"tcp_clients": stats.TCPClients,
				"ws_clients":  stats.WSClients,
				"udp_clients": d.udp.Subscribers(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"db":          "ok",
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
			"udp_clients": d.udp.Subscribers(),
		})
	})

	tokens := auth.TokenService{
		Secret:   []byte(d.cfg.Auth.JWTSecret),
		Issuer:   d.cfg.Auth.JWTIssuer,
		Duration: d.cfg.Auth.JWTDuration(),
	}
	authRepo := auth.NewRepo(d.db)
	auth.NewHandler(authRepo, tokens, d.log).RegisterRoutes(router.Group("/api/auth"))

	api := router.Group("/api")
	if !d.cfg.Auth.Disabled {
		api.Use(auth.AuthMiddleware(tokens, authRepo))
	}

	works.NewHandler(d.engine, d.log).RegisterRoutes(api.Group("/movies"))
	characters.NewHandler(d.engine, d.log).RegisterRoutes(api.Group("/characters"))
	genres.NewHandler(d.engine, d.log).RegisterRoutes(api.Group("/genres"))

	return router
}
