package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mcphub/directory-backend/config"
	httpapi "github.com/mcphub/directory-backend/internal/api/http"
	"github.com/mcphub/directory-backend/internal/api/http/middleware"
	"github.com/mcphub/directory-backend/internal/comments"
	"github.com/mcphub/directory-backend/internal/metrics"
	servershttp "github.com/mcphub/directory-backend/internal/servers/http"
)

type RouterDeps struct {
	Config   *config.Config
	Logger   zerolog.Logger
	DB       *pgxpool.Pool
	Redis    *redis.Client
	Servers  servershttp.Service
	Comments comments.Store
}

// BuildRouter wires the middleware chain and every route. Client IPs come
// from the socket unless the peer is one of Server.TrustedProxies, so the
// delete-attempt guard cannot be sidestepped with a forged X-Forwarded-For.
func BuildRouter(dep RouterDeps) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(dep.Config.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(dep.Logger))
	r.Use(metrics.Middleware())
	r.Use(cors.New(corsConfig(dep.Config.Server.AllowedOrigins)))

	var dbPing, redisPing httpapi.PingFunc
	if dep.DB != nil {
		dbPing = dep.DB.Ping
	}
	if dep.Redis != nil {
		redisPing = func(ctx context.Context) error { return dep.Redis.Ping(ctx).Err() }
	}
	healthHandler := httpapi.NewHealthHandler(dep.Config.App.ServiceName, dep.Config.App.Version, dbPing, redisPing)
	healthHandler.RegisterRoutes(r)

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")

	servershttp.New(dep.Servers, dep.Config.Import.MaxBodyBytes).Register(api)
	if dep.Comments != nil {
		comments.Register(api.Group("/comments"), dep.Comments, dep.Logger)
	}

	return r, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID}
	cfg.ExposeHeaders = []string{"Content-Disposition", middleware.HeaderRequestID}
	cfg.MaxAge = 12 * time.Hour

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
