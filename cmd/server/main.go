package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"travelagg/cfg"
	"travelagg/internal/budget"
	"travelagg/internal/catalog"
	"travelagg/internal/chat"
	"travelagg/internal/user"
	"travelagg/pkg/auth"
	"travelagg/pkg/cache"
	"travelagg/pkg/db"
	"travelagg/pkg/idgen"
	"travelagg/pkg/logger"
	"travelagg/pkg/oauth2"
	"travelagg/pkg/ratelimit"

	_ "travelagg/api" // swagger docs

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// @title           Budget Travel API
// @version         1.0
// @description     Travel package catalog, budget itinerary search, itinerary export and agent chat.
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ============
	// config
	// ============
	config, errCfg := cfg.Load()
	if errCfg != nil {
		log.Fatal(errCfg)
	}

	// ============
	// logger
	// ============
	zlogger := logger.NewZeroLog(config.AppEnv)

	// ============
	// Otel
	// ============
	if config.Otel.Enabled {
		shutdownOtel, err := initOtel(ctx, config, zlogger)
		if err != nil {
			zlogger.Warn("Continuing without tracing/metrics", logger.Err(err))
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdownOtel(ctx); err != nil {
					zlogger.Error("Failed to shutdown OpenTelemetry", logger.Err(err))
				}
			}()
		}
	}

	// ============
	// DB + migrate
	// ============
	sqlClient, err := db.NewSQLClient(ctx, db.Driver(config.Database.Driver), config.Database.DSN())
	if err != nil {
		log.Fatal(err)
	}
	defer sqlClient.Close()

	migrator, err := db.NewMigrator(sqlClient, config.Database.MigrationsURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := migrator.Up(); err != nil {
		log.Fatal(err)
	}

	// ============
	// Cache
	// ============
	store := newCache(ctx, config, zlogger)

	// ============
	// Catalog
	// ============
	source, err := newCatalogSource(config, sqlClient, zlogger)
	if err != nil {
		log.Fatal(err)
	}
	catalogProvider := newCatalogProvider(config, source, zlogger)

	// ============
	// Internal Service
	// ============
	tokens, err := auth.NewTokenIssuer(config.Auth.JWTSecret, time.Duration(config.Auth.JWTTTLMinutes)*time.Minute)
	if err != nil {
		log.Fatal(err)
	}

	ids, err := idgen.NewSnowflake(config.NodeID)
	if err != nil {
		log.Fatal(err)
	}

	catalogSvc := catalog.NewService(catalogProvider, zlogger)
	budgetSvc := budget.NewService(catalogProvider, store, config.CacheTTLMinutes, zlogger,
		budget.WithLimits(budget.Limits{
			MaxPackages:       config.Search.MaxPackages,
			MaxPerDestination: config.Search.MaxPerDestination,
			MaxCandidates:     config.Search.MaxCandidates,
			MaxResults:        config.Search.MaxResults,
		}),
		budget.WithDerivedRoutes(config.Search.DeriveRoutes),
	)
	userSvc := user.NewService(user.NewSQLRepository(sqlClient), tokens, zlogger)
	chatSvc := chat.NewService(chat.NewSQLRepository(sqlClient), catalogSvc, ids, zlogger)

	oauth2mgr, err := oauth2.NewManager(ctx, config.Oauth2Config, store,
		func(ctx context.Context, info *oauth2.UserInfo) (any, error) {
			return userSvc.OAuthSignIn(ctx, info.Email, info.Name, info.Provider)
		})
	if err != nil {
		log.Fatal(err)
	}

	// ============
	// HTTP
	// ============
	limiter := ratelimit.NewKeyedLimiter(ratelimit.Config{
		RequestsPerSecond: config.RateLimit.RequestsPerSecond,
		BurstSize:         config.RateLimit.Burst,
	})
	go pruneLimiter(ctx, limiter)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(config.CORSAllowedOrigins)))
	if config.Otel.Enabled {
		r.Use(otelgin.Middleware(config.Otel.ServiceName))
	}
	r.Use(TraceLoggerMiddleware(zlogger))

	requireAuth := auth.Middleware(tokens)

	api := r.Group("/api")
	api.Use(ratelimit.Middleware(limiter, ratelimit.ByClientIP))
	user.NewHandler(userSvc).RegisterRoutes(api, requireAuth)
	catalog.NewHandler(catalogSvc).RegisterRoutes(api, requireAuth)

	authed := api.Group("")
	authed.Use(requireAuth)
	budget.NewHandler(budgetSvc).RegisterRoutes(authed)
	chat.NewHandler(chatSvc).RegisterRoutes(authed)

	oauth2.RegisterRoutes(r, oauth2mgr, zlogger)
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	initSwagger(r)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", config.AppPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlogger.Info("Server listening",
			logger.Field{Key: "addr", Value: srv.Addr},
			logger.Field{Key: "catalog_source", Value: config.Catalog.Source},
			logger.Field{Key: "oauth2_providers", Value: oauth2mgr.Providers()},
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	zlogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlogger.Error("Graceful shutdown failed", logger.Err(err))
	}
}

// newCache prefers redis and falls back to the in-process cache when redis
// is not configured or unreachable.
func newCache(ctx context.Context, config *cfg.Config, log logger.Client) cache.Cache {
	if !config.CacheEnabled || config.RedisConfig.Host == "" {
		log.Info("Using in-memory cache")
		return cache.NewMemoryCache()
	}

	redisAddr := config.RedisConfig.Host + ":" + config.RedisConfig.Port
	redis, err := cache.NewRedisCache(ctx, cache.RedisOptions{
		Addr:     redisAddr,
		Password: config.RedisConfig.Password,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory cache", logger.Err(err))
		return cache.NewMemoryCache()
	}
	return redis
}

func newCatalogSource(config *cfg.Config, client db.SQLExecutor, log logger.Client) (catalog.Provider, error) {
	switch config.Catalog.Source {
	case cfg.CatalogSourceSQL, "":
		return catalog.NewRepository(client), nil
	case cfg.CatalogSourceFile:
		return catalog.NewFileProvider(config.Catalog.File), nil
	case cfg.CatalogSourceHTTP:
		httpClient := &http.Client{
			Timeout: 5 * time.Second,
		}
		return catalog.NewHTTPProvider(httpClient, config.Catalog.BaseURL, log).
			WithServiceToken(config.Catalog.ServiceToken), nil
	}
	return nil, fmt.Errorf("unknown catalog source %q", config.Catalog.Source)
}

// newCatalogProvider caches the remote catalog per caller token, so the
// remote access check runs for every token. Local sources share one cache.
func newCatalogProvider(config *cfg.Config, source catalog.Provider, log logger.Client) catalog.Provider {
	refresh := time.Duration(config.Catalog.RefreshSeconds) * time.Second
	if config.Catalog.Source == cfg.CatalogSourceHTTP {
		return catalog.NewTokenScopedProvider(source, refresh, log)
	}
	return catalog.NewCachedProvider(source, refresh, log)
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	return c
}

func pruneLimiter(ctx context.Context, l *ratelimit.KeyedLimiter) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Prune(10 * time.Minute)
		}
	}
}

func initSwagger(r *gin.Engine) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		html := `<!DOCTYPE html>
<html>
<head>
    <title>API Documentation</title>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body>
    <script id="api-reference" data-url="/swagger/doc.json"></script>
    <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
</body>
</html>`
		c.String(200, html)
	})
}
