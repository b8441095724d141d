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

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/clarat-search/internal/adapters/cache"
	"github.com/zatekoja/clarat-search/internal/adapters/locale"
	"github.com/zatekoja/clarat-search/internal/adapters/providers/geolocation"
	"github.com/zatekoja/clarat-search/internal/api/handlers"
	"github.com/zatekoja/clarat-search/internal/api/routes"
	"github.com/zatekoja/clarat-search/internal/application/services"
	"github.com/zatekoja/clarat-search/internal/domain/entities"
	"github.com/zatekoja/clarat-search/internal/domain/providers"
	"github.com/zatekoja/clarat-search/internal/infrastructure/clients/redis"
	"github.com/zatekoja/clarat-search/internal/infrastructure/observability"
	"github.com/zatekoja/clarat-search/pkg/config"
	"github.com/zatekoja/clarat-search/pkg/retry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// The service works without Redis; search locations are then geocoded on every request.
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(ctx, &cfg.Redis, retry.DefaultConfig())
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, running without geocode cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("Redis client initialized")
	}

	var geolocationProvider providers.GeolocationProvider
	switch cfg.Geolocation.Provider {
	case "google":
		if cfg.Geolocation.APIKey == "" {
			log.Warn().Msg("GEOLOCATION_API_KEY is not set; using mock geolocation provider")
			geolocationProvider = geolocation.NewMockGeolocationProvider()
		} else {
			geolocationProvider = geolocation.NewGoogleGeolocationProvider(cfg.Geolocation.APIKey, cacheProvider)
		}
	default:
		geolocationProvider = geolocation.NewMockGeolocationProvider()
	}

	locales, err := locale.NewYAMLTextProvider(cfg.Locale.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load locales")
	}

	policy := entities.FilterPolicy{
		MinAge:         cfg.Search.MinAge,
		MaxAge:         cfg.Search.MaxAge,
		Languages:      cfg.Search.Languages,
		Encounters:     cfg.Search.Encounters,
		DefaultSection: cfg.Search.DefaultSection,
	}

	resolver := geolocation.NewSearchLocationResolver(geolocationProvider, cacheProvider, cfg.Geolocation.CacheTTLSeconds, metrics)
	searchFormService := services.NewSearchFormService(resolver, locales, policy)

	router := routes.NewRouter(
		handlers.NewSearchFormHandler(searchFormService),
		handlers.NewGeolocationHandler(geolocationProvider),
		cfg.Server.AllowedOrigins,
		metrics,
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Str("geolocation_provider", cfg.Geolocation.Provider).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
