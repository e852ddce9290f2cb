package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"listinglab/internal/content"
	httpapi "listinglab/internal/http"
	"listinglab/internal/http/handlers"
	"listinglab/internal/infra"
	"listinglab/internal/infra/geoip"
	mw "listinglab/internal/middleware"
	"listinglab/internal/providers/caption"
	"listinglab/internal/providers/collections"
	"listinglab/internal/providers/videogen"
	"listinglab/internal/render"
	"listinglab/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	rdb, err := infra.NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect redis")
	}
	if rdb == nil {
		logger.Info().Msg("no REDIS_URL configured, session cache disabled")
	}
	sessions := store.NewSessionCache(rdb, cfg.SessionCacheTTL, logger)

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open geoip database")
	}
	var country mw.CountryLookup
	if resolver != nil {
		country = resolver.CountryCode
	}

	var captions caption.Generator = caption.StaticGenerator{}
	if cfg.OpenAIAPIKey != "" {
		openai, err := caption.NewOpenAIGenerator(caption.OpenAIOptions{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to configure caption generator")
		}
		captions = openai
	}

	app := &handlers.App{
		Logger:      logger,
		Config:      cfg,
		Users:       &store.PGUsers{DB: dbpool},
		Contents:    &store.PGContents{DB: dbpool},
		Histories:   &store.PGHistories{DB: dbpool},
		Collections: collections.NewClient(cfg.CollectionsBaseURL, cfg.CollectionsAPIKey, nil),
		Extractor: collections.Extractor{
			PreferredFragment: cfg.PreferredAssetFragment,
			Logger:            logger,
		},
		Video: videogen.NewClient(cfg.VideoBaseURL, cfg.VideoAPIKey, nil),
		Generator: &content.Generator{
			Poller:    render.NewPoller(cfg.PollInterval, cfg.PollMaxAttempts, logger),
			Captions:  captions,
			Persister: &content.Persister{Logger: logger},
			Logger:    logger,
		},
	}

	router := httpapi.NewRouter(app, sessions, country, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
