package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/scorecast/internal/config"
	"github.com/riskibarqy/scorecast/internal/infrastructure/account/anubis"
	"github.com/riskibarqy/scorecast/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/scorecast/internal/platform/id"
	"github.com/riskibarqy/scorecast/internal/platform/logging"
	"github.com/riskibarqy/scorecast/internal/usecase"
)

// NewHTTPServer wires the whole service. The returned close func releases
// storage and must run after the server has shut down.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	sources, err := NewSources(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("build sources: %w", err)
	}
	storage, err := NewStorage(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("build storage: %w", err)
	}

	ids := idgen.NewUUIDGenerator()
	aggregation := sources.Aggregation(logger)
	handler := httpapi.NewHandler(
		aggregation,
		usecase.NewFavoriteService(storage.Favorites, aggregation, ids),
		usecase.NewPredictionService(storage.Predictions, ids),
		usecase.NewHistoryService(storage.History, ids),
		usecase.NewTimelineService(storage.History, storage.Predictions),
		logger,
	)

	anubisClient := anubis.NewClient(anubis.ClientConfig{
		HTTPClient:     &http.Client{},
		BaseURL:        cfg.AnubisBaseURL,
		IntrospectPath: cfg.AnubisIntrospectURL,
		AdminKey:       cfg.AnubisAdminKey,
		Timeout:        cfg.AnubisTimeout,
		CircuitBreaker: cfg.AnubisCircuit,
		Logger:         logger,
	})

	router := httpapi.NewRouter(handler, anubisClient, logger, httpapi.RouterOptions{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	logger.Info("service wired",
		"storage", cfg.StorageDriver,
		"leagues", sources.Catalog.AllowList().Len(),
		"odds_sport", sources.Odds.SportKey(),
	)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, storage.Close, nil
}
