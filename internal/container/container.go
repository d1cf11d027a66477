package container

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"insight-agent/internal/analyzer"
	"insight-agent/internal/config"
	"insight-agent/internal/logger"
	"insight-agent/internal/observer"
	"insight-agent/internal/service"
	"insight-agent/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config              *config.Config
	textAnalyzer        analyzer.TextAnalyzer
	events              *observer.EventPublisher
	metrics             *observer.MetricsObserver
	textAnalysisService service.TextAnalysisService
	handler             http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := logger.Configure(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to configure logger: %w", err)
	}
	gin.SetMode(cfg.GinMode)

	// Build dependency graph
	textAnalyzer := analyzer.NewTextAnalyzer(
		analyzer.DefaultOptions().WithPreviewLength(cfg.PreviewLength),
	)

	events := observer.NewEventPublisher(logger.Logger)
	metrics := observer.NewMetricsObserver()
	events.Subscribe(observer.NewLoggingObserver(logger.Logger))
	events.Subscribe(metrics)

	textAnalysisService := service.NewTextAnalysisService(textAnalyzer, events, logger.Logger)
	handler := transport.NewHandler(textAnalysisService, metrics, cfg)

	return &Container{
		config:              cfg,
		textAnalyzer:        textAnalyzer,
		events:              events,
		metrics:             metrics,
		textAnalysisService: textAnalysisService,
		handler:             handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Service returns the text analysis service
func (c *Container) Service() service.TextAnalysisService {
	return c.textAnalysisService
}

// Metrics returns the analysis metrics observer
func (c *Container) Metrics() *observer.MetricsObserver {
	return c.metrics
}
