package container

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"insight-agent/internal/config"
	"insight-agent/internal/logger"
)

func TestNewContainer_NilConfig(t *testing.T) {
	if _, err := NewContainer(nil); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestNewContainer_BadLogLevel(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "shouty"

	if _, err := NewContainer(cfg); err == nil {
		t.Error("Expected error for bad log level")
	}
}

func TestNewContainer_Wiring(t *testing.T) {
	logger.Logger.SetOutput(io.Discard)
	cfg := config.Default()
	cfg.GinMode = gin.TestMode

	c, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if c.Config() != cfg {
		t.Error("Expected container to keep the given config")
	}

	resp, err := c.Service().Analyze(context.Background(), "wired up")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resp.WordCount != 2 {
		t.Errorf("Expected 2 words, got %d", resp.WordCount)
	}

	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{"text":"through the handler"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 from wired handler, got %d", w.Code)
	}

	if stats := c.Metrics().GetMetrics(); stats.SuccessfulAnalyses != 2 {
		t.Errorf("Expected metrics observer to see 2 analyses, got %d", stats.SuccessfulAnalyses)
	}
}
