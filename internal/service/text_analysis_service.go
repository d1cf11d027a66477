package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"insight-agent/internal/analyzer"
	apperrors "insight-agent/internal/errors"
	"insight-agent/internal/observer"
	"insight-agent/pkg/models"
	"insight-agent/pkg/validation"
)

// TimestampFormat is ISO-8601 with microseconds; UTC renders as a trailing Z.
const TimestampFormat = "2006-01-02T15:04:05.000000Z07:00"

// TextAnalysisService defines the interface for text analysis
type TextAnalysisService interface {
	Analyze(ctx context.Context, text string) (*models.AnalysisResponse, error)
}

type requestIDKey struct{}

// ContextWithRequestID attaches a request ID that ends up in logs and events
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the request ID set by ContextWithRequestID, if any
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// textAnalysisService implements TextAnalysisService
type textAnalysisService struct {
	validator *validation.TextValidator
	analyzer  analyzer.TextAnalyzer
	events    observer.Subject
	logger    *logrus.Logger
}

// NewTextAnalysisService creates a new text analysis service
func NewTextAnalysisService(
	textAnalyzer analyzer.TextAnalyzer,
	events observer.Subject,
	logger *logrus.Logger,
) TextAnalysisService {
	return &textAnalysisService{
		validator: validation.NewTextValidator(),
		analyzer:  textAnalyzer,
		events:    events,
		logger:    logger,
	}
}

// Analyze validates the text and returns its statistics. Anything other than a
// validation failure is reported as an internal error.
func (s *textAnalysisService) Analyze(ctx context.Context, text string) (resp *models.AnalysisResponse, err error) {
	startTime := time.Now()
	requestID := RequestIDFromContext(ctx)

	s.events.NotifyObservers(ctx, observer.NewEvent(observer.AnalysisStarted, requestID))

	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = apperrors.NewInternalError("analysis panicked", fmt.Errorf("panic: %v", r))
		}
		if err != nil {
			s.fail(ctx, requestID, startTime, err)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewInternalError("request context done before analysis", err)
	}

	trimmed, err := s.validator.ValidateText(text)
	if err != nil {
		return nil, err
	}

	stats := s.analyzer.Analyze(trimmed)

	s.logger.WithFields(logrus.Fields{
		"request_id":      requestID,
		"preview":         stats.Preview,
		"truncated":       stats.Truncated,
		"word_count":      stats.WordCount,
		"character_count": stats.CharacterCount,
	}).Info("Analyzed text")

	completed := observer.NewEvent(observer.AnalysisCompleted, requestID)
	completed.Success = true
	completed.ProcessingTime = time.Since(startTime)
	completed.WordCount = stats.WordCount
	completed.CharacterCount = stats.CharacterCount
	s.events.NotifyObservers(ctx, completed)

	return &models.AnalysisResponse{
		OriginalText:      stats.Text,
		WordCount:         stats.WordCount,
		CharacterCount:    stats.CharacterCount,
		AnalysisTimestamp: stats.AnalyzedAt.UTC().Format(TimestampFormat),
	}, nil
}

func (s *textAnalysisService) fail(ctx context.Context, requestID string, startTime time.Time, err error) {
	errorType := apperrors.ErrorTypeInternal
	if appErr, ok := apperrors.AsAppError(err); ok {
		errorType = appErr.Type
	}

	if errorType == apperrors.ErrorTypeInternal {
		s.logger.WithError(err).WithField("request_id", requestID).Error("Error analyzing text")
	}

	failed := observer.NewEvent(observer.AnalysisFailed, requestID)
	failed.ProcessingTime = time.Since(startTime)
	failed.ErrorMessage = err.Error()
	failed.Metadata = map[string]interface{}{"error_type": string(errorType)}
	s.events.NotifyObservers(ctx, failed)
}
