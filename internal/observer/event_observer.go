package observer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"insight-agent/pkg/models"
)

// AnalysisEvent represents an analysis event
type AnalysisEvent struct {
	ID             string                 `json:"id"`
	EventType      EventType              `json:"event_type"`
	Timestamp      time.Time              `json:"timestamp"`
	RequestID      string                 `json:"request_id,omitempty"`
	ProcessingTime time.Duration          `json:"processing_time"`
	Success        bool                   `json:"success"`
	WordCount      int                    `json:"word_count,omitempty"`
	CharacterCount int                    `json:"character_count,omitempty"`
	ErrorMessage   string                 `json:"error_message,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// NewEvent creates an event stamped with a fresh ID and the current time
func NewEvent(eventType EventType, requestID string) AnalysisEvent {
	return AnalysisEvent{
		ID:        uuid.NewString(),
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		RequestID: requestID,
	}
}

// EventType represents the type of analysis event
type EventType string

const (
	// AnalysisStarted when analysis begins
	AnalysisStarted EventType = "analysis_started"
	// AnalysisCompleted when analysis finishes successfully
	AnalysisCompleted EventType = "analysis_completed"
	// AnalysisFailed when analysis is rejected or fails
	AnalysisFailed EventType = "analysis_failed"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event AnalysisEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event AnalysisEvent)
}

// LoggingObserver logs analysis events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{
		logger: logger,
	}
}

// OnEvent handles analysis events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event AnalysisEvent) {
	fields := logrus.Fields{
		"event_id":        event.ID,
		"event_type":      event.EventType,
		"request_id":      event.RequestID,
		"processing_time": event.ProcessingTime,
		"success":         event.Success,
	}

	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}

	for k, v := range event.Metadata {
		fields[k] = v
	}

	switch event.EventType {
	case AnalysisStarted:
		o.logger.WithFields(fields).Debug("Text analysis started")
	case AnalysisCompleted:
		fields["word_count"] = event.WordCount
		fields["character_count"] = event.CharacterCount
		o.logger.WithFields(fields).Debug("Text analysis completed")
	case AnalysisFailed:
		o.logger.WithFields(fields).Warn("Text analysis failed")
	default:
		o.logger.WithFields(fields).Info("Analysis event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver collects metrics from analysis events
type MetricsObserver struct {
	mu                  sync.RWMutex
	totalAnalyses       int64
	successfulAnalyses  int64
	failedAnalyses      int64
	totalWords          int64
	totalCharacters     int64
	totalProcessingTime time.Duration
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

// OnEvent handles analysis events by collecting metrics
func (o *MetricsObserver) OnEvent(ctx context.Context, event AnalysisEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case AnalysisStarted:
		o.totalAnalyses++
	case AnalysisCompleted:
		o.successfulAnalyses++
		o.totalWords += int64(event.WordCount)
		o.totalCharacters += int64(event.CharacterCount)
		o.totalProcessingTime += event.ProcessingTime
	case AnalysisFailed:
		o.failedAnalyses++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// GetMetrics returns current metrics
func (o *MetricsObserver) GetMetrics() models.StatsResponse {
	o.mu.RLock()
	defer o.mu.RUnlock()

	avgProcessingTime := time.Duration(0)
	if o.successfulAnalyses > 0 {
		avgProcessingTime = o.totalProcessingTime / time.Duration(o.successfulAnalyses)
	}

	return models.StatsResponse{
		TotalAnalyses:       o.totalAnalyses,
		SuccessfulAnalyses:  o.successfulAnalyses,
		FailedAnalyses:      o.failedAnalyses,
		AvgProcessingTimeMs: float64(avgProcessingTime) / float64(time.Millisecond),
		TotalWordsAnalyzed:  o.totalWords,
		TotalCharsAnalyzed:  o.totalCharacters,
	}
}

// EventPublisher implements the Subject interface
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
	logger    *logrus.Logger
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(logger *logrus.Logger) *EventPublisher {
	return &EventPublisher{
		observers: make([]Observer, 0),
		logger:    logger,
	}
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes an observer
func (p *EventPublisher) Unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obs := range p.observers {
		if obs.GetObserverName() == observer.GetObserverName() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// NotifyObservers delivers the event to every observer in subscription order.
// A panicking observer is logged and skipped.
func (p *EventPublisher) NotifyObservers(ctx context.Context, event AnalysisEvent) {
	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	for _, observer := range observers {
		p.notify(ctx, observer, event)
	}
}

func (p *EventPublisher) notify(ctx context.Context, obs Observer, event AnalysisEvent) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.WithField("observer", obs.GetObserverName()).
				WithField("panic", r).
				Error("Observer panicked while handling event")
		}
	}()
	obs.OnEvent(ctx, event)
}
