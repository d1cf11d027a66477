package models

// AnalysisRequest represents a request for text analysis.
// Text is a pointer so a missing field can be told apart from an empty string.
type AnalysisRequest struct {
	Text *string `json:"text" binding:"required"`
}

// AnalysisResponse represents the statistics computed for a block of text
type AnalysisResponse struct {
	OriginalText      string `json:"original_text"`
	WordCount         int    `json:"word_count"`
	CharacterCount    int    `json:"character_count"`
	AnalysisTimestamp string `json:"analysis_timestamp"`
}

// HealthResponse is the fixed liveness payload
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Detail    string `json:"detail"`
	RequestID string `json:"request_id,omitempty"`
}

// StatsResponse reports analysis counters since process start
type StatsResponse struct {
	TotalAnalyses       int64   `json:"total_analyses"`
	SuccessfulAnalyses  int64   `json:"successful_analyses"`
	FailedAnalyses      int64   `json:"failed_analyses"`
	AvgProcessingTimeMs float64 `json:"avg_processing_time_ms"`
	TotalWordsAnalyzed  int64   `json:"total_words_analyzed"`
	TotalCharsAnalyzed  int64   `json:"total_characters_analyzed"`
}
