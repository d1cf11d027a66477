package analyzer

import (
	"strings"
	"time"
	"unicode/utf8"
)

// textAnalyzer computes whitespace-token and character statistics
type textAnalyzer struct {
	options AnalysisOptions
	now     func() time.Time
}

// NewTextAnalyzer creates an analyzer that stamps results with the current UTC time
func NewTextAnalyzer(options AnalysisOptions) TextAnalyzer {
	return NewTextAnalyzerWithClock(options, time.Now)
}

// NewTextAnalyzerWithClock creates an analyzer with an explicit time source
func NewTextAnalyzerWithClock(options AnalysisOptions, now func() time.Time) TextAnalyzer {
	if now == nil {
		now = time.Now
	}
	return &textAnalyzer{
		options: options,
		now:     now,
	}
}

// Analyze runs the analysis with the analyzer's configured options
func (a *textAnalyzer) Analyze(text string) TextStats {
	return a.AnalyzeWithOptions(text, a.options)
}

// AnalyzeWithOptions trims the text and counts its words and characters.
// Words are maximal runs of non-whitespace; characters are Unicode code points.
func (a *textAnalyzer) AnalyzeWithOptions(text string, options AnalysisOptions) TextStats {
	trimmed := strings.TrimSpace(text)
	preview, truncated := Preview(trimmed, options.previewLength())

	return TextStats{
		Text:           trimmed,
		WordCount:      len(strings.Fields(trimmed)),
		CharacterCount: utf8.RuneCountInString(trimmed),
		Preview:        preview,
		Truncated:      truncated,
		AnalyzedAt:     a.now().UTC(),
	}
}

// Preview returns at most n characters of text and whether anything was cut.
func Preview(text string, n int) (string, bool) {
	if n <= 0 {
		return "", text != ""
	}
	count := 0
	for i := range text {
		if count == n {
			return text[:i], true
		}
		count++
	}
	return text, false
}
