package analyzer

import "time"

// TextStats holds the statistics computed for one block of text
type TextStats struct {
	// Text is the input with leading and trailing whitespace removed.
	Text           string
	WordCount      int
	CharacterCount int
	Preview        string
	Truncated      bool
	AnalyzedAt     time.Time
}
