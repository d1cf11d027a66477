package analyzer

// TextAnalyzer defines the main interface for text analysis
type TextAnalyzer interface {
	Analyze(text string) TextStats
	AnalyzeWithOptions(text string, options AnalysisOptions) TextStats
}
