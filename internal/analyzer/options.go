package analyzer

// DefaultPreviewLength is how many characters of the analyzed text are kept for logging.
const DefaultPreviewLength = 50

// AnalysisOptions provides configuration for text analysis
type AnalysisOptions struct {
	// PreviewLength caps the preview, in characters. Values <= 0 use the default.
	PreviewLength int
}

// DefaultOptions returns default analysis options
func DefaultOptions() AnalysisOptions {
	return AnalysisOptions{
		PreviewLength: DefaultPreviewLength,
	}
}

// WithPreviewLength returns options with a custom preview length
func (opts AnalysisOptions) WithPreviewLength(n int) AnalysisOptions {
	opts.PreviewLength = n
	return opts
}

func (opts AnalysisOptions) previewLength() int {
	if opts.PreviewLength <= 0 {
		return DefaultPreviewLength
	}
	return opts.PreviewLength
}
