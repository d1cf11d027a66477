package analyzer

import (
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.PreviewLength != 50 {
		t.Errorf("Expected PreviewLength to be 50, got %d", opts.PreviewLength)
	}
}

func TestWithPreviewLength(t *testing.T) {
	opts := DefaultOptions().WithPreviewLength(10)

	if opts.PreviewLength != 10 {
		t.Errorf("Expected PreviewLength to be 10, got %d", opts.PreviewLength)
	}
	if DefaultOptions().PreviewLength != 50 {
		t.Error("Expected WithPreviewLength not to mutate the defaults")
	}
}

func TestPreviewLength_FallsBackToDefault(t *testing.T) {
	for _, n := range []int{0, -5} {
		opts := AnalysisOptions{PreviewLength: n}
		if got := opts.previewLength(); got != DefaultPreviewLength {
			t.Errorf("previewLength() with %d = %d, want %d", n, got, DefaultPreviewLength)
		}
	}
}
