package pipeline

import (
	"context"
	"testing"
)

func TestPreprocessor_PreprocessMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unchanged", "# Title\n\nbody\n", "# Title\n\nbody\n"},
		{"byte order mark stripped", "\ufeff# Title\n", "# Title\n"},
		{"only leading mark stripped", "a\ufeffb", "a\ufeffb"},
		{"CRLF", "# Title\r\n\r\nbody\r\n", "# Title\n\nbody\n"},
		{"lone CR", "a\rb\r", "a\nb\n"},
		{"mixed", "\ufeffa\r\nb\rc\n", "a\nb\nc\n"},
		{"blank lines kept", "a\n\n\n\nb", "a\n\n\n\nb"},
		{"highlight syntax untouched", "x ==y== z", "x ==y== z"},
		{"empty", "", ""},
	}

	p := &Preprocessor{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := p.PreprocessMarkdown(context.Background(), tt.input); got != tt.want {
				t.Errorf("PreprocessMarkdown(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPreprocessor_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := "\ufeffa\r\n"
	if got := (&Preprocessor{}).PreprocessMarkdown(ctx, in); got != in {
		t.Errorf("cancelled preprocess should return input unchanged, got %q", got)
	}
}
