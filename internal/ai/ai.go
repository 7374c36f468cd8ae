// Package ai produces the optional title and summary written as front matter
// ahead of a reconstructed document.
package ai

import "context"

// Enhancer returns plain text with any code fences already removed.
type Enhancer interface {
	// Summarize describes text in at most maxWords words.
	Summarize(ctx context.Context, text string, maxWords int) (string, error)
	// Title proposes a short document title.
	Title(ctx context.Context, text string) (string, error)
}

// Noop is the Enhancer used when no provider is configured. It returns empty
// strings, which callers treat as "nothing to add".
type Noop struct{}

func (Noop) Summarize(ctx context.Context, text string, maxWords int) (string, error) {
	return "", nil
}
func (Noop) Title(ctx context.Context, text string) (string, error) { return "", nil }
