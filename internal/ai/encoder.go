package ai

import "context"

// Encoder produces a fixed-length dense vector summarizing a text's meaning.
// Implementations wrap a pretrained sentence-encoder backend loaded once at
// process start; Embed is safe for concurrent use.
type Encoder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Model() string
}
