package render

import (
	"context"
)

// Renderer converts a Document into a byte representation (PDF, plain text).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, doc Document, options RenderOptions) ([]byte, error)
}
