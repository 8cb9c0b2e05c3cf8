package render

// RenderOptions describe per-request data that renderers can use to adjust
// their output without touching the Document.
type RenderOptions struct {
	// Values pre-populates answer fields keyed by field name. Renderers that
	// cannot carry values ignore it.
	Values map[string]string
}
