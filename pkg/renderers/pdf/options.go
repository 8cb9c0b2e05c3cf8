package pdf

// Option configures the PDF renderer.
type Option func(*Renderer)

// WithFontFiles points the renderer at TrueType files for the regular and
// bold roles. An empty bold path reuses the regular face. Files that cannot
// be read or parsed fall back to the built-in Helvetica family.
func WithFontFiles(regular, bold string) Option {
	return func(r *Renderer) {
		r.regularPath = regular
		r.boldPath = bold
	}
}

// WithFontBytes supplies TrueType data directly, bypassing the filesystem.
func WithFontBytes(regular, bold []byte) Option {
	return func(r *Renderer) {
		r.regularData = regular
		r.boldData = bold
	}
}

// WithCompression toggles Flate compression of page content streams.
// Compression is on by default.
func WithCompression(enabled bool) Option {
	return func(r *Renderer) {
		r.compress = enabled
	}
}

// WithProducer sets the /Producer entry of the document information
// dictionary.
func WithProducer(producer string) Option {
	return func(r *Renderer) {
		r.producer = producer
	}
}
