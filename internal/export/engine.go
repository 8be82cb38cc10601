package export

import "context"

// Options control PDF rendering. Zero values fall back to the A4 defaults
// used by every template.
type Options struct {
	PageSize        string // A3, A4, A5, Letter, Legal; default A4
	Landscape       bool
	PrintBackground *bool   // default true; templates rely on painted accents
	Scale           float64 // print scale, 0.1–2.0, default 1.0
	Supersample     float64 // device scale factor; default 2 to keep text crisp

	MarginTop    string // lengths with unit (in, cm, mm, pt, px); default 0
	MarginBottom string
	MarginLeft   string
	MarginRight  string

	// BlockExternalAssets disables network loads during rendering. It is off
	// by default so a photo hosted on another origin still ends up in the
	// output.
	BlockExternalAssets bool
}

// Engine converts a rendered HTML document into PDF bytes. Implementations
// buffer the whole document; no partial output ever reaches a caller.
type Engine interface {
	Render(ctx context.Context, html []byte, opts Options) ([]byte, error)
}

// EngineFunc adapts a function to an Engine.
type EngineFunc func(ctx context.Context, html []byte, opts Options) ([]byte, error)

func (f EngineFunc) Render(ctx context.Context, html []byte, opts Options) ([]byte, error) {
	return f(ctx, html, opts)
}
