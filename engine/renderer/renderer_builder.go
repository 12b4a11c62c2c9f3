package renderer

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithClearColor sets the clear color at construction time.
//
// Parameters:
//   - r, g, b, a: the clear color components
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(r, g, b, a float32) RendererBuilderOption {
	return func(rd *renderer) {
		rd.drv.SetClearColor(r, g, b, a)
	}
}
