package engine

import "hanzimap/internal/domain"

// LayoutOptions configures the force-directed layout run by the renderer
type LayoutOptions struct {
	Name     string `json:"name" yaml:"name" toml:"name"`
	Infinite bool   `json:"infinite" yaml:"infinite" toml:"infinite"`
	Fit      bool   `json:"fit" yaml:"fit" toml:"fit"`
}

// DefaultLayout runs cola continuously and leaves the viewport alone,
// so the user's pan and zoom survive every update
func DefaultLayout() LayoutOptions {
	return LayoutOptions{
		Name:     "cola",
		Infinite: true,
		Fit:      false,
	}
}

// Renderer receives the elements left in the working graph and the layout
// to run over them
type Renderer interface {
	Render(elements []domain.Element, layout LayoutOptions) error
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(elements []domain.Element, layout LayoutOptions) error

// Render calls f
func (f RendererFunc) Render(elements []domain.Element, layout LayoutOptions) error {
	return f(elements, layout)
}
