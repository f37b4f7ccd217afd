package interfaces

import "io"

// TemplateRenderer abstracts the theme's template engine. Render resolves a
// named template; RenderString executes inline template content. Both return
// the rendered output and optionally stream it to the supplied writers.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
}
