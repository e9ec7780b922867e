package template

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Component adapts a render of name into a templ.Component so engine output
// can be composed with templ pages and written by templ-aware handlers.
func Component(e Engine, name string, vars map[string]any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out, err := e.Process(ctx, name, vars)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	})
}

// Render takes a templ.Component and renders it to a string.
func Render(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
