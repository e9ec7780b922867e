package template

import (
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"maps"
	"os"
	"path"
	"strings"
	"time"
)

// Engine renders named templates to HTML and normalises HTML to XHTML.
type Engine interface {
	// Process resolves name under the template root and executes it with vars.
	// Returns ErrTemplateNotFound if the name does not resolve.
	Process(ctx context.Context, name string, vars map[string]any) (string, error)
	// ToXHTML substitutes ${KEY} placeholders in text and returns well-formed XHTML.
	ToXHTML(text string, placeholders map[string]any) (string, error)
}

// FileEngine executes html/template files read from an fs.FS.
//
// Files in the same directory as the requested template whose base name
// starts with "_" are parsed as partials and can be included with
// {{template "_name.html" .}}.
type FileEngine struct {
	root  fs.FS
	funcs htmltemplate.FuncMap
}

// FileEngineOption configures a FileEngine.
type FileEngineOption func(*FileEngine)

// WithFuncs registers additional template functions.
func WithFuncs(funcs htmltemplate.FuncMap) FileEngineOption {
	return func(e *FileEngine) {
		maps.Copy(e.funcs, funcs)
	}
}

// NewFileEngine creates an engine rooted at root.
func NewFileEngine(root fs.FS, opts ...FileEngineOption) *FileEngine {
	e := &FileEngine{root: root, funcs: defaultFuncs()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewDirEngine creates an engine rooted at the template home directory.
func NewDirEngine(home string, opts ...FileEngineOption) (*FileEngine, error) {
	info, err := os.Stat(home)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplateHome, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidTemplateHome, home)
	}
	return NewFileEngine(os.DirFS(home), opts...), nil
}

// Process implements Engine.
func (e *FileEngine) Process(ctx context.Context, name string, vars map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p := strings.TrimPrefix(path.Clean("/"+name), "/")
	if name == "" || strings.Contains(name, "..") || !fs.ValidPath(p) || p == "." {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}

	src, err := fs.ReadFile(e.root, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
		}
		return "", fmt.Errorf("%w: %q: %v", ErrTemplateUnreadable, name, err)
	}

	tpl, err := htmltemplate.New(path.Base(p)).Funcs(e.funcs).Parse(string(src))
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrTemplateParse, name, err)
	}
	if err := e.parsePartials(tpl, path.Dir(p), path.Base(p)); err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrTemplateParse, name, err)
	}

	var sb strings.Builder
	if err := tpl.Execute(&sb, vars); err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrRender, name, err)
	}
	return sb.String(), nil
}

func (e *FileEngine) parsePartials(tpl *htmltemplate.Template, dir, self string) error {
	entries, err := fs.ReadDir(e.root, dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == self || !strings.HasPrefix(entry.Name(), "_") {
			continue
		}
		src, err := fs.ReadFile(e.root, path.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		if _, err := tpl.New(entry.Name()).Parse(string(src)); err != nil {
			return err
		}
	}
	return nil
}

// ToXHTML implements Engine.
func (e *FileEngine) ToXHTML(text string, placeholders map[string]any) (string, error) {
	return ToXHTML(text, placeholders)
}

func defaultFuncs() htmltemplate.FuncMap {
	return htmltemplate.FuncMap{
		"join":  strings.Join,
		"upper": strings.ToUpper,
		"date": func(layout string, t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format(layout)
		},
	}
}
