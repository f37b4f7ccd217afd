package themes

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goliatone/go-codelab/pkg/interfaces"
)

// NewTemplateRenderer returns a theme-directory backed renderer built on
// html/template. Templates are discovered lazily: every .html and .tmpl file
// under baseDir joins a single template set addressed by file name.
func NewTemplateRenderer(baseDir string, funcs template.FuncMap) (interfaces.TemplateRenderer, error) {
	info, err := os.Stat(baseDir)
	if err != nil {
		return nil, fmt.Errorf("inspect template directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template path %q is not a directory", baseDir)
	}
	return &goTemplateRenderer{baseDir: baseDir, funcs: funcs}, nil
}

// RendererFuncs returns the helper set registered on theme templates:
// safeHTML, duration formatting, category colors, and base-URL joins.
func RendererFuncs(ctx Context, baseURL string) template.FuncMap {
	base := strings.TrimRight(baseURL, "/")
	return template.FuncMap{
		"safeHTML": func(value any) template.HTML { return toHTML(value) },
		"categoryColor": func(name string) string {
			return ctx.CategoryColor(name, "")
		},
		"durationMinutes": func(d interfaces.Duration) int { return d.Minutes() },
		"withBaseURL": func(path string) string {
			path = strings.TrimSpace(path)
			if path == "" {
				return base
			}
			if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
				return path
			}
			if !strings.HasPrefix(path, "/") {
				path = "/" + path
			}
			if base == "" {
				return path
			}
			return base + path
		},
	}
}

type goTemplateRenderer struct {
	baseDir string
	funcs   template.FuncMap
	once    sync.Once
	tpl     *template.Template
	err     error
}

func (r *goTemplateRenderer) ensureTemplates() (*template.Template, error) {
	r.once.Do(func() {
		var files []string
		err := filepath.WalkDir(r.baseDir, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			if ext != ".html" && ext != ".tmpl" {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			r.err = err
			return
		}
		if len(files) == 0 {
			r.err = fmt.Errorf("no templates found in %s", r.baseDir)
			return
		}

		funcs := template.FuncMap{
			"safeHTML": func(value any) template.HTML { return toHTML(value) },
		}
		for name, fn := range r.funcs {
			funcs[name] = fn
		}
		r.tpl, r.err = template.New("codelab-theme").Funcs(funcs).ParseFiles(files...)
	})
	return r.tpl, r.err
}

func (r *goTemplateRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	tpl, err := r.ensureTemplates()
	if err != nil {
		return "", err
	}
	if tpl.Lookup(name) == nil {
		return "", fmt.Errorf("template %q not found", name)
	}

	var writer io.Writer
	var buffer *bytes.Buffer
	if len(out) > 0 && out[0] != nil {
		writer = out[0]
	} else {
		buffer = &bytes.Buffer{}
		writer = buffer
	}

	if err := tpl.ExecuteTemplate(writer, name, data); err != nil {
		return "", err
	}
	if buffer != nil {
		return buffer.String(), nil
	}
	return "", nil
}

func (r *goTemplateRenderer) RenderString(content string, data any, out ...io.Writer) (string, error) {
	funcs := template.FuncMap{
		"safeHTML": func(value any) template.HTML { return toHTML(value) },
	}
	for name, fn := range r.funcs {
		funcs[name] = fn
	}
	tpl, err := template.New("inline").Funcs(funcs).Parse(content)
	if err != nil {
		return "", err
	}

	var writer io.Writer
	var buffer *bytes.Buffer
	if len(out) > 0 && out[0] != nil {
		writer = out[0]
	} else {
		buffer = &bytes.Buffer{}
		writer = buffer
	}

	if err := tpl.Execute(writer, data); err != nil {
		return "", err
	}
	if buffer != nil {
		return buffer.String(), nil
	}
	return "", nil
}

func toHTML(value any) template.HTML {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case template.HTML:
		return v
	case string:
		return template.HTML(v)
	default:
		return template.HTML(fmt.Sprint(v))
	}
}
