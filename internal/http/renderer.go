package httpx

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"net/http"
	"sync"

	httpassets "github.com/Rushil0704/auth-client-1/internal/http/assets"
	assetfuncs "github.com/Rushil0704/auth-client-1/internal/http/templates/assets"
	chartfuncs "github.com/Rushil0704/auth-client-1/internal/http/templates/charts"
	corefuncs "github.com/Rushil0704/auth-client-1/internal/http/templates/core"
)

// AssetResolver aliases the asset resolver so callers only import httpx.
type AssetResolver = httpassets.AssetResolver

// NewAssetResolver creates a content-hash resolver over the static file tree.
func NewAssetResolver(fsys fs.FS, devMode bool) *AssetResolver {
	return httpassets.NewAssetResolver(fsys, devMode)
}

// Template names the handlers render by.
const (
	tmplLayout      = "layout"
	tmplContent     = "content"
	tmplErrorLayout = "error-layout"
)

var templateGlobs = []string{"*.tmpl", "pages/*.tmpl", "partials/*.tmpl"}

// TemplateRenderer executes the console's html/template set. Output is
// buffered so a failing template never leaves a half-written page.
type TemplateRenderer struct {
	t      *template.Template
	css    *criticalCSS
	logger *slog.Logger
}

// TemplateRendererConfig configures NewTemplateRenderer. Only TemplateFS is required.
type TemplateRendererConfig struct {
	TemplateFS fs.FS
	Resolver   *AssetResolver
	// CriticalCSSFS holds css/critical.css, inlined into the page head.
	CriticalCSSFS fs.FS
	// DevMode re-reads the critical CSS on every render.
	DevMode bool
	Logger  *slog.Logger
}

// NewTemplateRenderer parses every template under TemplateFS.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("template renderer: TemplateFS is required")
	}
	r := &TemplateRenderer{logger: cfg.Logger}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	r.css = &criticalCSS{fsys: cfg.CriticalCSSFS, reload: cfg.DevMode, logger: r.logger}

	funcs := template.FuncMap{}
	maps.Copy(funcs, corefuncs.Funcs(corefuncs.Deps{Template: &r.t, ContentTemplateFor: ContentTemplateFor}))
	maps.Copy(funcs, assetfuncs.Funcs(assetfuncs.Options{Resolver: cfg.Resolver, CriticalCSS: r.css.get}))
	maps.Copy(funcs, chartfuncs.Funcs())

	t, err := template.New("root").Funcs(funcs).ParseFS(cfg.TemplateFS, templateGlobs...)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.t = t
	return r, nil
}

// RenderFull renders the layout with the page inside it.
func (r *TemplateRenderer) RenderFull(w http.ResponseWriter, _ *http.Request, data any) error {
	return r.RenderFragment(w, tmplLayout, data)
}

// RenderPartial renders just the main content area, for htmx navigation.
func (r *TemplateRenderer) RenderPartial(w http.ResponseWriter, _ *http.Request, data any) error {
	return r.RenderFragment(w, tmplContent, data)
}

// RenderError renders the standalone error page.
func (r *TemplateRenderer) RenderError(w http.ResponseWriter, _ *http.Request, data any) error {
	return r.RenderFragment(w, tmplErrorLayout, data)
}

// RenderFragment renders one named template as an HTML response.
func (r *TemplateRenderer) RenderFragment(w http.ResponseWriter, name string, data any) error {
	var buf bytes.Buffer
	if err := r.Execute(&buf, name, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Warn("write rendered template", "template", name, "error", err)
		return err
	}
	return nil
}

// Execute writes a named template to any writer; the live table uses it for
// out-of-band fragments.
func (r *TemplateRenderer) Execute(w io.Writer, name string, data any) error {
	if err := r.t.ExecuteTemplate(w, name, data); err != nil {
		r.logger.Error("template execution failed", "template", name, "error", err)
		return err
	}
	return nil
}

// HasTemplate reports whether name is defined.
func (r *TemplateRenderer) HasTemplate(name string) bool {
	return r.t.Lookup(name) != nil
}

const (
	criticalCSSPath     = "css/critical.css"
	fallbackCriticalCSS = ":root{--bg:#f6f7f9;--surface:#fff;--text:#2e3138;}"
)

// criticalCSS loads css/critical.css once, or on every call in dev mode.
type criticalCSS struct {
	fsys   fs.FS
	reload bool
	logger *slog.Logger

	once   sync.Once
	cached string
}

func (c *criticalCSS) get() string {
	if c.fsys == nil {
		return ""
	}
	if c.reload {
		return c.read()
	}
	c.once.Do(func() { c.cached = c.read() })
	return c.cached
}

func (c *criticalCSS) read() string {
	b, err := fs.ReadFile(c.fsys, criticalCSSPath)
	if err != nil {
		c.logger.Warn("critical css unavailable", "path", criticalCSSPath, "error", err)
		return fallbackCriticalCSS
	}
	return string(b)
}
