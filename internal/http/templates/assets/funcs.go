// Package assets provides the template helpers that point pages at static files.
package assets

import (
	"html/template"

	httpassets "github.com/Rushil0704/auth-client-1/internal/http/assets"
)

// Options wires the helpers to the resolver and the critical CSS source.
// Both are optional.
type Options struct {
	Resolver    *httpassets.AssetResolver
	CriticalCSS func() string
}

// Funcs returns "asset", which maps a logical path to its fingerprinted URL,
// and "criticalCSS", which inlines the above-the-fold stylesheet.
func Funcs(opts Options) template.FuncMap {
	inline := func() template.CSS {
		if opts.CriticalCSS == nil {
			return ""
		}
		// #nosec G203 - the stylesheet ships inside the binary.
		return template.CSS(opts.CriticalCSS())
	}
	return template.FuncMap{
		"asset":       func(name string) string { return httpassets.ResolveAsset(opts.Resolver, name) },
		"criticalCSS": inline,
	}
}
