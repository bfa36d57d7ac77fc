// Package core holds the template helpers every page can use.
package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/Rushil0704/auth-client-1/internal/http/uiutil"
)

type Deps struct {
	// Template points at the renderer's parsed set, which exists only after
	// the func map has been installed.
	Template **template.Template
	// ContentTemplateFor maps a CurrentPage value to its content template.
	ContentTemplateFor func(string) string
}

func Funcs(deps Deps) template.FuncMap {
	return template.FuncMap{
		"renderSection": deps.renderSection,
		"toJSON":        toJSON,
		"dict":          Dict,
		"fieldError":    FieldError,
		"timeTag":       TimeTag,
		"truncateText":  uiutil.TruncateWithEllipsis,
		"initials":      uiutil.Initials,
	}
}

// renderSection executes the content template of page into the layout.
func (d Deps) renderSection(page string, data any) (template.HTML, error) {
	if d.Template == nil || *d.Template == nil {
		return "", errors.New("renderSection: templates not parsed yet")
	}
	var buf bytes.Buffer
	if err := (*d.Template).ExecuteTemplate(&buf, d.ContentTemplateFor(page), data); err != nil {
		return "", fmt.Errorf("renderSection %q: %w", page, err)
	}
	// #nosec G203 - output of our own html/template set, already escaped.
	return template.HTML(buf.String()), nil
}

// toJSON is for attribute values such as hx-vals; html/template escapes the
// result for the attribute context.
func toJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// TimeTag renders a <time> element showing the relative age with the full
// timestamp as its title. Zero and nil times render nothing.
func TimeTag(ts any) template.HTML {
	var t time.Time
	switch v := ts.(type) {
	case time.Time:
		t = v
	case *time.Time:
		if v != nil {
			t = *v
		}
	}
	if t.IsZero() {
		return ""
	}
	// #nosec G203 - every interpolated value is escaped.
	return template.HTML(fmt.Sprintf(`<time datetime="%s" title="%s">%s</time>`,
		t.UTC().Format(time.RFC3339),
		template.HTMLEscapeString(uiutil.FormatFriendlyDateTime(t)),
		template.HTMLEscapeString(uiutil.FriendlyRelativeTime(t)),
	))
}

// FieldError looks up the message for field in a form's error map.
func FieldError(errs any, field string) string {
	switch m := errs.(type) {
	case map[string]string:
		return m[field]
	case interface{ ErrorFor(string) string }:
		return m.ErrorFor(field)
	}
	return ""
}

// Dict builds a map from alternating keys and values so partials can take
// more than one argument.
func Dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}
