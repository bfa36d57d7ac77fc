package httpx

import (
	"net/http"

	apperrors "github.com/Rushil0704/auth-client-1/internal/errors"
)

// TemplateDataBuilder assembles the data map a dashboard page renders with,
// starting from the layout fields every page shares.
type TemplateDataBuilder struct {
	data map[string]any
}

// NewTemplateData seeds the map with the layout for r.
func NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return &TemplateDataBuilder{data: basePageData(r, meta)}
}

// WithError shows msg in the form's alert box.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	b.data["Error"] = true
	b.data["ErrorMessage"] = msg
	return b
}

// WithLoadFailure renders an edit form whose record could not be fetched:
// an empty form, the failure in the alert box and the same text as a toast.
func (b *TemplateDataBuilder) WithLoadFailure(empty any, err error) *TemplateDataBuilder {
	msg := apperrors.MessageOf(err)
	b.data[toastErrorKey] = msg
	return b.WithForm(empty).WithError(msg)
}

// WithFieldErrors merges per-field messages keyed by form field name.
func (b *TemplateDataBuilder) WithFieldErrors(errs map[string]string) *TemplateDataBuilder {
	merged, _ := b.data["Errors"].(map[string]string)
	if merged == nil {
		merged = make(map[string]string, len(errs))
	}
	for field, msg := range errs {
		merged[field] = msg
	}
	b.data["Errors"] = merged
	return b
}

// WithForm sets the values the inputs are filled with.
func (b *TemplateDataBuilder) WithForm(form any) *TemplateDataBuilder {
	b.data["Form"] = form
	return b
}

func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}
