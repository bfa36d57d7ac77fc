package httpx

import (
	"context"
	"errors"
	"maps"
	"net/http"

	apperrors "github.com/Rushil0704/auth-client-1/internal/errors"
	"github.com/Rushil0704/auth-client-1/internal/forms"
	"github.com/Rushil0704/auth-client-1/internal/service"
)

// FormSubmit sends a validated form to the remote API on behalf of session sid.
type FormSubmit[F any] func(ctx context.Context, sid string, form F) (service.Result, error)

// FormRenderer draws the form page from template data.
type FormRenderer func(w http.ResponseWriter, r *http.Request, data map[string]any)

type FormHandlerOpts[F any] struct {
	W http.ResponseWriter
	R *http.Request
	// Mode is create or edit; empty for forms with a single mode.
	Mode     FormMode
	Submit   FormSubmit[F]
	Renderer FormRenderer
	PageMeta PageMeta
	// ExtraData is merged into the template data when the form is re-rendered.
	ExtraData map[string]any
	// Validator defaults to forms.Default().
	Validator *forms.Validator
	// Unauthorized replaces the re-render when the API rejects the token.
	Unauthorized func(w http.ResponseWriter, r *http.Request)
	// OnSuccess replaces the redirect to Result.Redirect.
	OnSuccess func(w http.ResponseWriter, r *http.Request, res service.Result)
	// Flash queues the success message for the page after the redirect.
	Flash func(r *http.Request, message, kind string)
}

// HandleForm runs one post of a form page:
//
//	decode r.PostForm into F -> validate -> Submit -> redirect
//
// A validation failure or a rejected submit re-renders the same page with
// the posted values and the errors. Validation failures never reach Submit.
func HandleForm[F any](opts FormHandlerOpts[F]) {
	if opts.Submit == nil || opts.Renderer == nil {
		http.Error(opts.W, "misconfigured form handler", http.StatusInternalServerError)
		return
	}
	v := opts.Validator
	if v == nil {
		v = forms.Default()
	}

	var form F
	if err := decodePostedForm(opts.R, &form); err != nil {
		http.Error(opts.W, "invalid form submission", http.StatusBadRequest)
		return
	}
	if errs := v.Validate(form); len(errs) > 0 {
		opts.rerender(form, errs, "")
		return
	}

	ctx := opts.R.Context()
	res, err := opts.Submit(ctx, SessionIDFromContext(ctx), form)
	switch {
	case err == nil:
		opts.succeed(res)
	case errors.Is(err, context.Canceled):
		http.Error(opts.W, "request canceled", http.StatusRequestTimeout)
	case apperrors.IsUnauthorized(err) && opts.Unauthorized != nil:
		opts.Unauthorized(opts.W, opts.R)
	default:
		var fieldErrs map[string]string
		msg := processError(err, &fieldErrs)
		opts.rerender(form, fieldErrs, msg)
	}
}

func decodePostedForm(r *http.Request, dst any) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	return forms.Decode(r.PostForm, dst)
}

func (o FormHandlerOpts[F]) succeed(res service.Result) {
	if o.OnSuccess != nil {
		o.OnSuccess(o.W, o.R, res)
		return
	}
	if o.Flash != nil {
		o.Flash(o.R, res.Message, service.FlashSuccess)
	}
	target := res.Redirect
	if target == "" {
		target = o.R.URL.Path
	}
	redirectBrowser(o.W, o.R, target)
}

// rerender shows the form again with the posted values. A non-empty
// submitErr came from the API and is also raised as a toast; validation
// failures only get the "fix below" alert.
func (o FormHandlerOpts[F]) rerender(form F, fieldErrs map[string]string, submitErr string) {
	b := NewTemplateData(o.R, o.PageMeta).WithForm(form)
	if len(fieldErrs) > 0 {
		b.WithFieldErrors(fieldErrs)
	}
	switch {
	case submitErr != "":
		b.WithError(submitErr).With(toastErrorKey, submitErr)
	case len(fieldErrs) > 0:
		b.WithError(errMsgFixBelow)
	}
	if o.Mode != "" {
		b.With("Mode", string(o.Mode))
	}
	data := b.Build()
	maps.Copy(data, o.ExtraData)
	o.Renderer(o.W, o.R, data)
}
