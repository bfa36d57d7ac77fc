// Package forms holds the console's form definitions and their validation rules.
//
// Rules are declared as go-playground/validator struct tags. Each field reports
// only its first failing rule, in tag order. Messages are looked up from the
// field's label tag, or from fixed text for the password pattern rules.
package forms

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/Rushil0704/auth-client-1/internal/domain/model"
)

var (
	emailPattern   = regexp.MustCompile(`^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)
	upperPattern   = regexp.MustCompile(`[A-Z]`)
	lowerPattern   = regexp.MustCompile(`[a-z]`)
	digitPattern   = regexp.MustCompile(`[0-9]`)
	specialPattern = regexp.MustCompile(`[@$!%*?&#]`)
)

// fixed messages that do not depend on the field label.
var fixedMessages = map[string]string{
	"email_format": "*Invalid email format.",
	"pw_upper":     "*Password must contain at least one uppercase letter.",
	"pw_lower":     "*Password must contain at least one lowercase letter.",
	"pw_digit":     "*Password must contain at least one number.",
	"pw_special":   "*Password must contain at least one special character.",
	"eqfield":      "*Passwords must match.",
}

// Errors maps a form field name to its message.
type Errors map[string]string

// Validator evaluates form structs.
type Validator struct {
	v *validator.Validate
}

var (
	defaultOnce sync.Once
	defaultV    *Validator
)

// Default returns a process-wide Validator.
func Default() *Validator {
	defaultOnce.Do(func() { defaultV = New() })
	return defaultV
}

// New builds a Validator with the console's custom rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	rules := map[string]*regexp.Regexp{
		"email_format": emailPattern,
		"pw_upper":     upperPattern,
		"pw_lower":     lowerPattern,
		"pw_digit":     digitPattern,
		"pw_special":   specialPattern,
	}
	for tag, re := range rules {
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("register %s: %v", tag, err))
		}
	}
	return &Validator{v: v}
}

// Validate checks form and returns one message per failing field, or nil.
func (x *Validator) Validate(form any) Errors {
	err := x.v.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{"": err.Error()}
	}
	labels := labelsOf(form)
	out := make(Errors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe, labels[fe.Field()])
	}
	return out
}

// ValidateField returns the message for one field of form, or "".
func (x *Validator) ValidateField(form any, field string) string {
	return x.Validate(form)[field]
}

func message(fe validator.FieldError, label string) string {
	if msg, ok := fixedMessages[fe.Tag()]; ok {
		return msg
	}
	if label == "" {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("*%s is required.", label)
	case "min":
		return fmt.Sprintf("*%s must be at least %s characters.", label, fe.Param())
	case "max":
		return fmt.Sprintf("*%s cannot exceed %s characters.", label, fe.Param())
	default:
		return fmt.Sprintf("*%s is invalid.", label)
	}
}

func labelsOf(form any) map[string]string {
	t := reflect.TypeOf(form)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := make(map[string]string, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		out[name] = f.Tag.Get("label")
	}
	return out
}

// Decode copies url-encoded values into the string fields of dst (a pointer to
// a form struct) by their form tag. Fields tagged ",trim" are whitespace-trimmed.
func Decode(values url.Values, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("decode form: want pointer to struct, got %T", dst)
	}
	rv = rv.Elem()
	rt := rv.Type()
	for i := range rt.NumField() {
		f := rt.Field(i)
		name, opts, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" || f.Type.Kind() != reflect.String {
			continue
		}
		val := values.Get(name)
		if opts == "trim" {
			val = strings.TrimSpace(val)
		}
		rv.Field(i).SetString(val)
	}
	return nil
}

// Draft pairs decoded values with their validation errors for re-rendering.
func Draft[T any](values T, errs Errors) model.FormDraft[T] {
	d := model.NewFormDraft(values)
	for k, v := range errs {
		d.Errors[k] = v
	}
	return d
}
