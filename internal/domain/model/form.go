//revive:disable-next-line:var-naming // legacy package name used across the project
package model

// FormDraft holds the values of a form together with its per-field error messages.
type FormDraft[T any] struct {
	Values T
	Errors map[string]string
}

// NewFormDraft returns a draft pre-filled with values and no errors.
func NewFormDraft[T any](values T) FormDraft[T] {
	return FormDraft[T]{Values: values, Errors: map[string]string{}}
}

// Valid reports whether no field has an error.
func (d FormDraft[T]) Valid() bool { return len(d.Errors) == 0 }

// ErrorFor returns the message for a field, or "".
func (d FormDraft[T]) ErrorFor(field string) string { return d.Errors[field] }
