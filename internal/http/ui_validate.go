package httpx

import (
	"net/http"

	"github.com/Rushil0704/auth-client-1/internal/forms"
)

const fieldErrorTmpl = "field-error"

// ValidateField checks one field of a form while the user types.
// POST /validate/{form}/{field} with the whole form posted, so cross-field
// rules such as "passwords must match" see their peers. The response is the
// inline error element for the field, empty when the value is valid.
func (h *UIHandlers) ValidateField(w http.ResponseWriter, r *http.Request) {
	form, ok := forms.NewByName(r.PathValue("form"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	if err := forms.Decode(r.PostForm, form); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	field := r.PathValue("field")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := h.T.Execute(w, fieldErrorTmpl, map[string]any{
		"Field":   field,
		"Message": h.validator().ValidateField(form, field),
	})
	if err != nil {
		h.logAndRenderTemplateError(w, r, err, "field error render")
	}
}
