package apiclient

import (
	"encoding/json"
	"fmt"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/Rushil0704/auth-client-1/internal/domain/model"
)

// List envelopes differ only in key names. These projections map each
// envelope onto {items, totalPages, totalCount}.
const (
	usersEnvelope      = "{items: users || `[]`, totalPages: totalPages || `0`, totalCount: totalUsers || `0`}"
	categoriesEnvelope = "{items: categories || `[]`, totalPages: totalPages || `0`, totalCount: totalCategories || `0`}"
)

// projectPage applies a JMESPath projection to a decoded envelope and
// re-decodes the result into a typed page.
func projectPage[T any](expr string, raw any, page int) (model.ListPage[T], error) {
	projected, err := jmespath.Search(expr, raw)
	if err != nil {
		return model.ListPage[T]{}, fmt.Errorf("project envelope: %w", err)
	}

	data, err := json.Marshal(projected)
	if err != nil {
		return model.ListPage[T]{}, fmt.Errorf("re-encode envelope: %w", err)
	}

	var shaped struct {
		Items      []T `json:"items"`
		TotalPages int `json:"totalPages"`
		TotalCount int `json:"totalCount"`
	}
	if err := json.Unmarshal(data, &shaped); err != nil {
		return model.ListPage[T]{}, fmt.Errorf("decode envelope: %w", err)
	}

	if shaped.Items == nil {
		shaped.Items = []T{}
	}
	return model.ListPage[T]{
		Items:      shaped.Items,
		Page:       page,
		TotalPages: max(shaped.TotalPages, 0),
		TotalCount: max(shaped.TotalCount, 0),
	}, nil
}
