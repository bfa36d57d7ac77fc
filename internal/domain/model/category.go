//revive:disable-next-line:var-naming // legacy package name used across the project
package model

import "time"

// Category is a product category managed through the console.
type Category struct {
	ID          string     `json:"_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// CategoryRequest is the body used to create or edit a category.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
