package entity

import (
	"github.com/google/uuid"
)

// Category names are unique case-insensitively; the store enforces this
// with a unique index on lower(name).
type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name" validate:"required,max=100"`
}

func (c *Category) URL() string {
	return "/inventory/category/" + c.ID.String()
}
