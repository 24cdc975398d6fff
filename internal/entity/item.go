package entity

import (
	"github.com/google/uuid"
)

// Item is a single inventory document. Price is kept verbatim as the
// currency-formatted string the user submitted; CategoryIDs may be empty.
type Item struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"        validate:"required,max=100"`
	Description string      `json:"description"`
	Price       string      `json:"price"       validate:"required"`
	Stock       int         `json:"stock"       validate:"gte=0"`
	CategoryIDs []uuid.UUID `json:"category"`
}

// ItemSummary is the projection used by the item list view.
type ItemSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// HasCategory reports whether the item references the given category.
func (i *Item) HasCategory(categoryID uuid.UUID) bool {
	for _, id := range i.CategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

func (i *Item) URL() string {
	return "/inventory/item/" + i.ID.String()
}

func (s *ItemSummary) URL() string {
	return "/inventory/item/" + s.ID.String()
}
