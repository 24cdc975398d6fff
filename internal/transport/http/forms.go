package httpt

import (
	"strconv"

	"github.com/Demonism0/inventory-application/internal/entity"
	"github.com/Demonism0/inventory-application/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type (
	// itemForm holds the sanitized submission exactly as it will be persisted
	// or redisplayed; CategoryIDs stays textual until the candidate item is
	// built so an invalid submission can round-trip back into the form.
	itemForm struct {
		Name        string
		Description string
		Price       string
		Stock       string
		CategoryIDs []string
		Errors      []validation.FieldError
	}

	categoryForm struct {
		Name   string
		Errors []validation.FieldError
	}

	// categoryOption is a category row in the item form, marked Checked when
	// the candidate item references it.
	categoryOption struct {
		Category *entity.Category
		Checked  bool
	}
)

func (h *InventoryHandler) parseItemForm(c *gin.Context) *itemForm {
	// The category field arrives as absent, scalar or repeated depending on
	// how many boxes were ticked; PostFormArray normalizes all three shapes
	// to a sequence before any rule runs.
	form := &itemForm{
		Name:        validation.Sanitize(c.PostForm("name")),
		Description: validation.Sanitize(c.PostForm("description")),
		Price:       validation.Sanitize(c.PostForm("price")),
		Stock:       validation.Sanitize(c.PostForm("stock")),
		CategoryIDs: validation.SanitizeAll(c.PostFormArray("category")),
	}

	form.Errors = append(form.Errors, h.validate.Check("name", form.Name,
		validation.Rule{Tag: "required", Message: "Name must not be empty."},
	)...)
	form.Errors = append(form.Errors, h.validate.Check("description", form.Description,
		validation.Rule{Tag: "min=3", Message: "Description must contain at least 3 characters."},
	)...)
	form.Errors = append(form.Errors, h.validate.Check("price", form.Price,
		validation.Rule{Tag: "required", Message: "Price must not be empty."},
		validation.Rule{Tag: "currency", Message: "Price must be a dollar amount such as $9.99."},
	)...)
	form.Errors = append(form.Errors, h.validate.Check("stock", form.Stock,
		validation.Rule{Tag: "required", Message: "Stock must not be empty."},
		validation.Rule{Tag: "number", Message: "Stock must be a whole number."},
	)...)

	return form
}

func (h *InventoryHandler) parseCategoryForm(c *gin.Context) *categoryForm {
	form := &categoryForm{
		Name: validation.Sanitize(c.PostForm("name")),
	}

	form.Errors = append(form.Errors, h.validate.Check("name", form.Name,
		validation.Rule{Tag: "min=3", Message: "Category name must contain at least 3 characters."},
	)...)

	return form
}

// toItem builds the candidate item from the sanitized fields. Only called
// after validation passed, so the stock conversion cannot fail. Category
// references that are not well-formed ids cannot denote stored categories
// and are dropped.
func (f *itemForm) toItem(id uuid.UUID) *entity.Item {
	stock, _ := strconv.Atoi(f.Stock)

	categoryIDs := make([]uuid.UUID, 0, len(f.CategoryIDs))
	for _, raw := range f.CategoryIDs {
		if categoryID, err := uuid.Parse(raw); err == nil {
			categoryIDs = append(categoryIDs, categoryID)
		}
	}

	return &entity.Item{
		ID:          id,
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		Stock:       stock,
		CategoryIDs: categoryIDs,
	}
}

func (f *itemForm) references(categoryID uuid.UUID) bool {
	id := categoryID.String()
	for _, raw := range f.CategoryIDs {
		if raw == id {
			return true
		}
	}
	return false
}

func itemFormOf(item *entity.Item) *itemForm {
	categoryIDs := make([]string, 0, len(item.CategoryIDs))
	for _, id := range item.CategoryIDs {
		categoryIDs = append(categoryIDs, id.String())
	}

	return &itemForm{
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Stock:       strconv.Itoa(item.Stock),
		CategoryIDs: categoryIDs,
	}
}

func categoryOptions(categories []*entity.Category, form *itemForm) []categoryOption {
	options := make([]categoryOption, 0, len(categories))
	for _, category := range categories {
		options = append(options, categoryOption{
			Category: category,
			Checked:  form != nil && form.references(category.ID),
		})
	}
	return options
}
