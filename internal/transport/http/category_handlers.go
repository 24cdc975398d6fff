package httpt

import (
	"errors"
	"net/http"

	"github.com/Demonism0/inventory-application/internal/entity"
	"github.com/Demonism0/inventory-application/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *InventoryHandler) categoryListHandler(c *gin.Context) {
	const op = "transport.categoryListHandler"

	counts, items, err := h.categories.ListWithCounts(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.HTML(http.StatusOK, "category_list.html", gin.H{
		"Title":      "All Categories",
		"Categories": counts,
		"Items":      items,
	})
}

func (h *InventoryHandler) categoryDetailHandler(c *gin.Context) {
	const op = "transport.categoryDetailHandler"

	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	category, items, err := h.categories.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.HTML(http.StatusOK, "category_detail.html", gin.H{
		"Title":    category.Name,
		"Category": category,
		"Items":    items,
	})
}

func (h *InventoryHandler) categoryCreateFormHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "category_form.html", gin.H{
		"Title":  "Create Category",
		"Form":   &categoryForm{},
		"Action": "/inventory/category/create",
	})
}

// categoryCreateSubmitHandler persists a new category, or, when a category
// with the same case-insensitive name already exists, redirects to the
// existing one without creating anything or showing an error.
func (h *InventoryHandler) categoryCreateSubmitHandler(c *gin.Context) {
	const op = "transport.categoryCreateSubmitHandler"

	form := h.parseCategoryForm(c)

	if len(form.Errors) > 0 {
		c.HTML(http.StatusOK, "category_form.html", gin.H{
			"Title":  "Create Category",
			"Form":   form,
			"Errors": form.Errors,
			"Action": "/inventory/category/create",
		})
		return
	}

	id, _, err := h.categories.CreateOrGet(c.Request.Context(), form.Name)
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.Redirect(http.StatusSeeOther, (&entity.Category{ID: id}).URL())
}

func (h *InventoryHandler) categoryDeleteFormHandler(c *gin.Context) {
	const op = "transport.categoryDeleteFormHandler"

	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	category, items, err := h.categories.Get(c.Request.Context(), id)
	if err != nil {
		if isNotFound(err) {
			c.Redirect(http.StatusSeeOther, "/inventory/categories")
			return
		}
		h.handleServiceError(c, err, op)
		return
	}

	c.HTML(http.StatusOK, "category_delete.html", gin.H{
		"Title":    "Delete Category",
		"Category": category,
		"Items":    items,
	})
}

// categoryDeleteSubmitHandler deletes the category named by the submitted
// body unless items still reference it, in which case the confirmation view
// is shown again with the current referencing items.
func (h *InventoryHandler) categoryDeleteSubmitHandler(c *gin.Context) {
	const op = "transport.categoryDeleteSubmitHandler"

	id, err := uuid.Parse(c.PostForm("categoryid"))
	if err != nil {
		h.log.Ctx(c.Request.Context()).LogAttrs(
			c.Request.Context(), logger.WarnLevel, "invalid categoryid in delete submission",
			logger.String("op", op),
		)
		c.Redirect(http.StatusSeeOther, "/inventory/categories")
		return
	}

	err = h.categories.Delete(c.Request.Context(), id)
	if err == nil {
		c.Redirect(http.StatusSeeOther, "/inventory/categories")
		return
	}

	if !errors.Is(err, entity.ErrCategoryInUse) {
		h.handleServiceError(c, err, op)
		return
	}

	category, items, err := h.categories.Get(c.Request.Context(), id)
	if err != nil {
		if isNotFound(err) {
			c.Redirect(http.StatusSeeOther, "/inventory/categories")
			return
		}
		h.handleServiceError(c, err, op)
		return
	}

	c.HTML(http.StatusOK, "category_delete.html", gin.H{
		"Title":    "Delete Category",
		"Category": category,
		"Items":    items,
	})
}

func (h *InventoryHandler) categoryUpdateFormHandler(c *gin.Context) {
	const op = "transport.categoryUpdateFormHandler"

	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	category, err := h.categories.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.HTML(http.StatusOK, "category_form.html", gin.H{
		"Title":  "Update Category",
		"Form":   &categoryForm{Name: category.Name},
		"Action": category.URL() + "/update",
	})
}

func (h *InventoryHandler) categoryUpdateSubmitHandler(c *gin.Context) {
	const op = "transport.categoryUpdateSubmitHandler"

	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	form := h.parseCategoryForm(c)
	category := &entity.Category{ID: id, Name: form.Name}

	if len(form.Errors) > 0 {
		c.HTML(http.StatusOK, "category_form.html", gin.H{
			"Title":  "Update Category",
			"Form":   form,
			"Errors": form.Errors,
			"Action": category.URL() + "/update",
		})
		return
	}

	if err := h.categories.Update(c.Request.Context(), category); err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.Redirect(http.StatusSeeOther, category.URL())
}
