package httpt

import (
	"errors"
	"net/http"

	"github.com/Demonism0/inventory-application/internal/entity"
	"github.com/Demonism0/inventory-application/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

func (h *InventoryHandler) indexHandler(c *gin.Context) {
	const op = "transport.indexHandler"

	var itemCount, categoryCount int64

	eg, egCtx := errgroup.WithContext(c.Request.Context())
	eg.Go(func() error {
		var err error
		itemCount, err = h.items.Count(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		categoryCount, err = h.categories.Count(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":         "Inventory",
		"ItemCount":     itemCount,
		"CategoryCount": categoryCount,
	})
}

func (h *InventoryHandler) itemListHandler(c *gin.Context) {
	const op = "transport.itemListHandler"

	items, err := h.items.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.HTML(http.StatusOK, "item_list.html", gin.H{
		"Title": "All Items",
		"Items": items,
	})
}

func (h *InventoryHandler) itemDetailHandler(c *gin.Context) {
	const op = "transport.itemDetailHandler"

	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	item, categories, err := h.items.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.HTML(http.StatusOK, "item_detail.html", gin.H{
		"Title":      item.Name,
		"Item":       item,
		"Categories": categories,
	})
}

func (h *InventoryHandler) itemCreateFormHandler(c *gin.Context) {
	const op = "transport.itemCreateFormHandler"

	categories, err := h.items.AllCategories(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.HTML(http.StatusOK, "item_form.html", gin.H{
		"Title":      "Create Item",
		"Form":       &itemForm{},
		"Categories": categoryOptions(categories, nil),
		"Action":     "/inventory/item/create",
	})
}

func (h *InventoryHandler) itemCreateSubmitHandler(c *gin.Context) {
	const op = "transport.itemCreateSubmitHandler"

	form := h.parseItemForm(c)

	if len(form.Errors) > 0 {
		h.rerenderItemForm(c, op, form, "Create Item", "/inventory/item/create")
		return
	}

	item := form.toItem(uuid.Nil)

	id, err := h.items.Create(c.Request.Context(), item)
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	item.ID = id
	c.Redirect(http.StatusSeeOther, item.URL())
}

func (h *InventoryHandler) itemDeleteFormHandler(c *gin.Context) {
	const op = "transport.itemDeleteFormHandler"

	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	item, _, err := h.items.Get(c.Request.Context(), id)
	if err != nil {
		// Deleting something that is already gone is a satisfied goal, not
		// an error: send the user back to the list.
		if isNotFound(err) {
			c.Redirect(http.StatusSeeOther, "/inventory/items")
			return
		}
		h.handleServiceError(c, err, op)
		return
	}

	c.HTML(http.StatusOK, "item_delete.html", gin.H{
		"Title": "Delete Item",
		"Item":  item,
	})
}

// itemDeleteSubmitHandler deletes the item named by the submitted body, not
// the URL parameter, and redirects unconditionally; there is no existence
// check before the delete.
func (h *InventoryHandler) itemDeleteSubmitHandler(c *gin.Context) {
	const op = "transport.itemDeleteSubmitHandler"

	id, err := uuid.Parse(c.PostForm("itemid"))
	if err != nil {
		h.log.Ctx(c.Request.Context()).LogAttrs(
			c.Request.Context(), logger.WarnLevel, "invalid itemid in delete submission",
			logger.String("op", op),
		)
		c.Redirect(http.StatusSeeOther, "/inventory/items")
		return
	}

	if err := h.items.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.Redirect(http.StatusSeeOther, "/inventory/items")
}

func (h *InventoryHandler) itemUpdateFormHandler(c *gin.Context) {
	const op = "transport.itemUpdateFormHandler"

	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	item, categories, err := h.items.GetForUpdate(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	form := itemFormOf(item)
	c.HTML(http.StatusOK, "item_form.html", gin.H{
		"Title":      "Update Item",
		"Form":       form,
		"Categories": categoryOptions(categories, form),
		"Action":     item.URL() + "/update",
	})
}

func (h *InventoryHandler) itemUpdateSubmitHandler(c *gin.Context) {
	const op = "transport.itemUpdateSubmitHandler"

	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	form := h.parseItemForm(c)

	if len(form.Errors) > 0 {
		action := (&entity.Item{ID: id}).URL() + "/update"
		h.rerenderItemForm(c, op, form, "Update Item", action)
		return
	}

	item := form.toItem(id)

	if err := h.items.Update(c.Request.Context(), item); err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.Redirect(http.StatusSeeOther, item.URL())
}

// rerenderItemForm re-fetches the category list, marks the candidate's
// categories as checked and redisplays the form with the full error list.
// Nothing has been persisted; the response is still a 200.
func (h *InventoryHandler) rerenderItemForm(
	c *gin.Context,
	op string,
	form *itemForm,
	title, action string,
) {
	categories, err := h.items.AllCategories(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.HTML(http.StatusOK, "item_form.html", gin.H{
		"Title":      title,
		"Form":       form,
		"Categories": categoryOptions(categories, form),
		"Errors":     form.Errors,
		"Action":     action,
	})
}

func isNotFound(err error) bool {
	return errors.Is(err, entity.ErrDataNotFound)
}
