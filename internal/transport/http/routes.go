package httpt

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The whole application lives under /inventory so that every canonical
// resource URL (/inventory/item/{id}, /inventory/category/{id}) is a real
// route. gin matches literal segments (/item/create) before parameterized
// ones (/item/:id), so "create" is never parsed as an id.
func (h *InventoryHandler) setupRoutes() {
	h.router.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	h.router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/inventory")
	})

	inventory := h.router.Group("/inventory")
	{
		inventory.GET("", h.indexHandler)

		inventory.GET("/items", h.itemListHandler)
		inventory.GET("/item/create", h.itemCreateFormHandler)
		inventory.POST("/item/create", h.itemCreateSubmitHandler)
		inventory.GET("/item/:id", h.itemDetailHandler)
		inventory.GET("/item/:id/delete", h.itemDeleteFormHandler)
		inventory.POST("/item/:id/delete", h.itemDeleteSubmitHandler)
		inventory.GET("/item/:id/update", h.itemUpdateFormHandler)
		inventory.POST("/item/:id/update", h.itemUpdateSubmitHandler)

		inventory.GET("/categories", h.categoryListHandler)
		inventory.GET("/category/create", h.categoryCreateFormHandler)
		inventory.POST("/category/create", h.categoryCreateSubmitHandler)
		inventory.GET("/category/:id", h.categoryDetailHandler)
		inventory.GET("/category/:id/delete", h.categoryDeleteFormHandler)
		inventory.POST("/category/:id/delete", h.categoryDeleteSubmitHandler)
		inventory.GET("/category/:id/update", h.categoryUpdateFormHandler)
		inventory.POST("/category/:id/update", h.categoryUpdateSubmitHandler)
	}
}
