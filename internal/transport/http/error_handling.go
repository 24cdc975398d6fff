package httpt

import (
	"errors"
	"net/http"

	"github.com/Demonism0/inventory-application/internal/entity"
	"github.com/Demonism0/inventory-application/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *InventoryHandler) handleServiceError(c *gin.Context, err error, op string) {
	log := h.log.Ctx(c.Request.Context())

	switch {
	case errors.Is(err, entity.ErrDataNotFound):
		log.LogAttrs(c.Request.Context(), logger.WarnLevel, "resource not found",
			logger.String("op", op),
			logger.String("path", c.Request.URL.Path),
			logger.String("client_ip", c.ClientIP()),
		)
		h.renderErrorPage(c, http.StatusNotFound, "The requested resource was not found.")
	case errors.Is(err, entity.ErrConflictingData):
		log.LogAttrs(c.Request.Context(), logger.WarnLevel, "conflicting data",
			logger.String("op", op),
			logger.String("path", c.Request.URL.Path),
		)
		h.renderErrorPage(c, http.StatusConflict, "A category with that name already exists.")
	default:
		log.LogAttrs(c.Request.Context(), logger.ErrorLevel, op+" failed",
			logger.Any("error", err),
			logger.String("path", c.Request.URL.Path),
			logger.String("client_ip", c.ClientIP()),
		)
		h.renderErrorPage(c, http.StatusInternalServerError, "Internal server error.")
	}
}

func (h *InventoryHandler) renderErrorPage(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", gin.H{
		"Title":   "Error",
		"Status":  status,
		"Message": message,
	})
}

// parseIDParam extracts the :id route parameter. A value that is not a valid
// id cannot match any stored document, so it is reported as not found rather
// than as a bad request.
func (h *InventoryHandler) parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Param("id")

	id, err := uuid.Parse(raw)
	if err != nil {
		h.log.Ctx(c.Request.Context()).LogAttrs(
			c.Request.Context(), logger.WarnLevel, "invalid id format",
			logger.String("value", raw),
			logger.String("path", c.Request.URL.Path),
		)
		h.renderErrorPage(c, http.StatusNotFound, "The requested resource was not found.")
		return uuid.Nil, false
	}

	return id, true
}
