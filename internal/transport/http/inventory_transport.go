package httpt

import (
	"context"

	"github.com/Demonism0/inventory-application/internal/config"
	"github.com/Demonism0/inventory-application/internal/entity"
	"github.com/Demonism0/inventory-application/internal/service"
	"github.com/Demonism0/inventory-application/internal/validation"
	"github.com/Demonism0/inventory-application/pkg/logger"
	"github.com/Demonism0/inventory-application/pkg/metric"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type (
	ItemService interface {
		List(ctx context.Context) ([]*entity.ItemSummary, error)
		Get(ctx context.Context, id uuid.UUID) (*entity.Item, []*entity.Category, error)
		GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Item, []*entity.Category, error)
		AllCategories(ctx context.Context) ([]*entity.Category, error)
		Create(ctx context.Context, item *entity.Item) (uuid.UUID, error)
		Update(ctx context.Context, item *entity.Item) error
		Delete(ctx context.Context, id uuid.UUID) error
		Count(ctx context.Context) (int64, error)
	}

	CategoryService interface {
		ListWithCounts(ctx context.Context) ([]*service.CategoryCount, []*entity.Item, error)
		Get(ctx context.Context, id uuid.UUID) (*entity.Category, []*entity.Item, error)
		GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
		CreateOrGet(ctx context.Context, name string) (uuid.UUID, bool, error)
		Update(ctx context.Context, category *entity.Category) error
		Delete(ctx context.Context, id uuid.UUID) error
		Count(ctx context.Context) (int64, error)
	}

	InventoryHandler struct {
		items      ItemService
		categories CategoryService
		validate   *validation.Engine
		log        logger.Logger
		metrics    metric.HTTP
		router     *gin.Engine
	}
)

func NewInventoryHandler(
	items ItemService,
	categories CategoryService,
	validate *validation.Engine,
	cfg *config.HTTP,
	log logger.Logger,
	metrics metric.HTTP,
) *InventoryHandler {
	h := &InventoryHandler{
		items:      items,
		categories: categories,
		validate:   validate,
		log:        log,
		metrics:    metrics,
	}

	router := gin.New()

	router.Use(h.requestIDMiddleware())
	router.Use(h.loggingMiddleware())
	router.Use(gin.Recovery())

	h.router = router

	h.router.LoadHTMLGlob(cfg.TemplatesGlob)
	if cfg.StaticDir != "" {
		h.router.Static("/static", cfg.StaticDir)
	}

	h.setupRoutes()

	return h
}

func (h *InventoryHandler) Engine() *gin.Engine {
	return h.router
}
