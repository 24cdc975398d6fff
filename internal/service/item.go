package service

import (
	"context"
	"fmt"

	"github.com/Demonism0/inventory-application/internal/entity"
	"github.com/Demonism0/inventory-application/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type ItemService struct {
	itemRepo     ItemRepository
	categoryRepo CategoryRepository
	logger       logger.Logger
}

func NewItemService(
	itemRepo ItemRepository,
	categoryRepo CategoryRepository,
	logger logger.Logger,
) *ItemService {
	return &ItemService{
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// List returns the name-sorted item summaries for the list view.
func (is *ItemService) List(ctx context.Context) ([]*entity.ItemSummary, error) {
	const op = "service.item.List"

	summaries, err := is.itemRepo.GetAllSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: get all summaries: %w", op, err)
	}
	return summaries, nil
}

// Get returns the item together with its category references resolved to full
// records. Returns entity.ErrDataNotFound when no item matches the id.
func (is *ItemService) Get(
	ctx context.Context,
	id uuid.UUID,
) (*entity.Item, []*entity.Category, error) {
	const op = "service.item.Get"

	item, err := is.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: get item: %w", op, err)
	}

	categories, err := is.categoryRepo.GetByIDs(ctx, item.CategoryIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: resolve categories: %w", op, err)
	}

	return item, categories, nil
}

// GetForUpdate fetches the item and the full category list concurrently for
// the update form. Returns entity.ErrDataNotFound when the item is absent.
func (is *ItemService) GetForUpdate(
	ctx context.Context,
	id uuid.UUID,
) (*entity.Item, []*entity.Category, error) {
	const op = "service.item.GetForUpdate"

	var (
		item       *entity.Item
		categories []*entity.Category
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		item, err = is.itemRepo.GetByID(egCtx, id)
		return err
	})
	eg.Go(func() error {
		var err error
		categories, err = is.categoryRepo.GetAll(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return item, categories, nil
}

// AllCategories returns the name-sorted category list for the create form.
func (is *ItemService) AllCategories(ctx context.Context) ([]*entity.Category, error) {
	const op = "service.item.AllCategories"

	categories, err := is.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: get all categories: %w", op, err)
	}
	return categories, nil
}

// Create persists a validated item and returns the store-assigned id.
func (is *ItemService) Create(ctx context.Context, item *entity.Item) (uuid.UUID, error) {
	const op = "service.item.Create"
	log := is.logger.Ctx(ctx)

	id, err := is.itemRepo.Create(ctx, item)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: create item: %w", op, err)
	}

	log.LogAttrs(ctx, logger.InfoLevel, "item created",
		logger.String("item_id", id.String()),
		logger.String("name", item.Name),
		logger.Int("categories", len(item.CategoryIDs)),
	)

	return id, nil
}

// Update replaces the mutable fields of the item identified by item.ID,
// keeping its identity.
func (is *ItemService) Update(ctx context.Context, item *entity.Item) error {
	const op = "service.item.Update"
	log := is.logger.Ctx(ctx)

	if err := is.itemRepo.Update(ctx, item); err != nil {
		return fmt.Errorf("%s: update item: %w", op, err)
	}

	log.LogAttrs(ctx, logger.InfoLevel, "item updated",
		logger.String("item_id", item.ID.String()),
	)

	return nil
}

// Delete removes the item; deleting an id that no longer exists is a no-op.
func (is *ItemService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "service.item.Delete"
	log := is.logger.Ctx(ctx)

	if err := is.itemRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: delete item: %w", op, err)
	}

	log.LogAttrs(ctx, logger.InfoLevel, "item deleted",
		logger.String("item_id", id.String()),
	)

	return nil
}

func (is *ItemService) Count(ctx context.Context) (int64, error) {
	const op = "service.item.Count"

	count, err := is.itemRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: count items: %w", op, err)
	}
	return count, nil
}
