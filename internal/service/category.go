package service

import (
	"context"
	"fmt"

	"github.com/Demonism0/inventory-application/internal/entity"
	"github.com/Demonism0/inventory-application/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// CategoryCount pairs a category with the number of items referencing it.
type CategoryCount struct {
	Category  *entity.Category
	ItemCount int
}

type CategoryService struct {
	categoryRepo CategoryRepository
	itemRepo     ItemRepository
	logger       logger.Logger
}

func NewCategoryService(
	categoryRepo CategoryRepository,
	itemRepo ItemRepository,
	logger logger.Logger,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
		logger:       logger,
	}
}

// ListWithCounts loads all categories and all items concurrently and computes
// the per-category item count as a single grouping pass over the two loaded
// collections, avoiding a query per category.
func (cs *CategoryService) ListWithCounts(
	ctx context.Context,
) ([]*CategoryCount, []*entity.Item, error) {
	const op = "service.category.ListWithCounts"

	var (
		categories []*entity.Category
		items      []*entity.Item
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		categories, err = cs.categoryRepo.GetAll(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		items, err = cs.itemRepo.GetAll(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	countByID := make(map[uuid.UUID]int, len(categories))
	for _, item := range items {
		for _, categoryID := range item.CategoryIDs {
			countByID[categoryID]++
		}
	}

	counts := make([]*CategoryCount, 0, len(categories))
	for _, category := range categories {
		counts = append(counts, &CategoryCount{
			Category:  category,
			ItemCount: countByID[category.ID],
		})
	}

	return counts, items, nil
}

// Get fetches the category and the items referencing it concurrently.
// Returns entity.ErrDataNotFound when the category is absent.
func (cs *CategoryService) Get(
	ctx context.Context,
	id uuid.UUID,
) (*entity.Category, []*entity.Item, error) {
	const op = "service.category.Get"

	var (
		category *entity.Category
		items    []*entity.Item
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		category, err = cs.categoryRepo.GetByID(egCtx, id)
		return err
	})
	eg.Go(func() error {
		var err error
		items, err = cs.itemRepo.GetByCategoryID(egCtx, id)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return category, items, nil
}

func (cs *CategoryService) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*entity.Category, error) {
	const op = "service.category.GetByID"

	category, err := cs.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: get category: %w", op, err)
	}
	return category, nil
}

// CreateOrGet creates a category, or returns the id of the existing category
// with the same case-insensitive name. The merge is atomic: the store's
// unique index decides, not a read-then-write in the application.
func (cs *CategoryService) CreateOrGet(
	ctx context.Context,
	name string,
) (uuid.UUID, bool, error) {
	const op = "service.category.CreateOrGet"
	log := cs.logger.Ctx(ctx)

	id, created, err := cs.categoryRepo.CreateOrGet(ctx, name)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("%s: create or get category: %w", op, err)
	}

	if created {
		log.LogAttrs(ctx, logger.InfoLevel, "category created",
			logger.String("category_id", id.String()),
			logger.String("name", name),
		)
	} else {
		log.LogAttrs(ctx, logger.InfoLevel, "category merged into existing",
			logger.String("category_id", id.String()),
			logger.String("name", name),
		)
	}

	return id, created, nil
}

// Update renames the category in place. A name collision with another
// category surfaces as entity.ErrConflictingData; update does not merge.
func (cs *CategoryService) Update(ctx context.Context, category *entity.Category) error {
	const op = "service.category.Update"
	log := cs.logger.Ctx(ctx)

	if err := cs.categoryRepo.Update(ctx, category); err != nil {
		return fmt.Errorf("%s: update category: %w", op, err)
	}

	log.LogAttrs(ctx, logger.InfoLevel, "category updated",
		logger.String("category_id", category.ID.String()),
	)

	return nil
}

// Delete removes the category unless items still reference it, in which case
// it returns entity.ErrCategoryInUse and leaves the category untouched.
// Deleting an id that no longer exists is a no-op.
func (cs *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "service.category.Delete"
	log := cs.logger.Ctx(ctx)

	items, err := cs.itemRepo.GetByCategoryID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: check references: %w", op, err)
	}
	if len(items) > 0 {
		log.LogAttrs(ctx, logger.InfoLevel, "category delete blocked",
			logger.String("category_id", id.String()),
			logger.Int("referencing_items", len(items)),
		)
		return fmt.Errorf("%s: %w", op, entity.ErrCategoryInUse)
	}

	if err = cs.categoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: delete category: %w", op, err)
	}

	log.LogAttrs(ctx, logger.InfoLevel, "category deleted",
		logger.String("category_id", id.String()),
	)

	return nil
}

func (cs *CategoryService) Count(ctx context.Context) (int64, error) {
	const op = "service.category.Count"

	count, err := cs.categoryRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: count categories: %w", op, err)
	}
	return count, nil
}
