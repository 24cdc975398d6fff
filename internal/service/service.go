package service

import (
	"context"

	"github.com/Demonism0/inventory-application/internal/entity"

	"github.com/google/uuid"
)

type (
	ItemRepository interface {
		Create(ctx context.Context, item *entity.Item) (uuid.UUID, error)
		GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)
		GetAllSummaries(ctx context.Context) ([]*entity.ItemSummary, error)
		GetAll(ctx context.Context) ([]*entity.Item, error)
		GetByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]*entity.Item, error)
		Update(ctx context.Context, item *entity.Item) error
		Delete(ctx context.Context, id uuid.UUID) error
		Count(ctx context.Context) (int64, error)
	}

	CategoryRepository interface {
		CreateOrGet(ctx context.Context, name string) (uuid.UUID, bool, error)
		GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
		GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Category, error)
		GetAll(ctx context.Context) ([]*entity.Category, error)
		Update(ctx context.Context, category *entity.Category) error
		Delete(ctx context.Context, id uuid.UUID) error
		Count(ctx context.Context) (int64, error)
	}
)
