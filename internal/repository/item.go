package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Demonism0/inventory-application/internal/entity"
	"github.com/Demonism0/inventory-application/pkg/metric"
	"github.com/Demonism0/inventory-application/pkg/storage/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const _itemsCollection = "items"

type ItemRepository struct {
	db      *postgres.Postgres
	metrics metric.Store
}

func NewItemRepository(db *postgres.Postgres, metrics metric.Store) *ItemRepository {
	return &ItemRepository{db: db, metrics: metrics}
}

// Create persists the item and returns the store-assigned id.
func (ir *ItemRepository) Create(ctx context.Context, item *entity.Item) (_ uuid.UUID, err error) {
	const op = "repository.item.Create"
	defer observe(ir.metrics, _itemsCollection, "create", time.Now(), &err)

	id := uuid.New()

	query := ir.db.Builder.Insert("items").
		Columns("item_id", "name", "description", "price", "stock", "category_ids").
		Values(id, item.Name, item.Description, item.Price, item.Stock, item.CategoryIDs)

	sql, args, err := query.ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	if _, err = ir.db.Pool.Exec(ctx, sql, args...); err != nil {
		return uuid.Nil, fmt.Errorf("%s: exec: %w", op, err)
	}

	return id, nil
}

func (ir *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (_ *entity.Item, err error) {
	const op = "repository.item.GetByID"
	defer observe(ir.metrics, _itemsCollection, "get", time.Now(), &err)

	query := ir.db.Builder.
		Select("item_id", "name", "description", "price", "stock", "category_ids").
		From("items").
		Where(squirrel.Eq{"item_id": id}).
		Limit(1)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	result := &entity.Item{}
	err = ir.db.Pool.QueryRow(ctx, sql, args...).Scan(
		&result.ID,
		&result.Name,
		&result.Description,
		&result.Price,
		&result.Stock,
		&result.CategoryIDs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrDataNotFound
		}
		return nil, fmt.Errorf("%s: query row: %w", op, err)
	}

	return result, nil
}

// GetAllSummaries returns the name+description projection of every item,
// sorted by name, for the list view.
func (ir *ItemRepository) GetAllSummaries(ctx context.Context) (_ []*entity.ItemSummary, err error) {
	const op = "repository.item.GetAllSummaries"
	defer observe(ir.metrics, _itemsCollection, "list", time.Now(), &err)

	query := ir.db.Builder.
		Select("item_id", "name", "description").
		From("items").
		OrderBy("name ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	rows, err := ir.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	result := make([]*entity.ItemSummary, 0)
	for rows.Next() {
		summary := &entity.ItemSummary{}
		if err = rows.Scan(&summary.ID, &summary.Name, &summary.Description); err != nil {
			return nil, fmt.Errorf("%s: rows scan: %w", op, err)
		}
		result = append(result, summary)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows final error: %w", op, rows.Err())
	}

	return result, nil
}

// GetAll returns every item with its full category reference set, sorted by
// name. The category list view aggregates over this in memory.
func (ir *ItemRepository) GetAll(ctx context.Context) (_ []*entity.Item, err error) {
	const op = "repository.item.GetAll"
	defer observe(ir.metrics, _itemsCollection, "list", time.Now(), &err)

	query := ir.db.Builder.
		Select("item_id", "name", "description", "price", "stock", "category_ids").
		From("items").
		OrderBy("name ASC")

	return ir.queryItems(ctx, op, query)
}

// GetByCategoryID returns every item whose reference set contains the given
// category, sorted by name.
func (ir *ItemRepository) GetByCategoryID(
	ctx context.Context,
	categoryID uuid.UUID,
) (_ []*entity.Item, err error) {
	const op = "repository.item.GetByCategoryID"
	defer observe(ir.metrics, _itemsCollection, "list", time.Now(), &err)

	query := ir.db.Builder.
		Select("item_id", "name", "description", "price", "stock", "category_ids").
		From("items").
		Where("? = ANY(category_ids)", categoryID).
		OrderBy("name ASC")

	return ir.queryItems(ctx, op, query)
}

// Update replaces every mutable field of the item identified by item.ID.
func (ir *ItemRepository) Update(ctx context.Context, item *entity.Item) (err error) {
	const op = "repository.item.Update"
	defer observe(ir.metrics, _itemsCollection, "update", time.Now(), &err)

	query := ir.db.Builder.Update("items").
		Set("name", item.Name).
		Set("description", item.Description).
		Set("price", item.Price).
		Set("stock", item.Stock).
		Set("category_ids", item.CategoryIDs).
		Where(squirrel.Eq{"item_id": item.ID})

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("%s: building query: %w", op, err)
	}

	commandTag, err := ir.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("%s: exec: %w", op, err)
	}
	if commandTag.RowsAffected() == 0 {
		return entity.ErrDataNotFound
	}

	return nil
}

// Delete removes the item if present; deleting an absent id is a no-op.
func (ir *ItemRepository) Delete(ctx context.Context, id uuid.UUID) (err error) {
	const op = "repository.item.Delete"
	defer observe(ir.metrics, _itemsCollection, "delete", time.Now(), &err)

	query := ir.db.Builder.Delete("items").
		Where(squirrel.Eq{"item_id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("%s: building query: %w", op, err)
	}

	if _, err = ir.db.Pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("%s: exec: %w", op, err)
	}

	return nil
}

func (ir *ItemRepository) Count(ctx context.Context) (_ int64, err error) {
	const op = "repository.item.Count"
	defer observe(ir.metrics, _itemsCollection, "count", time.Now(), &err)

	query := ir.db.Builder.Select("COUNT(*)").From("items")

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: building query: %w", op, err)
	}

	var count int64
	if err = ir.db.Pool.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: query row: %w", op, err)
	}

	return count, nil
}

func (ir *ItemRepository) queryItems(
	ctx context.Context,
	op string,
	query squirrel.SelectBuilder,
) ([]*entity.Item, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	rows, err := ir.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	result := make([]*entity.Item, 0)
	for rows.Next() {
		item := &entity.Item{}
		err = rows.Scan(
			&item.ID,
			&item.Name,
			&item.Description,
			&item.Price,
			&item.Stock,
			&item.CategoryIDs,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: rows scan: %w", op, err)
		}
		result = append(result, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows final error: %w", op, rows.Err())
	}

	return result, nil
}
