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
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	_categoriesCollection = "categories"

	_pgUniqueViolation = "23505"
)

type CategoryRepository struct {
	db      *postgres.Postgres
	metrics metric.Store
}

func NewCategoryRepository(db *postgres.Postgres, metrics metric.Store) *CategoryRepository {
	return &CategoryRepository{db: db, metrics: metrics}
}

// CreateOrGet inserts a category and returns its id, or, when a category with
// the same name already exists under case-insensitive comparison, returns the
// existing id. The unique index on lower(name) makes the insert an atomic
// conditional one; created reports which branch was taken.
func (cr *CategoryRepository) CreateOrGet(
	ctx context.Context,
	name string,
) (_ uuid.UUID, created bool, err error) {
	const op = "repository.category.CreateOrGet"
	defer observe(cr.metrics, _categoriesCollection, "create", time.Now(), &err)

	id := uuid.New()

	query := cr.db.Builder.Insert("categories").
		Columns("category_id", "name").
		Values(id, name)

	sql, args, err := query.ToSql()
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("%s: building query: %w", op, err)
	}

	_, err = cr.db.Pool.Exec(ctx, sql, args...)
	if err == nil {
		return id, true, nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != _pgUniqueViolation {
		return uuid.Nil, false, fmt.Errorf("%s: exec: %w", op, err)
	}

	existingID, err := cr.getIDByName(ctx, op, name)
	if err != nil {
		return uuid.Nil, false, err
	}

	return existingID, false, nil
}

func (cr *CategoryRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (_ *entity.Category, err error) {
	const op = "repository.category.GetByID"
	defer observe(cr.metrics, _categoriesCollection, "get", time.Now(), &err)

	query := cr.db.Builder.
		Select("category_id", "name").
		From("categories").
		Where(squirrel.Eq{"category_id": id}).
		Limit(1)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	result := &entity.Category{}
	err = cr.db.Pool.QueryRow(ctx, sql, args...).Scan(&result.ID, &result.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrDataNotFound
		}
		return nil, fmt.Errorf("%s: query row: %w", op, err)
	}

	return result, nil
}

// GetByIDs resolves a set of category references to full records, sorted by
// name. References to absent categories are silently dropped; the store does
// not enforce referential integrity.
func (cr *CategoryRepository) GetByIDs(
	ctx context.Context,
	ids []uuid.UUID,
) (_ []*entity.Category, err error) {
	const op = "repository.category.GetByIDs"

	if len(ids) == 0 {
		return []*entity.Category{}, nil
	}

	defer observe(cr.metrics, _categoriesCollection, "list", time.Now(), &err)

	query := cr.db.Builder.
		Select("category_id", "name").
		From("categories").
		Where(squirrel.Eq{"category_id": ids}).
		OrderBy("name ASC")

	return cr.queryCategories(ctx, op, query)
}

func (cr *CategoryRepository) GetAll(ctx context.Context) (_ []*entity.Category, err error) {
	const op = "repository.category.GetAll"
	defer observe(cr.metrics, _categoriesCollection, "list", time.Now(), &err)

	query := cr.db.Builder.
		Select("category_id", "name").
		From("categories").
		OrderBy("name ASC")

	return cr.queryCategories(ctx, op, query)
}

func (cr *CategoryRepository) Update(ctx context.Context, category *entity.Category) (err error) {
	const op = "repository.category.Update"
	defer observe(cr.metrics, _categoriesCollection, "update", time.Now(), &err)

	query := cr.db.Builder.Update("categories").
		Set("name", category.Name).
		Where(squirrel.Eq{"category_id": category.ID})

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("%s: building query: %w", op, err)
	}

	commandTag, err := cr.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == _pgUniqueViolation {
			return entity.ErrConflictingData
		}
		return fmt.Errorf("%s: exec: %w", op, err)
	}
	if commandTag.RowsAffected() == 0 {
		return entity.ErrDataNotFound
	}

	return nil
}

// Delete removes the category if present; deleting an absent id is a no-op.
func (cr *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) (err error) {
	const op = "repository.category.Delete"
	defer observe(cr.metrics, _categoriesCollection, "delete", time.Now(), &err)

	query := cr.db.Builder.Delete("categories").
		Where(squirrel.Eq{"category_id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("%s: building query: %w", op, err)
	}

	if _, err = cr.db.Pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("%s: exec: %w", op, err)
	}

	return nil
}

func (cr *CategoryRepository) Count(ctx context.Context) (_ int64, err error) {
	const op = "repository.category.Count"
	defer observe(cr.metrics, _categoriesCollection, "count", time.Now(), &err)

	query := cr.db.Builder.Select("COUNT(*)").From("categories")

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: building query: %w", op, err)
	}

	var count int64
	if err = cr.db.Pool.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: query row: %w", op, err)
	}

	return count, nil
}

func (cr *CategoryRepository) getIDByName(
	ctx context.Context,
	op string,
	name string,
) (uuid.UUID, error) {
	query := cr.db.Builder.
		Select("category_id").
		From("categories").
		Where("lower(name) = lower(?)", name).
		Limit(1)

	sql, args, err := query.ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	var id uuid.UUID
	err = cr.db.Pool.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, entity.ErrDataNotFound
		}
		return uuid.Nil, fmt.Errorf("%s: query row: %w", op, err)
	}

	return id, nil
}

func (cr *CategoryRepository) queryCategories(
	ctx context.Context,
	op string,
	query squirrel.SelectBuilder,
) ([]*entity.Category, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	rows, err := cr.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	result := make([]*entity.Category, 0)
	for rows.Next() {
		category := &entity.Category{}
		if err = rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, fmt.Errorf("%s: rows scan: %w", op, err)
		}
		result = append(result, category)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows final error: %w", op, rows.Err())
	}

	return result, nil
}
