package store

import (
	"context"
	"maps"
	"slices"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "manufacturing-backend/internal/pkg/errors"
)

// Repository is the CRUD contract shared by every entity kind.
type Repository[T any] interface {
	// Name is the singular entity name used in messages, e.g. "Contact".
	Name() string

	// Create decodes fields, applies defaults and inserts the row.
	Create(ctx context.Context, fields Fields) (*T, error)
	// Get returns the entity with the given id.
	Get(ctx context.Context, id int64) (*T, error)
	// Exists reports whether a row with the given id exists.
	Exists(ctx context.Context, id int64) (bool, error)
	// List returns all entities in their natural order.
	List(ctx context.Context) ([]T, error)
	// Update applies the allowed subset of fields to an existing row.
	Update(ctx context.Context, id int64, fields Fields) (*T, error)
	// Delete removes one row.
	Delete(ctx context.Context, id int64) error
	// DeleteAll removes every row and returns the count.
	DeleteAll(ctx context.Context) (int64, error)

	// Decode builds a new entity from fields without touching the database.
	Decode(fields Fields) (*T, error)
	// Apply copies the allowed subset of fields onto entity.
	Apply(entity *T, fields Fields) error
	// Insert stores a fully built entity and assigns its id.
	Insert(ctx context.Context, entity *T) error
	// Save writes every column of an existing entity.
	Save(ctx context.Context, entity *T) error
}

type repo[T any] struct {
	db  *gorm.DB
	res *Resource[T]
	now func() time.Time
}

func newRepo[T any](db *gorm.DB, res *Resource[T], now func() time.Time) *repo[T] {
	return &repo[T]{db: db, res: res, now: now}
}

func (r *repo[T]) Name() string { return r.res.Singular }

// query starts a statement with the resource's associations preloaded.
func (r *repo[T]) query(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	for _, assoc := range r.res.Preload {
		q = q.Preload(assoc)
	}
	return q
}

func (r *repo[T]) Decode(fields Fields) (*T, error) {
	entity := new(T)
	if r.res.Defaults != nil {
		r.res.Defaults(entity, r.now())
	}
	for _, name := range r.res.Required {
		if v, ok := fields[name]; !ok || v == nil {
			return nil, apperrors.Validation("Missing required field: %s", name)
		}
	}
	if err := r.Apply(entity, fields); err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *repo[T]) Apply(entity *T, fields Fields) error {
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		set, ok := r.res.Fields[name]
		if !ok {
			continue
		}
		if err := set(entity, fields[name]); err != nil {
			return err
		}
	}
	return nil
}

func (r *repo[T]) Insert(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error; err != nil {
		return r.translate(err, "create")
	}
	return nil
}

func (r *repo[T]) Save(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(entity).Error; err != nil {
		return r.translate(err, "update")
	}
	return nil
}

func (r *repo[T]) Create(ctx context.Context, fields Fields) (*T, error) {
	entity, err := r.Decode(fields)
	if err != nil {
		return nil, err
	}
	if err := r.Insert(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *repo[T]) Get(ctx context.Context, id int64) (*T, error) {
	entity := new(T)
	if err := r.query(ctx).First(entity, id).Error; err != nil {
		return nil, r.translate(err, "load")
	}
	return entity, nil
}

func (r *repo[T]) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, r.translate(err, "load")
	}
	return count > 0, nil
}

func (r *repo[T]) List(ctx context.Context) ([]T, error) {
	q := r.query(ctx).Order(clause.OrderByColumn{Column: clause.Column{Name: r.res.OrderBy}})
	if r.res.OrderBy != "id" {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}

	items := make([]T, 0)
	if err := q.Find(&items).Error; err != nil {
		return nil, r.translate(err, "list")
	}
	return items, nil
}

func (r *repo[T]) Update(ctx context.Context, id int64, fields Fields) (*T, error) {
	var updated *T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := newRepo(tx, r.res, r.now)
		entity, err := txRepo.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := txRepo.Apply(entity, fields); err != nil {
			return err
		}
		if err := txRepo.Save(ctx, entity); err != nil {
			return err
		}
		updated, err = txRepo.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *repo[T]) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return r.translate(result.Error, "delete")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("%s not found", r.res.Singular)
	}
	return nil
}

func (r *repo[T]) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("1 = 1").Delete(new(T))
	if result.Error != nil {
		return 0, r.translate(result.Error, "delete")
	}
	return result.RowsAffected, nil
}
