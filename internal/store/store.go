package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"manufacturing-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	Contacts() Repository[model.Contact]
	Wires() Repository[model.Wire]
	Processes() Repository[model.Process]
	Recipes() RecipeRepository
	Jobs() Repository[model.Job]
	Setups() Repository[model.Setup]
	Commands() Repository[model.Command]

	// Tx runs fn in a single transaction. fn receives a Store bound to that
	// transaction; returning an error rolls everything back.
	Tx(ctx context.Context, fn func(tx Store) error) error

	// Ping checks the database connection.
	Ping(ctx context.Context) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db  *gorm.DB
	now func() time.Time

	contacts  *repo[model.Contact]
	wires     *repo[model.Wire]
	processes *repo[model.Process]
	recipes   *recipeRepo
	jobs      *repo[model.Job]
	setups    *repo[model.Setup]
	commands  *repo[model.Command]
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB, opts Options) Store {
	return newGormStore(db, opts.clock())
}

func newGormStore(db *gorm.DB, now func() time.Time) *gormStore {
	return &gormStore{
		db:        db,
		now:       now,
		contacts:  newRepo(db, contactResource, now),
		wires:     newRepo(db, wireResource, now),
		processes: newRepo(db, processResource, now),
		recipes:   &recipeRepo{repo: newRepo(db, recipeResource, now)},
		jobs:      newRepo(db, jobResource, now),
		setups:    newRepo(db, setupResource, now),
		commands:  newRepo(db, commandResource, now),
	}
}

func (s *gormStore) Contacts() Repository[model.Contact]  { return s.contacts }
func (s *gormStore) Wires() Repository[model.Wire]        { return s.wires }
func (s *gormStore) Processes() Repository[model.Process] { return s.processes }
func (s *gormStore) Recipes() RecipeRepository            { return s.recipes }
func (s *gormStore) Jobs() Repository[model.Job]          { return s.jobs }
func (s *gormStore) Setups() Repository[model.Setup]      { return s.setups }
func (s *gormStore) Commands() Repository[model.Command]  { return s.commands }

func (s *gormStore) Tx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newGormStore(tx, s.now))
	})
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// RecipeRepository adds the reference delete the integrity guard needs.
type RecipeRepository interface {
	Repository[model.Recipe]

	// DeleteByReference removes the recipes whose ref column equals id and
	// returns how many were removed.
	DeleteByReference(ctx context.Context, ref Reference, id int64) (int64, error)
}

type recipeRepo struct {
	*repo[model.Recipe]
}

func (r *recipeRepo) DeleteByReference(ctx context.Context, ref Reference, id int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where(fmt.Sprintf("%s = ?", ref.Column()), id).
		Delete(&model.Recipe{})
	if result.Error != nil {
		return 0, r.translate(result.Error, "delete")
	}
	return result.RowsAffected, nil
}
