// Package integrity keeps recipes consistent with the contacts, wires and
// processes they reference. Every recipe write and every parent delete goes
// through the Guard, and each runs as a single store transaction.
package integrity

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"manufacturing-backend/internal/model"
	apperrors "manufacturing-backend/internal/pkg/errors"
	"manufacturing-backend/internal/pkg/logger"
	"manufacturing-backend/internal/store"
)

// references lists the recipe parents in the order they are checked.
var references = []store.Reference{store.RefContact, store.RefWire, store.RefProcess}

// Guard mediates recipe creation and the deletion of recipe parents.
type Guard struct {
	store store.Store
	log   *zap.Logger
}

// NewGuard creates a Guard over s.
func NewGuard(s store.Store, log *zap.Logger) *Guard {
	return &Guard{store: s, log: logger.OrNop(log).Named("integrity")}
}

// CreateRecipe inserts a recipe after checking that its contact, wire and
// process exist. The returned recipe has its parents loaded.
func (g *Guard) CreateRecipe(ctx context.Context, fields store.Fields) (*model.Recipe, error) {
	var created *model.Recipe
	err := g.store.Tx(ctx, func(tx store.Store) error {
		recipe, err := tx.Recipes().Decode(fields)
		if err != nil {
			return err
		}
		if err := checkReferences(ctx, tx, recipe); err != nil {
			return err
		}
		if err := tx.Recipes().Insert(ctx, recipe); err != nil {
			return err
		}
		created, err = tx.Recipes().Get(ctx, recipe.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	g.log.Debug("recipe created", zap.Int64("recipe_id", created.ID))
	return created, nil
}

// UpdateRecipe applies fields to an existing recipe. References are checked
// again when any of them is part of the update.
func (g *Guard) UpdateRecipe(ctx context.Context, id int64, fields store.Fields) (*model.Recipe, error) {
	var updated *model.Recipe
	err := g.store.Tx(ctx, func(tx store.Store) error {
		recipe, err := tx.Recipes().Get(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.Recipes().Apply(recipe, fields); err != nil {
			return err
		}
		if touchesReference(fields) {
			if err := checkReferences(ctx, tx, recipe); err != nil {
				return err
			}
		}
		if err := tx.Recipes().Save(ctx, recipe); err != nil {
			return err
		}
		updated, err = tx.Recipes().Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteRecipe removes one recipe. Its parents are untouched.
func (g *Guard) DeleteRecipe(ctx context.Context, id int64) error {
	return g.store.Recipes().Delete(ctx, id)
}

// DeleteContact removes a contact and every recipe that uses it.
func (g *Guard) DeleteContact(ctx context.Context, id int64) error {
	_, err := g.DeleteDependency(ctx, store.RefContact, id)
	return err
}

// DeleteWire removes a wire and every recipe that uses it.
func (g *Guard) DeleteWire(ctx context.Context, id int64) error {
	_, err := g.DeleteDependency(ctx, store.RefWire, id)
	return err
}

// DeleteProcess removes a process and every recipe that uses it.
func (g *Guard) DeleteProcess(ctx context.Context, id int64) error {
	_, err := g.DeleteDependency(ctx, store.RefProcess, id)
	return err
}

// DeleteDependency deletes the recipes referencing the given parent and then
// the parent itself, all or nothing. It returns the number of recipes removed.
func (g *Guard) DeleteDependency(ctx context.Context, ref store.Reference, id int64) (int64, error) {
	var removed int64
	err := g.store.Tx(ctx, func(tx store.Store) error {
		parent, err := parentOf(tx, ref)
		if err != nil {
			return err
		}
		exists, err := parent.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.NotFound("%s not found", parent.Name())
		}

		removed, err = tx.Recipes().DeleteByReference(ctx, ref, id)
		if err != nil {
			return err
		}
		return parent.Delete(ctx, id)
	})
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		g.log.Info("cascade delete",
			zap.String("parent", string(ref)),
			zap.Int64("parent_id", id),
			zap.Int64("recipes_removed", removed))
	}
	return removed, nil
}

// parent is the slice of a repository the cascade needs.
type parent interface {
	Name() string
	Exists(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

func parentOf(s store.Store, ref store.Reference) (parent, error) {
	switch ref {
	case store.RefContact:
		return s.Contacts(), nil
	case store.RefWire:
		return s.Wires(), nil
	case store.RefProcess:
		return s.Processes(), nil
	default:
		return nil, fmt.Errorf("unknown recipe reference %q", ref)
	}
}

func checkReferences(ctx context.Context, s store.Store, r *model.Recipe) error {
	ids := map[store.Reference]int64{
		store.RefContact: r.ContactID,
		store.RefWire:    r.WireID,
		store.RefProcess: r.ProcessID,
	}
	for _, ref := range references {
		p, err := parentOf(s, ref)
		if err != nil {
			return err
		}
		exists, err := p.Exists(ctx, ids[ref])
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.Reference("Referenced %s not found", ref)
		}
	}
	return nil
}

func touchesReference(fields store.Fields) bool {
	for _, ref := range references {
		if fields.Has(ref.Column()) {
			return true
		}
	}
	return false
}
