// Package seed loads demonstration fixtures from YAML into the store.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"manufacturing-backend/internal/integrity"
	"manufacturing-backend/internal/model"
	"manufacturing-backend/internal/pkg/logger"
	"manufacturing-backend/internal/store"
)

// Fixtures is the YAML document accepted by Load. Entity maps use the same
// field names as the REST API; recipes name their parents instead of
// referencing ids.
type Fixtures struct {
	Contacts  []store.Fields `yaml:"contacts"`
	Wires     []store.Fields `yaml:"wires"`
	Processes []store.Fields `yaml:"processes"`
	Recipes   []Recipe       `yaml:"recipes"`
	Jobs      []store.Fields `yaml:"jobs"`
	Setups    []store.Fields `yaml:"setups"`
	Commands  []store.Fields `yaml:"commands"`
}

// Recipe is a recipe fixture.
type Recipe struct {
	Description string `yaml:"description"`
	Contact     string `yaml:"contact"`
	Wire        string `yaml:"wire"`
	Process     string `yaml:"process"`
}

// Report counts the rows written by Load.
type Report struct {
	Removed   int64
	Contacts  int
	Wires     int
	Processes int
	Recipes   int
	Jobs      int
	Setups    int
	Commands  int
}

// Parse decodes fixtures from r.
func Parse(r io.Reader) (*Fixtures, error) {
	var fx Fixtures
	if err := yaml.NewDecoder(r).Decode(&fx); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return &fx, nil
}

// ParseFile decodes fixtures from the file at path.
func ParseFile(path string) (*Fixtures, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fx, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fx, nil
}

// Loader writes fixtures through the store.
type Loader struct {
	store store.Store
	log   *zap.Logger
}

// NewLoader creates a Loader.
func NewLoader(s store.Store, log *zap.Logger) *Loader {
	return &Loader{store: s, log: logger.OrNop(log).Named("seed")}
}

// Load inserts fx in a single transaction. With reset, every table is emptied
// first. Nothing is written when any fixture is rejected.
func (l *Loader) Load(ctx context.Context, fx *Fixtures, reset bool) (*Report, error) {
	var rep Report
	err := l.store.Tx(ctx, func(tx store.Store) error {
		if reset {
			removed, err := resetTables(ctx, tx)
			if err != nil {
				return err
			}
			rep.Removed = removed
		}

		contacts, err := insertAll(ctx, tx.Contacts(), fx.Contacts)
		if err != nil {
			return err
		}
		wires, err := insertAll(ctx, tx.Wires(), fx.Wires)
		if err != nil {
			return err
		}
		processes, err := insertAll(ctx, tx.Processes(), fx.Processes)
		if err != nil {
			return err
		}
		refs := references{
			contacts:  index(contacts, func(c *model.Contact) (string, int64) { return c.Name, c.ID }),
			wires:     index(wires, func(w *model.Wire) (string, int64) { return w.Name, w.ID }),
			processes: index(processes, func(p *model.Process) (string, int64) { return p.Name, p.ID }),
		}

		guard := integrity.NewGuard(tx, l.log)
		for i, r := range fx.Recipes {
			fields, err := refs.resolve(r)
			if err != nil {
				return fmt.Errorf("recipe %d: %w", i, err)
			}
			if _, err := guard.CreateRecipe(ctx, fields); err != nil {
				return fmt.Errorf("recipe %d: %w", i, err)
			}
		}

		if _, err := insertAll(ctx, tx.Jobs(), fx.Jobs); err != nil {
			return err
		}
		if _, err := insertAll(ctx, tx.Setups(), fx.Setups); err != nil {
			return err
		}
		_, err = insertAll(ctx, tx.Commands(), fx.Commands)
		return err
	})
	if err != nil {
		return nil, err
	}

	rep.Contacts = len(fx.Contacts)
	rep.Wires = len(fx.Wires)
	rep.Processes = len(fx.Processes)
	rep.Recipes = len(fx.Recipes)
	rep.Jobs = len(fx.Jobs)
	rep.Setups = len(fx.Setups)
	rep.Commands = len(fx.Commands)

	l.log.Info("Fixtures loaded",
		zap.Bool("reset", reset),
		zap.Int64("removed", rep.Removed),
		zap.Int("contacts", rep.Contacts),
		zap.Int("wires", rep.Wires),
		zap.Int("processes", rep.Processes),
		zap.Int("recipes", rep.Recipes),
	)
	return &rep, nil
}

// resetTables empties every table, recipes first.
func resetTables(ctx context.Context, tx store.Store) (int64, error) {
	steps := []func(context.Context) (int64, error){
		tx.Recipes().DeleteAll,
		tx.Contacts().DeleteAll,
		tx.Wires().DeleteAll,
		tx.Processes().DeleteAll,
		tx.Jobs().DeleteAll,
		tx.Setups().DeleteAll,
		tx.Commands().DeleteAll,
	}
	var total int64
	for _, step := range steps {
		n, err := step(ctx)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// insertAll creates every item in order.
func insertAll[T any](ctx context.Context, repo store.Repository[T], items []store.Fields) ([]*T, error) {
	created := make([]*T, 0, len(items))
	for i, fields := range items {
		if fields == nil {
			fields = store.Fields{}
		}
		entity, err := repo.Create(ctx, fields)
		if err != nil {
			return nil, fmt.Errorf("%s %d: %w", strings.ToLower(repo.Name()), i, err)
		}
		created = append(created, entity)
	}
	return created, nil
}

func index[T any](items []*T, key func(*T) (string, int64)) map[string]int64 {
	ids := make(map[string]int64, len(items))
	for _, item := range items {
		name, id := key(item)
		ids[name] = id
	}
	return ids
}

// references maps parent names to the ids they were inserted with.
type references struct {
	contacts, wires, processes map[string]int64
}

func (refs references) resolve(r Recipe) (store.Fields, error) {
	contactID, ok := refs.contacts[r.Contact]
	if !ok {
		return nil, fmt.Errorf("unknown contact %q", r.Contact)
	}
	wireID, ok := refs.wires[r.Wire]
	if !ok {
		return nil, fmt.Errorf("unknown wire %q", r.Wire)
	}
	processID, ok := refs.processes[r.Process]
	if !ok {
		return nil, fmt.Errorf("unknown process %q", r.Process)
	}
	return store.Fields{
		"description": r.Description,
		"contact_id":  contactID,
		"wire_id":     wireID,
		"process_id":  processID,
	}, nil
}
