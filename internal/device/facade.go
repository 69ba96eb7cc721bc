// Package device simulates machine control. A command is validated against
// the store and recorded as a Command row in the "executing" state; nothing
// is sent to real hardware.
package device

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"manufacturing-backend/internal/model"
	apperrors "manufacturing-backend/internal/pkg/errors"
	"manufacturing-backend/internal/pkg/logger"
	"manufacturing-backend/internal/store"
)

// Supported command names.
const (
	CommandStartRecipe = "start_recipe"
	CommandReset       = "reset"
)

// Request is a device command as posted by a client.
type Request struct {
	Command    string         `json:"command"`
	Parameters map[string]any `json:"parameters"`
}

// Result is the outcome of an executed command.
type Result struct {
	// Command is the appended log entry.
	Command *model.Command
	// Recipe is set for start_recipe, with its parents loaded.
	Recipe *model.Recipe
}

// Facade executes device commands.
type Facade struct {
	store    store.Store
	log      *zap.Logger
	executed *prometheus.CounterVec
}

// NewFacade creates a Facade. The command counter is registered with reg when
// reg is not nil.
func NewFacade(s store.Store, log *zap.Logger, reg prometheus.Registerer) (*Facade, error) {
	f := &Facade{
		store: s,
		log:   logger.OrNop(log).Named("device"),
		executed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "device_commands_total",
				Help: "Total number of device commands, partitioned by command and result",
			},
			[]string{"command", "result"}, // result: executing, rejected, error
		),
	}
	if reg != nil {
		if err := reg.Register(f.executed); err != nil {
			return nil, fmt.Errorf("register device metrics: %w", err)
		}
	}
	return f, nil
}

// Execute dispatches req to the matching command.
func (f *Facade) Execute(ctx context.Context, req Request) (*Result, error) {
	var (
		res *Result
		err error
	)
	switch req.Command {
	case CommandStartRecipe:
		res, err = f.startRecipe(ctx, req.Parameters)
	case CommandReset:
		res, err = f.reset(ctx)
	default:
		err = apperrors.UnsupportedCommand("Unsupported command")
	}

	f.observe(req.Command, err)
	if err != nil {
		return nil, err
	}
	f.log.Info("device command recorded",
		zap.String("command", res.Command.Name),
		zap.Int64("command_id", res.Command.ID))
	return res, nil
}

func (f *Facade) startRecipe(ctx context.Context, params map[string]any) (*Result, error) {
	raw, ok := params["recipe_id"]
	if !ok || raw == nil {
		return nil, apperrors.MissingParameter("Missing 'recipe_id' in parameters")
	}
	recipeID, ok := store.AsID(raw)
	if !ok {
		return nil, apperrors.NotFound("Recipe id %v not found", raw)
	}

	var res Result
	err := f.store.Tx(ctx, func(tx store.Store) error {
		recipe, err := tx.Recipes().Get(ctx, recipeID)
		if err != nil {
			if apperrors.IsKind(err, apperrors.KindNotFound) {
				return apperrors.NotFound("Recipe id %d not found", recipeID)
			}
			return err
		}

		cmd := &model.Command{
			Name:        CommandStartRecipe,
			Description: fmt.Sprintf("Start recipe %d: %s", recipe.ID, recipe.Description),
			Status:      model.CommandStatusExecuting,
		}
		if err := tx.Commands().Insert(ctx, cmd); err != nil {
			return err
		}
		res = Result{Command: cmd, Recipe: recipe}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (f *Facade) reset(ctx context.Context) (*Result, error) {
	cmd := &model.Command{
		Name:        CommandReset,
		Description: "Reset machine",
		Status:      model.CommandStatusExecuting,
	}
	if err := f.store.Commands().Insert(ctx, cmd); err != nil {
		return nil, err
	}
	return &Result{Command: cmd}, nil
}

func (f *Facade) observe(command string, err error) {
	result := model.CommandStatusExecuting
	switch apperrors.KindOf(err) {
	case "":
		if err != nil {
			result = "error"
		}
	case apperrors.KindStore:
		result = "error"
	default:
		result = "rejected"
	}
	if command != CommandStartRecipe && command != CommandReset {
		// Keep label cardinality bounded.
		command = "unsupported"
	}
	f.executed.WithLabelValues(command, result).Inc()
}
