// Package record shapes stored entities into the JSON documents returned by
// the API. Simple entities serialize through their model JSON tags, which
// carry the stored column names; recipes get their parents inlined.
package record

import (
	"manufacturing-backend/internal/device"
	"manufacturing-backend/internal/model"
)

// Recipe is a recipe with its contact, wire and process inlined. A parent
// that could not be loaded is null.
type Recipe struct {
	ID          int64          `json:"id"`
	Description string         `json:"description"`
	ContactID   int64          `json:"contact_id"`
	WireID      int64          `json:"wire_id"`
	ProcessID   int64          `json:"process_id"`
	Contact     *model.Contact `json:"contact"`
	Wire        *model.Wire    `json:"wire"`
	Process     *model.Process `json:"process"`
}

// FromRecipe builds the nested record for r.
func FromRecipe(r *model.Recipe) *Recipe {
	if r == nil {
		return nil
	}
	return &Recipe{
		ID:          r.ID,
		Description: r.Description,
		ContactID:   r.ContactID,
		WireID:      r.WireID,
		ProcessID:   r.ProcessID,
		Contact:     r.Contact,
		Wire:        r.Wire,
		Process:     r.Process,
	}
}

// FromRecipes builds nested records for a list, never returning nil.
func FromRecipes(rs []model.Recipe) []*Recipe {
	out := make([]*Recipe, 0, len(rs))
	for i := range rs {
		out = append(out, FromRecipe(&rs[i]))
	}
	return out
}

// DeviceCommand is the response to an executed device command.
type DeviceCommand struct {
	Status          string         `json:"status"`
	ExecutedCommand *model.Command `json:"executed_command"`
	RecipeDetail    *Recipe        `json:"recipe_detail,omitempty"`
}

// FromDeviceResult builds the response for an executed command.
func FromDeviceResult(res *device.Result) *DeviceCommand {
	return &DeviceCommand{
		Status:          "ok",
		ExecutedCommand: res.Command,
		RecipeDetail:    FromRecipe(res.Recipe),
	}
}

// Message is the body returned by a successful delete.
type Message struct {
	Message string `json:"message"`
}

// Deleted returns the delete confirmation for an entity name.
func Deleted(entity string) Message {
	return Message{Message: entity + " deleted successfully"}
}
