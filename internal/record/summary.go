package record

import (
	"context"
	"time"

	"manufacturing-backend/internal/store"
)

// sampleSize is how many records of each kind a Summary shows.
const sampleSize = 3

// Summary is the demonstration snapshot of the whole database.
type Summary struct {
	ServerInfo    ServerInfo        `json:"server_info"`
	DatabaseStats map[string]int    `json:"database_stats"`
	SampleData    map[string]any    `json:"sample_data"`
	APIEndpoints  APIEndpoints      `json:"api_endpoints"`
	UsageExamples map[string]string `json:"usage_examples"`
}

type ServerInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

type APIEndpoints struct {
	RestAPIBase        string   `json:"rest_api_base"`
	Documentation      string   `json:"documentation"`
	AvailableResources []string `json:"available_resources"`
	DeviceControl      string   `json:"device_control"`
}

// Resources lists the collection names in display order.
var Resources = []string{"contacts", "wires", "processes", "recipes", "jobs", "setups", "commands"}

// BuildSummary reads every entity kind from s and assembles a Summary.
// basePath is the API prefix, e.g. /api/v1.
func BuildSummary(ctx context.Context, s store.Store, basePath, version string, now time.Time) (*Summary, error) {
	contacts, err := s.Contacts().List(ctx)
	if err != nil {
		return nil, err
	}
	wires, err := s.Wires().List(ctx)
	if err != nil {
		return nil, err
	}
	processes, err := s.Processes().List(ctx)
	if err != nil {
		return nil, err
	}
	recipes, err := s.Recipes().List(ctx)
	if err != nil {
		return nil, err
	}
	jobs, err := s.Jobs().List(ctx)
	if err != nil {
		return nil, err
	}
	setups, err := s.Setups().List(ctx)
	if err != nil {
		return nil, err
	}
	commands, err := s.Commands().List(ctx)
	if err != nil {
		return nil, err
	}

	return &Summary{
		ServerInfo: ServerInfo{
			Name:        "Manufacturing REST API Server",
			Version:     version,
			Description: "Demonstration server for manufacturing data management",
			Timestamp:   now.Format(time.RFC3339Nano),
		},
		DatabaseStats: map[string]int{
			"contacts":  len(contacts),
			"wires":     len(wires),
			"processes": len(processes),
			"recipes":   len(recipes),
			"jobs":      len(jobs),
			"setups":    len(setups),
			"commands":  len(commands),
		},
		SampleData: map[string]any{
			"contacts":  head(contacts),
			"wires":     head(wires),
			"processes": head(processes),
			"recipes":   FromRecipes(head(recipes)),
			"jobs":      head(jobs),
			"setups":    head(setups),
			"commands":  head(commands),
		},
		APIEndpoints: APIEndpoints{
			RestAPIBase:        basePath,
			Documentation:      basePath + "/docs",
			AvailableResources: Resources,
			DeviceControl:      basePath + "/device/commands",
		},
		UsageExamples: map[string]string{
			"get_all_contacts":  "GET " + basePath + "/contacts",
			"get_contact_by_id": "GET " + basePath + "/contacts/1",
			"create_contact":    "POST " + basePath + "/contacts",
			"update_contact":    "PUT " + basePath + "/contacts/1",
			"delete_contact":    "DELETE " + basePath + "/contacts/1",
			"start_recipe":      "POST " + basePath + "/device/commands",
		},
	}, nil
}

func head[T any](items []T) []T {
	if len(items) > sampleSize {
		return items[:sampleSize]
	}
	return items
}
