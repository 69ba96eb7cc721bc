package store

import (
	"time"

	"manufacturing-backend/internal/model"
)

// Resource describes how one entity type is decoded, ordered and named.
type Resource[T any] struct {
	// Singular and Plural are used in caller-facing messages.
	Singular string
	Plural   string
	// OrderBy is the column list operations sort by; id breaks ties.
	OrderBy string
	// Required fields must be present on create.
	Required []string
	// Fields is the allow-list of updatable fields. Unknown keys are ignored.
	Fields map[string]Setter[T]
	// Defaults is applied before the supplied fields on create.
	Defaults func(entity *T, now time.Time)
	// Preload lists associations loaded with every read.
	Preload []string
}

// isoMicro matches the ISO-8601 form the legacy system wrote for created_at.
const isoMicro = "2006-01-02T15:04:05.000000-07:00"

var contactResource = &Resource[model.Contact]{
	Singular: "Contact",
	Plural:   "contacts",
	OrderBy:  "Name",
	Required: []string{"Description", "Diameter", "Insertdepth", "Name", "ZF_ContNumb"},
	Fields: map[string]Setter[model.Contact]{
		"Description": textField("Description", func(c *model.Contact) *string { return &c.Description }),
		"Diameter":    textField("Diameter", func(c *model.Contact) *string { return &c.Diameter }),
		"Insertdepth": textField("Insertdepth", func(c *model.Contact) *string { return &c.InsertDepth }),
		"Name":        textField("Name", func(c *model.Contact) *string { return &c.Name }),
		"ZF_ContNumb": textField("ZF_ContNumb", func(c *model.Contact) *string { return &c.ZFContNumb }),
	},
}

var wireResource = &Resource[model.Wire]{
	Singular: "Wire",
	Plural:   "wires",
	OrderBy:  "name",
	Required: []string{"name", "description", "cross_section", "isolation_diameter", "wire_diameter", "color"},
	Fields: map[string]Setter[model.Wire]{
		"name":               textField("name", func(w *model.Wire) *string { return &w.Name }),
		"description":        textField("description", func(w *model.Wire) *string { return &w.Description }),
		"cross_section":      textField("cross_section", func(w *model.Wire) *string { return &w.CrossSection }),
		"isolation_diameter": textField("isolation_diameter", func(w *model.Wire) *string { return &w.IsolationDiameter }),
		"wire_diameter":      textField("wire_diameter", func(w *model.Wire) *string { return &w.WireDiameter }),
		"color":              textField("color", func(w *model.Wire) *string { return &w.Color }),
	},
}

var processResource = &Resource[model.Process]{
	Singular: "Process",
	Plural:   "processes",
	OrderBy:  "name",
	Required: []string{
		"name", "crimping_depth_d", "crimping_depth_offset_d", "holding_value_delta_d",
		"insertion_depth_delta_d", "sf_performance_d", "sf_frequence_d",
		"extendable_feeder_tuble_s", "loading_holding_jaws_s", "catact_monitoring_s",
		"wayback_d", "stripping_position", "stripping_function", "crimping_position_monitoring",
	},
	Fields: map[string]Setter[model.Process]{
		"name":                         textField("name", func(p *model.Process) *string { return &p.Name }),
		"crimping_depth_d":             textField("crimping_depth_d", func(p *model.Process) *string { return &p.CrimpingDepthD }),
		"crimping_depth_offset_d":      textField("crimping_depth_offset_d", func(p *model.Process) *string { return &p.CrimpingDepthOffsetD }),
		"holding_value_delta_d":        textField("holding_value_delta_d", func(p *model.Process) *string { return &p.HoldingValueDeltaD }),
		"insertion_depth_delta_d":      textField("insertion_depth_delta_d", func(p *model.Process) *string { return &p.InsertionDepthDeltaD }),
		"sf_performance_d":             textField("sf_performance_d", func(p *model.Process) *string { return &p.SFPerformanceD }),
		"sf_frequence_d":               textField("sf_frequence_d", func(p *model.Process) *string { return &p.SFFrequenceD }),
		"extendable_feeder_tuble_s":    textField("extendable_feeder_tuble_s", func(p *model.Process) *string { return &p.ExtendableFeederTubleS }),
		"loading_holding_jaws_s":       textField("loading_holding_jaws_s", func(p *model.Process) *string { return &p.LoadingHoldingJawsS }),
		"catact_monitoring_s":          textField("catact_monitoring_s", func(p *model.Process) *string { return &p.CatactMonitoringS }),
		"wayback_d":                    textField("wayback_d", func(p *model.Process) *string { return &p.WaybackD }),
		"stripping_position":           textField("stripping_position", func(p *model.Process) *string { return &p.StrippingPosition }),
		"stripping_function":           textField("stripping_function", func(p *model.Process) *string { return &p.StrippingFunction }),
		"crimping_position_monitoring": textField("crimping_position_monitoring", func(p *model.Process) *string { return &p.CrimpingPositionMonitoring }),
	},
}

var recipeResource = &Resource[model.Recipe]{
	Singular: "Recipe",
	Plural:   "recipes",
	OrderBy:  "description",
	Required: []string{"description", "contact_id", "wire_id", "process_id"},
	Fields: map[string]Setter[model.Recipe]{
		"description": textField("description", func(r *model.Recipe) *string { return &r.Description }),
		"contact_id": detach(idField("contact_id", func(r *model.Recipe) *int64 { return &r.ContactID }),
			func(r *model.Recipe) { r.Contact = nil }),
		"wire_id": detach(idField("wire_id", func(r *model.Recipe) *int64 { return &r.WireID }),
			func(r *model.Recipe) { r.Wire = nil }),
		"process_id": detach(idField("process_id", func(r *model.Recipe) *int64 { return &r.ProcessID }),
			func(r *model.Recipe) { r.Process = nil }),
	},
	Preload: []string{"Contact", "Wire", "Process"},
}

var jobResource = &Resource[model.Job]{
	Singular: "Job",
	Plural:   "jobs",
	OrderBy:  "id",
	Required: []string{"name"},
	Fields: map[string]Setter[model.Job]{
		"name":       textField("name", func(j *model.Job) *string { return &j.Name }),
		"status":     textField("status", func(j *model.Job) *string { return &j.Status }),
		"created_at": textField("created_at", func(j *model.Job) *string { return &j.CreatedAt }),
	},
	Defaults: func(j *model.Job, now time.Time) {
		j.Status = model.JobStatusPending
		j.CreatedAt = now.Format(isoMicro)
	},
}

var setupResource = &Resource[model.Setup]{
	Singular: "Setup",
	Plural:   "setups",
	OrderBy:  "id",
	Required: []string{"name", "description"},
	Fields: map[string]Setter[model.Setup]{
		"name":        textField("name", func(s *model.Setup) *string { return &s.Name }),
		"description": textField("description", func(s *model.Setup) *string { return &s.Description }),
		"status":      textField("status", func(s *model.Setup) *string { return &s.Status }),
	},
	Defaults: func(s *model.Setup, _ time.Time) {
		s.Status = model.SetupStatusActive
	},
}

var commandResource = &Resource[model.Command]{
	Singular: "Command",
	Plural:   "commands",
	OrderBy:  "id",
	Required: []string{"name", "description"},
	Fields: map[string]Setter[model.Command]{
		"name":        textField("name", func(c *model.Command) *string { return &c.Name }),
		"description": textField("description", func(c *model.Command) *string { return &c.Description }),
		"status":      textField("status", func(c *model.Command) *string { return &c.Status }),
	},
	Defaults: func(c *model.Command, _ time.Time) {
		c.Status = model.CommandStatusPending
	},
}

// detach drops a loaded association once its foreign key is reassigned.
func detach[T any](set Setter[T], clear func(*T)) Setter[T] {
	return func(entity *T, value any) error {
		if err := set(entity, value); err != nil {
			return err
		}
		clear(entity)
		return nil
	}
}
