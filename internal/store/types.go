package store

import "time"

// Reference names one of the three parents a recipe points at.
type Reference string

const (
	RefContact Reference = "contact"
	RefWire    Reference = "wire"
	RefProcess Reference = "process"
)

// Column returns the recipe foreign key column for r.
func (r Reference) Column() string {
	return string(r) + "_id"
}

// Options configures a Store.
type Options struct {
	// Location is the timezone of generated timestamps. Defaults to UTC.
	Location *time.Location
	// Now overrides the clock, mainly in tests.
	Now func() time.Time
}

func (o Options) clock() func() time.Time {
	loc := o.Location
	if loc == nil {
		loc = time.UTC
	}
	now := o.Now
	if now == nil {
		now = time.Now
	}
	return func() time.Time { return now().In(loc) }
}
