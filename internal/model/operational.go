package model

// Job is a production job record.
type Job struct {
	ID     int64  `gorm:"column:id;primaryKey" json:"id"`
	Name   string `gorm:"column:name;size:100;not null" json:"name"`
	Status string `gorm:"column:status;size:50" json:"status"`
	// CreatedAt is an ISO-8601 string supplied by the client or set on create.
	CreatedAt string `gorm:"column:created_at;size:100;not null" json:"created_at"`
}

func (Job) TableName() string { return "job" }

// Setup is a machine setup record.
type Setup struct {
	ID          int64  `gorm:"column:id;primaryKey" json:"id"`
	Name        string `gorm:"column:name;size:100;not null" json:"name"`
	Description string `gorm:"column:description;size:250;not null" json:"description"`
	Status      string `gorm:"column:status;size:50" json:"status"`
}

func (Setup) TableName() string { return "setup" }

// Command is either a user-managed command record or an entry appended by the
// device façade.
type Command struct {
	ID          int64  `gorm:"column:id;primaryKey" json:"id"`
	Name        string `gorm:"column:name;size:100;not null" json:"name"`
	Description string `gorm:"column:description;size:250;not null" json:"description"`
	Status      string `gorm:"column:status;size:50" json:"status"`
}

func (Command) TableName() string { return "command" }

// Status values.
const (
	JobStatusPending     = "pending"
	SetupStatusActive    = "active"
	CommandStatusPending = "pending"
	// CommandStatusExecuting is the only state the device façade records.
	CommandStatusExecuting = "executing"
)

// All returns every model in migration order (parents before recipe).
func All() []any {
	return []any{
		&Contact{},
		&Wire{},
		&Process{},
		&Recipe{},
		&Job{},
		&Setup{},
		&Command{},
	}
}
