package model

// Recipe combines one contact, one wire and one process.
type Recipe struct {
	ID          int64  `gorm:"column:id;primaryKey" json:"id"`
	Description string `gorm:"column:description;size:250;not null" json:"description"`
	ContactID   int64  `gorm:"column:contact_id;not null;index" json:"contact_id"`
	WireID      int64  `gorm:"column:wire_id;not null;index" json:"wire_id"`
	ProcessID   int64  `gorm:"column:process_id;not null;index" json:"process_id"`

	// Associations
	Contact *Contact `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Wire    *Wire    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Process *Process `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Recipe) TableName() string { return "recipe" }
