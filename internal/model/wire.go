package model

// Wire represents a wire type that can be crimped.
type Wire struct {
	ID                int64  `gorm:"column:id;primaryKey" json:"id"`
	Name              string `gorm:"column:name;size:100;uniqueIndex:uq_wire_name;not null" json:"name"`
	Description       string `gorm:"column:description;size:250;not null" json:"description"`
	CrossSection      string `gorm:"column:cross_section;size:100;not null" json:"cross_section"`
	IsolationDiameter string `gorm:"column:isolation_diameter;size:50;not null" json:"isolation_diameter"`
	WireDiameter      string `gorm:"column:wire_diameter;size:50;not null" json:"wire_diameter"`
	Color             string `gorm:"column:color;size:50;not null" json:"color"`
}

func (Wire) TableName() string { return "wire" }
