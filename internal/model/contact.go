package model

// Contact is a crimp contact. Column and JSON names keep the legacy mixed-case schema.
type Contact struct {
	ID          int64  `gorm:"column:id;primaryKey" json:"id"`
	Description string `gorm:"column:Description;size:250;not null" json:"Description"`
	Diameter    string `gorm:"column:Diameter;size:50;not null" json:"Diameter"`
	InsertDepth string `gorm:"column:Insertdepth;size:50;not null" json:"Insertdepth"`
	Name        string `gorm:"column:Name;size:100;uniqueIndex:uq_contact_name;not null" json:"Name"`
	ZFContNumb  string `gorm:"column:ZF_ContNumb;size:50;not null" json:"ZF_ContNumb"`
}

func (Contact) TableName() string { return "contact" }
