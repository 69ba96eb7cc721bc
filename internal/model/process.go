package model

// Process holds the machine parameters of a crimping process. All values are
// opaque text; the machine side interprets them.
type Process struct {
	ID                         int64  `gorm:"column:id;primaryKey" json:"id"`
	Name                       string `gorm:"column:name;size:100;uniqueIndex:uq_process_name;not null" json:"name"`
	CrimpingDepthD             string `gorm:"column:crimping_depth_d;size:50;not null" json:"crimping_depth_d"`
	CrimpingDepthOffsetD       string `gorm:"column:crimping_depth_offset_d;size:50;not null" json:"crimping_depth_offset_d"`
	HoldingValueDeltaD         string `gorm:"column:holding_value_delta_d;size:50;not null" json:"holding_value_delta_d"`
	InsertionDepthDeltaD       string `gorm:"column:insertion_depth_delta_d;size:50;not null" json:"insertion_depth_delta_d"`
	SFPerformanceD             string `gorm:"column:sf_performance_d;size:50;not null" json:"sf_performance_d"`
	SFFrequenceD               string `gorm:"column:sf_frequence_d;size:50;not null" json:"sf_frequence_d"`
	ExtendableFeederTubleS     string `gorm:"column:extendable_feeder_tuble_s;size:50;not null" json:"extendable_feeder_tuble_s"`
	LoadingHoldingJawsS        string `gorm:"column:loading_holding_jaws_s;size:50;not null" json:"loading_holding_jaws_s"`
	CatactMonitoringS          string `gorm:"column:catact_monitoring_s;size:50;not null" json:"catact_monitoring_s"`
	WaybackD                   string `gorm:"column:wayback_d;size:50;not null" json:"wayback_d"`
	StrippingPosition          string `gorm:"column:stripping_position;size:50;not null" json:"stripping_position"`
	StrippingFunction          string `gorm:"column:stripping_function;size:50;not null" json:"stripping_function"`
	CrimpingPositionMonitoring string `gorm:"column:crimping_position_monitoring;size:50;not null" json:"crimping_position_monitoring"`
}

func (Process) TableName() string { return "process" }
