package model

import "time"

type ControlFormTemplate struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	MachineType  string    `gorm:"type:varchar(100);not null" json:"machine_type"`
	IsActive     bool      `gorm:"default:true;index" json:"is_active"`
	Period       string    `gorm:"type:varchar(20)" json:"period"`
	PeriodDays   *int      `json:"period_days"`
	DefaultNotes string    `gorm:"type:text" json:"default_notes"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ControlFormTemplate) TableName() string {
	return "control_form_templates"
}
