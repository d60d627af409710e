package model

import "time"

const MachineStatusActive = "Active"

// Machine is a tracked physical asset. The rows are owned by the machine
// registry; this service only reads them.
type Machine struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	MachineType string    `gorm:"type:varchar(100);not null" json:"machine_type"`
	Status      string    `gorm:"type:varchar(50);not null;index" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Machine) TableName() string {
	return "machines"
}

func (m Machine) IsActive() bool {
	return m.Status == MachineStatusActive
}
