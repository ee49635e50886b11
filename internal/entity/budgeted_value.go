package entity

import (
	"time"
)

// BudgetedValue is the approved spending ceiling for one project/material
// pairing. It does not own its purchase requisitions: deleting a budgeted
// value leaves referencing PRs in place with a dangling reference.
type BudgetedValue struct {
	ID                         string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ProjectName                string    `json:"project_name" gorm:"size:128;not null"`
	ProjectWBS                 string    `json:"project_wbs" gorm:"column:project_wbs;size:64;not null;index"`
	MaterialServiceWBS         string    `json:"material_service_wbs" gorm:"column:material_service_wbs;size:64;not null"`
	MaterialServiceDescription string    `json:"material_service_description" gorm:"size:256"`
	Quantity                   float64   `json:"quantity" gorm:"type:decimal(14,4);not null;default:0"`
	UnitOfMeasure              string    `json:"unit_of_measure" gorm:"size:20"`
	BudgetedValue              float64   `json:"budgeted_value" gorm:"type:decimal(14,2);not null;default:0"`
	Remarks                    string    `json:"remarks" gorm:"type:text"`
	CreatedAt                  time.Time `json:"created_at"`
	UpdatedAt                  time.Time `json:"updated_at"`
}

func (BudgetedValue) TableName() string {
	return "budgeted_values"
}
