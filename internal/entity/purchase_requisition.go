package entity

import (
	"time"
)

// PurchaseRequisition is a spend record against a budgeted value. The
// reference is weak: budgeted_value_id has no FK constraint and may point
// at a deleted budgeted value.
//
// PO fields form an all-or-nothing group: poNumber, poDate and poValue are
// either all unset or all set. POCreated is derived from that group at
// write time and is never authoritative on its own.
type PurchaseRequisition struct {
	ID                         string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	BudgetedValueID            *string    `json:"budgeted_value_id" gorm:"type:uuid;index"`
	ProjectName                string     `json:"project_name" gorm:"size:128;not null"`
	ProjectWBS                 string     `json:"project_wbs" gorm:"column:project_wbs;size:64;not null"`
	MaterialServiceWBS         string     `json:"material_service_wbs" gorm:"column:material_service_wbs;size:64;not null"`
	MaterialServiceDescription string     `json:"material_service_description" gorm:"size:256"`
	Budget                     float64    `json:"budget" gorm:"type:decimal(14,2);not null;default:0"` // copied ceiling at PR time
	PRNumber                   string     `json:"pr_number" gorm:"column:pr_number;size:50;not null;index"`
	LineItemNumber             string     `json:"line_item_number" gorm:"size:20"`
	PRDate                     *time.Time `json:"pr_date" gorm:"column:pr_date;type:date"`
	PRValue                    float64    `json:"pr_value" gorm:"column:pr_value;type:decimal(14,2);not null;default:0"`
	Quantity                   float64    `json:"quantity" gorm:"type:decimal(14,4);not null;default:0"`
	UnitOfMeasure              string     `json:"unit_of_measure" gorm:"size:20"`
	PONumber                   *string    `json:"po_number" gorm:"column:po_number;size:50"`
	PODate                     *time.Time `json:"po_date" gorm:"column:po_date;type:date"`
	POValue                    *float64   `json:"po_value" gorm:"column:po_value;type:decimal(14,2)"`
	POCreated                  bool       `json:"po_created" gorm:"column:po_created;not null;default:false"`
	POCompleted                bool       `json:"po_completed" gorm:"column:po_completed;not null;default:false"`
	Remarks                    string     `json:"remarks" gorm:"type:text"`
	CreatedAt                  time.Time  `json:"created_at"`
	UpdatedAt                  time.Time  `json:"updated_at"`

	Communication []CommunicationEntry `json:"communication,omitempty" gorm:"foreignKey:RequisitionID"`
}

func (PurchaseRequisition) TableName() string {
	return "purchase_requisitions"
}

// CommunicationEntry is one append-only log line on a requisition.
// Entries are never edited or removed; display order is most recent first.
type CommunicationEntry struct {
	ID            string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	RequisitionID string    `json:"requisition_id" gorm:"type:uuid;not null;index"`
	User          string    `json:"user" gorm:"size:128;not null"`
	Timestamp     time.Time `json:"timestamp" gorm:"not null"`
	Log           string    `json:"log" gorm:"type:text;not null"`
}

func (CommunicationEntry) TableName() string {
	return "pr_communication_entries"
}
