package repository

import (
	"github.com/sureshnaloor/projprocurement/internal/entity"
	"gorm.io/gorm"
)

type RequisitionRepository struct {
	db *gorm.DB
}

func NewRequisitionRepository(db *gorm.DB) *RequisitionRepository {
	return &RequisitionRepository{db: db}
}

func (r *RequisitionRepository) Create(pr *entity.PurchaseRequisition) error {
	return r.db.Create(pr).Error
}

func (r *RequisitionRepository) GetByID(id string) (*entity.PurchaseRequisition, error) {
	var pr entity.PurchaseRequisition
	err := r.db.Preload("Communication", func(db *gorm.DB) *gorm.DB {
		return db.Order("timestamp DESC")
	}).Where("id = ?", id).First(&pr).Error
	if err != nil {
		return nil, translate(err)
	}
	return &pr, nil
}

func (r *RequisitionRepository) Update(pr *entity.PurchaseRequisition) error {
	return r.db.Save(pr).Error
}

func (r *RequisitionRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&entity.PurchaseRequisition{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListParams are the supported list filters. Zero values are ignored.
type ListParams struct {
	ProjectName     string
	PRNumber        string
	BudgetedValueID string
	Page            int
	Limit           int
}

func (r *RequisitionRepository) List(params ListParams) ([]entity.PurchaseRequisition, int64, error) {
	query := r.db.Model(&entity.PurchaseRequisition{})
	if params.ProjectName != "" {
		query = query.Where("project_name ILIKE ?", "%"+params.ProjectName+"%")
	}
	if params.PRNumber != "" {
		query = query.Where("pr_number ILIKE ?", "%"+params.PRNumber+"%")
	}
	if params.BudgetedValueID != "" {
		query = query.Where("budgeted_value_id = ?", params.BudgetedValueID)
	}

	var total int64
	query.Count(&total)

	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Limit <= 0 {
		params.Limit = 10
	}

	var prs []entity.PurchaseRequisition
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Limit).Limit(params.Limit).
		Find(&prs).Error
	return prs, total, err
}

// ListByBudgetedValue returns every requisition referencing the budgeted
// value, unpaginated; the utilization fold needs the full set.
func (r *RequisitionRepository) ListByBudgetedValue(budgetedValueID string) ([]entity.PurchaseRequisition, error) {
	var prs []entity.PurchaseRequisition
	err := r.db.Where("budgeted_value_id = ?", budgetedValueID).Find(&prs).Error
	return prs, err
}

// AppendCommunication inserts a log entry. Entries are append-only; there is
// deliberately no update or delete.
func (r *RequisitionRepository) AppendCommunication(e *entity.CommunicationEntry) error {
	return r.db.Create(e).Error
}

func (r *RequisitionRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&entity.PurchaseRequisition{}).Count(&total).Error
	return total, err
}

// Totals returns the global PR and PO value sums for the dashboard.
func (r *RequisitionRepository) Totals() (totalPR, totalPO float64, err error) {
	var result struct {
		TotalPR float64
		TotalPO float64
	}
	err = r.db.Model(&entity.PurchaseRequisition{}).
		Select("COALESCE(SUM(pr_value), 0) as total_pr, COALESCE(SUM(po_value), 0) as total_po").
		Scan(&result).Error
	return result.TotalPR, result.TotalPO, err
}
