package repository

import (
	"github.com/sureshnaloor/projprocurement/internal/entity"
	"gorm.io/gorm"
)

type BudgetedValueRepository struct {
	db *gorm.DB
}

func NewBudgetedValueRepository(db *gorm.DB) *BudgetedValueRepository {
	return &BudgetedValueRepository{db: db}
}

func (r *BudgetedValueRepository) Create(bv *entity.BudgetedValue) error {
	return r.db.Create(bv).Error
}

func (r *BudgetedValueRepository) GetByID(id string) (*entity.BudgetedValue, error) {
	var bv entity.BudgetedValue
	if err := r.db.Where("id = ?", id).First(&bv).Error; err != nil {
		return nil, translate(err)
	}
	return &bv, nil
}

func (r *BudgetedValueRepository) List() ([]entity.BudgetedValue, error) {
	var bvs []entity.BudgetedValue
	err := r.db.Order("created_at DESC").Find(&bvs).Error
	return bvs, err
}

func (r *BudgetedValueRepository) Update(bv *entity.BudgetedValue) error {
	return r.db.Save(bv).Error
}

// Delete removes a budgeted value unconditionally. Referencing purchase
// requisitions are left untouched; their budgeted_value_id becomes dangling.
func (r *BudgetedValueRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&entity.BudgetedValue{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BudgetedValueRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&entity.BudgetedValue{}).Count(&total).Error
	return total, err
}

func (r *BudgetedValueRepository) SumBudget() (float64, error) {
	var result struct{ Total float64 }
	err := r.db.Model(&entity.BudgetedValue{}).
		Select("COALESCE(SUM(budgeted_value), 0) as total").
		Scan(&result).Error
	return result.Total, err
}
