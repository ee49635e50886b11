package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// Repositories bundles all data access objects.
type Repositories struct {
	User          *UserRepository
	Project       *ProjectRepository
	BudgetedValue *BudgetedValueRepository
	Requisition   *RequisitionRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:          NewUserRepository(db),
		Project:       NewProjectRepository(db),
		BudgetedValue: NewBudgetedValueRepository(db),
		Requisition:   NewRequisitionRepository(db),
	}
}

// translate maps gorm's not-found sentinel onto the repository error.
// Duplicate-key errors pass through as gorm.ErrDuplicatedKey (TranslateError
// is enabled on the connection).
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
