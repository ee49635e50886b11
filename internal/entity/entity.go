package entity

import "gorm.io/gorm"

// AutoMigrate creates or updates all application tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Project{},
		&BudgetedValue{},
		&PurchaseRequisition{},
		&CommunicationEntry{},
	)
}
