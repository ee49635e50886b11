package service

import (
	"github.com/redis/go-redis/v9"
	"github.com/sureshnaloor/projprocurement/internal/config"
	"github.com/sureshnaloor/projprocurement/internal/repository"
)

// Services bundles all business services.
type Services struct {
	Auth        *AuthService
	Project     *ProjectService
	Budget      *BudgetService
	Requisition *RequisitionService
}

func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config) *Services {
	return &Services{
		Auth:        NewAuthService(repos.User, rdb, cfg),
		Project:     NewProjectService(repos.Project),
		Budget:      NewBudgetService(repos.BudgetedValue, repos.Requisition, repos.Project),
		Requisition: NewRequisitionService(repos.Requisition, repos.BudgetedValue, cfg),
	}
}
