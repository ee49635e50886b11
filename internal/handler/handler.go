package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sureshnaloor/projprocurement/internal/config"
	"github.com/sureshnaloor/projprocurement/internal/repository"
	"github.com/sureshnaloor/projprocurement/internal/service"
)

// Handlers bundles all HTTP handlers.
type Handlers struct {
	Auth        *AuthHandler
	Project     *ProjectHandler
	Budget      *BudgetedValueHandler
	Requisition *RequisitionHandler
	Dashboard   *DashboardHandler
}

func NewHandlers(services *service.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:        NewAuthHandler(services.Auth, cfg),
		Project:     NewProjectHandler(services.Project),
		Budget:      NewBudgetedValueHandler(services.Budget),
		Requisition: NewRequisitionHandler(services.Requisition),
		Dashboard:   NewDashboardHandler(services.Budget),
	}
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": data})
}

func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"code": 0, "message": "success", "data": data})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": message})
}

// respondError maps service/repository errors onto the response envelope:
// field-level validation 400, not-found 404, duplicate WBS 409, anything
// else a generic 500.
func respondError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    10004,
			"message": ve.Message,
			"field":   ve.Field,
			"kind":    ve.Kind,
		})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": "record not found"})
	case errors.Is(err, service.ErrDuplicateWBS):
		c.JSON(http.StatusConflict, gin.H{"code": 40901, "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"code": 50001, "message": err.Error()})
	}
}
