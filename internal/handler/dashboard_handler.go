package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sureshnaloor/projprocurement/internal/service"
)

type DashboardHandler struct {
	budgetSvc *service.BudgetService
}

func NewDashboardHandler(budgetSvc *service.BudgetService) *DashboardHandler {
	return &DashboardHandler{budgetSvc: budgetSvc}
}

// Summary returns the global counts and totals shown on the landing page.
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.budgetSvc.Summary()
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, summary)
}
