package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sureshnaloor/projprocurement/internal/service"
)

type BudgetedValueHandler struct {
	svc *service.BudgetService
}

func NewBudgetedValueHandler(svc *service.BudgetService) *BudgetedValueHandler {
	return &BudgetedValueHandler{svc: svc}
}

func (h *BudgetedValueHandler) List(c *gin.Context) {
	bvs, err := h.svc.List()
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, bvs)
}

func (h *BudgetedValueHandler) Create(c *gin.Context) {
	var input service.BudgetedValueInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	bv, err := h.svc.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, bv)
}

func (h *BudgetedValueHandler) Get(c *gin.Context) {
	bv, err := h.svc.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, bv)
}

func (h *BudgetedValueHandler) Update(c *gin.Context) {
	var input service.BudgetedValueInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	bv, err := h.svc.Update(c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, bv)
}

func (h *BudgetedValueHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	ok(c, nil)
}

// Utilization returns the consumption report for one budgeted value.
func (h *BudgetedValueHandler) Utilization(c *gin.Context) {
	report, err := h.svc.Utilization(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, report)
}

// Export streams all budgeted values with utilization as an xlsx workbook.
func (h *BudgetedValueHandler) Export(c *gin.Context) {
	f, filename, err := h.svc.Export()
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
}
