package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sureshnaloor/projprocurement/internal/repository"
	"github.com/sureshnaloor/projprocurement/internal/service"
)

type RequisitionHandler struct {
	svc *service.RequisitionService
}

func NewRequisitionHandler(svc *service.RequisitionService) *RequisitionHandler {
	return &RequisitionHandler{svc: svc}
}

func (h *RequisitionHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	params := repository.ListParams{
		ProjectName:     c.Query("projectName"),
		PRNumber:        c.Query("prNumber"),
		BudgetedValueID: c.Query("budgetedValueId"),
		Page:            page,
		Limit:           limit,
	}
	prs, total, err := h.svc.List(params)
	if err != nil {
		respondError(c, err)
		return
	}
	totalPages := (total + int64(limit) - 1) / int64(limit)
	ok(c, gin.H{
		"items": prs,
		"pagination": gin.H{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": totalPages,
		},
	})
}

func (h *RequisitionHandler) Create(c *gin.Context) {
	var input service.RequisitionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	pr, err := h.svc.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, pr)
}

func (h *RequisitionHandler) Get(c *gin.Context) {
	pr, err := h.svc.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, pr)
}

func (h *RequisitionHandler) Update(c *gin.Context) {
	var input service.RequisitionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	pr, err := h.svc.Update(c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, pr)
}

func (h *RequisitionHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	ok(c, nil)
}

// AddCommunication appends one log entry to the requisition.
func (h *RequisitionHandler) AddCommunication(c *gin.Context) {
	var req struct {
		User string `json:"user" binding:"required"`
		Log  string `json:"log" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	pr, err := h.svc.AddCommunication(c.Param("id"), req.User, req.Log)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, pr)
}
