package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sureshnaloor/projprocurement/internal/entity"
	"github.com/sureshnaloor/projprocurement/internal/repository"
	"github.com/xuri/excelize/v2"
)

type BudgetService struct {
	budgetRepo      *repository.BudgetedValueRepository
	requisitionRepo *repository.RequisitionRepository
	projectRepo     *repository.ProjectRepository
}

func NewBudgetService(br *repository.BudgetedValueRepository, rr *repository.RequisitionRepository, pr *repository.ProjectRepository) *BudgetService {
	return &BudgetService{budgetRepo: br, requisitionRepo: rr, projectRepo: pr}
}

type BudgetedValueInput struct {
	ProjectName                string  `json:"project_name" binding:"required"`
	ProjectWBS                 string  `json:"project_wbs" binding:"required"`
	MaterialServiceWBS         string  `json:"material_service_wbs" binding:"required"`
	MaterialServiceDescription string  `json:"material_service_description"`
	Quantity                   float64 `json:"quantity"`
	UnitOfMeasure              string  `json:"unit_of_measure"`
	BudgetedValue              float64 `json:"budgeted_value"`
	Remarks                    string  `json:"remarks"`
}

func (in *BudgetedValueInput) validate() error {
	if in.Quantity < 0 {
		return newValidationError("quantity", "quantity must not be negative")
	}
	if in.BudgetedValue < 0 {
		return newValidationError("budgeted_value", "budgeted value must not be negative")
	}
	return nil
}

func (s *BudgetService) Create(input BudgetedValueInput) (*entity.BudgetedValue, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	bv := &entity.BudgetedValue{
		ID:                         uuid.New().String(),
		ProjectName:                input.ProjectName,
		ProjectWBS:                 input.ProjectWBS,
		MaterialServiceWBS:         input.MaterialServiceWBS,
		MaterialServiceDescription: input.MaterialServiceDescription,
		Quantity:                   input.Quantity,
		UnitOfMeasure:              input.UnitOfMeasure,
		BudgetedValue:              input.BudgetedValue,
		Remarks:                    input.Remarks,
	}
	if err := s.budgetRepo.Create(bv); err != nil {
		return nil, fmt.Errorf("failed to create budgeted value: %w", err)
	}
	return bv, nil
}

func (s *BudgetService) Get(id string) (*entity.BudgetedValue, error) {
	return s.budgetRepo.GetByID(id)
}

func (s *BudgetService) List() ([]entity.BudgetedValue, error) {
	return s.budgetRepo.List()
}

func (s *BudgetService) Update(id string, input BudgetedValueInput) (*entity.BudgetedValue, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	bv, err := s.budgetRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	bv.ProjectName = input.ProjectName
	bv.ProjectWBS = input.ProjectWBS
	bv.MaterialServiceWBS = input.MaterialServiceWBS
	bv.MaterialServiceDescription = input.MaterialServiceDescription
	bv.Quantity = input.Quantity
	bv.UnitOfMeasure = input.UnitOfMeasure
	bv.BudgetedValue = input.BudgetedValue
	bv.Remarks = input.Remarks

	if err := s.budgetRepo.Update(bv); err != nil {
		return nil, fmt.Errorf("failed to update budgeted value: %w", err)
	}
	return bv, nil
}

// Delete removes the budgeted value without touching requisitions that
// reference it. Orphaned references are the documented behavior.
func (s *BudgetService) Delete(id string) error {
	return s.budgetRepo.Delete(id)
}

// Utilization fetches the linked requisitions and folds them into a
// consumption report. The read is not transactional with requisition
// writes; a concurrent write may yield a momentarily stale snapshot.
func (s *BudgetService) Utilization(id string) (*UtilizationReport, error) {
	bv, err := s.budgetRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	prs, err := s.requisitionRepo.ListByBudgetedValue(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch linked requisitions: %w", err)
	}
	report := ComputeUtilization(bv, prs)
	return &report, nil
}

// DashboardSummary aggregates global counts and totals for the landing page.
type DashboardSummary struct {
	ProjectCount       int64   `json:"project_count"`
	BudgetedValueCount int64   `json:"budgeted_value_count"`
	RequisitionCount   int64   `json:"requisition_count"`
	TotalBudget        float64 `json:"total_budget"`
	TotalPRValue       float64 `json:"total_pr_value"`
	TotalPOValue       float64 `json:"total_po_value"`
	OverBudgetCount    int     `json:"over_budget_count"`
}

func (s *BudgetService) Summary() (*DashboardSummary, error) {
	summary := &DashboardSummary{}

	var err error
	if summary.ProjectCount, err = s.projectRepo.Count(); err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}
	if summary.BudgetedValueCount, err = s.budgetRepo.Count(); err != nil {
		return nil, fmt.Errorf("failed to count budgeted values: %w", err)
	}
	if summary.RequisitionCount, err = s.requisitionRepo.Count(); err != nil {
		return nil, fmt.Errorf("failed to count requisitions: %w", err)
	}
	if summary.TotalBudget, err = s.budgetRepo.SumBudget(); err != nil {
		return nil, fmt.Errorf("failed to sum budgets: %w", err)
	}
	if summary.TotalPRValue, summary.TotalPOValue, err = s.requisitionRepo.Totals(); err != nil {
		return nil, fmt.Errorf("failed to sum requisition values: %w", err)
	}

	bvs, err := s.budgetRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list budgeted values: %w", err)
	}
	for i := range bvs {
		prs, err := s.requisitionRepo.ListByBudgetedValue(bvs[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch linked requisitions: %w", err)
		}
		report := ComputeUtilization(&bvs[i], prs)
		if !report.UtilizationUndefined && report.BudgetUtilizationPct > 100 {
			summary.OverBudgetCount++
		}
	}
	return summary, nil
}

var budgetExportHeaders = []string{
	"Project Name", "Project WBS", "Material/Service WBS", "Description",
	"Quantity", "UoM", "Budgeted Value (SAR)", "Total PR Value (SAR)",
	"Total PO Value (SAR)", "Budget Utilization %", "PO Utilization %",
	"Remaining Budget (SAR)",
}

// Export renders all budgeted values with their utilization figures into an
// Excel workbook.
func (s *BudgetService) Export() (*excelize.File, string, error) {
	bvs, err := s.budgetRepo.List()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list budgeted values: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Budgeted Values"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range budgetExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx := range bvs {
		bv := &bvs[rowIdx]
		prs, err := s.requisitionRepo.ListByBudgetedValue(bv.ID)
		if err != nil {
			return nil, "", fmt.Errorf("failed to fetch linked requisitions: %w", err)
		}
		report := ComputeUtilization(bv, prs)

		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), bv.ProjectName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), bv.ProjectWBS)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), bv.MaterialServiceWBS)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), bv.MaterialServiceDescription)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), bv.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), bv.UnitOfMeasure)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), bv.BudgetedValue)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), report.TotalPRValue)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), report.TotalPOValue)
		if report.UtilizationUndefined {
			f.SetCellValue(sheet, fmt.Sprintf("J%d", row), "N/A")
			f.SetCellValue(sheet, fmt.Sprintf("K%d", row), "N/A")
		} else {
			f.SetCellValue(sheet, fmt.Sprintf("J%d", row), report.BudgetUtilizationPct)
			f.SetCellValue(sheet, fmt.Sprintf("K%d", row), report.POUtilizationPct)
		}
		f.SetCellValue(sheet, fmt.Sprintf("L%d", row), report.RemainingBudget)
	}

	filename := "budgeted-values.xlsx"
	return f, filename, nil
}
