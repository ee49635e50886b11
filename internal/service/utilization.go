package service

import (
	"github.com/sureshnaloor/projprocurement/internal/entity"
)

// UtilizationReport is the budget-consumption summary for one budgeted
// value. Percentages above 100 are a legitimate over-budget state, rendered
// distinctly by callers but never rejected here.
type UtilizationReport struct {
	BudgetedValueID      string  `json:"budgeted_value_id"`
	BudgetedValue        float64 `json:"budgeted_value"`
	TotalPRValue         float64 `json:"total_pr_value"`
	TotalPOValue         float64 `json:"total_po_value"`
	BudgetUtilizationPct float64 `json:"budget_utilization_pct"`
	POUtilizationPct     float64 `json:"po_utilization_pct"`
	RemainingBudget      float64 `json:"remaining_budget"`
	// UtilizationUndefined marks a zero budget ceiling, where the
	// percentages are mathematically undefined. They are reported as 0
	// rather than NaN (which JSON cannot carry), with this flag set so a 0%
	// reading is distinguishable from "no ceiling to measure against".
	UtilizationUndefined bool `json:"utilization_undefined"`
	RequisitionCount     int  `json:"requisition_count"`
}

// ComputeUtilization folds a set of purchase requisitions into consumption
// totals for their budgeted value. Pure: no fetching, no side effects;
// requisition order is irrelevant.
func ComputeUtilization(bv *entity.BudgetedValue, prs []entity.PurchaseRequisition) UtilizationReport {
	report := UtilizationReport{
		BudgetedValueID:  bv.ID,
		BudgetedValue:    bv.BudgetedValue,
		RequisitionCount: len(prs),
	}

	for _, pr := range prs {
		report.TotalPRValue += pr.PRValue
		if pr.POValue != nil {
			report.TotalPOValue += *pr.POValue
		}
	}

	report.RemainingBudget = bv.BudgetedValue - report.TotalPRValue

	if bv.BudgetedValue == 0 {
		report.UtilizationUndefined = true
		return report
	}

	report.BudgetUtilizationPct = report.TotalPRValue / bv.BudgetedValue * 100
	report.POUtilizationPct = report.TotalPOValue / bv.BudgetedValue * 100
	return report
}

// NormalizeRequisition enforces the PR/PO consistency rules on a candidate
// requisition before it is persisted, mutating it into its storable form.
//
// Rules, in order:
//  1. poNumber, poDate and poValue are all-or-nothing; a partially filled
//     group fails with an IncompletePOGroup error naming the missing field.
//  2. With a complete PO group (value > 0): by default prValue is forced to
//     equal poValue; in strict mode a differing caller-supplied prValue is
//     rejected with PRValueMismatch instead.
//  3. poCreated is derived: true iff all three PO fields are set and
//     poValue > 0. Any client-supplied value is overridden.
func NormalizeRequisition(pr *entity.PurchaseRequisition, strict bool) error {
	if err := validateRequisitionFields(pr); err != nil {
		return err
	}

	hasNumber := pr.PONumber != nil && *pr.PONumber != ""
	hasDate := pr.PODate != nil
	hasValue := pr.POValue != nil && *pr.POValue > 0
	any := hasNumber || hasDate || hasValue
	all := hasNumber && hasDate && hasValue

	if any && !all {
		var field string
		switch {
		case !hasNumber:
			field = "po_number"
		case !hasDate:
			field = "po_date"
		default:
			field = "po_value"
		}
		return &ValidationError{
			Kind:    KindIncompletePOGroup,
			Field:   field,
			Message: "PO number, PO date and PO value must be provided together",
		}
	}

	if all {
		if strict && pr.PRValue != *pr.POValue {
			return &ValidationError{
				Kind:    KindPRValueMismatch,
				Field:   "pr_value",
				Message: "PR value must equal PO value once the PO is created",
			}
		}
		pr.PRValue = *pr.POValue
	}

	pr.POCreated = all
	return nil
}

func validateRequisitionFields(pr *entity.PurchaseRequisition) error {
	if pr.ProjectName == "" {
		return newValidationError("project_name", "project name is required")
	}
	if pr.ProjectWBS == "" {
		return newValidationError("project_wbs", "project WBS is required")
	}
	if pr.MaterialServiceWBS == "" {
		return newValidationError("material_service_wbs", "material/service WBS is required")
	}
	if pr.PRNumber == "" {
		return newValidationError("pr_number", "PR number is required")
	}
	if pr.PRValue < 0 {
		return newValidationError("pr_value", "PR value must not be negative")
	}
	if pr.Quantity < 0 {
		return newValidationError("quantity", "quantity must not be negative")
	}
	if pr.Budget < 0 {
		return newValidationError("budget", "budget must not be negative")
	}
	if pr.POValue != nil && *pr.POValue < 0 {
		return newValidationError("po_value", "PO value must not be negative")
	}
	return nil
}
