package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sureshnaloor/projprocurement/internal/config"
	"github.com/sureshnaloor/projprocurement/internal/entity"
	"github.com/sureshnaloor/projprocurement/internal/repository"
)

type RequisitionService struct {
	requisitionRepo *repository.RequisitionRepository
	budgetRepo      *repository.BudgetedValueRepository
	cfg             *config.Config
}

func NewRequisitionService(rr *repository.RequisitionRepository, br *repository.BudgetedValueRepository, cfg *config.Config) *RequisitionService {
	return &RequisitionService{requisitionRepo: rr, budgetRepo: br, cfg: cfg}
}

type RequisitionInput struct {
	BudgetedValueID            *string  `json:"budgeted_value_id"`
	ProjectName                string   `json:"project_name" binding:"required"`
	ProjectWBS                 string   `json:"project_wbs" binding:"required"`
	MaterialServiceWBS         string   `json:"material_service_wbs" binding:"required"`
	MaterialServiceDescription string   `json:"material_service_description"`
	Budget                     float64  `json:"budget"`
	PRNumber                   string   `json:"pr_number" binding:"required"`
	LineItemNumber             string   `json:"line_item_number"`
	PRDate                     string   `json:"pr_date"` // YYYY-MM-DD
	PRValue                    float64  `json:"pr_value"`
	Quantity                   float64  `json:"quantity"`
	UnitOfMeasure              string   `json:"unit_of_measure"`
	PONumber                   *string  `json:"po_number"`
	PODate                     string   `json:"po_date"` // YYYY-MM-DD
	POValue                    *float64 `json:"po_value"`
	POCreated                  bool     `json:"po_created"`
	POCompleted                bool     `json:"po_completed"`
	Remarks                    string   `json:"remarks"`
}

func (in *RequisitionInput) toEntity() (*entity.PurchaseRequisition, error) {
	pr := &entity.PurchaseRequisition{
		BudgetedValueID:            in.BudgetedValueID,
		ProjectName:                in.ProjectName,
		ProjectWBS:                 in.ProjectWBS,
		MaterialServiceWBS:         in.MaterialServiceWBS,
		MaterialServiceDescription: in.MaterialServiceDescription,
		Budget:                     in.Budget,
		PRNumber:                   in.PRNumber,
		LineItemNumber:             in.LineItemNumber,
		PRValue:                    in.PRValue,
		Quantity:                   in.Quantity,
		UnitOfMeasure:              in.UnitOfMeasure,
		PONumber:                   in.PONumber,
		POValue:                    in.POValue,
		POCreated:                  in.POCreated,
		POCompleted:                in.POCompleted,
		Remarks:                    in.Remarks,
	}
	if in.PRDate != "" {
		t, err := time.Parse("2006-01-02", in.PRDate)
		if err != nil {
			return nil, newValidationError("pr_date", "invalid date, expected YYYY-MM-DD")
		}
		pr.PRDate = &t
	}
	if in.PODate != "" {
		t, err := time.Parse("2006-01-02", in.PODate)
		if err != nil {
			return nil, newValidationError("po_date", "invalid date, expected YYYY-MM-DD")
		}
		pr.PODate = &t
	}
	return pr, nil
}

// copyBudgetCeiling snapshots the referenced budgeted value's ceiling onto
// the requisition when the caller did not supply one. The reference stays
// weak: a dangling budgeted_value_id is not an error, the ceiling just
// stays as given.
func (s *RequisitionService) copyBudgetCeiling(pr *entity.PurchaseRequisition) error {
	if pr.BudgetedValueID == nil || pr.Budget != 0 {
		return nil
	}
	bv, err := s.budgetRepo.GetByID(*pr.BudgetedValueID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to fetch budgeted value: %w", err)
	}
	pr.Budget = bv.BudgetedValue
	return nil
}

// Create validates and normalizes the candidate requisition, then persists
// it. Validation completes before any write is issued.
func (s *RequisitionService) Create(input RequisitionInput) (*entity.PurchaseRequisition, error) {
	pr, err := input.toEntity()
	if err != nil {
		return nil, err
	}
	pr.ID = uuid.New().String()

	if err := s.copyBudgetCeiling(pr); err != nil {
		return nil, err
	}
	if err := NormalizeRequisition(pr, s.cfg.Procurement.StrictPOMatch); err != nil {
		return nil, err
	}

	if err := s.requisitionRepo.Create(pr); err != nil {
		return nil, fmt.Errorf("failed to create purchase requisition: %w", err)
	}
	return pr, nil
}

// Update replaces the stored requisition with the normalized candidate,
// keeping identity, communication log and creation timestamp.
func (s *RequisitionService) Update(id string, input RequisitionInput) (*entity.PurchaseRequisition, error) {
	existing, err := s.requisitionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	pr, err := input.toEntity()
	if err != nil {
		return nil, err
	}
	pr.ID = existing.ID
	pr.CreatedAt = existing.CreatedAt

	if err := s.copyBudgetCeiling(pr); err != nil {
		return nil, err
	}
	if err := NormalizeRequisition(pr, s.cfg.Procurement.StrictPOMatch); err != nil {
		return nil, err
	}

	if err := s.requisitionRepo.Update(pr); err != nil {
		return nil, fmt.Errorf("failed to update purchase requisition: %w", err)
	}
	return s.requisitionRepo.GetByID(id)
}

func (s *RequisitionService) Get(id string) (*entity.PurchaseRequisition, error) {
	return s.requisitionRepo.GetByID(id)
}

func (s *RequisitionService) List(params repository.ListParams) ([]entity.PurchaseRequisition, int64, error) {
	return s.requisitionRepo.List(params)
}

func (s *RequisitionService) Delete(id string) error {
	return s.requisitionRepo.Delete(id)
}

// AddCommunication appends a log entry to the requisition. The log is
// append-only; entries are never edited or removed.
func (s *RequisitionService) AddCommunication(id, user, message string) (*entity.PurchaseRequisition, error) {
	if user == "" {
		return nil, newValidationError("user", "user is required")
	}
	if message == "" {
		return nil, newValidationError("log", "log message is required")
	}

	if _, err := s.requisitionRepo.GetByID(id); err != nil {
		return nil, err
	}

	e := &entity.CommunicationEntry{
		ID:            uuid.New().String(),
		RequisitionID: id,
		User:          user,
		Timestamp:     time.Now(),
		Log:           message,
	}
	if err := s.requisitionRepo.AppendCommunication(e); err != nil {
		return nil, fmt.Errorf("failed to append communication entry: %w", err)
	}
	return s.requisitionRepo.GetByID(id)
}
