package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sureshnaloor/projprocurement/internal/entity"
	"github.com/sureshnaloor/projprocurement/internal/repository"
	"gorm.io/gorm"
)

// ErrDuplicateWBS marks a project WBS collision so handlers can offer a
// specific remedy instead of a generic failure.
var ErrDuplicateWBS = errors.New("a project with this WBS already exists")

type ProjectService struct {
	projectRepo *repository.ProjectRepository
}

func NewProjectService(pr *repository.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: pr}
}

type ProjectInput struct {
	ProjectName string `json:"project_name" binding:"required"`
	ProjectWBS  string `json:"project_wbs" binding:"required"`
}

func (s *ProjectService) Create(input ProjectInput) (*entity.Project, error) {
	project := &entity.Project{
		ID:   uuid.New().String(),
		Name: input.ProjectName,
		WBS:  input.ProjectWBS,
	}
	if err := s.projectRepo.Create(project); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateWBS
		}
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) Get(id string) (*entity.Project, error) {
	return s.projectRepo.GetByID(id)
}

func (s *ProjectService) List() ([]entity.Project, error) {
	return s.projectRepo.List()
}

func (s *ProjectService) Update(id string, input ProjectInput) (*entity.Project, error) {
	project, err := s.projectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	project.Name = input.ProjectName
	project.WBS = input.ProjectWBS
	if err := s.projectRepo.Update(project); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateWBS
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) Delete(id string) error {
	return s.projectRepo.Delete(id)
}

// Search backs the autocomplete endpoint. Queries shorter than 3 characters
// are rejected to keep request volume down; matching is case-insensitive
// substring on name, WBS, or both.
func (s *ProjectService) Search(query, searchType string) ([]entity.Project, error) {
	if len(query) < 3 {
		return nil, newValidationError("q", "query must be at least 3 characters long")
	}
	return s.projectRepo.Search(query, searchType, 10)
}
