package repository

import (
	"github.com/sureshnaloor/projprocurement/internal/entity"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(project *entity.Project) error {
	return r.db.Create(project).Error
}

func (r *ProjectRepository) GetByID(id string) (*entity.Project, error) {
	var project entity.Project
	if err := r.db.Where("id = ?", id).First(&project).Error; err != nil {
		return nil, translate(err)
	}
	return &project, nil
}

func (r *ProjectRepository) List() ([]entity.Project, error) {
	var projects []entity.Project
	err := r.db.Order("project_name ASC").Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) Update(project *entity.Project) error {
	return r.db.Save(project).Error
}

func (r *ProjectRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&entity.Project{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchType selects which columns an autocomplete query matches.
const (
	SearchTypeProject = "project"
	SearchTypeWBS     = "wbs"
)

// Search performs a case-insensitive substring match on project name and/or
// WBS code, capped at limit rows.
func (r *ProjectRepository) Search(query, searchType string, limit int) ([]entity.Project, error) {
	kw := "%" + query + "%"
	q := r.db.Model(&entity.Project{})
	switch searchType {
	case SearchTypeProject:
		q = q.Where("project_name ILIKE ?", kw)
	case SearchTypeWBS:
		q = q.Where("project_wbs ILIKE ?", kw)
	default:
		q = q.Where("project_name ILIKE ? OR project_wbs ILIKE ?", kw, kw)
	}
	var projects []entity.Project
	err := q.Order("project_name ASC").Limit(limit).Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&entity.Project{}).Count(&total).Error
	return total, err
}
