package entity

import (
	"time"
)

// Project is a tracked project identified by its WBS code.
// The WBS code is globally unique; a collision surfaces as a duplicate-key
// error (gorm.ErrDuplicatedKey), not a generic failure.
type Project struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name      string    `json:"project_name" gorm:"column:project_name;size:128;not null"`
	WBS       string    `json:"project_wbs" gorm:"column:project_wbs;size:64;not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}
