package entity

import (
	"time"
)

// User is an application account.
type User struct {
	ID                   string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name                 string     `json:"name" gorm:"size:128;not null"`
	Email                string     `json:"email" gorm:"size:128;not null;uniqueIndex"`
	PasswordHash         string     `json:"-" gorm:"size:128;not null"`
	ResetPasswordToken   string     `json:"-" gorm:"size:64;index"`
	ResetPasswordExpires *time.Time `json:"-"`
	IsActive             bool       `json:"is_active" gorm:"not null;default:true"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
