package repository

import (
	"strings"
	"time"

	"github.com/sureshnaloor/projprocurement/internal/entity"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *entity.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	var user entity.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	var user entity.User
	err := r.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetByResetToken matches the hashed reset token and requires it to be
// unexpired at now.
func (r *UserRepository) GetByResetToken(hashedToken string, now time.Time) (*entity.User, error) {
	var user entity.User
	err := r.db.Where("reset_password_token = ? AND reset_password_expires > ?", hashedToken, now).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepository) Update(user *entity.User) error {
	return r.db.Save(user).Error
}
