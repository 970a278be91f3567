package repository

import (
	"go-pos-sync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByID(id uuid.UUID) (*model.User, error)
	FindByUserName(username string) (*model.User, error)
	FindAll() ([]model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, "id = ? AND is_deleted = ?", id, false).Error
	return &user, err
}

func (r *userRepo) FindByUserName(username string) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, "username = ? AND is_deleted = ?", username, false).Error
	return &user, err
}

func (r *userRepo) FindAll() ([]model.User, error) {
	var users []model.User
	err := r.db.Where("is_deleted = ?", false).Find(&users).Error
	return users, err
}
