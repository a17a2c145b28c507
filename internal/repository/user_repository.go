package repository

import (
	"github.com/shiftflow/shiftflow-api/internal/database"
	"github.com/shiftflow/shiftflow-api/internal/models"
	"github.com/shiftflow/shiftflow-api/internal/utils"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Save persists changes to an existing user
func (r *GormUserRepository) Save(user *models.User) error {
	return r.db.Save(user).Error
}

// ListActiveEmployees lists active employees with positions preloaded
func (r *GormUserRepository) ListActiveEmployees(params utils.PaginationParams) ([]models.User, int64, error) {
	base := r.db.Model(&models.User{}).
		Where("role = ? AND is_active = ?", models.RoleEmployee, true)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := base.
		Preload("Position").
		Order("last_name, first_name, username").
		Scopes(database.Paginate(params)).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
