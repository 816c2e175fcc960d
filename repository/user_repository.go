package repository

import (
	"github.com/cristianbbs/kolder-backend/entity"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(u *entity.User) error {
	return r.DB.Create(u).Error
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByIDWithCompany(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Preload("Company").First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var cnt int64
	err := r.DB.Model(&entity.User{}).Where("email = ?", email).Count(&cnt).Error
	return cnt, err
}

// CountCompanyUsers counts USER-role accounts of a company (the per-company
// seat limit only applies to that role).
func (r *UserRepository) CountCompanyUsers(companyID uint) (int64, error) {
	var cnt int64
	err := r.DB.Model(&entity.User{}).
		Where("company_id = ? AND role = ?", companyID, entity.RoleUser).
		Count(&cnt).Error
	return cnt, err
}

func (r *UserRepository) ListByCompany(companyID uint) ([]entity.User, error) {
	var out []entity.User
	err := r.DB.Where("company_id = ?", companyID).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *UserRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", id).Updates(updates).Error
}

func (r *UserRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.User{}, id).Error
}
