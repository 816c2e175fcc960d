package repository

import (
	"github.com/cristianbbs/kolder-backend/entity"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

// GetByIDs batch-fetches products; callers compare lengths to detect unknown ids.
func (r *ProductRepository) GetByIDs(ids []uint) ([]entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []entity.Product
	err := r.DB.Where("id IN ?", ids).Find(&out).Error
	return out, err
}

func (r *ProductRepository) Exists(id uint) (bool, error) {
	var cnt int64
	if err := r.DB.Model(&entity.Product{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// ListCategories returns every category with all of its products, both sorted
// by name/title. Allow-list filtering happens in the services.
func (r *ProductRepository) ListCategories() ([]entity.Category, error) {
	var cats []entity.Category
	err := r.DB.Preload("Products", func(db *gorm.DB) *gorm.DB {
		return db.Order("products.title ASC")
	}).Order("categories.name ASC").Find(&cats).Error
	return cats, err
}
