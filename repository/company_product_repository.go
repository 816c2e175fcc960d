package repository

import (
	"errors"

	"github.com/cristianbbs/kolder-backend/entity"

	"gorm.io/gorm"
)

// CompanyProductRepository manages the per-company allow-list rows.
type CompanyProductRepository struct {
	DB *gorm.DB
}

func NewCompanyProductRepository(db *gorm.DB) *CompanyProductRepository {
	return &CompanyProductRepository{DB: db}
}

func (r *CompanyProductRepository) ListProductIDs(companyID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&entity.CompanyProduct{}).
		Where("company_id = ?", companyID).
		Order("product_id ASC").
		Pluck("product_id", &ids).Error
	return ids, err
}

func (r *CompanyProductRepository) InsertTx(tx *gorm.DB, companyID uint, productIDs []uint) error {
	if len(productIDs) == 0 {
		return nil
	}
	rows := make([]entity.CompanyProduct, 0, len(productIDs))
	for _, pid := range productIDs {
		rows = append(rows, entity.CompanyProduct{CompanyID: companyID, ProductID: pid})
	}
	return tx.Create(&rows).Error
}

func (r *CompanyProductRepository) DeleteTx(tx *gorm.DB, companyID uint, productIDs []uint) error {
	if len(productIDs) == 0 {
		return nil
	}
	return tx.Where("company_id = ? AND product_id IN ?", companyID, productIDs).
		Delete(&entity.CompanyProduct{}).Error
}

// Enable is an idempotent single-entry insert.
func (r *CompanyProductRepository) Enable(companyID, productID uint) error {
	err := r.DB.Create(&entity.CompanyProduct{CompanyID: companyID, ProductID: productID}).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	if err != nil {
		// drivers without ErrDuplicatedKey translation: treat an existing row as success
		var cnt int64
		countErr := r.DB.Model(&entity.CompanyProduct{}).
			Where("company_id = ? AND product_id = ?", companyID, productID).
			Count(&cnt).Error
		if countErr == nil && cnt > 0 {
			return nil
		}
	}
	return err
}

// Disable is an idempotent single-entry delete.
func (r *CompanyProductRepository) Disable(companyID, productID uint) error {
	return r.DB.Where("company_id = ? AND product_id = ?", companyID, productID).
		Delete(&entity.CompanyProduct{}).Error
}
