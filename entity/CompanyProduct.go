package entity

// CompanyProduct is one allow-list row: its presence means the product is
// orderable by the company. Uniqueness on (companyId, productId).
type CompanyProduct struct {
	CompanyID uint `gorm:"primaryKey" json:"companyId"`
	ProductID uint `gorm:"primaryKey" json:"productId"`

	Company Company `json:"-"`
	Product Product `json:"-"`
}
