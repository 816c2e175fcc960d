package services

import (
	"log"

	"github.com/cristianbbs/kolder-backend/entity"
	"github.com/cristianbbs/kolder-backend/pkg/apperr"
	"github.com/cristianbbs/kolder-backend/repository"

	"gorm.io/gorm"
)

// AllowListService manages which products each company may order.
type AllowListService struct {
	DB              *gorm.DB
	ProductRepo     *repository.ProductRepository
	CompanyProdRepo *repository.CompanyProductRepository
}

func NewAllowListService(db *gorm.DB, productRepo *repository.ProductRepository, cpRepo *repository.CompanyProductRepository) *AllowListService {
	return &AllowListService{DB: db, ProductRepo: productRepo, CompanyProdRepo: cpRepo}
}

type AllowListProduct struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Detail   string `json:"detail"`
	ImageURL string `json:"imageUrl"`
	Allowed  bool   `json:"allowed"`
}

type AllowListCategory struct {
	ID       uint               `json:"id"`
	Name     string             `json:"name"`
	Products []AllowListProduct `json:"products"`
}

// Overview returns the whole catalog for admin screens, flagging each product
// with its current allow-list state.
func (s *AllowListService) Overview(companyID uint) ([]AllowListCategory, error) {
	allowedIDs, err := s.CompanyProdRepo.ListProductIDs(companyID)
	if err != nil {
		return nil, err
	}
	allowed := make(map[uint]bool, len(allowedIDs))
	for _, id := range allowedIDs {
		allowed[id] = true
	}

	cats, err := s.ProductRepo.ListCategories()
	if err != nil {
		return nil, err
	}

	out := make([]AllowListCategory, 0, len(cats))
	for _, cat := range cats {
		products := make([]AllowListProduct, 0, len(cat.Products))
		for _, prod := range cat.Products {
			products = append(products, AllowListProduct{
				ID:       prod.ID,
				Title:    prod.Title,
				Detail:   prod.Detail,
				ImageURL: prod.ImageURL,
				Allowed:  allowed[prod.ID],
			})
		}
		out = append(out, AllowListCategory{ID: cat.ID, Name: cat.Name, Products: products})
	}
	return out, nil
}

func (s *AllowListService) EnabledProductIDs(companyID uint) ([]uint, error) {
	return s.CompanyProdRepo.ListProductIDs(companyID)
}

type AllowListChange struct {
	Enabled  []uint `json:"enabled"`
	Disabled []uint `json:"disabled"`
}

// Replace applies full-replace semantics: the given set becomes the
// allow-list. Only the diff is touched, atomically, so concurrent catalog
// reads never observe a wiped list mid-replace.
func (s *AllowListService) Replace(p entity.Principal, companyID uint, productIDs []uint) (*AllowListChange, []uint, error) {
	distinct := dedupe(productIDs)

	if err := s.checkProductsExist(distinct); err != nil {
		return nil, nil, err
	}

	current, err := s.CompanyProdRepo.ListProductIDs(companyID)
	if err != nil {
		return nil, nil, err
	}
	cur := make(map[uint]bool, len(current))
	for _, id := range current {
		cur[id] = true
	}
	target := make(map[uint]bool, len(distinct))
	for _, id := range distinct {
		target[id] = true
	}

	toCreate := make([]uint, 0)
	for _, id := range distinct {
		if !cur[id] {
			toCreate = append(toCreate, id)
		}
	}
	toDelete := make([]uint, 0)
	for _, id := range current {
		if !target[id] {
			toDelete = append(toDelete, id)
		}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.CompanyProdRepo.DeleteTx(tx, companyID, toDelete); err != nil {
			return err
		}
		return s.CompanyProdRepo.InsertTx(tx, companyID, toCreate)
	})
	if err != nil {
		return nil, nil, err
	}

	enabled, err := s.CompanyProdRepo.ListProductIDs(companyID)
	if err != nil {
		return nil, nil, err
	}

	log.Printf("[COMPANY] allow-list replace by=%d company=%d added=%v removed=%v", p.ID, companyID, toCreate, toDelete)
	return &AllowListChange{Enabled: toCreate, Disabled: toDelete}, enabled, nil
}

// Toggle flips one entry. Enabling an enabled product (or disabling a
// disabled one) is a successful no-op.
func (s *AllowListService) Toggle(p entity.Principal, companyID, productID uint, enabled bool) error {
	exists, err := s.ProductRepo.Exists(productID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.ProductNotFound([]uint{productID})
	}

	if enabled {
		err = s.CompanyProdRepo.Enable(companyID, productID)
	} else {
		err = s.CompanyProdRepo.Disable(companyID, productID)
	}
	if err != nil {
		return err
	}

	log.Printf("[COMPANY] allow-list toggle by=%d company=%d product=%d enabled=%v", p.ID, companyID, productID, enabled)
	return nil
}

func (s *AllowListService) checkProductsExist(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	products, err := s.ProductRepo.GetByIDs(ids)
	if err != nil {
		return err
	}
	if len(products) == len(ids) {
		return nil
	}
	found := make(map[uint]bool, len(products))
	for _, prod := range products {
		found[prod.ID] = true
	}
	var invalid []uint
	for _, id := range ids {
		if !found[id] {
			invalid = append(invalid, id)
		}
	}
	return apperr.ProductNotFound(invalid)
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
