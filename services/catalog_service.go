package services

import (
	"github.com/cristianbbs/kolder-backend/entity"
	"github.com/cristianbbs/kolder-backend/pkg/apperr"
	"github.com/cristianbbs/kolder-backend/repository"
)

// CatalogService projects the full catalog down to what a company may order.
type CatalogService struct {
	ProductRepo     *repository.ProductRepository
	CompanyProdRepo *repository.CompanyProductRepository
}

func NewCatalogService(productRepo *repository.ProductRepository, cpRepo *repository.CompanyProductRepository) *CatalogService {
	return &CatalogService{ProductRepo: productRepo, CompanyProdRepo: cpRepo}
}

type CatalogProduct struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Detail   string `json:"detail"`
	ImageURL string `json:"imageUrl"`
}

type CatalogCategory struct {
	ID       uint             `json:"id"`
	Name     string           `json:"name"`
	Products []CatalogProduct `json:"products"`
}

// ForPrincipal resolves the caller's company and filters the catalog to its
// allow-list. Categories left without products are dropped entirely.
func (s *CatalogService) ForPrincipal(p entity.Principal) ([]CatalogCategory, error) {
	if !p.HasCompany() {
		return nil, apperr.NoCompany()
	}
	return s.ForCompany(*p.CompanyID)
}

func (s *CatalogService) ForCompany(companyID uint) ([]CatalogCategory, error) {
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

	out := make([]CatalogCategory, 0, len(cats))
	for _, cat := range cats {
		products := make([]CatalogProduct, 0, len(cat.Products))
		for _, prod := range cat.Products {
			if !allowed[prod.ID] {
				continue
			}
			products = append(products, CatalogProduct{
				ID:       prod.ID,
				Title:    prod.Title,
				Detail:   prod.Detail,
				ImageURL: prod.ImageURL,
			})
		}
		if len(products) == 0 {
			continue
		}
		out = append(out, CatalogCategory{ID: cat.ID, Name: cat.Name, Products: products})
	}
	return out, nil
}
