package service

import (
	"context"
	"fmt"

	"github.com/matan1995el-lgtm/aliexpres/internal/catalog"
	"github.com/matan1995el-lgtm/aliexpres/internal/models"
	"github.com/matan1995el-lgtm/aliexpres/internal/repository"
	"github.com/matan1995el-lgtm/aliexpres/internal/scoring"
	"github.com/matan1995el-lgtm/aliexpres/internal/utils"
)

// ProductService provides product-related business logic: boundary
// validation, derived-field discipline and the filter/sort pipeline.
type ProductService struct {
	productRepo  *repository.ProductRepository
	activityRepo *repository.ActivityRepository
}

// NewProductService constructs a ProductService.
func NewProductService(productRepo *repository.ProductRepository, activityRepo *repository.ActivityRepository) *ProductService {
	return &ProductService{productRepo: productRepo, activityRepo: activityRepo}
}

// ProductInput is the accepted payload for creating a product. Derived
// fields are not accepted; they are always recomputed.
type ProductInput struct {
	Name         string  `json:"name" binding:"required"`
	Price        float64 `json:"price"`
	ShippingCost float64 `json:"shippingCost"`
	Rating       float64 `json:"rating"`
	Orders       int     `json:"orders"`
	DeliveryDays *int    `json:"deliveryDays,omitempty"`
	Category     string  `json:"category,omitempty"`
	ShippingFrom string  `json:"shippingFrom,omitempty"`
	Link         string  `json:"link,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

// Add validates the input and stores a new product.
func (s *ProductService) Add(ctx context.Context, in ProductInput) (models.Product, error) {
	if err := scoring.Validate(in.Price, in.ShippingCost, in.Rating, in.Orders); err != nil {
		return models.Product{}, err
	}
	if in.DeliveryDays != nil && *in.DeliveryDays <= 0 {
		return models.Product{}, fmt.Errorf("%w: delivery days must be positive", utils.ErrValidation)
	}

	p, err := s.productRepo.Add(ctx, models.Product{
		Name:         in.Name,
		Price:        in.Price,
		ShippingCost: in.ShippingCost,
		Rating:       in.Rating,
		Orders:       in.Orders,
		DeliveryDays: in.DeliveryDays,
		Category:     in.Category,
		ShippingFrom: in.ShippingFrom,
		Link:         in.Link,
		Notes:        in.Notes,
	})
	if err != nil {
		return models.Product{}, err
	}

	s.activityRepo.Add("product", fmt.Sprintf("Added product: %s", p.Name))
	return p, nil
}

// Update validates the patch against the merged result before any mutation
// is applied, then stores it.
func (s *ProductService) Update(ctx context.Context, id string, patch models.ProductPatch) (models.Product, error) {
	current, err := s.productRepo.Get(id)
	if err != nil {
		return models.Product{}, err
	}

	price := current.Price
	if patch.Price != nil {
		price = *patch.Price
	}
	shipping := current.ShippingCost
	if patch.ShippingCost != nil {
		shipping = *patch.ShippingCost
	}
	rating := current.Rating
	if patch.Rating != nil {
		rating = *patch.Rating
	}
	orders := current.Orders
	if patch.Orders != nil {
		orders = *patch.Orders
	}
	if err := scoring.Validate(price, shipping, rating, orders); err != nil {
		return models.Product{}, err
	}
	if patch.DeliveryDays != nil && *patch.DeliveryDays <= 0 {
		return models.Product{}, fmt.Errorf("%w: delivery days must be positive", utils.ErrValidation)
	}

	return s.productRepo.Update(ctx, id, patch)
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.productRepo.Delete(ctx, id)
}

// Get returns one product.
func (s *ProductService) Get(id string) (models.Product, error) {
	return s.productRepo.Get(id)
}

// List applies the criteria and ordering to the collection.
func (s *ProductService) List(criteria models.Criteria, sortBy catalog.SortKey) []models.Product {
	products := catalog.Filter(s.productRepo.GetAll(), criteria)
	return catalog.Sort(products, sortBy)
}
