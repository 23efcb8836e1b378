package service

import (
	"context"

	"github.com/matan1995el-lgtm/aliexpres/internal/catalog"
	"github.com/matan1995el-lgtm/aliexpres/internal/models"
	"github.com/matan1995el-lgtm/aliexpres/internal/repository"
)

// ProfileService manages saved filter profiles and applies them to the
// product collection.
type ProfileService struct {
	profileRepo *repository.ProfileRepository
	productRepo *repository.ProductRepository
}

// NewProfileService constructs a ProfileService.
func NewProfileService(profileRepo *repository.ProfileRepository, productRepo *repository.ProductRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, productRepo: productRepo}
}

// ProfileInput is the accepted payload for creating a profile.
type ProfileInput struct {
	Name     string          `json:"name" binding:"required"`
	Criteria models.Criteria `json:"criteria"`
	Notes    string          `json:"notes,omitempty"`
}

// Add stores a new profile.
func (s *ProfileService) Add(ctx context.Context, in ProfileInput) (models.Profile, error) {
	return s.profileRepo.Add(ctx, models.Profile{
		Name:     in.Name,
		Criteria: in.Criteria,
		Notes:    in.Notes,
	})
}

// Update applies a partial update.
func (s *ProfileService) Update(ctx context.Context, id string, patch models.ProfilePatch) (models.Profile, error) {
	return s.profileRepo.Update(ctx, id, patch)
}

// Delete removes a profile.
func (s *ProfileService) Delete(ctx context.Context, id string) error {
	return s.profileRepo.Delete(ctx, id)
}

// Get returns one profile.
func (s *ProfileService) Get(id string) (models.Profile, error) {
	return s.profileRepo.Get(id)
}

// GetAll returns the full collection.
func (s *ProfileService) GetAll() []models.Profile {
	return s.profileRepo.GetAll()
}

// Apply runs a profile's criteria over the product collection and returns
// the matches in the requested order.
func (s *ProfileService) Apply(id string, sortBy catalog.SortKey) ([]models.Product, error) {
	profile, err := s.profileRepo.Get(id)
	if err != nil {
		return nil, err
	}
	products := catalog.Filter(s.productRepo.GetAll(), profile.Criteria)
	return catalog.Sort(products, sortBy), nil
}
