package service

import (
	"context"
	"fmt"
	"math"

	"github.com/matan1995el-lgtm/aliexpres/internal/models"
	"github.com/matan1995el-lgtm/aliexpres/internal/repository"
	"github.com/matan1995el-lgtm/aliexpres/internal/utils"
)

// FavoriteService provides favorite-related business logic.
type FavoriteService struct {
	favoriteRepo *repository.FavoriteRepository
	activityRepo *repository.ActivityRepository
}

// NewFavoriteService constructs a FavoriteService.
func NewFavoriteService(favoriteRepo *repository.FavoriteRepository, activityRepo *repository.ActivityRepository) *FavoriteService {
	return &FavoriteService{favoriteRepo: favoriteRepo, activityRepo: activityRepo}
}

// FavoriteInput is the accepted payload for creating a favorite.
type FavoriteInput struct {
	Name         string          `json:"name" binding:"required"`
	CurrentPrice float64         `json:"currentPrice"`
	TargetPrice  *float64        `json:"targetPrice,omitempty"`
	Tags         []string        `json:"tags,omitempty"`
	Priority     models.Priority `json:"priority,omitempty"`
	Category     string          `json:"category,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	Link         string          `json:"link,omitempty"`
}

// Add validates the input and stores a new favorite, seeding its price
// history.
func (s *FavoriteService) Add(ctx context.Context, in FavoriteInput) (models.Favorite, error) {
	if err := validatePrice("current price", in.CurrentPrice); err != nil {
		return models.Favorite{}, err
	}
	if in.TargetPrice != nil {
		if err := validatePrice("target price", *in.TargetPrice); err != nil {
			return models.Favorite{}, err
		}
	}
	if err := validatePriority(in.Priority); err != nil {
		return models.Favorite{}, err
	}

	f, err := s.favoriteRepo.Add(ctx, models.Favorite{
		Name:         in.Name,
		CurrentPrice: in.CurrentPrice,
		TargetPrice:  in.TargetPrice,
		Tags:         in.Tags,
		Priority:     in.Priority,
		Category:     in.Category,
		Notes:        in.Notes,
		Link:         in.Link,
	})
	if err != nil {
		return models.Favorite{}, err
	}

	s.activityRepo.Add("favorite", fmt.Sprintf("Added to favorites: %s", f.Name))
	return f, nil
}

// Update validates and applies a partial update. A price change appends a
// price history entry in the repository.
func (s *FavoriteService) Update(ctx context.Context, id string, patch models.FavoritePatch) (models.Favorite, error) {
	if patch.CurrentPrice != nil {
		if err := validatePrice("current price", *patch.CurrentPrice); err != nil {
			return models.Favorite{}, err
		}
	}
	if patch.TargetPrice != nil {
		if err := validatePrice("target price", *patch.TargetPrice); err != nil {
			return models.Favorite{}, err
		}
	}
	if patch.Priority != nil {
		if err := validatePriority(*patch.Priority); err != nil {
			return models.Favorite{}, err
		}
	}
	return s.favoriteRepo.Update(ctx, id, patch)
}

// Delete removes a favorite.
func (s *FavoriteService) Delete(ctx context.Context, id string) error {
	return s.favoriteRepo.Delete(ctx, id)
}

// Get returns one favorite.
func (s *FavoriteService) Get(id string) (models.Favorite, error) {
	return s.favoriteRepo.Get(id)
}

// GetAll returns the full collection.
func (s *FavoriteService) GetAll() []models.Favorite {
	return s.favoriteRepo.GetAll()
}

func validatePrice(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%w: %s must be a non-negative number", utils.ErrValidation, field)
	}
	return nil
}

func validatePriority(p models.Priority) error {
	switch p {
	case "", models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
		return nil
	}
	return fmt.Errorf("%w: priority must be high, medium or low", utils.ErrValidation)
}
