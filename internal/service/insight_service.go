package service

import (
	"time"

	"github.com/matan1995el-lgtm/aliexpres/internal/insights"
	"github.com/matan1995el-lgtm/aliexpres/internal/models"
	"github.com/matan1995el-lgtm/aliexpres/internal/repository"
)

// InsightService derives badges, recommendations and report statistics
// from the current collections.
type InsightService struct {
	productRepo  *repository.ProductRepository
	favoriteRepo *repository.FavoriteRepository
}

// NewInsightService constructs an InsightService.
func NewInsightService(productRepo *repository.ProductRepository, favoriteRepo *repository.FavoriteRepository) *InsightService {
	return &InsightService{productRepo: productRepo, favoriteRepo: favoriteRepo}
}

// ProductBadges evaluates the badge rules for one product against the
// collection average price.
func (s *InsightService) ProductBadges(id string) ([]insights.Badge, error) {
	products := s.productRepo.GetAll()
	p, err := s.productRepo.Get(id)
	if err != nil {
		return nil, err
	}
	return insights.Badges(p, insights.AveragePrice(products), time.Now().UTC()), nil
}

// AllBadges maps every product id to its badges.
func (s *InsightService) AllBadges() map[string][]insights.Badge {
	products := s.productRepo.GetAll()
	avg := insights.AveragePrice(products)
	now := time.Now().UTC()

	out := make(map[string][]insights.Badge, len(products))
	for _, p := range products {
		out[p.ID] = insights.Badges(p, avg, now)
	}
	return out
}

// Recommendations returns the capped, ordered insight list.
func (s *InsightService) Recommendations() []insights.Insight {
	return insights.Recommendations(s.productRepo.GetAll())
}

// Stats aggregates the report statistics.
func (s *InsightService) Stats() insights.Stats {
	return insights.Aggregate(s.productRepo.GetAll(), s.favoriteRepo.GetAll())
}

// TopProduct returns the highest-scoring product, if any.
func (s *InsightService) TopProduct() (models.Product, bool) {
	products := s.productRepo.GetAll()
	if len(products) == 0 {
		return models.Product{}, false
	}
	best := products[0]
	for _, p := range products[1:] {
		if p.Score > best.Score {
			best = p
		}
	}
	return best, true
}
