package service

import (
	"context"
	"fmt"
	"math"

	"github.com/matan1995el-lgtm/aliexpres/internal/customs"
	"github.com/matan1995el-lgtm/aliexpres/internal/models"
	"github.com/matan1995el-lgtm/aliexpres/internal/repository"
	"github.com/matan1995el-lgtm/aliexpres/internal/utils"
)

// SettingsService manages the configuration record and answers landed-cost
// quotes against a consistent settings snapshot.
type SettingsService struct {
	settingsRepo *repository.SettingsRepository
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(settingsRepo *repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// Get returns the current settings.
func (s *SettingsService) Get() models.Settings {
	return s.settingsRepo.Get()
}

// Save validates and persists the settings record.
func (s *SettingsService) Save(ctx context.Context, settings models.Settings) (models.Settings, error) {
	if badRate(settings.ExchangeRate) || settings.ExchangeRate <= 0 {
		return models.Settings{}, fmt.Errorf("%w: exchange rate must be positive", utils.ErrValidation)
	}
	if badRate(settings.CustomsThreshold) || settings.CustomsThreshold < 0 {
		return models.Settings{}, fmt.Errorf("%w: customs threshold must be non-negative", utils.ErrValidation)
	}
	if badRate(settings.VATRate) || settings.VATRate < 0 {
		return models.Settings{}, fmt.Errorf("%w: VAT rate must be non-negative", utils.ErrValidation)
	}
	if badRate(settings.CustomsRate) || settings.CustomsRate < 0 {
		return models.Settings{}, fmt.Errorf("%w: customs rate must be non-negative", utils.ErrValidation)
	}
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

// Quote computes the landed cost of a price/shipping pair under the current
// settings. With customs disabled the subtotal passes through untaxed.
func (s *SettingsService) Quote(price, shipping float64) (customs.Breakdown, error) {
	if badRate(price) || price < 0 || badRate(shipping) || shipping < 0 {
		return customs.Breakdown{}, fmt.Errorf("%w: price and shipping must be non-negative numbers", utils.ErrValidation)
	}

	settings := s.settingsRepo.Get()
	rates := customs.RatesFromSettings(settings)
	if !settings.EnableCustoms {
		subtotal := price + shipping
		return customs.Breakdown{
			Subtotal:     subtotal,
			Total:        subtotal,
			TotalDisplay: subtotal * rates.ExchangeRate,
			TaxApplies:   false,
		}, nil
	}
	return customs.Compute(price, shipping, rates), nil
}

func badRate(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
