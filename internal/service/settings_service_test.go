package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/matan1995el-lgtm/aliexpres/internal/models"
	"github.com/matan1995el-lgtm/aliexpres/internal/repository"
	"github.com/matan1995el-lgtm/aliexpres/internal/store"
	"github.com/matan1995el-lgtm/aliexpres/internal/utils"
)

func newSettingsService() *SettingsService {
	return NewSettingsService(repository.NewSettingsRepository(store.NewMemoryStore()))
}

func TestSettingsDefaults(t *testing.T) {
	svc := newSettingsService()
	got := svc.Get()

	if got.DefaultCurrency != "USD" {
		t.Errorf("DefaultCurrency = %q, want USD", got.DefaultCurrency)
	}
	if got.ExchangeRate != 3.7 {
		t.Errorf("ExchangeRate = %v, want 3.7", got.ExchangeRate)
	}
	if got.CustomsThreshold != 75 || got.VATRate != 17 || got.CustomsRate != 12 {
		t.Errorf("customs defaults = %v/%v/%v, want 75/17/12", got.CustomsThreshold, got.VATRate, got.CustomsRate)
	}
	if got.FontSize != 16 || got.Density != "comfortable" || got.Theme != "light" {
		t.Errorf("display defaults = %d/%q/%q", got.FontSize, got.Density, got.Theme)
	}
}

func TestSettingsSaveValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Settings)
	}{
		{name: "zero exchange rate", mutate: func(s *models.Settings) { s.ExchangeRate = 0 }},
		{name: "negative exchange rate", mutate: func(s *models.Settings) { s.ExchangeRate = -1 }},
		{name: "NaN exchange rate", mutate: func(s *models.Settings) { s.ExchangeRate = math.NaN() }},
		{name: "negative threshold", mutate: func(s *models.Settings) { s.CustomsThreshold = -1 }},
		{name: "negative VAT", mutate: func(s *models.Settings) { s.VATRate = -1 }},
		{name: "infinite customs rate", mutate: func(s *models.Settings) { s.CustomsRate = math.Inf(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newSettingsService()
			settings := models.DefaultSettings()
			tt.mutate(&settings)

			if _, err := svc.Save(context.Background(), settings); !errors.Is(err, utils.ErrValidation) {
				t.Errorf("Save() error = %v, want ErrValidation", err)
			}
			// The stored record must be unchanged.
			if got := svc.Get(); got != models.DefaultSettings() {
				t.Error("failed save must not change the settings")
			}
		})
	}
}

func TestSettingsSaveAndGet(t *testing.T) {
	svc := newSettingsService()
	settings := models.DefaultSettings()
	settings.Theme = "dark"
	settings.ExchangeRate = 4.0

	saved, err := svc.Save(context.Background(), settings)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved != settings {
		t.Error("Save() must return the stored record")
	}
	if got := svc.Get(); got != settings {
		t.Error("Get() must return the saved record")
	}
}

func TestQuote(t *testing.T) {
	svc := newSettingsService()

	t.Run("above threshold", func(t *testing.T) {
		got, err := svc.Quote(100, 0)
		if err != nil {
			t.Fatalf("Quote() error = %v", err)
		}
		if !got.TaxApplies {
			t.Fatal("expected tax at subtotal 100")
		}
		if math.Abs(got.Total-129) > 1e-9 {
			t.Errorf("Total = %v, want 129", got.Total)
		}
		if math.Abs(got.TotalDisplay-477.3) > 1e-9 {
			t.Errorf("TotalDisplay = %v, want 477.3", got.TotalDisplay)
		}
	})

	t.Run("below threshold", func(t *testing.T) {
		got, err := svc.Quote(50, 24.99)
		if err != nil {
			t.Fatalf("Quote() error = %v", err)
		}
		if got.TaxApplies {
			t.Error("no tax expected below the threshold")
		}
		if math.Abs(got.Total-74.99) > 1e-9 {
			t.Errorf("Total = %v, want 74.99", got.Total)
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		if _, err := svc.Quote(-1, 0); !errors.Is(err, utils.ErrValidation) {
			t.Errorf("Quote(-1, 0) error = %v, want ErrValidation", err)
		}
		if _, err := svc.Quote(math.NaN(), 0); !errors.Is(err, utils.ErrValidation) {
			t.Errorf("Quote(NaN, 0) error = %v, want ErrValidation", err)
		}
	})
}

func TestQuoteCustomsDisabled(t *testing.T) {
	svc := newSettingsService()
	settings := models.DefaultSettings()
	settings.EnableCustoms = false
	if _, err := svc.Save(context.Background(), settings); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := svc.Quote(100, 0)
	if err != nil {
		t.Fatalf("Quote() error = %v", err)
	}
	if got.TaxApplies {
		t.Error("disabled customs must not tax")
	}
	if got.Total != 100 {
		t.Errorf("Total = %v, want untaxed 100", got.Total)
	}
	if math.Abs(got.TotalDisplay-370) > 1e-9 {
		t.Errorf("TotalDisplay = %v, want 370", got.TotalDisplay)
	}
}
