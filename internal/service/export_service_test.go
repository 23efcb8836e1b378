package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matan1995el-lgtm/aliexpres/internal/models"
	"github.com/matan1995el-lgtm/aliexpres/internal/repository"
	"github.com/matan1995el-lgtm/aliexpres/internal/store"
	"github.com/matan1995el-lgtm/aliexpres/internal/utils"
)

type exportFixture struct {
	svc       *ExportService
	products  *repository.ProductRepository
	favorites *repository.FavoriteRepository
}

func newExportFixture() *exportFixture {
	st := store.NewMemoryStore()
	productRepo := repository.NewProductRepository(st)
	favoriteRepo := repository.NewFavoriteRepository(st)
	profileRepo := repository.NewProfileRepository(st)
	activityRepo := repository.NewActivityRepository(st)
	settingsRepo := repository.NewSettingsRepository(st)
	return &exportFixture{
		svc:       NewExportService(productRepo, favoriteRepo, profileRepo, activityRepo, settingsRepo),
		products:  productRepo,
		favorites: favoriteRepo,
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newExportFixture()

	if _, err := src.products.Add(ctx, models.Product{Name: "Earbuds", Price: 25, ShippingCost: 5, Rating: 4.5, Orders: 1000}); err != nil {
		t.Fatalf("Add product: %v", err)
	}
	if _, err := src.products.Add(ctx, models.Product{Name: "Lamp", Price: 12, Rating: 4.1, Orders: 200}); err != nil {
		t.Fatalf("Add product: %v", err)
	}
	if _, err := src.favorites.Add(ctx, models.Favorite{Name: "Phone Case", CurrentPrice: 8}); err != nil {
		t.Fatalf("Add favorite: %v", err)
	}

	doc := src.svc.Export()
	if doc.Version != "2.0.0" {
		t.Errorf("export version = %q, want 2.0.0", doc.Version)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal export: %v", err)
	}

	dst := newExportFixture()
	if err := dst.svc.Import(ctx, raw); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if diff := cmp.Diff(src.products.GetAll(), dst.products.GetAll()); diff != "" {
		t.Errorf("products after round trip (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(src.favorites.GetAll(), dst.favorites.GetAll()); diff != "" {
		t.Errorf("favorites after round trip (-want +got):\n%s", diff)
	}
}

func TestImportAbsentCollectionsUntouched(t *testing.T) {
	ctx := context.Background()
	fix := newExportFixture()

	if _, err := fix.favorites.Add(ctx, models.Favorite{Name: "Keep Me", CurrentPrice: 5}); err != nil {
		t.Fatalf("Add favorite: %v", err)
	}

	raw := []byte(`{"version":"2.0.0","exportedAt":"2026-01-01T00:00:00Z","products":[{"id":"p1","name":"Imported","price":10}]}`)
	if err := fix.svc.Import(ctx, raw); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if got := fix.products.GetAll(); len(got) != 1 || got[0].Name != "Imported" {
		t.Errorf("products = %+v, want the imported one", got)
	}
	if got := fix.favorites.GetAll(); len(got) != 1 || got[0].Name != "Keep Me" {
		t.Errorf("favorites = %+v, want untouched", got)
	}
}

func TestImportRederivesComputedFields(t *testing.T) {
	ctx := context.Background()
	fix := newExportFixture()

	raw := []byte(`{"version":"2.0.0","exportedAt":"2026-01-01T00:00:00Z",` +
		`"products":[{"id":"p1","name":"Imported","price":10,"shippingCost":5,"realPrice":999,"score":999}]}`)
	if err := fix.svc.Import(ctx, raw); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	got := fix.products.GetAll()
	if got[0].RealPrice != 15 {
		t.Errorf("RealPrice = %v, want re-derived 15", got[0].RealPrice)
	}
	if got[0].Score > 100 {
		t.Errorf("Score = %d, want recomputed", got[0].Score)
	}
}

func TestImportMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "invalid JSON", raw: `{not json`},
		{name: "no collections", raw: `{"version":"2.0.0","exportedAt":"2026-01-01T00:00:00Z"}`},
		{
			name: "duplicate product ids",
			raw: `{"version":"2.0.0","exportedAt":"2026-01-01T00:00:00Z",` +
				`"products":[{"id":"p1","name":"A","price":1},{"id":"p1","name":"B","price":2}]}`,
		},
		{
			name: "product missing name",
			raw:  `{"version":"2.0.0","exportedAt":"2026-01-01T00:00:00Z","products":[{"id":"p1","price":1}]}`,
		},
		{
			name: "negative favorite price",
			raw:  `{"version":"2.0.0","exportedAt":"2026-01-01T00:00:00Z","favorites":[{"id":"f1","name":"F","currentPrice":-1}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fix := newExportFixture()
			err := fix.svc.Import(context.Background(), []byte(tt.raw))
			if !errors.Is(err, utils.ErrMalformedImport) {
				t.Errorf("Import() error = %v, want ErrMalformedImport", err)
			}
			if len(fix.products.GetAll()) != 0 || len(fix.favorites.GetAll()) != 0 {
				t.Error("malformed import must not mutate any collection")
			}
		})
	}
}

func TestImportRejectsBeforeMutating(t *testing.T) {
	ctx := context.Background()
	fix := newExportFixture()

	if _, err := fix.products.Add(ctx, models.Product{Name: "Original", Price: 1}); err != nil {
		t.Fatalf("Add product: %v", err)
	}

	// Products are valid but favorites are not: nothing may change.
	raw := []byte(`{"version":"2.0.0","exportedAt":"2026-01-01T00:00:00Z",` +
		`"products":[{"id":"p1","name":"New","price":2}],` +
		`"favorites":[{"id":"f1","name":"","currentPrice":1}]}`)
	if err := fix.svc.Import(ctx, raw); !errors.Is(err, utils.ErrMalformedImport) {
		t.Fatalf("Import() error = %v, want ErrMalformedImport", err)
	}

	got := fix.products.GetAll()
	if len(got) != 1 || got[0].Name != "Original" {
		t.Error("rejected import must leave the products untouched")
	}
}

func TestExportCSV(t *testing.T) {
	ctx := context.Background()
	fix := newExportFixture()

	if _, err := fix.products.Add(ctx, models.Product{
		Name: "Earbuds, Wireless", Price: 25.5, ShippingCost: 4.5,
		Rating: 4.5, Orders: 1000, Category: "Electronics", Link: "https://example.com/p/1",
	}); err != nil {
		t.Fatalf("Add product: %v", err)
	}

	data := fix.svc.ExportCSV()

	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("CSV export must start with a UTF-8 BOM")
	}

	lines := strings.Split(strings.TrimSpace(string(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}))), "\n")
	if len(lines) != 2 {
		t.Fatalf("CSV line count = %d, want header plus one row", len(lines))
	}
	if lines[0] != "name,price,shipping,total price,rating,orders,score,category,link" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], `"Earbuds, Wireless",25.5,4.5,30,`) {
		t.Errorf("row = %q, want quoted name with embedded comma", lines[1])
	}
}

func TestImportCSVRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newExportFixture()

	if _, err := src.products.Add(ctx, models.Product{
		Name: "Earbuds, Wireless", Price: 25.5, ShippingCost: 4.5,
		Rating: 4.5, Orders: 1000, Category: "Electronics", Link: "https://example.com/p/1",
	}); err != nil {
		t.Fatalf("Add product: %v", err)
	}
	data := src.svc.ExportCSV()

	dst := newExportFixture()
	added, err := dst.svc.ImportCSV(ctx, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ImportCSV() error = %v", err)
	}
	if len(added) != 1 {
		t.Fatalf("imported %d products, want 1", len(added))
	}

	got := added[0]
	if got.Name != "Earbuds, Wireless" {
		t.Errorf("Name = %q, quoted comma must survive", got.Name)
	}
	if got.Price != 25.5 || got.ShippingCost != 4.5 {
		t.Errorf("Price/Shipping = %v/%v, want 25.5/4.5", got.Price, got.ShippingCost)
	}
	if got.RealPrice != 30 {
		t.Errorf("RealPrice = %v, want re-derived 30", got.RealPrice)
	}
	if got.Category != "Electronics" {
		t.Errorf("Category = %q", got.Category)
	}
}

func TestImportCSVRejectsBeforeMutating(t *testing.T) {
	ctx := context.Background()
	fix := newExportFixture()

	// A valid row followed by a broken one: nothing may be persisted.
	raw := "name,price,shipping,total price,rating,orders,score,category,link\n" +
		`"Good Row",25,0,25,4.5,100,0,Cat,link` + "\n" +
		`"Bad Row",not-a-price,0,0,4.5,100,0,Cat,link` + "\n"

	added, err := fix.svc.ImportCSV(ctx, strings.NewReader(raw))
	if !errors.Is(err, utils.ErrMalformedCSV) {
		t.Fatalf("ImportCSV() error = %v, want ErrMalformedCSV", err)
	}
	if len(added) != 0 {
		t.Errorf("ImportCSV() returned %d products on failure", len(added))
	}
	if got := fix.products.GetAll(); len(got) != 0 {
		t.Errorf("products = %+v, want none after a rejected file", got)
	}
}

func TestImportCSVMalformed(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{name: "empty file", csv: ""},
		{name: "header only", csv: "name,price,shipping,total price,rating,orders,score,category,link\n"},
		{name: "too few fields", csv: "name,price\nEarbuds,25\n"},
		{name: "bad price", csv: "name,price,shipping,total price,rating,orders,score,category,link\nEarbuds,abc,0,0,4.5,10,0,Cat,link\n"},
		{name: "rating out of range", csv: "name,price,shipping,total price,rating,orders,score,category,link\nEarbuds,25,0,25,9.9,10,0,Cat,link\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fix := newExportFixture()
			_, err := fix.svc.ImportCSV(context.Background(), strings.NewReader(tt.csv))
			if !errors.Is(err, utils.ErrMalformedCSV) {
				t.Errorf("ImportCSV() error = %v, want ErrMalformedCSV", err)
			}
			if len(fix.products.GetAll()) != 0 {
				t.Error("malformed CSV must not add products")
			}
		})
	}
}
