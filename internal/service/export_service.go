package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/matan1995el-lgtm/aliexpres/internal/models"
	"github.com/matan1995el-lgtm/aliexpres/internal/repository"
	"github.com/matan1995el-lgtm/aliexpres/internal/scoring"
	"github.com/matan1995el-lgtm/aliexpres/internal/utils"
)

// Format version tag written into every export document.
const exportVersion = "2.0.0"

// utf8BOM prefixes CSV exports so spreadsheet tools detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// csvHeader is the fixed, ordered product CSV header row.
var csvHeader = []string{"name", "price", "shipping", "total price", "rating", "orders", "score", "category", "link"}

// ExportDocument is the aggregate snapshot of all collections. On import,
// nil collections are left untouched; present ones replace their
// counterpart wholesale.
type ExportDocument struct {
	Version    string             `json:"version"`
	ExportedAt time.Time          `json:"exportedAt"`
	Products   *[]models.Product  `json:"products,omitempty"`
	Favorites  *[]models.Favorite `json:"favorites,omitempty"`
	Profiles   *[]models.Profile  `json:"profiles,omitempty"`
	Activities *[]models.Activity `json:"activities,omitempty"`
	Settings   *models.Settings   `json:"settings,omitempty"`
}

// ExportService produces and consumes the aggregate JSON document and the
// product CSV report.
type ExportService struct {
	productRepo  *repository.ProductRepository
	favoriteRepo *repository.FavoriteRepository
	profileRepo  *repository.ProfileRepository
	activityRepo *repository.ActivityRepository
	settingsRepo *repository.SettingsRepository
}

// NewExportService constructs an ExportService.
func NewExportService(
	productRepo *repository.ProductRepository,
	favoriteRepo *repository.FavoriteRepository,
	profileRepo *repository.ProfileRepository,
	activityRepo *repository.ActivityRepository,
	settingsRepo *repository.SettingsRepository,
) *ExportService {
	return &ExportService{
		productRepo:  productRepo,
		favoriteRepo: favoriteRepo,
		profileRepo:  profileRepo,
		activityRepo: activityRepo,
		settingsRepo: settingsRepo,
	}
}

// Export returns the full aggregate snapshot.
func (s *ExportService) Export() ExportDocument {
	products := s.productRepo.GetAll()
	favorites := s.favoriteRepo.GetAll()
	profiles := s.profileRepo.GetAll()
	activities := s.activityRepo.GetAll()
	settings := s.settingsRepo.Get()

	return ExportDocument{
		Version:    exportVersion,
		ExportedAt: time.Now().UTC(),
		Products:   &products,
		Favorites:  &favorites,
		Profiles:   &profiles,
		Activities: &activities,
		Settings:   &settings,
	}
}

// Import validates the raw document fully before touching any collection,
// then replaces each collection that is present. Collections absent from
// the document are left untouched. A malformed document is rejected
// atomically.
func (s *ExportService) Import(ctx context.Context, raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	var doc ExportDocument
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", utils.ErrMalformedImport, err)
	}

	if doc.Products == nil && doc.Favorites == nil && doc.Profiles == nil &&
		doc.Activities == nil && doc.Settings == nil {
		return fmt.Errorf("%w: document contains no collections", utils.ErrMalformedImport)
	}

	// Validate everything before replacing anything.
	if doc.Products != nil {
		if err := validateImportedProducts(*doc.Products); err != nil {
			return err
		}
	}
	if doc.Favorites != nil {
		if err := validateImportedFavorites(*doc.Favorites); err != nil {
			return err
		}
	}
	if doc.Profiles != nil {
		if err := uniqueIDs("profiles", profileIDs(*doc.Profiles)); err != nil {
			return err
		}
	}

	if doc.Products != nil {
		if err := s.productRepo.ReplaceAll(ctx, *doc.Products); err != nil {
			return err
		}
	}
	if doc.Favorites != nil {
		if err := s.favoriteRepo.ReplaceAll(ctx, *doc.Favorites); err != nil {
			return err
		}
	}
	if doc.Profiles != nil {
		if err := s.profileRepo.ReplaceAll(ctx, *doc.Profiles); err != nil {
			return err
		}
	}
	if doc.Activities != nil {
		if err := s.activityRepo.ReplaceAll(ctx, *doc.Activities); err != nil {
			return err
		}
	}
	if doc.Settings != nil {
		if err := s.settingsRepo.Save(ctx, *doc.Settings); err != nil {
			return err
		}
	}
	return nil
}

// ExportCSV renders the product collection as UTF-8 CSV with a byte-order
// mark. Text fields are always quoted; numbers are written bare.
func (s *ExportService) ExportCSV() []byte {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	buf.WriteString(strings.Join(csvHeader, ",") + "\n")

	for _, p := range s.productRepo.GetAll() {
		fields := []string{
			quoteCSV(p.Name),
			formatFloat(p.Price),
			formatFloat(p.ShippingCost),
			formatFloat(p.RealPrice),
			formatFloat(p.Rating),
			strconv.Itoa(p.Orders),
			strconv.Itoa(p.Score),
			quoteCSV(p.Category),
			quoteCSV(p.Link),
		}
		buf.WriteString(strings.Join(fields, ",") + "\n")
	}
	return buf.Bytes()
}

// ImportCSV parses a product CSV (tolerating quoted fields with embedded
// commas), skips the header row and adds the rows as new products. The whole
// file is parsed and validated before anything is persisted; a malformed row
// rejects the entire import. Derived fields are recomputed, not trusted from
// the file.
func (s *ExportService) ImportCSV(ctx context.Context, r io.Reader) ([]models.Product, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrMalformedCSV, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: no data rows", utils.ErrMalformedCSV)
	}

	parsed := make([]models.Product, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) < 8 {
			return nil, fmt.Errorf("%w: row %d has %d fields, expected at least 8", utils.ErrMalformedCSV, i+2, len(row))
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: bad price %q", utils.ErrMalformedCSV, i+2, row[1])
		}
		shipping, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: bad shipping %q", utils.ErrMalformedCSV, i+2, row[2])
		}
		rating, err := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: bad rating %q", utils.ErrMalformedCSV, i+2, row[4])
		}
		orders, err := strconv.Atoi(strings.TrimSpace(row[5]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: bad orders %q", utils.ErrMalformedCSV, i+2, row[5])
		}
		if err := scoring.Validate(price, shipping, rating, orders); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", utils.ErrMalformedCSV, i+2, err)
		}

		p := models.Product{
			Name:         strings.TrimSpace(row[0]),
			Price:        price,
			ShippingCost: shipping,
			Rating:       rating,
			Orders:       orders,
		}
		if len(row) > 7 {
			p.Category = strings.TrimSpace(row[7])
		}
		if len(row) > 8 {
			p.Link = strings.TrimSpace(row[8])
		}
		parsed = append(parsed, p)
	}

	return s.productRepo.AddBatch(ctx, parsed)
}

func validateImportedProducts(products []models.Product) error {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		if p.ID == "" || p.Name == "" {
			return fmt.Errorf("%w: product missing id or name", utils.ErrMalformedImport)
		}
		if err := scoring.Validate(p.Price, p.ShippingCost, p.Rating, p.Orders); err != nil {
			return fmt.Errorf("%w: product %s: %v", utils.ErrMalformedImport, p.ID, err)
		}
		ids = append(ids, p.ID)
	}
	return uniqueIDs("products", ids)
}

func validateImportedFavorites(favorites []models.Favorite) error {
	ids := make([]string, 0, len(favorites))
	for _, f := range favorites {
		if f.ID == "" || f.Name == "" {
			return fmt.Errorf("%w: favorite missing id or name", utils.ErrMalformedImport)
		}
		if f.CurrentPrice < 0 {
			return fmt.Errorf("%w: favorite %s: negative price", utils.ErrMalformedImport, f.ID)
		}
		ids = append(ids, f.ID)
	}
	return uniqueIDs("favorites", ids)
}

func profileIDs(profiles []models.Profile) []string {
	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}
	return ids
}

func uniqueIDs(collection string, ids []string) error {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return fmt.Errorf("%w: duplicate id %q in %s", utils.ErrMalformedImport, id, collection)
		}
		seen[id] = true
	}
	return nil
}

// quoteCSV wraps a text field in double quotes, escaping embedded quotes.
func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
