package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matan1995el-lgtm/aliexpres/internal/models"
	"github.com/matan1995el-lgtm/aliexpres/internal/scoring"
	"github.com/matan1995el-lgtm/aliexpres/internal/store"
	"github.com/matan1995el-lgtm/aliexpres/internal/utils"
)

// ProductRepository is the authoritative holder of the product collection.
// Mutations update the in-memory slice, re-derive real price and score, and
// synchronously persist the full collection.
type ProductRepository struct {
	mu       sync.RWMutex
	store    store.Store
	products []models.Product
}

// NewProductRepository creates a ProductRepository over the given store.
func NewProductRepository(s store.Store) *ProductRepository {
	return &ProductRepository{store: s}
}

// Load reads the persisted collection into memory. A missing key yields an
// empty collection.
func (r *ProductRepository) Load(ctx context.Context) error {
	raw, err := r.store.Get(ctx, store.KeyProducts)
	if err == store.ErrKeyNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return fmt.Errorf("corrupt products document: %w", err)
	}

	r.mu.Lock()
	r.products = products
	r.mu.Unlock()
	return nil
}

// Add assigns an identifier and creation timestamp, derives the computed
// fields and persists the collection.
func (r *ProductRepository) Add(ctx context.Context, p models.Product) (models.Product, error) {
	p.ID = uuid.New().String()
	p.CreatedAt = time.Now().UTC()
	derive(&p)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = append(r.products, p)
	if err := r.commit(ctx); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// AddBatch appends a batch of products in a single commit. Identifiers and
// derived fields are assigned per product. On a commit failure the
// collection is restored, so either the whole batch lands or none of it.
func (r *ProductRepository) AddBatch(ctx context.Context, batch []models.Product) ([]models.Product, error) {
	added := make([]models.Product, len(batch))
	for i, p := range batch {
		p.ID = uuid.New().String()
		p.CreatedAt = time.Now().UTC()
		derive(&p)
		added[i] = p
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.products
	r.products = append(prev[:len(prev):len(prev)], added...)
	if err := r.commit(ctx); err != nil {
		r.products = prev
		return nil, err
	}
	return added, nil
}

// Update merges the non-nil patch fields into the product, re-derives the
// computed fields and persists. An unknown id returns ErrNotFound with no
// mutation.
func (r *ProductRepository) Update(ctx context.Context, id string, patch models.ProductPatch) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return models.Product{}, utils.ErrNotFound
	}

	p := r.products[idx]
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.ShippingCost != nil {
		p.ShippingCost = *patch.ShippingCost
	}
	if patch.Rating != nil {
		p.Rating = *patch.Rating
	}
	if patch.Orders != nil {
		p.Orders = *patch.Orders
	}
	if patch.DeliveryDays != nil {
		p.DeliveryDays = patch.DeliveryDays
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.ShippingFrom != nil {
		p.ShippingFrom = *patch.ShippingFrom
	}
	if patch.Link != nil {
		p.Link = *patch.Link
	}
	if patch.Notes != nil {
		p.Notes = *patch.Notes
	}
	derive(&p)

	r.products[idx] = p
	if err := r.commit(ctx); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// Delete removes a product by id.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return utils.ErrNotFound
	}
	r.products = append(r.products[:idx], r.products[idx+1:]...)
	return r.commit(ctx)
}

// Get returns a product by id.
func (r *ProductRepository) Get(id string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if idx := r.indexOf(id); idx >= 0 {
		return r.products[idx], nil
	}
	return models.Product{}, utils.ErrNotFound
}

// GetAll returns a copy of the collection in insertion order.
func (r *ProductRepository) GetAll() []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out
}

// ReplaceAll swaps the whole collection, re-deriving computed fields, and
// persists it. Used by import.
func (r *ProductRepository) ReplaceAll(ctx context.Context, products []models.Product) error {
	for i := range products {
		derive(&products[i])
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = products
	return r.commit(ctx)
}

// Commit persists the current in-memory collection.
func (r *ProductRepository) Commit(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.commit(ctx)
}

func (r *ProductRepository) commit(ctx context.Context) error {
	raw, err := json.Marshal(r.products)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, store.KeyProducts, raw)
}

func (r *ProductRepository) indexOf(id string) int {
	for i := range r.products {
		if r.products[i].ID == id {
			return i
		}
	}
	return -1
}

// derive recomputes realPrice and score from their inputs. Derived fields
// are never taken from the outside.
func derive(p *models.Product) {
	p.RealPrice = p.Price + p.ShippingCost
	p.Score = scoring.Score(p.RealPrice, p.Rating, p.Orders)
}
