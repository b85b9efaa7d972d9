// Package store owns the in-memory cost collection and pricing settings and
// mediates between the calculation engine and the backing document store.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ovolab/eggcost/internal/costing"
	"github.com/ovolab/eggcost/internal/domain/models"
)

// Collection names used in the backing document store.
const (
	CollectionIngredients = "ingredients"
	CollectionExtraCosts  = "extraCosts"
	CollectionSnapshots   = "costSnapshots"
)

// ErrNotFound indicates no record exists under the requested id.
var ErrNotFound = errors.New("record not found")

// DocumentStore is the persistence collaborator contract. Implementations
// assign record ids on create and stamp creation/update times server-side.
type DocumentStore interface {
	Create(ctx context.Context, collection string, doc any) (string, error)
	Update(ctx context.Context, collection, id string, patch any) error
	Delete(ctx context.Context, collection, id string) error
	ListAll(ctx context.Context, collection string, out any) error
}

// CostStore holds the current cost records and pricing settings. Every
// mutation validates first, then persists, and only applies in memory once
// the durable write succeeded; a failed write leaves memory untouched.
type CostStore struct {
	docs   DocumentStore
	logger *zap.Logger

	mu          sync.RWMutex
	ingredients map[string]models.Ingredient
	extraCosts  map[string]models.ExtraCost
	settings    models.PricingSettings
}

// New builds a cost store starting from default pricing settings.
func New(docs DocumentStore, logger *zap.Logger) *CostStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CostStore{
		docs:        docs,
		logger:      logger,
		ingredients: make(map[string]models.Ingredient),
		extraCosts:  make(map[string]models.ExtraCost),
		settings:    models.DefaultPricingSettings(),
	}
}

// Load performs the session-start reload of both collections. Later
// mutations patch memory incrementally instead of re-fetching.
func (s *CostStore) Load(ctx context.Context) error {
	var ingredients []models.Ingredient
	if err := s.docs.ListAll(ctx, CollectionIngredients, &ingredients); err != nil {
		return fmt.Errorf("load ingredients: %w", err)
	}

	var extras []models.ExtraCost
	if err := s.docs.ListAll(ctx, CollectionExtraCosts, &extras); err != nil {
		return fmt.Errorf("load extra costs: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ingredients = make(map[string]models.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		s.ingredients[ing.ID] = ing
	}
	s.extraCosts = make(map[string]models.ExtraCost, len(extras))
	for _, extra := range extras {
		s.extraCosts[extra.ID] = extra
	}

	s.logger.Info("cost collections loaded",
		zap.Int("ingredients", len(ingredients)),
		zap.Int("extra_costs", len(extras)))
	return nil
}

// AddIngredient validates and persists a new ingredient, then registers it in
// memory under the id assigned by the document store.
func (s *CostStore) AddIngredient(ctx context.Context, ing models.Ingredient) (models.Ingredient, error) {
	ing.ID = ""
	if err := ing.Validate(); err != nil {
		return models.Ingredient{}, err
	}

	id, err := s.docs.Create(ctx, CollectionIngredients, ing)
	if err != nil {
		return models.Ingredient{}, fmt.Errorf("persist ingredient: %w", err)
	}
	ing.ID = id

	s.mu.Lock()
	s.ingredients[id] = ing
	s.mu.Unlock()

	s.logger.Debug("ingredient added", zap.String("id", id), zap.String("name", ing.Name))
	return ing, nil
}

// UpdateIngredient applies a partial update to an existing ingredient. The
// patched record is validated as a whole before the durable write.
func (s *CostStore) UpdateIngredient(ctx context.Context, id string, patch models.IngredientPatch) (models.Ingredient, error) {
	s.mu.RLock()
	current, ok := s.ingredients[id]
	s.mu.RUnlock()
	if !ok {
		return models.Ingredient{}, fmt.Errorf("ingredient %s: %w", id, ErrNotFound)
	}

	patched := patch.ApplyTo(current)
	if err := patched.Validate(); err != nil {
		return models.Ingredient{}, err
	}

	if err := s.docs.Update(ctx, CollectionIngredients, id, patch); err != nil {
		return models.Ingredient{}, fmt.Errorf("persist ingredient update: %w", err)
	}

	s.mu.Lock()
	s.ingredients[id] = patched
	s.mu.Unlock()
	return patched, nil
}

// DeleteIngredient removes an ingredient by id. Removal is immediate and
// irreversible; there is no soft delete.
func (s *CostStore) DeleteIngredient(ctx context.Context, id string) error {
	s.mu.RLock()
	_, ok := s.ingredients[id]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("ingredient %s: %w", id, ErrNotFound)
	}

	if err := s.docs.Delete(ctx, CollectionIngredients, id); err != nil {
		return fmt.Errorf("delete ingredient: %w", err)
	}

	s.mu.Lock()
	delete(s.ingredients, id)
	s.mu.Unlock()
	return nil
}

// AddExtraCost validates and persists a new extra cost.
func (s *CostStore) AddExtraCost(ctx context.Context, extra models.ExtraCost) (models.ExtraCost, error) {
	extra.ID = ""
	if err := extra.Validate(); err != nil {
		return models.ExtraCost{}, err
	}

	id, err := s.docs.Create(ctx, CollectionExtraCosts, extra)
	if err != nil {
		return models.ExtraCost{}, fmt.Errorf("persist extra cost: %w", err)
	}
	extra.ID = id

	s.mu.Lock()
	s.extraCosts[id] = extra
	s.mu.Unlock()

	s.logger.Debug("extra cost added", zap.String("id", id), zap.String("name", extra.Name))
	return extra, nil
}

// UpdateExtraCost applies a partial update to an existing extra cost.
func (s *CostStore) UpdateExtraCost(ctx context.Context, id string, patch models.ExtraCostPatch) (models.ExtraCost, error) {
	s.mu.RLock()
	current, ok := s.extraCosts[id]
	s.mu.RUnlock()
	if !ok {
		return models.ExtraCost{}, fmt.Errorf("extra cost %s: %w", id, ErrNotFound)
	}

	patched := patch.ApplyTo(current)
	if err := patched.Validate(); err != nil {
		return models.ExtraCost{}, err
	}

	if err := s.docs.Update(ctx, CollectionExtraCosts, id, patch); err != nil {
		return models.ExtraCost{}, fmt.Errorf("persist extra cost update: %w", err)
	}

	s.mu.Lock()
	s.extraCosts[id] = patched
	s.mu.Unlock()
	return patched, nil
}

// DeleteExtraCost removes an extra cost by id.
func (s *CostStore) DeleteExtraCost(ctx context.Context, id string) error {
	s.mu.RLock()
	_, ok := s.extraCosts[id]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("extra cost %s: %w", id, ErrNotFound)
	}

	if err := s.docs.Delete(ctx, CollectionExtraCosts, id); err != nil {
		return fmt.Errorf("delete extra cost: %w", err)
	}

	s.mu.Lock()
	delete(s.extraCosts, id)
	s.mu.Unlock()
	return nil
}

// SetProfitMargin updates the margin-on-price percentage. Values at or above
// 100 are rejected before they can poison the price with a division by zero.
func (s *CostStore) SetProfitMargin(margin float64) error {
	if err := models.ValidateProfitMargin(margin); err != nil {
		return err
	}
	s.mu.Lock()
	s.settings.ProfitMargin = margin
	s.mu.Unlock()
	return nil
}

// SetEggQuantity updates the production run size. Non-positive values are
// rejected so amortization never divides by zero.
func (s *CostStore) SetEggQuantity(quantity int) error {
	if err := models.ValidateEggQuantity(quantity); err != nil {
		return err
	}
	s.mu.Lock()
	s.settings.EggQuantity = quantity
	s.mu.Unlock()
	return nil
}

// Settings returns the current pricing settings.
func (s *CostStore) Settings() models.PricingSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Ingredients returns a copy of the current ingredient collection. No
// ordering is guaranteed; display order is a presentation concern.
func (s *CostStore) Ingredients() []models.Ingredient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Ingredient, 0, len(s.ingredients))
	for _, ing := range s.ingredients {
		out = append(out, ing)
	}
	return out
}

// ExtraCosts returns a copy of the current extra cost collection.
func (s *CostStore) ExtraCosts() []models.ExtraCost {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ExtraCost, 0, len(s.extraCosts))
	for _, extra := range s.extraCosts {
		out = append(out, extra)
	}
	return out
}

// Summary recomputes the cost aggregates from current state. Nothing is
// cached, so reads never observe stale totals.
func (s *CostStore) Summary() models.CostSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ingredients := make([]models.Ingredient, 0, len(s.ingredients))
	for _, ing := range s.ingredients {
		ingredients = append(ingredients, ing)
	}
	extras := make([]models.ExtraCost, 0, len(s.extraCosts))
	for _, extra := range s.extraCosts {
		extras = append(extras, extra)
	}

	return costing.Summarize(ingredients, extras, s.settings)
}
