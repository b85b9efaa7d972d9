package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/ovolab/eggcost/internal/domain/models"
)

// ---------------------------------------------------------------------------
// Mock DocumentStore
// ---------------------------------------------------------------------------

type mockDocumentStore struct {
	createFunc  func(ctx context.Context, collection string, doc any) (string, error)
	updateFunc  func(ctx context.Context, collection, id string, patch any) error
	deleteFunc  func(ctx context.Context, collection, id string) error
	listAllFunc func(ctx context.Context, collection string, out any) error

	createCalls int
	updateCalls int
	deleteCalls int
}

func (m *mockDocumentStore) Create(ctx context.Context, collection string, doc any) (string, error) {
	m.createCalls++
	if m.createFunc != nil {
		return m.createFunc(ctx, collection, doc)
	}
	return fmt.Sprintf("id-%d", m.createCalls), nil
}

func (m *mockDocumentStore) Update(ctx context.Context, collection, id string, patch any) error {
	m.updateCalls++
	if m.updateFunc != nil {
		return m.updateFunc(ctx, collection, id, patch)
	}
	return nil
}

func (m *mockDocumentStore) Delete(ctx context.Context, collection, id string) error {
	m.deleteCalls++
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, collection, id)
	}
	return nil
}

func (m *mockDocumentStore) ListAll(ctx context.Context, collection string, out any) error {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx, collection, out)
	}
	return nil
}

func validIngredient() models.Ingredient {
	return models.Ingredient{Name: "chocolate", Unit: models.UnitKilogram, PricePerUnit: 25, QuantityPerEgg: 0.2}
}

func validExtraCost() models.ExtraCost {
	return models.ExtraCost{Name: "gas", Cost: 50, Kind: models.CostAmortized}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestAddIngredient_PersistsAndAssignsID(t *testing.T) {
	ctx := context.Background()
	mock := &mockDocumentStore{
		createFunc: func(_ context.Context, collection string, _ any) (string, error) {
			if collection != CollectionIngredients {
				t.Errorf("expected collection %q, got %q", CollectionIngredients, collection)
			}
			return "ing-1", nil
		},
	}
	s := New(mock, nil)

	added, err := s.AddIngredient(ctx, validIngredient())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added.ID != "ing-1" {
		t.Errorf("expected assigned id ing-1, got %q", added.ID)
	}
	if got := s.Ingredients(); len(got) != 1 || got[0].ID != "ing-1" {
		t.Errorf("expected one stored ingredient with id ing-1, got %v", got)
	}
}

func TestAddIngredient_InvalidRejectedBeforePersistence(t *testing.T) {
	ctx := context.Background()
	mock := &mockDocumentStore{}
	s := New(mock, nil)

	bad := validIngredient()
	bad.PricePerUnit = -1

	if _, err := s.AddIngredient(ctx, bad); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if mock.createCalls != 0 {
		t.Errorf("document store must not be called for invalid records, got %d calls", mock.createCalls)
	}
	if len(s.Ingredients()) != 0 {
		t.Errorf("in-memory state must stay unchanged after rejection")
	}
}

func TestAddIngredient_PersistenceFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	backendErr := errors.New("backend down")
	mock := &mockDocumentStore{
		createFunc: func(context.Context, string, any) (string, error) { return "", backendErr },
	}
	s := New(mock, nil)

	if _, err := s.AddIngredient(ctx, validIngredient()); !errors.Is(err, backendErr) {
		t.Fatalf("expected wrapped backend error, got %v", err)
	}
	if len(s.Ingredients()) != 0 {
		t.Errorf("failed write must not be applied in memory")
	}
}

func TestUpdateIngredient_AppliesPatch(t *testing.T) {
	ctx := context.Background()
	s := New(&mockDocumentStore{}, nil)
	added, err := s.AddIngredient(ctx, validIngredient())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	newPrice := 30.0
	updated, err := s.UpdateIngredient(ctx, added.ID, models.IngredientPatch{PricePerUnit: &newPrice})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.PricePerUnit != 30 {
		t.Errorf("expected patched price 30, got %v", updated.PricePerUnit)
	}
	if updated.Name != "chocolate" || updated.ID != added.ID {
		t.Errorf("untouched fields must survive the patch: %+v", updated)
	}
}

func TestUpdateIngredient_InvalidPatchRejected(t *testing.T) {
	ctx := context.Background()
	mock := &mockDocumentStore{}
	s := New(mock, nil)
	added, _ := s.AddIngredient(ctx, validIngredient())
	persistCalls := mock.updateCalls

	negative := -5.0
	if _, err := s.UpdateIngredient(ctx, added.ID, models.IngredientPatch{QuantityPerEgg: &negative}); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if mock.updateCalls != persistCalls {
		t.Errorf("invalid patch must not reach the document store")
	}
	if got := s.Ingredients()[0]; got.QuantityPerEgg != 0.2 {
		t.Errorf("record must stay unchanged, got %+v", got)
	}
}

func TestUpdateIngredient_UnknownID(t *testing.T) {
	s := New(&mockDocumentStore{}, nil)

	if _, err := s.UpdateIngredient(context.Background(), "missing", models.IngredientPatch{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteIngredient_RoundTripRestoresCollection(t *testing.T) {
	ctx := context.Background()
	s := New(&mockDocumentStore{}, nil)

	added, err := s.AddIngredient(ctx, validIngredient())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.DeleteIngredient(ctx, added.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Ingredients()) != 0 {
		t.Errorf("add followed by delete must restore the empty collection")
	}
	if err := s.DeleteIngredient(ctx, added.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete must report ErrNotFound, got %v", err)
	}
}

func TestDeleteIngredient_PersistenceFailureKeepsRecord(t *testing.T) {
	ctx := context.Background()
	backendErr := errors.New("network fault")
	mock := &mockDocumentStore{}
	s := New(mock, nil)
	added, _ := s.AddIngredient(ctx, validIngredient())

	mock.deleteFunc = func(context.Context, string, string) error { return backendErr }
	if err := s.DeleteIngredient(ctx, added.ID); !errors.Is(err, backendErr) {
		t.Fatalf("expected wrapped backend error, got %v", err)
	}
	if len(s.Ingredients()) != 1 {
		t.Errorf("record must survive a failed delete")
	}
}

func TestExtraCost_AddUpdateDelete(t *testing.T) {
	ctx := context.Background()
	s := New(&mockDocumentStore{}, nil)

	added, err := s.AddExtraCost(ctx, validExtraCost())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	kind := models.CostPerEgg
	updated, err := s.UpdateExtraCost(ctx, added.ID, models.ExtraCostPatch{Kind: &kind})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Kind != models.CostPerEgg {
		t.Errorf("expected kind perEgg, got %q", updated.Kind)
	}

	if err := s.DeleteExtraCost(ctx, added.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.ExtraCosts()) != 0 {
		t.Errorf("extra cost collection should be empty again")
	}
}

func TestAddExtraCost_NegativeCostRejected(t *testing.T) {
	s := New(&mockDocumentStore{}, nil)
	bad := validExtraCost()
	bad.Cost = -0.01

	if _, err := s.AddExtraCost(context.Background(), bad); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSetProfitMargin_Bounds(t *testing.T) {
	s := New(&mockDocumentStore{}, nil)

	if err := s.SetProfitMargin(100); !errors.Is(err, models.ErrValidation) {
		t.Errorf("margin 100 must be rejected, got %v", err)
	}
	if err := s.SetProfitMargin(-1); !errors.Is(err, models.ErrValidation) {
		t.Errorf("negative margin must be rejected, got %v", err)
	}
	if err := s.SetProfitMargin(0); err != nil {
		t.Errorf("margin 0 is valid, got %v", err)
	}
	if err := s.SetProfitMargin(99.9); err != nil {
		t.Errorf("margin 99.9 is valid, got %v", err)
	}
	if got := s.Settings().ProfitMargin; got != 99.9 {
		t.Errorf("expected margin 99.9 applied, got %v", got)
	}
}

func TestSetEggQuantity_RejectsNonPositive(t *testing.T) {
	s := New(&mockDocumentStore{}, nil)

	if err := s.SetEggQuantity(0); !errors.Is(err, models.ErrValidation) {
		t.Errorf("quantity 0 must be rejected, got %v", err)
	}
	if err := s.SetEggQuantity(-3); !errors.Is(err, models.ErrValidation) {
		t.Errorf("negative quantity must be rejected, got %v", err)
	}
	if err := s.SetEggQuantity(25); err != nil {
		t.Errorf("quantity 25 is valid, got %v", err)
	}
	if got := s.Settings().EggQuantity; got != 25 {
		t.Errorf("expected quantity 25 applied, got %v", got)
	}
}

func TestSummary_RecomputedAfterEachMutation(t *testing.T) {
	ctx := context.Background()
	s := New(&mockDocumentStore{}, nil)

	if got := s.Summary().TotalCostPerEgg; got != 0 {
		t.Fatalf("empty store must cost zero, got %v", got)
	}

	added, _ := s.AddIngredient(ctx, validIngredient())
	if _, err := s.AddExtraCost(ctx, validExtraCost()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary := s.Summary()
	if math.Abs(summary.TotalCostPerEgg-10) > 1e-9 {
		t.Errorf("expected total cost 10, got %v", summary.TotalCostPerEgg)
	}
	if math.Abs(summary.SuggestedPrice-10/0.6) > 1e-9 {
		t.Errorf("expected suggested price %v, got %v", 10/0.6, summary.SuggestedPrice)
	}

	if err := s.DeleteIngredient(ctx, added.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Summary().IngredientCost; got != 0 {
		t.Errorf("summary must reflect the delete immediately, got %v", got)
	}
}

func TestLoad_PopulatesCollections(t *testing.T) {
	mock := &mockDocumentStore{
		listAllFunc: func(_ context.Context, collection string, out any) error {
			switch collection {
			case CollectionIngredients:
				*out.(*[]models.Ingredient) = []models.Ingredient{
					{ID: "ing-1", Name: "chocolate", Unit: models.UnitKilogram, PricePerUnit: 25, QuantityPerEgg: 0.2},
				}
			case CollectionExtraCosts:
				*out.(*[]models.ExtraCost) = []models.ExtraCost{
					{ID: "ex-1", Name: "gas", Cost: 50, Kind: models.CostAmortized},
				}
			default:
				t.Errorf("unexpected collection %q", collection)
			}
			return nil
		},
	}
	s := New(mock, nil)

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Ingredients()) != 1 || len(s.ExtraCosts()) != 1 {
		t.Errorf("expected one record per collection, got %d/%d", len(s.Ingredients()), len(s.ExtraCosts()))
	}
}

func TestLoad_PropagatesBackendError(t *testing.T) {
	backendErr := errors.New("unreachable")
	mock := &mockDocumentStore{
		listAllFunc: func(context.Context, string, any) error { return backendErr },
	}
	s := New(mock, nil)

	if err := s.Load(context.Background()); !errors.Is(err, backendErr) {
		t.Fatalf("expected wrapped backend error, got %v", err)
	}
}
