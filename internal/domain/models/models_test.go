package models

import (
	"errors"
	"testing"
)

func TestIngredientValidate(t *testing.T) {
	valid := Ingredient{Name: "chocolate", Unit: UnitKilogram, PricePerUnit: 25, QuantityPerEgg: 0.2}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := map[string]func(Ingredient) Ingredient{
		"empty name":        func(i Ingredient) Ingredient { i.Name = "  "; return i },
		"unknown unit":      func(i Ingredient) Ingredient { i.Unit = "lb"; return i },
		"negative price":    func(i Ingredient) Ingredient { i.PricePerUnit = -1; return i },
		"negative quantity": func(i Ingredient) Ingredient { i.QuantityPerEgg = -0.1; return i },
	}
	for name, mutate := range cases {
		if err := mutate(valid).Validate(); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", name, err)
		}
	}
}

func TestExtraCostValidate(t *testing.T) {
	valid := ExtraCost{Name: "gas", Cost: 50, Kind: CostAmortized}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := map[string]func(ExtraCost) ExtraCost{
		"empty name":    func(e ExtraCost) ExtraCost { e.Name = ""; return e },
		"negative cost": func(e ExtraCost) ExtraCost { e.Cost = -1; return e },
		"unknown kind":  func(e ExtraCost) ExtraCost { e.Kind = "flat"; return e },
	}
	for name, mutate := range cases {
		if err := mutate(valid).Validate(); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", name, err)
		}
	}
}

func TestIngredientPatchApplyTo(t *testing.T) {
	base := Ingredient{ID: "ing-1", Name: "chocolate", Unit: UnitKilogram, PricePerUnit: 25, QuantityPerEgg: 0.2}

	name := "white chocolate"
	price := 32.5
	patched := IngredientPatch{Name: &name, PricePerUnit: &price}.ApplyTo(base)

	if patched.Name != name || patched.PricePerUnit != price {
		t.Errorf("patched fields not applied: %+v", patched)
	}
	if patched.ID != "ing-1" || patched.Unit != UnitKilogram || patched.QuantityPerEgg != 0.2 {
		t.Errorf("unpatched fields must be preserved: %+v", patched)
	}
	if base.Name != "chocolate" {
		t.Errorf("ApplyTo must not mutate its input, got %+v", base)
	}
}

func TestPricingSettingsValidate(t *testing.T) {
	if err := DefaultPricingSettings().Validate(); err != nil {
		t.Fatalf("defaults must be valid: %v", err)
	}
	if err := (PricingSettings{ProfitMargin: 100, EggQuantity: 10}).Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("margin 100 must be rejected, got %v", err)
	}
	if err := (PricingSettings{ProfitMargin: 40, EggQuantity: 0}).Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("quantity 0 must be rejected, got %v", err)
	}
}
