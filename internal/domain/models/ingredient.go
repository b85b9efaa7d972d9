package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation indicates a record or setting violates a domain invariant.
// Mutations failing this check are rejected before any persistence attempt.
var ErrValidation = errors.New("validation failed")

// Unit identifies the purchase unit of measure for an ingredient.
type Unit string

const (
	UnitKilogram   Unit = "kg"
	UnitGram       Unit = "g"
	UnitLiter      Unit = "l"
	UnitMilliliter Unit = "ml"
	UnitPiece      Unit = "un"
	UnitBox        Unit = "cx"
)

// Valid reports whether the unit belongs to the supported set.
func (u Unit) Valid() bool {
	switch u {
	case UnitKilogram, UnitGram, UnitLiter, UnitMilliliter, UnitPiece, UnitBox:
		return true
	}
	return false
}

// Ingredient is a raw material consumed by each produced egg. The cost it
// contributes per egg is PricePerUnit multiplied by QuantityPerEgg.
type Ingredient struct {
	ID             string  `bson:"_id,omitempty" json:"id"`
	Name           string  `bson:"name" json:"name"`
	Unit           Unit    `bson:"unit" json:"unit"`
	PricePerUnit   float64 `bson:"pricePerUnit" json:"pricePerUnit"`
	QuantityPerEgg float64 `bson:"quantityPerEgg" json:"quantityPerEgg"`
}

// Validate checks the ingredient invariants.
func (i Ingredient) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("%w: ingredient name must not be empty", ErrValidation)
	}
	if !i.Unit.Valid() {
		return fmt.Errorf("%w: unknown unit %q", ErrValidation, i.Unit)
	}
	if i.PricePerUnit < 0 {
		return fmt.Errorf("%w: price per unit must not be negative", ErrValidation)
	}
	if i.QuantityPerEgg < 0 {
		return fmt.Errorf("%w: quantity per egg must not be negative", ErrValidation)
	}
	return nil
}

// IngredientPatch carries a partial ingredient update. Nil fields are left
// untouched; the record id is immutable.
type IngredientPatch struct {
	Name           *string  `bson:"name,omitempty" json:"name,omitempty"`
	Unit           *Unit    `bson:"unit,omitempty" json:"unit,omitempty"`
	PricePerUnit   *float64 `bson:"pricePerUnit,omitempty" json:"pricePerUnit,omitempty"`
	QuantityPerEgg *float64 `bson:"quantityPerEgg,omitempty" json:"quantityPerEgg,omitempty"`
}

// ApplyTo returns a copy of the ingredient with the patch fields replaced.
func (p IngredientPatch) ApplyTo(ing Ingredient) Ingredient {
	if p.Name != nil {
		ing.Name = *p.Name
	}
	if p.Unit != nil {
		ing.Unit = *p.Unit
	}
	if p.PricePerUnit != nil {
		ing.PricePerUnit = *p.PricePerUnit
	}
	if p.QuantityPerEgg != nil {
		ing.QuantityPerEgg = *p.QuantityPerEgg
	}
	return ing
}
