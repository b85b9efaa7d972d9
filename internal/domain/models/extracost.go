package models

import (
	"fmt"
	"strings"
)

// CostKind selects how an extra cost is charged against production.
type CostKind string

const (
	// CostPerEgg marks a cost already expressed per produced egg.
	CostPerEgg CostKind = "perEgg"
	// CostAmortized marks a lump sum spread across the whole production run.
	CostAmortized CostKind = "amortized"
)

// Valid reports whether the kind belongs to the supported set.
func (k CostKind) Valid() bool {
	return k == CostPerEgg || k == CostAmortized
}

// ExtraCost is a non-ingredient production cost, such as packaging or gas.
type ExtraCost struct {
	ID   string   `bson:"_id,omitempty" json:"id"`
	Name string   `bson:"name" json:"name"`
	Cost float64  `bson:"cost" json:"cost"`
	Kind CostKind `bson:"kind" json:"kind"`
}

// Validate checks the extra cost invariants.
func (e ExtraCost) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: extra cost name must not be empty", ErrValidation)
	}
	if e.Cost < 0 {
		return fmt.Errorf("%w: cost must not be negative", ErrValidation)
	}
	if !e.Kind.Valid() {
		return fmt.Errorf("%w: unknown cost kind %q", ErrValidation, e.Kind)
	}
	return nil
}

// ExtraCostPatch carries a partial extra cost update.
type ExtraCostPatch struct {
	Name *string   `bson:"name,omitempty" json:"name,omitempty"`
	Cost *float64  `bson:"cost,omitempty" json:"cost,omitempty"`
	Kind *CostKind `bson:"kind,omitempty" json:"kind,omitempty"`
}

// ApplyTo returns a copy of the extra cost with the patch fields replaced.
func (p ExtraCostPatch) ApplyTo(extra ExtraCost) ExtraCost {
	if p.Name != nil {
		extra.Name = *p.Name
	}
	if p.Cost != nil {
		extra.Cost = *p.Cost
	}
	if p.Kind != nil {
		extra.Kind = *p.Kind
	}
	return extra
}
