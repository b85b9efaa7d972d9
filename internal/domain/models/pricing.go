package models

import "fmt"

const (
	// DefaultProfitMargin is the starting margin-on-price percentage.
	DefaultProfitMargin = 40.0
	// DefaultEggQuantity is the starting production run size.
	DefaultEggQuantity = 10
)

// PricingSettings holds the session parameters the cost aggregates depend on.
type PricingSettings struct {
	// ProfitMargin is a margin-on-price percentage in [0, 100). A margin of
	// 100 would make the suggested price divide by zero and is rejected.
	ProfitMargin float64 `json:"profitMargin"`
	// EggQuantity is the production run size fixed extra costs are
	// amortized across. Must be positive.
	EggQuantity int `json:"eggQuantity"`
}

// DefaultPricingSettings returns the settings a fresh session starts with.
func DefaultPricingSettings() PricingSettings {
	return PricingSettings{ProfitMargin: DefaultProfitMargin, EggQuantity: DefaultEggQuantity}
}

// ValidateProfitMargin checks the margin stays inside [0, 100).
func ValidateProfitMargin(margin float64) error {
	if margin < 0 {
		return fmt.Errorf("%w: profit margin must not be negative", ErrValidation)
	}
	if margin >= 100 {
		return fmt.Errorf("%w: profit margin must be below 100%%", ErrValidation)
	}
	return nil
}

// ValidateEggQuantity checks the production run size is positive.
func ValidateEggQuantity(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: egg quantity must be positive", ErrValidation)
	}
	return nil
}

// Validate checks both settings.
func (s PricingSettings) Validate() error {
	if err := ValidateProfitMargin(s.ProfitMargin); err != nil {
		return err
	}
	return ValidateEggQuantity(s.EggQuantity)
}

// CostSummary aggregates the engine outputs for one production run.
type CostSummary struct {
	EggQuantity     int     `bson:"eggQuantity" json:"eggQuantity"`
	IngredientCost  float64 `bson:"ingredientCost" json:"ingredientCost"`
	ExtraCostPerEgg float64 `bson:"extraCostPerEgg" json:"extraCostPerEgg"`
	TotalCostPerEgg float64 `bson:"totalCostPerEgg" json:"totalCostPerEgg"`
	ProfitMargin    float64 `bson:"profitMargin" json:"profitMargin"`
	SuggestedPrice  float64 `bson:"suggestedPrice" json:"suggestedPrice"`
	Profit          float64 `bson:"profit" json:"profit"`
}
