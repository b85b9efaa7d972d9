// Package costing implements the pure cost and pricing arithmetic. All
// functions are side-effect-free folds over their inputs; no rounding happens
// here, formatting is left to the presentation layer.
package costing

import "github.com/ovolab/eggcost/internal/domain/models"

// IngredientCost returns the cost an ingredient contributes to one egg.
func IngredientCost(ing models.Ingredient) float64 {
	return ing.PricePerUnit * ing.QuantityPerEgg
}

// TotalIngredientCost sums IngredientCost over the collection. An empty
// collection costs zero.
func TotalIngredientCost(ingredients []models.Ingredient) float64 {
	var total float64
	for _, ing := range ingredients {
		total += IngredientCost(ing)
	}
	return total
}

// ExtraCostPerEgg returns the per-egg share of an extra cost. Per-egg costs
// pass through unchanged; amortized costs are spread across the run.
// eggQuantity must be positive, which the settings boundary guarantees.
func ExtraCostPerEgg(extra models.ExtraCost, eggQuantity int) float64 {
	if extra.Kind == models.CostPerEgg {
		return extra.Cost
	}
	return extra.Cost / float64(eggQuantity)
}

// TotalExtraCostPerEgg sums ExtraCostPerEgg over the collection.
func TotalExtraCostPerEgg(extras []models.ExtraCost, eggQuantity int) float64 {
	var total float64
	for _, extra := range extras {
		total += ExtraCostPerEgg(extra, eggQuantity)
	}
	return total
}

// TotalCostPerEgg is the authoritative per-egg production cost.
func TotalCostPerEgg(ingredients []models.Ingredient, extras []models.ExtraCost, eggQuantity int) float64 {
	return TotalIngredientCost(ingredients) + TotalExtraCostPerEgg(extras, eggQuantity)
}

// SuggestedPrice derives a sale price so that profit equals profitMargin
// percent of the price itself (margin-on-price, not margin-on-cost): at a 40%
// margin a cost of 6.00 prices at 10.00. profitMargin must be below 100.
func SuggestedPrice(totalCost, profitMargin float64) float64 {
	return totalCost / (1 - profitMargin/100)
}

// Profit is the per-egg difference between sale price and production cost.
func Profit(price, cost float64) float64 {
	return price - cost
}

// Summarize computes the full cost summary for the given records and settings.
func Summarize(ingredients []models.Ingredient, extras []models.ExtraCost, settings models.PricingSettings) models.CostSummary {
	ingredientCost := TotalIngredientCost(ingredients)
	extraCost := TotalExtraCostPerEgg(extras, settings.EggQuantity)
	totalCost := ingredientCost + extraCost
	price := SuggestedPrice(totalCost, settings.ProfitMargin)

	return models.CostSummary{
		EggQuantity:     settings.EggQuantity,
		IngredientCost:  ingredientCost,
		ExtraCostPerEgg: extraCost,
		TotalCostPerEgg: totalCost,
		ProfitMargin:    settings.ProfitMargin,
		SuggestedPrice:  price,
		Profit:          Profit(price, totalCost),
	}
}
