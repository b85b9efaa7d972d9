package models

import "time"

// CostSnapshot is a point-in-time capture of the cost summary, persisted by
// the snapshot scheduler so price evolution can be inspected later.
type CostSnapshot struct {
	Summary         CostSummary `bson:"summary" json:"summary"`
	IngredientCount int         `bson:"ingredientCount" json:"ingredientCount"`
	ExtraCostCount  int         `bson:"extraCostCount" json:"extraCostCount"`
	TakenAt         time.Time   `bson:"takenAt" json:"takenAt"`
}
