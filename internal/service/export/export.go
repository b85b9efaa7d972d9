// Package export serializes the current cost state into the three-section
// cost report: ingredients, extra costs, and the pricing summary.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/ovolab/eggcost/internal/costing"
	"github.com/ovolab/eggcost/internal/domain/models"
	"github.com/ovolab/eggcost/internal/repository/sheets"
	"github.com/ovolab/eggcost/pkg/money"
)

// ReportFilename is the attachment name offered for CSV downloads.
const ReportFilename = "easter_egg_cost_report.csv"

// CostSource provides the state the report is built from. *store.CostStore
// satisfies it.
type CostSource interface {
	Ingredients() []models.Ingredient
	ExtraCosts() []models.ExtraCost
	Settings() models.PricingSettings
	Summary() models.CostSummary
}

// Service renders cost reports as CSV bytes or spreadsheet rows.
type Service struct {
	source CostSource
	sheets sheets.Repository
	logger *zap.Logger
}

// NewService wires a report exporter. The sheets repository may be nil when
// spreadsheet export is not configured.
func NewService(source CostSource, sheetsRepo sheets.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, sheets: sheetsRepo, logger: logger}
}

// BuildRows assembles the report rows in section order: ingredients with a
// grand total, extra costs with a grand total, then the pricing summary.
func BuildRows(ingredients []models.Ingredient, extras []models.ExtraCost, settings models.PricingSettings, summary models.CostSummary) [][]string {
	rows := [][]string{
		{"Easter Egg Cost Report"},
		{},
		{"INGREDIENTS"},
		{"Name", "Unit", "Price per Unit", "Quantity per Egg", "Cost per Egg"},
	}

	for _, ing := range ingredients {
		rows = append(rows, []string{
			ing.Name,
			string(ing.Unit),
			money.Format(ing.PricePerUnit),
			strconv.FormatFloat(ing.QuantityPerEgg, 'f', -1, 64),
			money.Format(costing.IngredientCost(ing)),
		})
	}
	rows = append(rows,
		[]string{"Total Ingredients", "", "", "", money.Format(summary.IngredientCost)},
		[]string{},
		[]string{"EXTRA COSTS"},
		[]string{"Name", "Cost", "Kind", "Cost per Egg"},
	)

	for _, extra := range extras {
		rows = append(rows, []string{
			extra.Name,
			money.Format(extra.Cost),
			string(extra.Kind),
			money.Format(costing.ExtraCostPerEgg(extra, settings.EggQuantity)),
		})
	}
	rows = append(rows,
		[]string{"Total Extra Costs", "", "", money.Format(summary.ExtraCostPerEgg)},
		[]string{},
		[]string{"SUMMARY"},
		[]string{"Egg Quantity", strconv.Itoa(summary.EggQuantity)},
		[]string{"Total Cost per Egg", money.Format(summary.TotalCostPerEgg)},
		[]string{"Profit Margin", strconv.FormatFloat(summary.ProfitMargin, 'f', -1, 64) + "%"},
		[]string{"Suggested Price", money.Format(summary.SuggestedPrice)},
		[]string{"Profit", money.Format(summary.Profit)},
	)

	return rows
}

// CSV renders the current report as CSV bytes ready for download.
func (s *Service) CSV() ([]byte, error) {
	rows := BuildRows(s.source.Ingredients(), s.source.ExtraCosts(), s.source.Settings(), s.source.Summary())

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, row := range rows {
		if len(row) == 0 {
			row = []string{""} // blank separator line between sections
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write report row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush report: %w", err)
	}

	return buf.Bytes(), nil
}

// PushToSheet appends the current report to the configured spreadsheet range.
func (s *Service) PushToSheet(ctx context.Context, sheetRange string) error {
	if s.sheets == nil {
		return fmt.Errorf("spreadsheet export is not configured")
	}

	rows := BuildRows(s.source.Ingredients(), s.source.ExtraCosts(), s.source.Settings(), s.source.Summary())
	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		cells := make([]interface{}, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		values = append(values, cells)
	}

	if err := s.sheets.AppendRows(ctx, sheetRange, values); err != nil {
		return fmt.Errorf("push report to sheet: %w", err)
	}

	s.logger.Info("report pushed to spreadsheet", zap.String("range", sheetRange), zap.Int("rows", len(values)))
	return nil
}
