package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ovolab/eggcost/internal/domain/models"
	"github.com/ovolab/eggcost/internal/service/export"
	"github.com/ovolab/eggcost/internal/service/notify"
	"github.com/ovolab/eggcost/internal/store"
)

// Scheduler takes periodic cost snapshots: the current summary is persisted
// to the document store and, when configured, pushed to the report sheet and
// announced on the webhook.
type Scheduler struct {
	cron       *cron.Cron
	costs      *store.CostStore
	docs       store.DocumentStore
	exporter   *export.Service
	notifier   notify.Notifier
	schedule   string
	sheetRange string
	sheetsOn   bool
	logger     *zap.Logger
}

// New creates a snapshot scheduler. notifier may be nil; sheetsOn disables
// the spreadsheet push when the integration is not configured.
func New(schedule string, costs *store.CostStore, docs store.DocumentStore, exporter *export.Service, notifier notify.Notifier, sheetRange string, sheetsOn bool, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:       cron.New(),
		costs:      costs,
		docs:       docs,
		exporter:   exporter,
		notifier:   notifier,
		schedule:   schedule,
		sheetRange: sheetRange,
		sheetsOn:   sheetsOn,
		logger:     logger,
	}
}

// Start registers the snapshot job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting snapshot scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.takeSnapshot); err != nil {
		s.logger.Error("failed to schedule cost snapshot", zap.Error(err))
		return
	}

	s.cron.Start()
}

// Stop stops the cron loop.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping snapshot scheduler")
	s.cron.Stop()
}

func (s *Scheduler) takeSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	snapshot := models.CostSnapshot{
		Summary:         s.costs.Summary(),
		IngredientCount: len(s.costs.Ingredients()),
		ExtraCostCount:  len(s.costs.ExtraCosts()),
		TakenAt:         time.Now().UTC(),
	}

	id, err := s.docs.Create(ctx, store.CollectionSnapshots, snapshot)
	if err != nil {
		s.logger.Error("failed to persist cost snapshot", zap.Error(err))
		return
	}
	s.logger.Info("cost snapshot persisted",
		zap.String("id", id),
		zap.Float64("total_cost_per_egg", snapshot.Summary.TotalCostPerEgg),
		zap.Float64("suggested_price", snapshot.Summary.SuggestedPrice))

	if s.sheetsOn {
		if err := s.exporter.PushToSheet(ctx, s.sheetRange); err != nil {
			s.logger.Error("failed to push snapshot report to sheet", zap.Error(err))
		}
	}

	if s.notifier != nil {
		if err := s.notifier.SendSummary(ctx, snapshot.Summary); err != nil {
			s.logger.Error("failed to notify snapshot webhook", zap.Error(err))
		}
	}
}
