package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ovolab/eggcost/internal/domain/models"
	"github.com/ovolab/eggcost/internal/store"
	"github.com/ovolab/eggcost/pkg/money"
)

// CostService defines the cost store operations the HTTP layer depends on.
// *store.CostStore satisfies it.
type CostService interface {
	Ingredients() []models.Ingredient
	AddIngredient(ctx context.Context, ing models.Ingredient) (models.Ingredient, error)
	UpdateIngredient(ctx context.Context, id string, patch models.IngredientPatch) (models.Ingredient, error)
	DeleteIngredient(ctx context.Context, id string) error

	ExtraCosts() []models.ExtraCost
	AddExtraCost(ctx context.Context, extra models.ExtraCost) (models.ExtraCost, error)
	UpdateExtraCost(ctx context.Context, id string, patch models.ExtraCostPatch) (models.ExtraCost, error)
	DeleteExtraCost(ctx context.Context, id string) error

	Settings() models.PricingSettings
	SetProfitMargin(margin float64) error
	SetEggQuantity(quantity int) error
	Summary() models.CostSummary
}

// CostHandler serves the ingredient, extra cost, settings and summary routes.
type CostHandler struct {
	svc    CostService
	logger *zap.Logger
}

// NewCostHandler constructs the HTTP handler adapter.
func NewCostHandler(svc CostService, logger *zap.Logger) *CostHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CostHandler{svc: svc, logger: logger}
}

// ListIngredients returns the current ingredient collection.
func (h *CostHandler) ListIngredients(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Ingredients())
}

// CreateIngredient registers a new ingredient.
func (h *CostHandler) CreateIngredient(c *gin.Context) {
	var ing models.Ingredient
	if err := c.ShouldBindJSON(&ing); err != nil {
		h.logger.Warn("invalid ingredient payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	added, err := h.svc.AddIngredient(c.Request.Context(), ing)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, added)
}

// UpdateIngredient applies a partial update to an ingredient.
func (h *CostHandler) UpdateIngredient(c *gin.Context) {
	var patch models.IngredientPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Warn("invalid ingredient patch", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.svc.UpdateIngredient(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteIngredient removes an ingredient by id.
func (h *CostHandler) DeleteIngredient(c *gin.Context) {
	if err := h.svc.DeleteIngredient(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListExtraCosts returns the current extra cost collection.
func (h *CostHandler) ListExtraCosts(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ExtraCosts())
}

// CreateExtraCost registers a new extra cost.
func (h *CostHandler) CreateExtraCost(c *gin.Context) {
	var extra models.ExtraCost
	if err := c.ShouldBindJSON(&extra); err != nil {
		h.logger.Warn("invalid extra cost payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	added, err := h.svc.AddExtraCost(c.Request.Context(), extra)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, added)
}

// UpdateExtraCost applies a partial update to an extra cost.
func (h *CostHandler) UpdateExtraCost(c *gin.Context) {
	var patch models.ExtraCostPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Warn("invalid extra cost patch", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.svc.UpdateExtraCost(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteExtraCost removes an extra cost by id.
func (h *CostHandler) DeleteExtraCost(c *gin.Context) {
	if err := h.svc.DeleteExtraCost(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSettings returns the current pricing settings.
func (h *CostHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Settings())
}

type settingsRequest struct {
	ProfitMargin *float64 `json:"profitMargin"`
	EggQuantity  *int     `json:"eggQuantity"`
}

// UpdateSettings applies the provided pricing settings. Out-of-range values
// are rejected before anything is applied.
func (h *CostHandler) UpdateSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid settings payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.ProfitMargin != nil {
		if err := models.ValidateProfitMargin(*req.ProfitMargin); err != nil {
			h.respondError(c, err)
			return
		}
	}
	if req.EggQuantity != nil {
		if err := models.ValidateEggQuantity(*req.EggQuantity); err != nil {
			h.respondError(c, err)
			return
		}
	}

	if req.ProfitMargin != nil {
		if err := h.svc.SetProfitMargin(*req.ProfitMargin); err != nil {
			h.respondError(c, err)
			return
		}
	}
	if req.EggQuantity != nil {
		if err := h.svc.SetEggQuantity(*req.EggQuantity); err != nil {
			h.respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, h.svc.Settings())
}

// GetSummary returns the recomputed cost aggregates plus display-ready
// currency strings.
func (h *CostHandler) GetSummary(c *gin.Context) {
	summary := h.svc.Summary()
	c.JSON(http.StatusOK, gin.H{
		"summary": summary,
		"formatted": gin.H{
			"ingredientCost":  money.Format(summary.IngredientCost),
			"extraCostPerEgg": money.Format(summary.ExtraCostPerEgg),
			"totalCostPerEgg": money.Format(summary.TotalCostPerEgg),
			"suggestedPrice":  money.Format(summary.SuggestedPrice),
			"profit":          money.Format(summary.Profit),
		},
	})
}

func (h *CostHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error("persistence operation failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "persistence operation failed"})
	}
}
