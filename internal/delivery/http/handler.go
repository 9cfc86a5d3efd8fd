package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grocermatch/backend/internal/domain"
)

// PricingUsecase is the slice of the pricing service the handler needs;
// narrowed to an interface so handler tests can run against a fake.
type PricingUsecase interface {
	PriceIngredients(ctx context.Context, ingredients []domain.Ingredient, servings int, locationID string) (*domain.RecipePricingSummary, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	pricing           PricingUsecase
	defaultLocationID string
}

// NewHandler creates a new HTTP handler
func NewHandler(pricing PricingUsecase, defaultLocationID string) *Handler {
	return &Handler{pricing: pricing, defaultLocationID: defaultLocationID}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "grocermatch-backend",
		"version": "1.0.0",
	})
}

// PriceRecipe handles recipe pricing requests: it matches every
// ingredient against the retailer catalog and returns the cost summary.
func (h *Handler) PriceRecipe(c *gin.Context) {
	var req domain.PriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	locationID := req.LocationID
	if locationID == "" {
		locationID = h.defaultLocationID
	}

	summary, err := h.pricing.PriceIngredients(c.Request.Context(), req.Ingredients, req.Servings, locationID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": "ingredient list is empty or malformed"})
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			// Client went away; whatever completed is still well-formed,
			// but there is nobody left to answer.
			c.Status(http.StatusRequestTimeout)
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "pricing failed: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, priceResponse(summary))
}

// priceResponse decorates the summary with confidence levels for the UI.
func priceResponse(summary *domain.RecipePricingSummary) gin.H {
	levels := make([]string, len(summary.Results))
	for i, r := range summary.Results {
		levels[i] = domain.ConfidenceLevel(r.Confidence)
	}
	return gin.H{
		"summary":          summary,
		"confidenceLevels": levels,
	}
}
