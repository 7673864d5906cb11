package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/services"
)

// AnalyticsHandler serves the aggregation endpoints through the facade.
type AnalyticsHandler struct {
	facade *services.Facade
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(facade *services.Facade) *AnalyticsHandler {
	return &AnalyticsHandler{facade: facade}
}

// parseYearMonth reads the year and optional month query parameters.
func parseYearMonth(c *gin.Context, monthRequired bool) (int, *int, error) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		return 0, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "year must be an integer")
	}

	monthStr := c.Query("month")
	if monthStr == "" {
		if monthRequired {
			return 0, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month is required")
		}
		return year, nil, nil
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return 0, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be an integer")
	}
	return year, &month, nil
}

// GetMonthlyBalance handles the monthly balance query.
// @Summary     Get monthly balance
// @Description Income, expense, and net balance for one calendar month
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year  query int true "Year"
// @Param       month query int true "Month (1-12)"
// @Success     200 {object} services.MonthlyBalance "Monthly balance"
// @Failure     400 {object} ErrorResponse "Invalid period"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics/balance [get]
func (h *AnalyticsHandler) GetMonthlyBalance(c *gin.Context) {
	year, month, err := parseYearMonth(c, true)
	if err != nil {
		respondWithError(c, err)
		return
	}

	balance, err := h.facade.MonthlyBalance(year, *month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// GetHeatmap handles the habit completion heatmap query.
// @Summary     Get heatmap data
// @Description Per-day habit completion intensity for a year or a month
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year  query int true  "Year"
// @Param       month query int false "Month (1-12)"
// @Success     200 {object} map[string]float64 "Date to intensity mapping"
// @Failure     400 {object} ErrorResponse "Invalid period"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics/heatmap [get]
func (h *AnalyticsHandler) GetHeatmap(c *gin.Context) {
	year, month, err := parseYearMonth(c, false)
	if err != nil {
		respondWithError(c, err)
		return
	}

	heatmap, err := h.facade.Heatmap(year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"heatmap": heatmap})
}

// GetPortfolio handles the asset portfolio query.
// @Summary     Get asset portfolio
// @Description Latest holding per asset, grouped by category
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} services.PortfolioGroup "Portfolio groups"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics/portfolio [get]
func (h *AnalyticsHandler) GetPortfolio(c *gin.Context) {
	portfolio, err := h.facade.Portfolio()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": portfolio})
}

// GetVirtualTransactions handles the virtual transaction listing.
// @Summary     Get virtual transactions
// @Description Planned/simulated ledger entries, excluded from all totals
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Transaction "Virtual transactions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/virtual [get]
func (h *AnalyticsHandler) GetVirtualTransactions(c *gin.Context) {
	transactions, err := h.facade.VirtualTransactions()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}
