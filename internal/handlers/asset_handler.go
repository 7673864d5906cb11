package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/services"
)

// AssetHandler handles asset configuration and holding requests.
type AssetHandler struct {
	portfolioService services.PortfolioServicer
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(portfolioService services.PortfolioServicer) *AssetHandler {
	return &AssetHandler{portfolioService: portfolioService}
}

// CreateAssetRequest represents the request payload for creating an asset.
type CreateAssetRequest struct {
	CategoryID string `json:"category_id" binding:"required,uuid"`
	Name       string `json:"name" binding:"required,min=1,max=100"`
	Unit       string `json:"unit" binding:"required,min=1,max=20"`
	Notes      string `json:"notes" binding:"omitempty,max=500"`
}

// RecordHoldingRequest represents the request payload for recording a holding.
type RecordHoldingRequest struct {
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	RecordedAt *time.Time      `json:"recorded_at"`
}

// CreateAsset handles the creation of a new asset.
// @Summary     Create an asset
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAssetRequest true "Asset details"
// @Success     201 {object} models.Asset "Asset created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset, err := h.portfolioService.CreateAsset(req.CategoryID, req.Name, req.Unit, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

// GetAssets handles listing all assets.
// @Summary     Get assets
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Asset "Assets"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets [get]
func (h *AssetHandler) GetAssets(c *gin.Context) {
	assets, err := h.portfolioService.GetAssets()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

// RecordHolding handles appending a quantity observation for an asset.
// @Summary     Record asset holding
// @Description Append a point-in-time quantity observation for an asset
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Asset ID"
// @Param       request body RecordHoldingRequest true "Holding details"
// @Success     201 {object} models.AssetHolding "Holding recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id}/holdings [post]
func (h *AssetHandler) RecordHolding(c *gin.Context) {
	assetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var recordedAt time.Time
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}

	holding, err := h.portfolioService.RecordHolding(assetID, req.Quantity, recordedAt)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"holding": holding})
}
