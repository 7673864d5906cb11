package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/services"
)

// BucketHandler handles bucket configuration and summary requests.
type BucketHandler struct {
	bucketService services.BucketServicer
	facade        *services.Facade
}

// NewBucketHandler creates a new BucketHandler.
func NewBucketHandler(bucketService services.BucketServicer, facade *services.Facade) *BucketHandler {
	return &BucketHandler{bucketService: bucketService, facade: facade}
}

// CreateBucketRequest represents the request payload for creating a bucket.
type CreateBucketRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	BudgetCap *int64 `json:"budget_cap" binding:"omitempty,gt=0"`
}

// CreateBucket handles the creation of a new bucket.
// @Summary     Create a bucket
// @Description Create a named sub-ledger for grouping transactions
// @Tags        buckets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBucketRequest true "Bucket details"
// @Success     201 {object} models.Bucket "Bucket created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /buckets [post]
func (h *BucketHandler) CreateBucket(c *gin.Context) {
	var req CreateBucketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	bucket, err := h.bucketService.CreateBucket(req.Name, req.BudgetCap)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"bucket": bucket})
}

// GetBuckets handles listing all buckets.
// @Summary     Get buckets
// @Tags        buckets
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Bucket "Buckets"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /buckets [get]
func (h *BucketHandler) GetBuckets(c *gin.Context) {
	buckets, err := h.bucketService.GetBuckets()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"buckets": buckets})
}

// GetBucket handles retrieving a specific bucket.
// @Summary     Get bucket by ID
// @Tags        buckets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Bucket ID"
// @Success     200 {object} models.Bucket "Bucket details"
// @Failure     400 {object} ErrorResponse "Invalid bucket ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bucket not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /buckets/{id} [get]
func (h *BucketHandler) GetBucket(c *gin.Context) {
	bucketID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	bucket, err := h.bucketService.GetBucketByID(bucketID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bucket": bucket})
}

// GetBucketSummary handles the cumulative bucket summary query.
// @Summary     Get bucket summary
// @Description Cumulative inflow/outflow/balance over the bucket's history
// @Tags        buckets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Bucket ID"
// @Success     200 {object} services.BucketSummary "Bucket summary"
// @Failure     400 {object} ErrorResponse "Invalid bucket ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bucket not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /buckets/{id}/summary [get]
func (h *BucketHandler) GetBucketSummary(c *gin.Context) {
	bucketID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.facade.BucketSummary(bucketID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
