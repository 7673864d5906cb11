package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/logger"
	"kakeibo/internal/notifier"
	"kakeibo/internal/pagination"
	"kakeibo/internal/services"
)

// TransactionHandler handles ledger write and listing requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	notifier           notifier.Servicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, notifier notifier.Servicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, notifier: notifier}
}

// CreateTransactionRequest represents the request payload for creating a transaction.
type CreateTransactionRequest struct {
	CategoryID  string     `json:"category_id" binding:"required,uuid"`
	BucketID    *string    `json:"bucket_id" binding:"omitempty,uuid"`
	Amount      int64      `json:"amount" binding:"required"`
	Date        *time.Time `json:"date"`
	Description string     `json:"description" binding:"omitempty,max=500"`
	Virtual     bool       `json:"virtual"`
}

// CreateTransaction handles the creation of a new ledger entry.
// @Summary     Create a transaction
// @Description Record a real or virtual ledger entry
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category or bucket not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var date time.Time
	if req.Date != nil {
		date = *req.Date
	}

	transaction, err := h.transactionService.CreateTransaction(
		req.CategoryID, req.BucketID, req.Amount, date, req.Description, req.Virtual,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// Best effort; a failed notification never fails the write.
	if h.notifier.Enabled() && !transaction.Virtual {
		if err := h.notifier.Send("New transaction recorded: " + transaction.Description); err != nil {
			logger.Get().Warnw("transaction notification not delivered", "transaction_id", transaction.ID)
		}
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransactions handles the filtered transaction listing.
// @Summary     Get transactions
// @Description Paginated transaction listing with optional filters
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       from_date   query string false "Inclusive lower date bound (RFC 3339)"
// @Param       to_date     query string false "Inclusive upper date bound (RFC 3339)"
// @Param       category_id query string false "Filter by category"
// @Param       bucket_id   query string false "Filter by bucket"
// @Param       virtual     query bool   false "Filter by virtual flag"
// @Param       page        query int    false "Page number (default 1)"
// @Param       page_size   query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.GetTransactions(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	if v := c.Query("from_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "from_date must be RFC 3339")
		}
		filter.FromDate = &t
	}
	if v := c.Query("to_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "to_date must be RFC 3339")
		}
		filter.ToDate = &t
	}
	if v := c.Query("category_id"); v != "" {
		filter.CategoryID = &v
	}
	if v := c.Query("bucket_id"); v != "" {
		filter.BucketID = &v
	}
	if v := c.Query("virtual"); v != "" {
		switch v {
		case "true":
			b := true
			filter.Virtual = &b
		case "false":
			b := false
			filter.Virtual = &b
		default:
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "virtual must be 'true' or 'false'")
		}
	}
	return filter, nil
}

// GetTransaction handles retrieving a specific transaction.
// @Summary     Get transaction by ID
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction details"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles deleting a transaction.
// @Summary     Delete transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
