package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
	"kakeibo/internal/pagination"
	"kakeibo/internal/services"
)

const (
	testCategoryID    = "0195d3e8-0000-7000-8000-00000000000c"
	testTransactionID = "0195d3e8-0000-7000-8000-00000000000d"
)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	r.POST("/transactions", handler.CreateTransaction)
	r.GET("/transactions", handler.GetTransactions)
	r.GET("/transactions/:id", handler.GetTransaction)
	r.DELETE("/transactions/:id", handler.DeleteTransaction)
	return r
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockTransactionService{
			createTransactionFn: func(categoryID string, bucketID *string, amount int64, date time.Time, description string, virtual bool) (*models.Transaction, error) {
				return &models.Transaction{
					Base:        models.Base{ID: testTransactionID},
					CategoryID:  categoryID,
					Amount:      amount,
					Date:        date,
					Description: description,
					Virtual:     virtual,
				}, nil
			},
		}
		handler := NewTransactionHandler(svc, &mockNotifier{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions",
			`{"category_id":"`+testCategoryID+`","amount":-4500,"description":"coffee"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		tx := parseJSON(t, rec)["transaction"].(map[string]interface{})
		if tx["amount"].(float64) != -4500 {
			t.Errorf("expected amount -4500, got %v", tx["amount"])
		}
	})

	t.Run("returns 400 on missing amount", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockNotifier{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions", `{"category_id":"`+testCategoryID+`"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on bad category id", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockNotifier{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions", `{"category_id":"nope","amount":100}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 on unknown category", func(t *testing.T) {
		svc := &mockTransactionService{
			createTransactionFn: func(_ string, _ *string, _ int64, _ time.Time, _ string, _ bool) (*models.Transaction, error) {
				return nil, apperrors.ErrCategoryNotFound
			},
		}
		handler := NewTransactionHandler(svc, &mockNotifier{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions",
			`{"category_id":"`+testCategoryID+`","amount":100}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("notifies on real transaction only", func(t *testing.T) {
		svc := &mockTransactionService{
			createTransactionFn: func(categoryID string, _ *string, amount int64, _ time.Time, description string, virtual bool) (*models.Transaction, error) {
				return &models.Transaction{CategoryID: categoryID, Amount: amount, Description: description, Virtual: virtual}, nil
			},
		}
		notif := &mockNotifier{enabled: true}
		handler := NewTransactionHandler(svc, notif)
		r := setupTransactionRouter(handler)

		doRequest(r, "POST", "/transactions",
			`{"category_id":"`+testCategoryID+`","amount":-100,"description":"rent"}`)
		doRequest(r, "POST", "/transactions",
			`{"category_id":"`+testCategoryID+`","amount":-100,"description":"planned","virtual":true}`)

		if len(notif.sent) != 1 {
			t.Fatalf("expected one notification for the real entry, got %d", len(notif.sent))
		}
	})
}

func TestTransactionHandler_GetTransactions(t *testing.T) {
	t.Run("passes filters through", func(t *testing.T) {
		var gotFilter services.TransactionFilter
		svc := &mockTransactionService{
			getTransactionsFn: func(_ pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
				gotFilter = filter
				resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
				return &resp, nil
			},
		}
		handler := NewTransactionHandler(svc, &mockNotifier{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions?category_id="+testCategoryID+"&virtual=false", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotFilter.CategoryID == nil || *gotFilter.CategoryID != testCategoryID {
			t.Errorf("expected category filter, got %v", gotFilter.CategoryID)
		}
		if gotFilter.Virtual == nil || *gotFilter.Virtual != false {
			t.Errorf("expected virtual=false filter, got %v", gotFilter.Virtual)
		}
	})

	t.Run("returns 400 on bad virtual value", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockNotifier{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions?virtual=maybe", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on bad from_date", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockNotifier{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions?from_date=2025-03-10", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockNotifier{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "DELETE", "/transactions/"+testTransactionID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("returns 404 on unknown transaction", func(t *testing.T) {
		svc := &mockTransactionService{
			deleteTransactionFn: func(_ string) error {
				return apperrors.ErrTransactionNotFound
			},
		}
		handler := NewTransactionHandler(svc, &mockNotifier{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "DELETE", "/transactions/"+testTransactionID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TRANSACTION_NOT_FOUND")
	})
}
