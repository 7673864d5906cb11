package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
	"kakeibo/internal/services"
)

// --- mock bucket service ---

type mockBucketService struct {
	createBucketFn         func(name string, budgetCap *int64) (*models.Bucket, error)
	getBucketsFn           func() ([]models.Bucket, error)
	getBucketByIDFn        func(bucketID string) (*models.Bucket, error)
	computeBucketSummaryFn func(bucketID string) (*services.BucketSummary, error)
}

func (m *mockBucketService) CreateBucket(name string, budgetCap *int64) (*models.Bucket, error) {
	if m.createBucketFn != nil {
		return m.createBucketFn(name, budgetCap)
	}
	return &models.Bucket{}, nil
}

func (m *mockBucketService) GetBuckets() ([]models.Bucket, error) {
	if m.getBucketsFn != nil {
		return m.getBucketsFn()
	}
	return []models.Bucket{}, nil
}

func (m *mockBucketService) GetBucketByID(bucketID string) (*models.Bucket, error) {
	if m.getBucketByIDFn != nil {
		return m.getBucketByIDFn(bucketID)
	}
	return &models.Bucket{}, nil
}

func (m *mockBucketService) ComputeBucketSummary(bucketID string) (*services.BucketSummary, error) {
	if m.computeBucketSummaryFn != nil {
		return m.computeBucketSummaryFn(bucketID)
	}
	return &services.BucketSummary{BucketID: bucketID}, nil
}

var _ services.BucketServicer = (*mockBucketService)(nil)

const testBucketID = "0195d3e8-0000-7000-8000-00000000000b"

func setupBucketRouter(handler *BucketHandler) *gin.Engine {
	r := gin.New()
	r.POST("/buckets", handler.CreateBucket)
	r.GET("/buckets", handler.GetBuckets)
	r.GET("/buckets/:id", handler.GetBucket)
	r.GET("/buckets/:id/summary", handler.GetBucketSummary)
	return r
}

func newBucketHandler(svc services.BucketServicer) *BucketHandler {
	facade := services.NewFacade(nil, svc, nil, nil, nil, nil, time.UTC)
	return NewBucketHandler(svc, facade)
}

// --- tests ---

func TestBucketHandler_CreateBucket(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockBucketService{
			createBucketFn: func(name string, budgetCap *int64) (*models.Bucket, error) {
				return &models.Bucket{Base: models.Base{ID: testBucketID}, Name: name, BudgetCap: budgetCap}, nil
			},
		}
		r := setupBucketRouter(newBucketHandler(svc))

		rec := doRequest(r, "POST", "/buckets", `{"name":"Travel","budget_cap":500000}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		bucket := parseJSON(t, rec)["bucket"].(map[string]interface{})
		if bucket["name"] != "Travel" {
			t.Errorf("expected Travel, got %v", bucket["name"])
		}
		if bucket["budget_cap"].(float64) != 500000 {
			t.Errorf("expected cap 500000, got %v", bucket["budget_cap"])
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		r := setupBucketRouter(newBucketHandler(&mockBucketService{}))

		rec := doRequest(r, "POST", "/buckets", `{"budget_cap":1000}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on non-positive cap", func(t *testing.T) {
		r := setupBucketRouter(newBucketHandler(&mockBucketService{}))

		rec := doRequest(r, "POST", "/buckets", `{"name":"Travel","budget_cap":0}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBucketHandler_GetBucket(t *testing.T) {
	t.Run("returns 404 on unknown bucket", func(t *testing.T) {
		svc := &mockBucketService{
			getBucketByIDFn: func(_ string) (*models.Bucket, error) {
				return nil, apperrors.ErrBucketNotFound
			},
		}
		r := setupBucketRouter(newBucketHandler(svc))

		rec := doRequest(r, "GET", "/buckets/"+testBucketID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BUCKET_NOT_FOUND")
	})

	t.Run("returns 400 on invalid id", func(t *testing.T) {
		r := setupBucketRouter(newBucketHandler(&mockBucketService{}))

		rec := doRequest(r, "GET", "/buckets/not-a-uuid", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBucketHandler_GetBucketSummary(t *testing.T) {
	t.Run("returns 200 with summary", func(t *testing.T) {
		svc := &mockBucketService{
			computeBucketSummaryFn: func(bucketID string) (*services.BucketSummary, error) {
				return &services.BucketSummary{
					BucketID: bucketID,
					Inflow:   100000, Outflow: 50000, Balance: 50000,
					TransactionCount: 3, VirtualCount: 1,
				}, nil
			},
		}
		r := setupBucketRouter(newBucketHandler(svc))

		rec := doRequest(r, "GET", "/buckets/"+testBucketID+"/summary", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		summary := parseJSON(t, rec)["summary"].(map[string]interface{})
		if summary["balance"].(float64) != 50000 {
			t.Errorf("expected balance 50000, got %v", summary["balance"])
		}
		if summary["virtual_count"].(float64) != 1 {
			t.Errorf("expected virtual_count 1, got %v", summary["virtual_count"])
		}
	})

	t.Run("returns 404 on unknown bucket", func(t *testing.T) {
		svc := &mockBucketService{
			computeBucketSummaryFn: func(_ string) (*services.BucketSummary, error) {
				return nil, apperrors.ErrBucketNotFound
			},
		}
		r := setupBucketRouter(newBucketHandler(svc))

		rec := doRequest(r, "GET", "/buckets/"+testBucketID+"/summary", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
