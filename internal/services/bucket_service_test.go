package services

import (
	"testing"
	"time"

	"kakeibo/internal/models"
	"kakeibo/internal/testutil"
)

func TestCreateBucket(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBucketService(db)

		cap := int64(500000)
		bucket, err := svc.CreateBucket("Travel", &cap)
		testutil.AssertNoError(t, err)

		if bucket.ID == "" {
			t.Fatal("expected generated bucket ID")
		}
		if bucket.Name != "Travel" {
			t.Errorf("expected name Travel, got %s", bucket.Name)
		}
		if bucket.BudgetCap == nil || *bucket.BudgetCap != 500000 {
			t.Errorf("expected budget cap 500000, got %v", bucket.BudgetCap)
		}
	})

	t.Run("without_budget_cap", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBucketService(db)

		bucket, err := svc.CreateBucket("Emergency", nil)
		testutil.AssertNoError(t, err)
		if bucket.BudgetCap != nil {
			t.Errorf("expected nil budget cap, got %d", *bucket.BudgetCap)
		}
	})
}

func TestGetBucketByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBucketService(db)
		bucket := testutil.CreateTestBucket(t, db)

		got, err := svc.GetBucketByID(bucket.ID)
		testutil.AssertNoError(t, err)
		if got.ID != bucket.ID {
			t.Errorf("expected bucket %s, got %s", bucket.ID, got.ID)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBucketService(db)

		_, err := svc.GetBucketByID("00000000-0000-0000-0000-000000000000")
		testutil.AssertAppError(t, err, "BUCKET_NOT_FOUND")
	})
}

func TestComputeBucketSummary(t *testing.T) {
	t.Run("empty_bucket_is_zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBucketService(db)
		bucket := testutil.CreateTestBucket(t, db)

		summary, err := svc.ComputeBucketSummary(bucket.ID)
		testutil.AssertNoError(t, err)

		if summary.Inflow != 0 || summary.Outflow != 0 || summary.Balance != 0 {
			t.Errorf("expected zero summary, got %+v", summary)
		}
		if summary.TransactionCount != 0 || summary.VirtualCount != 0 {
			t.Errorf("expected zero counts, got %+v", summary)
		}
	})

	t.Run("cumulative_across_months", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBucketService(db)
		category := testutil.CreateTestCategory(t, db, models.CategoryKindExpense)
		bucket := testutil.CreateTestBucket(t, db)

		// Buckets have no time window, so months apart all count.
		testutil.CreateTestBucketTransaction(t, db, category.ID, bucket.ID, 100000, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
		testutil.CreateTestBucketTransaction(t, db, category.ID, bucket.ID, -30000, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC))
		testutil.CreateTestBucketTransaction(t, db, category.ID, bucket.ID, -20000, time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC))

		summary, err := svc.ComputeBucketSummary(bucket.ID)
		testutil.AssertNoError(t, err)

		if summary.Inflow != 100000 {
			t.Errorf("expected inflow 100000, got %d", summary.Inflow)
		}
		if summary.Outflow != 50000 {
			t.Errorf("expected outflow 50000, got %d", summary.Outflow)
		}
		if summary.Balance != 50000 {
			t.Errorf("expected balance 50000, got %d", summary.Balance)
		}
		if summary.TransactionCount != 3 {
			t.Errorf("expected 3 transactions, got %d", summary.TransactionCount)
		}
	})

	t.Run("virtual_counted_but_not_summed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBucketService(db)
		category := testutil.CreateTestCategory(t, db, models.CategoryKindExpense)
		bucket := testutil.CreateTestBucket(t, db)

		testutil.CreateTestBucketTransaction(t, db, category.ID, bucket.ID, -10000, time.Now())
		testutil.CreateTestVirtualTransaction(t, db, category.ID, &bucket.ID, -99999, time.Now())

		summary, err := svc.ComputeBucketSummary(bucket.ID)
		testutil.AssertNoError(t, err)

		if summary.Outflow != 10000 {
			t.Errorf("expected virtual excluded from outflow, got %d", summary.Outflow)
		}
		if summary.TransactionCount != 1 {
			t.Errorf("expected transaction count 1, got %d", summary.TransactionCount)
		}
		if summary.VirtualCount != 1 {
			t.Errorf("expected virtual count 1, got %d", summary.VirtualCount)
		}
	})

	t.Run("other_buckets_excluded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBucketService(db)
		category := testutil.CreateTestCategory(t, db, models.CategoryKindExpense)
		bucket := testutil.CreateTestBucket(t, db)
		other := testutil.CreateTestBucket(t, db)

		testutil.CreateTestBucketTransaction(t, db, category.ID, bucket.ID, 5000, time.Now())
		testutil.CreateTestBucketTransaction(t, db, category.ID, other.ID, 7000, time.Now())
		testutil.CreateTestTransaction(t, db, category.ID, 9000, time.Now())

		summary, err := svc.ComputeBucketSummary(bucket.ID)
		testutil.AssertNoError(t, err)

		if summary.Inflow != 5000 {
			t.Errorf("expected only own bucket inflow 5000, got %d", summary.Inflow)
		}
	})

	t.Run("unknown_bucket", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBucketService(db)

		_, err := svc.ComputeBucketSummary("00000000-0000-0000-0000-000000000000")
		testutil.AssertAppError(t, err, "BUCKET_NOT_FOUND")
	})
}
