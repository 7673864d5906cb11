package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"kakeibo/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestCategory creates a category of the given kind.
func CreateTestCategory(t *testing.T, db *gorm.DB, kind models.CategoryKind) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:     fmt.Sprintf("Test Category %d", nextID()),
		Kind:     kind,
		Position: int(nextID()),
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestBucket creates a bucket without a budget cap.
func CreateTestBucket(t *testing.T, db *gorm.DB) *models.Bucket {
	t.Helper()

	bucket := &models.Bucket{
		Name: fmt.Sprintf("Test Bucket %d", nextID()),
	}
	if err := db.Create(bucket).Error; err != nil {
		t.Fatalf("failed to create test bucket: %v", err)
	}
	return bucket
}

// CreateTestTransaction creates a real transaction with the given amount
// (in the smallest currency unit) on the given date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, categoryID string, amount int64, date time.Time) *models.Transaction {
	t.Helper()
	return createTransaction(t, db, categoryID, nil, amount, date, false)
}

// CreateTestBucketTransaction creates a real transaction assigned to a bucket.
func CreateTestBucketTransaction(t *testing.T, db *gorm.DB, categoryID, bucketID string, amount int64, date time.Time) *models.Transaction {
	t.Helper()
	return createTransaction(t, db, categoryID, &bucketID, amount, date, false)
}

// CreateTestVirtualTransaction creates a virtual transaction, optionally in a bucket.
func CreateTestVirtualTransaction(t *testing.T, db *gorm.DB, categoryID string, bucketID *string, amount int64, date time.Time) *models.Transaction {
	t.Helper()
	return createTransaction(t, db, categoryID, bucketID, amount, date, true)
}

func createTransaction(t *testing.T, db *gorm.DB, categoryID string, bucketID *string, amount int64, date time.Time, virtual bool) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		CategoryID:  categoryID,
		BucketID:    bucketID,
		Amount:      amount,
		Date:        date,
		Description: fmt.Sprintf("Test Transaction %d", nextID()),
		Virtual:     virtual,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestAsset creates an asset in the given category.
func CreateTestAsset(t *testing.T, db *gorm.DB, categoryID string) *models.Asset {
	t.Helper()

	asset := &models.Asset{
		CategoryID: categoryID,
		Name:       fmt.Sprintf("Test Asset %d", nextID()),
		Unit:       "shares",
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}
	return asset
}

// CreateTestHolding creates a holding observation for the given asset.
func CreateTestHolding(t *testing.T, db *gorm.DB, assetID string, quantity decimal.Decimal, recordedAt time.Time) *models.AssetHolding {
	t.Helper()

	holding := &models.AssetHolding{
		AssetID:    assetID,
		Quantity:   quantity,
		RecordedAt: recordedAt,
	}
	if err := db.Create(holding).Error; err != nil {
		t.Fatalf("failed to create test holding: %v", err)
	}
	return holding
}

// CreateTestHabit creates an active habit with the given display order.
func CreateTestHabit(t *testing.T, db *gorm.DB, displayOrder int) *models.Habit {
	t.Helper()

	habit := &models.Habit{
		Name:         fmt.Sprintf("Test Habit %d", nextID()),
		DisplayOrder: displayOrder,
	}
	if err := db.Create(habit).Error; err != nil {
		t.Fatalf("failed to create test habit: %v", err)
	}
	return habit
}

// CreateTestHabitCreatedAt creates an active habit and backdates its creation time.
func CreateTestHabitCreatedAt(t *testing.T, db *gorm.DB, displayOrder int, createdAt time.Time) *models.Habit {
	t.Helper()

	habit := CreateTestHabit(t, db, displayOrder)
	if err := db.Model(habit).UpdateColumn("created_at", createdAt).Error; err != nil {
		t.Fatalf("failed to backdate habit creation: %v", err)
	}
	habit.CreatedAt = createdAt
	return habit
}

// CreateTestHabitLog creates a completion log for the given habit and day.
// The date is normalized to UTC midnight the way the habit service stores it.
func CreateTestHabitLog(t *testing.T, db *gorm.DB, habitID string, date time.Time, completed bool) *models.HabitLog {
	t.Helper()

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	log := &models.HabitLog{
		HabitID:   habitID,
		Date:      day,
		Completed: completed,
		LoggedAt:  time.Now().UTC(),
	}
	if err := db.Create(log).Error; err != nil {
		t.Fatalf("failed to create test habit log: %v", err)
	}
	return log
}
