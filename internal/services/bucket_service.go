package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
)

// bucketService handles bucket configuration and aggregation.
type bucketService struct {
	db *gorm.DB
}

// NewBucketService creates a new BucketServicer.
func NewBucketService(db *gorm.DB) BucketServicer {
	return &bucketService{db: db}
}

// CreateBucket creates a new bucket with an optional budget cap.
func (s *bucketService) CreateBucket(name string, budgetCap *int64) (*models.Bucket, error) {
	bucket := &models.Bucket{
		Name:      name,
		BudgetCap: budgetCap,
	}
	if err := s.db.Create(bucket).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bucket, nil
}

// GetBuckets returns all buckets ordered by creation.
func (s *bucketService) GetBuckets() ([]models.Bucket, error) {
	var buckets []models.Bucket
	if err := s.db.Order("created_at ASC").Find(&buckets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return buckets, nil
}

// GetBucketByID returns a bucket by ID.
func (s *bucketService) GetBucketByID(bucketID string) (*models.Bucket, error) {
	var bucket models.Bucket
	if err := s.db.Where("id = ?", bucketID).First(&bucket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBucketNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &bucket, nil
}

// ComputeBucketSummary aggregates a bucket's entire transaction history.
// Buckets are cumulative ledgers, so there is no time window. Virtual
// transactions are excluded from the totals but counted separately.
// An empty bucket yields a zero summary, not an error.
func (s *bucketService) ComputeBucketSummary(bucketID string) (*BucketSummary, error) {
	if _, err := s.GetBucketByID(bucketID); err != nil {
		return nil, err
	}

	summary := &BucketSummary{BucketID: bucketID}
	err := s.db.Model(&models.Transaction{}).
		Select(
			"COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0) AS inflow, "+
				"COALESCE(SUM(CASE WHEN amount < 0 THEN -amount ELSE 0 END), 0) AS outflow, "+
				"COUNT(*) AS transaction_count").
		Where("bucket_id = ? AND virtual = ?", bucketID, false).
		Scan(summary).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	summary.Balance = summary.Inflow - summary.Outflow

	if err := s.db.Model(&models.Transaction{}).
		Where("bucket_id = ? AND virtual = ?", bucketID, true).
		Count(&summary.VirtualCount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return summary, nil
}
