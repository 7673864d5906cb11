package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
	"kakeibo/internal/pagination"
)

// transactionService handles the ledger write path.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction records a ledger entry. Virtual entries share the
// table but are excluded from every balance and bucket aggregate.
func (s *transactionService) CreateTransaction(
	categoryID string,
	bucketID *string,
	amount int64,
	date time.Time,
	description string,
	virtual bool,
) (*models.Transaction, error) {
	if amount == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be non-zero")
	}

	var category models.Category
	if err := s.db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if bucketID != nil {
		var bucket models.Bucket
		if err := s.db.Where("id = ?", *bucketID).First(&bucket).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrBucketNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	if date.IsZero() {
		date = time.Now()
	}

	transaction := &models.Transaction{
		CategoryID:  categoryID,
		BucketID:    bucketID,
		Amount:      amount,
		Date:        date,
		Description: description,
		Virtual:     virtual,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// GetTransactions retrieves a paginated, filtered list of transactions.
func (s *transactionService) GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := applyTransactionFilters(s.db.Model(&models.Transaction{}), filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Preload("Category").Preload("Bucket").
		Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.BucketID != nil {
		q = q.Where("bucket_id = ?", *f.BucketID)
	}
	if f.Virtual != nil {
		q = q.Where("virtual = ?", *f.Virtual)
	}
	return q
}

// GetTransactionByID retrieves a transaction by ID.
func (s *transactionService) GetTransactionByID(transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ?", transactionID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// DeleteTransaction soft-deletes a transaction.
func (s *transactionService) DeleteTransaction(transactionID string) error {
	transaction, err := s.GetTransactionByID(transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetVirtualTransactions returns all virtual entries, newest first. This
// is the only read that surfaces them.
func (s *transactionService) GetVirtualTransactions() ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Preload("Category").Preload("Bucket").
		Where("virtual = ?", true).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}
