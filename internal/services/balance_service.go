package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
)

// balanceService computes monthly income/expense balances.
type balanceService struct {
	db  *gorm.DB
	loc *time.Location
}

// NewBalanceService creates a new BalanceServicer. The location is the
// fixed ledger time zone in which month boundaries are drawn.
func NewBalanceService(db *gorm.DB, loc *time.Location) BalanceServicer {
	return &balanceService{db: db, loc: loc}
}

// ComputeMonthlyBalance sums the real (non-virtual) transactions of one
// calendar month. Income is the sum of positive amounts in income-kind
// categories, expense the sum of magnitudes of negative amounts in
// expense-kind categories; anything else lands in Unclassified.
// A month with no transactions yields an all-zero result.
func (s *balanceService) ComputeMonthlyBalance(year, month int) (*MonthlyBalance, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.ErrInvalidPeriod
	}
	if year < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidPeriod, "Year must be positive")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.loc)
	end := start.AddDate(0, 1, 0)

	var rows []struct {
		Amount int64
		Kind   models.CategoryKind
	}
	err := s.db.Model(&models.Transaction{}).
		Select("transactions.amount, categories.kind").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.virtual = ? AND transactions.date >= ? AND transactions.date < ?", false, start, end).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := &MonthlyBalance{Year: year, Month: month}
	for _, row := range rows {
		switch {
		case row.Kind == models.CategoryKindIncome && row.Amount > 0:
			result.Income += row.Amount
		case row.Kind == models.CategoryKindExpense && row.Amount < 0:
			result.Expense += -row.Amount
		default:
			result.Unclassified += row.Amount
		}
	}
	result.Balance = result.Income - result.Expense

	return result, nil
}
