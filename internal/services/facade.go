package services

import (
	"time"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
)

// Facade is the single analytics entry point. It owns no state and
// applies no business rules: it validates argument shape, delegates to
// the owning component, and surfaces component errors unchanged.
type Facade struct {
	balance      BalanceServicer
	buckets      BucketServicer
	portfolio    PortfolioServicer
	heatmap      HeatmapServicer
	habits       HabitServicer
	transactions TransactionServicer
	loc          *time.Location
}

// NewFacade composes the aggregation components behind one entry point.
func NewFacade(
	balance BalanceServicer,
	buckets BucketServicer,
	portfolio PortfolioServicer,
	heatmap HeatmapServicer,
	habits HabitServicer,
	transactions TransactionServicer,
	loc *time.Location,
) *Facade {
	return &Facade{
		balance:      balance,
		buckets:      buckets,
		portfolio:    portfolio,
		heatmap:      heatmap,
		habits:       habits,
		transactions: transactions,
		loc:          loc,
	}
}

// MonthlyBalance returns income/expense/balance for one calendar month.
func (f *Facade) MonthlyBalance(year, month int) (*MonthlyBalance, error) {
	return f.balance.ComputeMonthlyBalance(year, month)
}

// BucketSummary returns cumulative totals for one bucket.
func (f *Facade) BucketSummary(bucketID string) (*BucketSummary, error) {
	if bucketID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "bucket ID is required")
	}
	return f.buckets.ComputeBucketSummary(bucketID)
}

// Portfolio returns the current asset portfolio grouped by category.
func (f *Facade) Portfolio() ([]PortfolioGroup, error) {
	return f.portfolio.ComputePortfolio(time.Now())
}

// Heatmap returns per-day habit completion intensity for a year or a
// single month of it.
func (f *Facade) Heatmap(year int, month *int) (map[string]float64, error) {
	return f.heatmap.ComputeHeatmap(year, month)
}

// LogHabitCompletion upserts a habit's completion flag for a calendar
// day given in YYYY-MM-DD form.
func (f *Facade) LogHabitCompletion(habitID, date string, completed bool) (*models.HabitLog, error) {
	if habitID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "habit ID is required")
	}
	day, err := time.Parse(dayFormat, date)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be in YYYY-MM-DD form")
	}
	return f.habits.LogCompletion(habitID, day, completed)
}

// UpdateHabitOrder replaces the active habit ranking with the given
// sequence, all-or-nothing.
func (f *Facade) UpdateHabitOrder(habitIDs []string) error {
	if len(habitIDs) == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "habit ID list is required")
	}
	return f.habits.ReorderHabits(habitIDs)
}

// ArchivedHabits lists habits removed from the active ranking.
func (f *Facade) ArchivedHabits() ([]models.Habit, error) {
	return f.habits.GetArchivedHabits()
}

// HabitStreak derives current and longest completion streaks, where
// "today" is resolved in the ledger time zone.
func (f *Facade) HabitStreak(habitID string) (*StreakSummary, error) {
	if habitID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "habit ID is required")
	}
	return f.habits.GetStreak(habitID, time.Now().In(f.loc))
}

// VirtualTransactions lists planned/simulated ledger entries.
func (f *Facade) VirtualTransactions() ([]models.Transaction, error) {
	return f.transactions.GetVirtualTransactions()
}
