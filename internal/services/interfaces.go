package services

import (
	"time"

	"github.com/shopspring/decimal"

	"kakeibo/internal/models"
	"kakeibo/internal/pagination"
)

// MonthlyBalance contains income and expense totals for one calendar month.
// Unclassified carries amounts whose category is neither income- nor
// expense-kind; it never feeds into Balance.
type MonthlyBalance struct {
	Year         int   `json:"year"`
	Month        int   `json:"month"`
	Income       int64 `json:"income"`
	Expense      int64 `json:"expense"`
	Balance      int64 `json:"balance"`
	Unclassified int64 `json:"unclassified"`
}

// BalanceServicer defines the contract for monthly balance aggregation.
type BalanceServicer interface {
	ComputeMonthlyBalance(year, month int) (*MonthlyBalance, error)
}

// BucketSummary contains cumulative totals for a bucket's whole history.
// Virtual transactions are excluded from the totals and reported only
// through VirtualCount.
type BucketSummary struct {
	BucketID         string `json:"bucket_id"`
	Inflow           int64  `json:"inflow"`
	Outflow          int64  `json:"outflow"`
	Balance          int64  `json:"balance"`
	TransactionCount int64  `json:"transaction_count"`
	VirtualCount     int64  `json:"virtual_count"`
}

// BucketServicer defines the contract for bucket configuration and aggregation.
type BucketServicer interface {
	CreateBucket(name string, budgetCap *int64) (*models.Bucket, error)
	GetBuckets() ([]models.Bucket, error)
	GetBucketByID(bucketID string) (*models.Bucket, error)
	ComputeBucketSummary(bucketID string) (*BucketSummary, error)
}

// PortfolioHolding is one asset's latest observed quantity.
type PortfolioHolding struct {
	Asset      models.Asset    `json:"asset"`
	Quantity   decimal.Decimal `json:"quantity"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// PortfolioGroup collects the holdings of one category.
type PortfolioGroup struct {
	Category models.Category    `json:"category"`
	Holdings []PortfolioHolding `json:"holdings"`
}

// PortfolioServicer defines the contract for asset configuration and
// portfolio aggregation.
type PortfolioServicer interface {
	CreateAsset(categoryID, name, unit, notes string) (*models.Asset, error)
	GetAssets() ([]models.Asset, error)
	RecordHolding(assetID string, quantity decimal.Decimal, recordedAt time.Time) (*models.AssetHolding, error)
	ComputePortfolio(asOf time.Time) ([]PortfolioGroup, error)
}

// HeatmapServicer defines the contract for habit completion heatmaps.
// Keys are calendar days in YYYY-MM-DD form; values are the fraction of
// eligible habits completed that day.
type HeatmapServicer interface {
	ComputeHeatmap(year int, month *int) (map[string]float64, error)
}

// StreakSummary contains the current and longest runs of consecutive
// completed days for a habit. Derived at read time, never stored.
type StreakSummary struct {
	HabitID string `json:"habit_id"`
	Current int    `json:"current"`
	Longest int    `json:"longest"`
}

// HabitServicer defines the contract for habit lifecycle and completion logging.
type HabitServicer interface {
	CreateHabit(name string) (*models.Habit, error)
	GetActiveHabits() ([]models.Habit, error)
	LogCompletion(habitID string, date time.Time, completed bool) (*models.HabitLog, error)
	ReorderHabits(habitIDs []string) error
	ArchiveHabit(habitID string) error
	GetArchivedHabits() ([]models.Habit, error)
	GetStreak(habitID string, today time.Time) (*StreakSummary, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	CategoryID *string
	BucketID   *string
	Virtual    *bool
}

// TransactionServicer defines the contract for the ledger write path.
type TransactionServicer interface {
	CreateTransaction(categoryID string, bucketID *string, amount int64, date time.Time, description string, virtual bool) (*models.Transaction, error)
	GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(transactionID string) (*models.Transaction, error)
	DeleteTransaction(transactionID string) error
	GetVirtualTransactions() ([]models.Transaction, error)
}

// CategoryServicer defines the contract for category configuration.
type CategoryServicer interface {
	CreateCategory(name string, kind models.CategoryKind, position int) (*models.Category, error)
	GetCategories() ([]models.Category, error)
	RenameCategory(categoryID, name string) (*models.Category, error)
}
