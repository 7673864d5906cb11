package models

// Bucket is a named sub-ledger grouping transactions for cumulative
// reporting, independent of calendar months. A transaction belongs to
// at most one bucket.
type Bucket struct {
	Base
	Name      string `gorm:"not null" json:"name"`
	BudgetCap *int64 `gorm:"type:bigint" json:"budget_cap,omitempty"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:BucketID" json:"transactions,omitempty"`
}
