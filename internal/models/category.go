package models

// CategoryKind classifies what a category's transactions mean for the balance.
type CategoryKind string

const (
	CategoryKindIncome  CategoryKind = "income"
	CategoryKindExpense CategoryKind = "expense"
	CategoryKindAsset   CategoryKind = "asset"
)

// Category classifies transactions and assets. Categories are reference
// data: the analytics core reads them but only renaming is allowed once
// a transaction points at one.
type Category struct {
	Base
	Name     string       `gorm:"not null" json:"name"`
	Kind     CategoryKind `gorm:"not null" json:"kind"`
	Position int          `gorm:"not null;default:0" json:"position"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
	Assets       []Asset       `gorm:"foreignKey:CategoryID" json:"assets,omitempty"`
}
