package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset is a configuration entity describing something whose quantity
// is tracked over time (a stock, a currency balance, grams of gold).
type Asset struct {
	Base
	CategoryID string `gorm:"type:uuid;not null" json:"category_id"`
	Name       string `gorm:"not null" json:"name"`
	Unit       string `gorm:"not null" json:"unit"`
	Notes      string `json:"notes"`

	// Relationships
	Category Category       `gorm:"foreignKey:CategoryID" json:"category"`
	Holdings []AssetHolding `gorm:"foreignKey:AssetID" json:"holdings,omitempty"`
}

// AssetHolding is a point-in-time quantity observation for an asset.
// The portfolio uses the latest holding per asset at or before "now";
// older rows are kept as history.
type AssetHolding struct {
	Base
	AssetID    string          `gorm:"type:uuid;not null;index" json:"asset_id"`
	Quantity   decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"quantity"`
	RecordedAt time.Time       `gorm:"not null;index" json:"recorded_at"`

	// Relationships
	Asset Asset `gorm:"foreignKey:AssetID" json:"asset"`
}
