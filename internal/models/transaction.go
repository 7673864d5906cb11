package models

import "time"

// Transaction is a ledger entry. Amount is signed and stored in the
// smallest currency unit. Rows with Virtual=true represent planned or
// simulated movements; they share the table but are excluded from every
// balance and bucket aggregate.
type Transaction struct {
	Base
	CategoryID  string    `gorm:"type:uuid;not null" json:"category_id"`
	BucketID    *string   `gorm:"type:uuid" json:"bucket_id,omitempty"`
	Amount      int64     `gorm:"type:bigint;not null" json:"amount"`
	Date        time.Time `gorm:"not null" json:"date"`
	Description string    `json:"description"`
	Virtual     bool      `gorm:"not null;default:false" json:"virtual"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID" json:"category"`
	Bucket   *Bucket  `gorm:"foreignKey:BucketID" json:"bucket,omitempty"`
}
