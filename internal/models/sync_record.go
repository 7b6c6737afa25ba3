package models

import (
	"strings"
	"time"
)

// SyncRecord is one persisted webhook outcome.
type SyncRecord struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	SKU            string    `json:"sku" gorm:"not null;index"`
	Status         string    `json:"status" gorm:"not null"`
	Error          string    `json:"error,omitempty"`
	VariantID      int64     `json:"variant_id"`
	UpdatedFields  string    `json:"updated_fields"`
	SkippedMarkets string    `json:"skipped_markets"`
	OccurredAt     time.Time `json:"occurred_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// JoinFields renders a field list the way the record stores it.
func JoinFields(fields []string) string {
	return strings.Join(fields, ",")
}
