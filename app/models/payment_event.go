package models

import "time"

// PaymentEvent stores provider webhook deliveries with deduplication
// metadata for idempotent processing. EventID carries the provider-assigned
// identifier; the unique index makes replayed deliveries no-ops.
type PaymentEvent struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	EventID     string     `gorm:"type:varchar(191);not null;uniqueIndex:ux_payment_events_event_id" json:"event_id"`
	EventType   string     `gorm:"type:varchar(100);not null;index" json:"event_type"`
	Email       string     `gorm:"type:varchar(200);not null;index" json:"email"`
	Credits     int64      `gorm:"not null" json:"credits"`
	PayloadJSON string     `gorm:"type:longtext;not null" json:"payload_json"`
	ProcessedAt *time.Time `gorm:"type:timestamp;default:null" json:"processed_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
