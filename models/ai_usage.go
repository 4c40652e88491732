package models

import "time"

// AIUsageLog is append-only: one row per AI invocation, never updated or
// deleted here. The quota gate counts rows per (user, feature) inside a
// time window.
type AIUsageLog struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index:idx_usage_user_feature"`
	Feature   string    `gorm:"size:32;index:idx_usage_user_feature"`
	CreatedAt time.Time `gorm:"index"`
}
