package models

import "time"

// LinkCode is a single-use pairing code binding a web account to a Telegram
// chat. Rows are kept after use for audit; Used flips either on consumption
// or when a newer code for the same owner supersedes it.
type LinkCode struct {
	ID        uint      `gorm:"primarykey"`
	Code      string    `gorm:"index"`
	UserID    string    `gorm:"type:uuid;index"`
	ExpiresAt time.Time `gorm:"index"`
	Used      bool      `gorm:"default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PendingReferral carries a ref_ payload from /start until the sender
// actually registers. One row per Telegram user; a later /start with a
// different code overwrites it.
type PendingReferral struct {
	ID         uint  `gorm:"primarykey"`
	TelegramID int64 `gorm:"uniqueIndex"`
	RefCode    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
