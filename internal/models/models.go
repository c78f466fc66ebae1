package models

import "time"

// Account is owned by the auth subsystem; email/phone are the login
// identifiers (exactly one is set for chat registrations, both are nullable
// so sqlite's unique indexes skip the NULLs).
type Account struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID         string  `gorm:"type:uuid;uniqueIndex;not null"`
	Email          *string `gorm:"uniqueIndex"`
	Phone          *string `gorm:"uniqueIndex"`
	PasswordHash   string
	EmailConfirmed bool
	PhoneConfirmed bool
}

type Profile struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID      string `gorm:"type:uuid;uniqueIndex;not null"`
	DisplayName string

	// telegram_id is the unique chat-to-account binding; nil until linked.
	TelegramID        *int64 `gorm:"uniqueIndex"`
	TelegramUsername  string
	TelegramFirstName string
	TelegramLastName  string

	ReferralCode string  `gorm:"uniqueIndex;not null"`
	ReferredBy   *string `gorm:"type:uuid"` // set at most once, at registration
}

type Tariff struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name         string
	DurationDays int
	PriceRub     int
	MaxDevices   int
	IsActive     bool `gorm:"default:true"`
	Priority     int
}

// Status: "active", "trial", "expired"
type Subscription struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID    string `gorm:"type:uuid;index"`
	TariffID  uint
	Tariff    Tariff
	Status    string
	StartDate time.Time
	EndDate   time.Time
}

// ReferralEvent rows are append-only; never mutated or deleted.
type ReferralEvent struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	InviterID string `gorm:"type:uuid;index;not null"`
	InviteeID string `gorm:"type:uuid;index;not null"`
	EventType string `gorm:"not null"` // signup | first_purchase
	BonusDays int
}
