package services

import (
	"time"

	"github.com/mozhnovpn/portal/internal/db"
	"github.com/mozhnovpn/portal/internal/models"
)

// CurrentSubscription returns the user's most recent active or trial
// subscription, tariff preloaded.
func CurrentSubscription(userID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := db.Conn().Preload("Tariff").
		Where("user_id = ? AND status IN ?", userID, []string{"active", "trial"}).
		Order("end_date DESC").
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// DaysLeft is ceil((end-now)/24h), never negative.
func DaysLeft(end, now time.Time) int {
	d := end.Sub(now)
	if d <= 0 {
		return 0
	}
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}
