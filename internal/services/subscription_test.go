package services

import (
	"testing"
	"time"

	"github.com/mozhnovpn/portal/internal/db"
	"github.com/mozhnovpn/portal/internal/models"
)

func TestDaysLeft(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		end  time.Time
		want int
	}{
		{now.Add(24 * time.Hour), 1},
		{now.Add(25 * time.Hour), 2},     // partial day rounds up
		{now.Add(30 * time.Minute), 1},   // still some time left
		{now, 0},                         // expired right now
		{now.Add(-48 * time.Hour), 0},    // long past, never negative
		{now.Add(10 * 24 * time.Hour), 10},
	}
	for _, c := range cases {
		if got := DaysLeft(c.end, now); got != c.want {
			t.Errorf("DaysLeft(%v) = %d, want %d", c.end, got, c.want)
		}
	}
}

func TestCurrentSubscription_PicksLatestActiveOrTrial(t *testing.T) {
	testDB(t)

	tariff := models.Tariff{Name: "Pro", DurationDays: 30, PriceRub: 299}
	db.Conn().Create(&tariff)

	now := time.Now()
	db.Conn().Create(&models.Subscription{
		UserID: "u1", TariffID: tariff.ID, Status: "expired",
		EndDate: now.Add(100 * 24 * time.Hour),
	})
	db.Conn().Create(&models.Subscription{
		UserID: "u1", TariffID: tariff.ID, Status: "active",
		EndDate: now.Add(5 * 24 * time.Hour),
	})
	db.Conn().Create(&models.Subscription{
		UserID: "u1", TariffID: tariff.ID, Status: "trial",
		EndDate: now.Add(20 * 24 * time.Hour),
	})

	sub, err := CurrentSubscription("u1")
	if err != nil {
		t.Fatalf("CurrentSubscription: %v", err)
	}
	if sub.Status != "trial" {
		t.Errorf("want the trial with the latest end date, got %q", sub.Status)
	}
	if sub.Tariff.Name != "Pro" {
		t.Errorf("tariff not preloaded: %+v", sub.Tariff)
	}

	if _, err := CurrentSubscription("nobody"); err == nil {
		t.Error("expected error for user with no subscription")
	}
}
