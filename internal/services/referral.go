package services

import (
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/mozhnovpn/portal/internal/db"
	"github.com/mozhnovpn/portal/internal/models"
)

const (
	ReferralPrefix  = "ref_"
	signupBonusDays = 3
	referralCodeLen = 6
)

// ParseReferralPayload extracts the inviter code from a ref_<code> payload.
func ParseReferralPayload(payload string) (string, bool) {
	payload = strings.TrimSpace(payload)
	if !strings.HasPrefix(payload, ReferralPrefix) {
		return "", false
	}
	code := strings.TrimPrefix(payload, ReferralPrefix)
	return code, code != ""
}

// StorePendingReferral remembers which inviter brought this Telegram user in
// until they actually register. The last /start payload wins.
func StorePendingReferral(telegramID int64, refCode string) {
	var pr models.PendingReferral
	err := db.Conn().Where("telegram_id = ?", telegramID).First(&pr).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		err = db.Conn().Create(&models.PendingReferral{TelegramID: telegramID, RefCode: refCode}).Error
	case err == nil && pr.RefCode != refCode:
		pr.RefCode = refCode
		err = db.Conn().Save(&pr).Error
	}
	if err != nil {
		log.Printf("pending referral: %v", err)
	}
}

// TakePendingReferral consumes the stored payload, if any.
func TakePendingReferral(telegramID int64) (string, bool) {
	var pr models.PendingReferral
	if err := db.Conn().Where("telegram_id = ?", telegramID).First(&pr).Error; err != nil {
		return "", false
	}
	db.Conn().Delete(&pr)
	return pr.RefCode, true
}

// AttributeSignup credits the inviter behind refCode with a signup event and
// stamps referred_by on the invitee. Unknown codes and self-referrals are
// ignored; the event fires at most once per invitee.
func AttributeSignup(refCode, inviteeID string) error {
	return db.Conn().Transaction(func(tx *gorm.DB) error {
		var inviter models.Profile
		if err := tx.Where("referral_code = ?", refCode).First(&inviter).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if inviter.UserID == inviteeID {
			return nil
		}

		var n int64
		if err := tx.Model(&models.ReferralEvent{}).
			Where("invitee_id = ? AND event_type = ?", inviteeID, "signup").
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		if err := tx.Create(&models.ReferralEvent{
			InviterID: inviter.UserID,
			InviteeID: inviteeID,
			EventType: "signup",
			BonusDays: signupBonusDays,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Profile{}).
			Where("user_id = ? AND referred_by IS NULL", inviteeID).
			Update("referred_by", inviter.UserID).Error
	})
}

// ReferralLinks renders the site and bot share links embedding the code.
func ReferralLinks(siteURL, botUsername, code string) (string, string) {
	site := strings.TrimRight(siteURL, "/") + "/auth?ref=" + code
	botLink := "https://t.me/" + botUsername + "?start=" + ReferralPrefix + code
	return site, botLink
}
