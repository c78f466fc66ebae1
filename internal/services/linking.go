package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mozhnovpn/portal/internal/db"
	"github.com/mozhnovpn/portal/internal/models"
)

// TelegramIdentity is what the chat transport tells us about a sender.
type TelegramIdentity struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}

type BindResult int

const (
	Bound BindResult = iota
	AlreadyLinkedSameAccount
	AlreadyLinkedToAnotherAccount
	CodeInvalidOrExpired
	BindFailed
)

func ProfileByTelegramID(telegramID int64) (*models.Profile, error) {
	var p models.Profile
	if err := db.Conn().Where("telegram_id = ?", telegramID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Bind consumes a pairing code and attaches the Telegram identity to the
// code owner's profile. Not-found, expired and already-used all collapse
// into CodeInvalidOrExpired so a guesser learns nothing. When the identity
// is already bound to a different account the code is left untouched: the
// identity, not the code, is the conflicting resource.
func Bind(code string, ident TelegramIdentity) BindResult {
	code = strings.TrimSpace(code)
	if code == "" {
		return CodeInvalidOrExpired
	}

	var result BindResult
	err := db.Conn().Transaction(func(tx *gorm.DB) error {
		var lc models.LinkCode
		if err := tx.Where("code = ? AND used = ? AND expires_at > ?", code, false, time.Now()).
			First(&lc).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result = CodeInvalidOrExpired
				return nil
			}
			return err
		}

		var bound models.Profile
		lookErr := tx.Where("telegram_id = ?", ident.ID).First(&bound).Error
		if lookErr != nil && !errors.Is(lookErr, gorm.ErrRecordNotFound) {
			return lookErr
		}
		if lookErr == nil && bound.UserID != lc.UserID {
			result = AlreadyLinkedToAnotherAccount
			return nil
		}

		// Conditional consume: a concurrent bind that got here first wins
		// and we report the code as gone.
		res := tx.Model(&models.LinkCode{}).
			Where("id = ? AND used = ?", lc.ID, false).
			Update("used", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			result = CodeInvalidOrExpired
			return nil
		}

		if err := tx.Model(&models.Profile{}).
			Where("user_id = ?", lc.UserID).
			Updates(map[string]any{
				"telegram_id":         ident.ID,
				"telegram_username":   ident.Username,
				"telegram_first_name": ident.FirstName,
				"telegram_last_name":  ident.LastName,
			}).Error; err != nil {
			return err
		}

		if lookErr == nil {
			// re-binding the same identity to the same profile
			result = AlreadyLinkedSameAccount
		} else {
			result = Bound
		}
		return nil
	})
	if err != nil {
		log.Printf("bind failed: %v", err)
		return BindFailed
	}
	return result
}
