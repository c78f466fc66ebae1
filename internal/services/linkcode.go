package services

import (
	"crypto/rand"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mozhnovpn/portal/internal/db"
	"github.com/mozhnovpn/portal/internal/models"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	linkCodeLen  = 6
	linkCodeTTL  = 10 * time.Minute
)

// swapped for a deterministic reader in tests
var randRead = rand.Read

func randomCode(n int) (string, error) {
	b := make([]byte, n)
	if _, err := randRead(b); err != nil {
		return "", err
	}
	out := make([]byte, n)
	for i, c := range b {
		out[i] = codeAlphabet[int(c)%len(codeAlphabet)]
	}
	return string(out), nil
}

// GenerateLinkCode invalidates every unused code the owner still has and
// inserts a fresh one, in a single transaction: no moment exists where two
// live codes coexist for one account. Collisions with another owner's live
// code trip the partial unique index and are retried with a new code.
func GenerateLinkCode(userID string) (string, time.Time, error) {
	for attempt := 0; attempt < 10; attempt++ {
		code, err := randomCode(linkCodeLen)
		if err != nil {
			return "", time.Time{}, err
		}
		expires := time.Now().Add(linkCodeTTL)

		err = db.Conn().Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.LinkCode{}).
				Where("user_id = ? AND used = ?", userID, false).
				Update("used", true).Error; err != nil {
				return err
			}
			return tx.Create(&models.LinkCode{
				Code:      code,
				UserID:    userID,
				ExpiresAt: expires,
			}).Error
		})
		if err == nil {
			return code, expires, nil
		}
		if !isUniqueViolation(err) {
			return "", time.Time{}, err
		}
	}
	return "", time.Time{}, errors.New("unable to generate link code, please try again")
}
