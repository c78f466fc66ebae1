package services

import (
	"errors"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mozhnovpn/portal/internal/db"
	"github.com/mozhnovpn/portal/internal/models"
)

var (
	ErrIdentifierTaken   = errors.New("identifier already registered")
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrBadCredentials    = errors.New("bad credentials")
)

type NewAccount struct {
	UserID       string
	ReferralCode string
}

// CreateAccount provisions the account row plus its profile (with a fresh
// referral code) in one transaction. confirmed marks the identifier as
// verified out of band — a live chat session counts.
func CreateAccount(identifier, password, displayName string, confirmed bool) (*NewAccount, error) {
	var email, phone *string
	if IsPhone(identifier) {
		p := NormPhone(identifier)
		phone = &p
	} else {
		e, ok := NormEmail(identifier)
		if !ok {
			return nil, ErrInvalidIdentifier
		}
		email = &e
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// Retried only when the minted referral code collides with an existing
	// profile; duplicate identifiers are caught by the explicit lookup.
	for attempt := 0; attempt < 5; attempt++ {
		refCode, err := randomCode(referralCodeLen)
		if err != nil {
			return nil, err
		}
		acc := models.Account{
			UserID:         uuid.NewString(),
			Email:          email,
			Phone:          phone,
			PasswordHash:   string(hash),
			EmailConfirmed: email != nil && confirmed,
			PhoneConfirmed: phone != nil && confirmed,
		}

		err = db.Conn().Transaction(func(tx *gorm.DB) error {
			var n int64
			q := tx.Model(&models.Account{})
			if phone != nil {
				q = q.Where("phone = ?", *phone)
			} else {
				q = q.Where("email = ?", *email)
			}
			if err := q.Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return ErrIdentifierTaken
			}
			if err := tx.Create(&acc).Error; err != nil {
				return err
			}
			return tx.Create(&models.Profile{
				UserID:       acc.UserID,
				DisplayName:  displayName,
				ReferralCode: refCode,
			}).Error
		})
		switch {
		case err == nil:
			return &NewAccount{UserID: acc.UserID, ReferralCode: refCode}, nil
		case errors.Is(err, ErrIdentifierTaken):
			return nil, err
		case isUniqueViolation(err):
			continue
		default:
			return nil, err
		}
	}
	return nil, errors.New("unable to provision account, please try again")
}

func AccountByIdentifier(identifier string) (*models.Account, error) {
	var acc models.Account
	var err error
	if IsPhone(identifier) {
		err = db.Conn().Where("phone = ?", NormPhone(identifier)).First(&acc).Error
	} else if e, ok := NormEmail(identifier); ok {
		err = db.Conn().Where("email = ?", e).First(&acc).Error
	} else {
		err = gorm.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func Authenticate(identifier, password string) (*models.Account, error) {
	acc, err := AccountByIdentifier(identifier)
	if err != nil {
		return nil, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return acc, nil
}

type ProvisionResult int

const (
	Provisioned ProvisionResult = iota
	ProvisionAlreadyLinked
	ProvisionIdentifierTaken
	ProvisionInvalidIdentifier
	ProvisionFailed
)

// RegisterViaChat creates an account straight from a /register command and
// binds the sender's Telegram identity to it. Returns the new account's
// referral code on success.
func RegisterViaChat(identifier, password string, ident TelegramIdentity) (ProvisionResult, string) {
	if _, err := ProfileByTelegramID(ident.ID); err == nil {
		return ProvisionAlreadyLinked, ""
	}

	displayName := ident.FirstName
	if displayName == "" {
		displayName = "User"
	}
	acc, err := CreateAccount(identifier, password, displayName, true)
	switch {
	case errors.Is(err, ErrIdentifierTaken):
		return ProvisionIdentifierTaken, ""
	case errors.Is(err, ErrInvalidIdentifier):
		return ProvisionInvalidIdentifier, ""
	case err != nil:
		log.Printf("register via chat: %v", err)
		return ProvisionFailed, ""
	}

	if err := db.Conn().Model(&models.Profile{}).
		Where("user_id = ?", acc.UserID).
		Updates(map[string]any{
			"telegram_id":         ident.ID,
			"telegram_username":   ident.Username,
			"telegram_first_name": ident.FirstName,
			"telegram_last_name":  ident.LastName,
		}).Error; err != nil {
		log.Printf("register via chat: save telegram info: %v", err)
	}

	// Attribution is best-effort; the registration already succeeded.
	if ref, ok := TakePendingReferral(ident.ID); ok {
		if err := AttributeSignup(ref, acc.UserID); err != nil {
			log.Printf("register via chat: referral attribution: %v", err)
		}
	}

	return Provisioned, acc.ReferralCode
}
