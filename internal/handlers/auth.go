package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mozhnovpn/portal/internal/config"
	"github.com/mozhnovpn/portal/internal/services"
)

const tokenTTL = 24 * time.Hour

type ctxKey int

const userIDKey ctxKey = 0

func signToken(secret, userID string) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
	})
	return tok.SignedString([]byte(secret))
}

// RequireAuth validates the bearer token and stashes the subject in the
// request context. All failure modes collapse into one generic 401.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				jsonError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			raw := strings.TrimPrefix(auth, "Bearer ")
			tok, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || !tok.Valid {
				jsonError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			sub, err := tok.Claims.GetSubject()
			if err != nil || sub == "" {
				jsonError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, sub)))
		})
	}
}

// UserID returns the authenticated account id placed by RequireAuth.
func UserID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

// POST /auth/signup
func Signup(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Identifier  string `json:"identifier"`
			Password    string `json:"password"`
			DisplayName string `json:"display_name"`
			Ref         string `json:"ref"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Identifier == "" || req.Password == "" {
			jsonError(w, http.StatusBadRequest, "identifier and password are required")
			return
		}

		acc, err := services.CreateAccount(req.Identifier, req.Password, req.DisplayName, false)
		switch err {
		case nil:
		case services.ErrIdentifierTaken:
			jsonError(w, http.StatusConflict, "identifier already registered")
			return
		case services.ErrInvalidIdentifier:
			jsonError(w, http.StatusBadRequest, "identifier must be an email or phone number")
			return
		default:
			log.Printf("signup: %v", err)
			jsonError(w, http.StatusInternalServerError, "could not create account, please try again")
			return
		}

		// same attribution path as chat registration
		if req.Ref != "" {
			if err := services.AttributeSignup(req.Ref, acc.UserID); err != nil {
				log.Printf("signup: referral attribution: %v", err)
			}
		}

		tok, err := signToken(cfg.JWTSecret, acc.UserID)
		if err != nil {
			log.Printf("signup: sign token: %v", err)
			jsonError(w, http.StatusInternalServerError, "could not create session")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"token":         tok,
			"user_id":       acc.UserID,
			"referral_code": acc.ReferralCode,
		})
	}
}

// POST /auth/login
func Login(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Identifier string `json:"identifier"`
			Password   string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, "identifier and password are required")
			return
		}
		acc, err := services.Authenticate(req.Identifier, req.Password)
		if err != nil {
			jsonError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		tok, err := signToken(cfg.JWTSecret, acc.UserID)
		if err != nil {
			log.Printf("login: sign token: %v", err)
			jsonError(w, http.StatusInternalServerError, "could not create session")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"token": tok, "user_id": acc.UserID})
	}
}
