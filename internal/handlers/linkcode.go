package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/mozhnovpn/portal/internal/services"
)

// POST /generate-link-code (bearer auth via RequireAuth)
func GenerateLinkCode(w http.ResponseWriter, r *http.Request) {
	userID := UserID(r)
	code, expires, err := services.GenerateLinkCode(userID)
	if err != nil {
		log.Printf("generate link code: %v", err)
		jsonError(w, http.StatusInternalServerError, "could not create link code, please try again")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"code":       code,
		"expires_at": expires.UTC().Format(time.RFC3339),
	})
}
