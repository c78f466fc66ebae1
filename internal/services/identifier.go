package services

import (
	"net/mail"
	"regexp"
	"strings"
)

// Phone: optional +, then 7-15 digits, judged after stripping the
// separators people paste in. Anything that doesn't match is an email.
var rePhone = regexp.MustCompile(`^\+?\d{7,15}$`)

var phoneStrip = strings.NewReplacer(" ", "", "(", "", ")", "", "-", "")

func NormPhone(s string) string {
	return phoneStrip.Replace(strings.TrimSpace(s))
}

func IsPhone(identifier string) bool {
	return rePhone.MatchString(NormPhone(identifier))
}

func NormEmail(s string) (string, bool) {
	e := strings.TrimSpace(strings.ToLower(s))
	if e == "" {
		return "", false
	}
	_, err := mail.ParseAddress(e)
	return e, err == nil
}
