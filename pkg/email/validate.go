package email

import (
	"net/mail"
	"strings"
)

const (
	minEmailLen = 3
	maxEmailLen = 255
)

func IsEmailValid(email string) bool {
	if len(email) < minEmailLen || len(email) > maxEmailLen {
		return false
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}

	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at:], ".")
}

// Domain returns the lowercased part after the last @.
func Domain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}
