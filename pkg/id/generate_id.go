package id

import (
	"strings"

	"github.com/google/uuid"
)

// NewID32 returns a random (v4) UUID as exactly 32 lowercase hex characters.
func NewID32() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewMessageID builds an RFC 5322 Message-ID for the given mail domain.
func NewMessageID(domain string) string {
	if domain == "" {
		domain = "localhost"
	}
	return "<" + NewID32() + "@" + domain + ">"
}
