// Package messaging builds outbound messaging deep-links for sharing
// plain-text reports.
package messaging

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/dentassist/dentsync/pkg/errors"
)

// NormalizePhone strips everything but digits and, when the number parses as
// a valid international number, canonicalizes it to E.164 digits. An empty
// result is an error: the caller must block the action instead of producing a
// malformed link.
func NormalizePhone(phone string) (string, error) {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return "", errors.BadRequest("invalid phone number", nil)
	}

	num, err := phonenumbers.Parse("+"+digits.String(), "")
	if err == nil && phonenumbers.IsValidNumber(num) {
		return strings.TrimPrefix(phonenumbers.Format(num, phonenumbers.E164), "+"), nil
	}
	return digits.String(), nil
}

// BuildWhatsAppLink returns a wa.me deep-link carrying the report text.
func BuildWhatsAppLink(phone, text string) (string, error) {
	digits, err := NormalizePhone(phone)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(text)), nil
}
