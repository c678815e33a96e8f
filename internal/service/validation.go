package service

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"
)

const defaultPhoneRegion = "US"

// ErrInvalidEmail indicates an email that cannot belong to a real mailbox.
var ErrInvalidEmail = errors.New("invalid email address")

// NormalizePhoneNumber converts a provider-formatted phone number into a
// single leading "+" plus digits. Numbers that parse cleanly come back in
// E.164; otherwise the legacy path strips "()- " and prefixes the US country
// code, matching what the dialer expects.
func NormalizePhoneNumber(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if number, err := phonenumbers.Parse(raw, defaultPhoneRegion); err == nil {
		if phonenumbers.IsPossibleNumber(number) && phonenumbers.IsValidNumber(number) {
			return phonenumbers.Format(number, phonenumbers.E164)
		}
	}

	stripped := strings.Map(func(r rune) rune {
		switch r {
		case '(', ')', '-', ' ':
			return -1
		}
		return r
	}, raw)
	if stripped == "" {
		return ""
	}
	if strings.HasPrefix(stripped, "+") {
		return "+" + strings.TrimLeft(stripped, "+")
	}
	return "+1" + stripped
}

// ValidateEmail performs structural checks on a login email, including IDNA
// conversion of the domain part.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return ErrInvalidEmail
	}

	local, domain := email[:at], email[at+1:]
	if local == "" || strings.ContainsAny(local, " \t") {
		return ErrInvalidEmail
	}

	ascii, err := idna.Lookup.ToASCII(domain)
	if err != nil {
		return ErrInvalidEmail
	}
	if !isDomainValid(ascii) {
		return ErrInvalidEmail
	}
	return nil
}

func isDomainValid(domain string) bool {
	if strings.Count(domain, ".") == 0 {
		return false
	}
	parts := strings.Split(domain, ".")
	for _, part := range parts {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}
