package phone

import (
	"errors"
	"strings"
)

var ErrInvalidPhone = errors.New("invalid phone number")

// Number is a phone number split into the country code and national part the
// booking API expects.
type Number struct {
	CountryCode  string
	MobileNumber string
}

func (n Number) String() string {
	return n.CountryCode + n.MobileNumber
}

// Parse splits a raw guest-entered phone number into country code and
// national number. Recognized prefixes are +1 and +91; a bare 10-digit
// number is assumed to be US; anything else defaults to +1.
func Parse(raw string) (Number, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '.':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))

	if cleaned == "" {
		return Number{}, ErrInvalidPhone
	}

	switch {
	case strings.HasPrefix(cleaned, "+1") && len(cleaned) == 12:
		return validated("+1", cleaned[2:])
	case strings.HasPrefix(cleaned, "+91") && len(cleaned) == 13:
		return validated("+91", cleaned[3:])
	case strings.HasPrefix(cleaned, "+"):
		// Unrecognized country code: keep the digits, default to +1.
		return validated("+1", digitsOnly(cleaned[1:]))
	case len(cleaned) == 10:
		return validated("+1", cleaned)
	case len(cleaned) == 11 && strings.HasPrefix(cleaned, "1"):
		return validated("+1", cleaned[1:])
	default:
		return validated("+1", cleaned)
	}
}

func validated(countryCode, national string) (Number, error) {
	if len(national) < 7 || len(national) > 12 {
		return Number{}, ErrInvalidPhone
	}
	for _, r := range national {
		if r < '0' || r > '9' {
			return Number{}, ErrInvalidPhone
		}
	}
	return Number{CountryCode: countryCode, MobileNumber: national}, nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
