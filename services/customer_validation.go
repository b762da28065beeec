package services

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[1-9A-Z]{1}Z[0-9A-Z]{1}$`)
	phonePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)
)

// ValidateGSTIN validates a GSTIN (15-character alphanumeric). Empty is valid.
func ValidateGSTIN(gstin string) bool {
	gstin = strings.TrimSpace(strings.ToUpper(gstin))
	if gstin == "" {
		return true
	}
	return len(gstin) == 15 && gstinPattern.MatchString(gstin)
}

// ValidatePhone validates an Indian mobile number (10 digits starting with
// 6-9). Spaces, dashes and a +91 or 0 prefix are ignored. Empty is valid.
func ValidatePhone(phone string) bool {
	phone = NormalizeMobile(phone)
	if phone == "" {
		return true
	}
	return phonePattern.MatchString(phone)
}

// NormalizeMobile strips separators and the country/trunk prefix from a
// mobile number.
func NormalizeMobile(phone string) string {
	phone = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(phone))
	phone = strings.TrimPrefix(phone, "+91")
	if len(phone) == 11 && strings.HasPrefix(phone, "0") {
		phone = phone[1:]
	}
	return phone
}

var (
	errInvalidGSTIN = errors.New("invalid GSTIN format (expected: 15-character, e.g., 27AAPFU0939F1ZV)")
	errInvalidPhone = errors.New("invalid mobile number (expected: 10 digits starting with 6-9)")
)

func gstinRule(v any) error {
	s, _ := v.(string)
	if !ValidateGSTIN(s) {
		return errInvalidGSTIN
	}
	return nil
}

func phoneRule(v any) error {
	s, _ := v.(string)
	if !ValidatePhone(s) {
		return errInvalidPhone
	}
	return nil
}

// Validate checks a customer's name and the format of its optional fields.
func (c Customer) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&c.Mobile, validation.By(phoneRule)),
		validation.Field(&c.GSTIN, validation.By(gstinRule)),
	)
}

// Validate checks a catalogue product.
func (p Product) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.RatePerSqft, validation.Min(0.0)),
		validation.Field(&p.GSTPercent, validation.Min(0.0), validation.Max(100.0)),
	)
}
