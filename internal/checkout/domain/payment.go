package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

var ErrInvalidPayment = errors.New("invalid payment details")

const (
	MinCardDigits = 12
	MaxCardDigits = 16
	MinCVVLength  = 3
)

// PaymentDetails is what the payment form collects. Nothing here is charged or stored.
type PaymentDetails struct {
	Name       string `json:"name"`
	CardNumber string `json:"card_number"`
	CVV        string `json:"cvv"`
	Expiry     string `json:"expiry"`
}

// ValidationError lists every field that failed, keyed by its JSON name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return fmt.Sprintf("%s: %s", ErrInvalidPayment, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidPayment
}

// Validate applies the mock payment rules. Whitespace inside the card number is ignored.
func (p PaymentDetails) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(p.Name) == "" {
		fields["name"] = "name is required"
	}

	card := stripSpace(p.CardNumber)
	switch {
	case card == "":
		fields["card_number"] = "card number is required"
	case !allDigits(card):
		fields["card_number"] = "card number must contain only digits"
	case len(card) < MinCardDigits:
		fields["card_number"] = fmt.Sprintf("card number must have at least %d digits", MinCardDigits)
	}

	if len(strings.TrimSpace(p.CVV)) < MinCVVLength {
		fields["cvv"] = fmt.Sprintf("cvv must have at least %d characters", MinCVVLength)
	}

	if strings.TrimSpace(p.Expiry) == "" {
		fields["expiry"] = "expiry is required"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// FormatCardNumber is the input mask of the card field: digits only, at most 16,
// grouped by four.
func FormatCardNumber(raw string) string {
	digits := make([]rune, 0, MaxCardDigits)
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
			if len(digits) == MaxCardDigits {
				break
			}
		}
	}

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
