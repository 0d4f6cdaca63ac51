package service

import (
	"strconv"
	"strings"
)

// MaxUnitPrice is the largest price a card can carry (₹100 crore).
const MaxUnitPrice int64 = 1_000_000_000

// ParsePriceOrZero keeps only the ASCII digits of display text ("₹1,29,999" -> 129999).
// Text without digits, or a value above MaxUnitPrice, yields 0.
func ParsePriceOrZero(text string) int64 {
	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	price, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil || price > MaxUnitPrice {
		return 0
	}
	return price
}
