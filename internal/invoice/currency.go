package invoice

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const rupee = "₹"

var enIN = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders whole rupees with en-IN digit grouping, e.g. ₹1,29,999.
func FormatINR(amount int64) string {
	return rupee + enIN.Sprintf("%d", amount)
}

// FormatDate mirrors the en-IN locale string: day/month/year, 12-hour clock.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006, 3:04:05 pm")
}
