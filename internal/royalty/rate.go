package royalty

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultReasonWordLimit caps discrepancy narratives shown inline in the
// table; the full text stays available behind the detail view.
const DefaultReasonWordLimit = 30

// DeriveRate reverse-calculates a royalty rate from a sales total and the
// royalty amount paid, as a percentage rounded to three decimals.
//
// A zero royalty amount returns 0 outright rather than dividing. That branch
// is intentional wire behaviour, not a division guard: upstream treats "no
// royalty paid" the same as "no sales" and downstream rate promotion relies
// on it.
func DeriveRate(salesAmount, royaltyAmount float64) float64 {
	if salesAmount == 0 {
		return 0
	}
	if royaltyAmount == 0 {
		return 0
	}
	rate := (royaltyAmount / salesAmount) * 100
	return math.Round(rate*1000) / 1000
}

// HasDiscrepancy decides whether a head disagrees with the system of record.
// A zero flag always means no discrepancy. A non-zero flag is only a
// candidate signal: when the recorded and latest amounts are numerically
// equal the flag is overridden and the head is treated as matched. The
// override is deliberate and must not be "fixed".
func HasDiscrepancy(calculatedRoyalty, latestRoyalty, discrepancyFlag float64) bool {
	if discrepancyFlag == 0 {
		return false
	}
	return calculatedRoyalty != latestRoyalty
}

// FormatPercent renders a rate with up to six decimal places, stripping
// trailing zeros and a dangling decimal point. Nil renders as the empty
// string.
func FormatPercent(value *float64) string {
	if value == nil {
		return ""
	}
	formatted := strconv.FormatFloat(*value, 'f', 6, 64)
	formatted = strings.TrimRight(formatted, "0")
	return strings.TrimSuffix(formatted, ".")
}

// FormatPercentString coerces a raw string to a number before formatting.
// Strings that do not parse pass through unchanged.
func FormatPercentString(raw string) string {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return raw
	}
	return FormatPercent(&parsed)
}

var currencyPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders a USD amount with locale grouping and between zero
// and three fraction digits.
func FormatCurrency(value float64) string {
	return currencyPrinter.Sprintf("$%v", number.Decimal(value,
		number.MinFractionDigits(0),
		number.MaxFractionDigits(3),
	))
}

// TruncateWords returns text unchanged when it has at most limit words,
// otherwise the first limit words joined by single spaces. The "... more"
// affordance is the caller's concern.
func TruncateWords(text string, limit int) string {
	if limit <= 0 {
		limit = DefaultReasonWordLimit
	}
	words := strings.Fields(text)
	if len(words) <= limit {
		return text
	}
	return strings.Join(words[:limit], " ")
}
