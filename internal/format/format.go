// Package format holds the display helpers shared by the CLIs: peso-style
// currency, local date rendering, and phone normalization.
package format

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// Currency renders a value as Argentine-style currency: thousands separated
// by dots, two comma-separated decimals.
func Currency(value float64) string {
	negative := value < 0
	if negative {
		value = -value
	}

	whole := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(whole, ".", 2)
	grouped := groupThousands(parts[0])

	out := "$" + grouped + "," + parts[1]
	if negative {
		return "-" + out
	}
	return out
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for idx := lead; idx < len(digits); idx += 3 {
		if b.Len() > 0 {
			b.WriteString(".")
		}
		b.WriteString(digits[idx : idx+3])
	}
	return b.String()
}

// DateShort renders a timestamp as dd/mm/yyyy.
func DateShort(t time.Time) string {
	return t.Format("02/01/2006")
}

// DateLong renders a timestamp with the month spelled out.
func DateLong(t time.Time) string {
	return t.Format("2 January 2006")
}

// ValidPhone reports whether a phone number looks dialable after stripping
// spaces, dashes, and parentheses.
func ValidPhone(phone string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	return phonePattern.MatchString(cleaned)
}
