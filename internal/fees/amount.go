package fees

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.AmericanEnglish)

// MaxAmount is the largest magnitude ParseAmount accepts: the integer range a
// browser number holds exactly.
const MaxAmount int64 = 1<<53 - 1

// ParseAmount normalizes user-typed numeric text. Blank, unparseable, and
// non-finite input is absent, as is anything beyond MaxAmount. Grouping
// commas are ignored, so text made only of commas reads as zero. Fractions
// are truncated toward zero. Hex notation is not a number here.
func ParseAmount(text string) (int64, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, false
	}
	cleaned := strings.TrimSpace(strings.ReplaceAll(trimmed, ",", ""))
	if cleaned == "" {
		return 0, true
	}
	if isHex(cleaned) {
		return 0, false
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	value = math.Trunc(value)
	if math.Abs(value) > float64(MaxAmount) {
		return 0, false
	}
	return int64(value), true
}

func isHex(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// ParseLines is ParseAmount shaped for Compute.
func ParseLines(text string) *int64 {
	value, ok := ParseAmount(text)
	if !ok {
		return nil
	}
	return &value
}

// FormatMMK renders an amount with en-US thousands separators.
func FormatMMK(amount int64) string {
	return amountPrinter.Sprintf("%d", amount)
}
