package game

import (
	"strconv"
	"strings"
	"unicode"
)

// saturation stops ParseGuess from growing a value that is already far
// outside [MinNumber, MaxNumber], so long digit runs cannot overflow.
const saturation = 100_000_000

// ParseGuess reads a leading integer from text, the way integer-prefix
// parsers usually do: leading whitespace is skipped, one optional sign is
// accepted, then digits are consumed until the first non-digit.
// "42abc" → 42, " 7" → 7, "3.9" → 3, "abc" → not a number.
func ParseGuess(text string) (int, bool) {
	s := strings.TrimLeftFunc(text, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n, digits := 0, 0
	for ; digits < len(s) && s[digits] >= '0' && s[digits] <= '9'; digits++ {
		if n < saturation {
			n = n*10 + int(s[digits]-'0')
		}
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// ParseGuessStrict accepts only a whole-string decimal integer, ignoring
// surrounding whitespace.
func ParseGuessStrict(text string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, false
	}
	return n, true
}
