package grouping

import (
	"strings"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
)

// CompareNames orders display names numeric-aware: runs of digits compare
// by value ("img2" < "img10"), other runs compare case-insensitively.
// Names that are equal under that rule fall back to plain byte order.
func CompareNames(a, b string) int {
	if c := compareNatural(a, b); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// CompareKeys orders group keys by the integer formed from their digits.
// When either key has no digits, or the integers are equal, the keys are
// compared case-insensitively and then byte-wise. The empty key therefore
// sorts before every other key that reaches the lexical comparison.
func CompareKeys(a, b string) int {
	da, db := digitsOf(a), digitsOf(b)
	if da != "" && db != "" {
		if c := compareDigits(da, db); c != 0 {
			return c
		}
	}
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func compareItems(a, b domain.Item) int {
	if c := CompareNames(a.DisplayName, b.DisplayName); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

func compareNatural(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if isDigit(a[i]) && isDigit(b[j]) {
			si, sj := i, j
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			if c := compareDigits(a[si:i], b[sj:j]); c != 0 {
				return c
			}
			continue
		}

		ca, cb := lowerASCII(a[i]), lowerASCII(b[j])
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		i++
		j++
	}

	switch ra, rb := len(a)-i, len(b)-j; {
	case ra == rb:
		return 0
	case ra < rb:
		return -1
	default:
		return 1
	}
}

func lowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// compareDigits compares two digit strings by numeric value without
// parsing, so arbitrarily long runs cannot overflow.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func digitsOf(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
