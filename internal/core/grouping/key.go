package grouping

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
)

// Key derives the group key for a filename.
//
// The extension (text after the final '.') is removed, the stem is
// uppercased and the leading run of [A-Z0-9] is returned, so
// "cr5681-1.jpg" and "CR5681_02.jpeg" both map to "CR5681". A stem that
// does not start with [A-Z0-9] is returned whole, uppercased; this includes
// the empty stem of names like ".jpg".
func Key(displayName string) string {
	stem := displayName
	if i := strings.LastIndexByte(stem, '.'); i >= 0 {
		stem = stem[:i]
	}
	upper := strings.ToUpper(stem)

	end := 0
	for end < len(upper) && isKeyChar(upper[end]) {
		end++
	}
	if end == 0 {
		return upper
	}
	return upper[:end]
}

// NewItem validates the inputs and builds an item with its group key set.
func NewItem(id, displayName string, aspectRatio float64) (domain.Item, error) {
	if id == "" {
		return domain.Item{}, fmt.Errorf("%w: empty item id", domain.ErrInvalidInput)
	}
	item := domain.Item{
		ID:          id,
		DisplayName: displayName,
		GroupKey:    Key(displayName),
		AspectRatio: aspectRatio,
	}
	if err := item.Validate(); err != nil {
		return domain.Item{}, err
	}
	return item, nil
}

func isKeyChar(c byte) bool {
	return (c >= 'A' && c <= 'Z') || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
