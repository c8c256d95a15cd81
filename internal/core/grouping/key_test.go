package grouping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected string
	}{
		{"plain", "CR5681.jpg", "CR5681"},
		{"lowercase with hyphen suffix", "cr5681-1.png", "CR5681"},
		{"underscore suffix", "CR5681_02.jpeg", "CR5681"},
		{"digits only", "20240101.jpg", "20240101"},
		{"space stops run", "IMG 001.jpg", "IMG"},
		{"no extension", "noext", "NOEXT"},
		{"only final extension stripped", "archive.tar.gz", "ARCHIVE"},
		{"leading punctuation keeps whole stem", "-abc_1.jpg", "-ABC_1"},
		{"empty stem", ".jpg", ""},
		{"non-ascii start keeps whole stem", "été.jpg", "ÉTÉ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Key(tt.filename))
		})
	}
}

func TestKey_SameGroupForVariants(t *testing.T) {
	names := []string{"CR5681.jpg", "cr5681-1.png", "CR5681_02.jpeg", "cr5681.jpg", "cr5681_02.jpg"}
	for _, name := range names {
		assert.Equal(t, "CR5681", Key(name), name)
	}
}

func TestNewItem(t *testing.T) {
	t.Run("derives group key", func(t *testing.T) {
		item, err := NewItem("id-1", "cr5681-1.jpg", 1.5)
		require.NoError(t, err)
		assert.Equal(t, "id-1", item.ID)
		assert.Equal(t, "CR5681", item.GroupKey)
		assert.Equal(t, 1.5, item.AspectRatio)
	})

	t.Run("rejects empty id", func(t *testing.T) {
		_, err := NewItem("", "a.jpg", 1)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects empty display name", func(t *testing.T) {
		_, err := NewItem("id", "", 1)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects bad aspect ratio", func(t *testing.T) {
		_, err := NewItem("id", "a.jpg", 0)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
