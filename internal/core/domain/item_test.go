package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItem_Validate(t *testing.T) {
	tests := []struct {
		name    string
		item    Item
		wantErr bool
	}{
		{"valid", Item{ID: "1", DisplayName: "a.jpg", AspectRatio: 1.5}, false},
		{"empty name", Item{ID: "1", AspectRatio: 1}, true},
		{"zero aspect", Item{DisplayName: "a.jpg"}, true},
		{"negative aspect", Item{DisplayName: "a.jpg", AspectRatio: -1}, true},
		{"nan aspect", Item{DisplayName: "a.jpg", AspectRatio: math.NaN()}, true},
		{"inf aspect", Item{DisplayName: "a.jpg", AspectRatio: math.Inf(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestImageInfo_AspectRatio(t *testing.T) {
	assert.Equal(t, 2.0, ImageInfo{Width: 200, Height: 100}.AspectRatio())
	assert.Equal(t, DefaultAspectRatio, ImageInfo{}.AspectRatio())
	assert.Equal(t, DefaultAspectRatio, ImageInfo{Width: 100}.AspectRatio())
}

func TestChangeType_String(t *testing.T) {
	assert.Equal(t, "created", ChangeCreated.String())
	assert.Equal(t, "updated", ChangeUpdated.String())
	assert.Equal(t, "deleted", ChangeDeleted.String())
	assert.Equal(t, "unknown", ChangeType(99).String())
}
