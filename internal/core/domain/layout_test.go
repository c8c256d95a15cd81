package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageSize_IsValid(t *testing.T) {
	for _, size := range AllPageSizes() {
		assert.True(t, size.IsValid(), size.String())
	}
	assert.False(t, PageSize("").IsValid())
	assert.False(t, PageSize("A4").IsValid())
}

func TestPageSize_Dimensions(t *testing.T) {
	w, h := PageSizeA4.Dimensions()
	assert.Equal(t, 210.0, w)
	assert.Equal(t, 297.0, h)

	w, h = PageSizeA5.Dimensions()
	assert.Equal(t, 148.0, w)
	assert.Equal(t, 210.0, h)
}

func TestPageConfig_ContentArea(t *testing.T) {
	page := PageConfig{Width: 210, Height: 297, Margin: 15, FooterHeight: 10}

	assert.Equal(t, 180.0, page.ContentWidth())
	assert.Equal(t, 15.0, page.ContentTop())
	assert.Equal(t, 272.0, page.ContentBottom())
	require.NoError(t, page.Validate())
}

func TestPageConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		page PageConfig
	}{
		{"zero width", PageConfig{Width: 0, Height: 100}},
		{"negative height", PageConfig{Width: 100, Height: -1}},
		{"negative margin", PageConfig{Width: 100, Height: 100, Margin: -1}},
		{"negative footer", PageConfig{Width: 100, Height: 100, FooterHeight: -1}},
		{"no content width", PageConfig{Width: 20, Height: 100, Margin: 10}},
		{"no content height", PageConfig{Width: 100, Height: 40, Margin: 10, FooterHeight: 20}},
		{"NaN margin", PageConfig{Width: 210, Height: 297, Margin: math.NaN(), FooterHeight: 10}},
		{"infinite height", PageConfig{Width: 210, Height: math.Inf(1), Margin: 10}},
		{"NaN footer", PageConfig{Width: 210, Height: 297, Margin: 10, FooterHeight: math.NaN()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.page.Validate(), ErrInvalidConfig)
		})
	}
}

func TestGridConfig_Validate(t *testing.T) {
	assert.NoError(t, GridConfig{Columns: 2, CellGap: 5, RowGap: 5, HeaderHeight: 10}.Validate())
	assert.ErrorIs(t, GridConfig{Columns: 0}.Validate(), ErrInvalidConfig)
	assert.ErrorIs(t, GridConfig{Columns: 2, RowGap: -1}.Validate(), ErrInvalidConfig)
	assert.ErrorIs(t, GridConfig{Columns: 2, HeaderHeight: -1}.Validate(), ErrInvalidConfig)
	assert.ErrorIs(t, GridConfig{Columns: 2, CellGap: math.NaN()}.Validate(), ErrInvalidConfig)
	assert.ErrorIs(t, GridConfig{Columns: 2, RowGap: math.Inf(1)}.Validate(), ErrInvalidConfig)
	assert.ErrorIs(t, GridConfig{Columns: 2, HeaderHeight: math.NaN()}.Validate(), ErrInvalidConfig)
}
