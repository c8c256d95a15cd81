package grouping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareNames(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"img2.jpg", "img10.jpg", -1},
		{"img10.jpg", "img2.jpg", 1},
		{"img2.jpg", "img2.jpg", 0},
		{"IMG2.jpg", "img3.jpg", -1},
		{"a.jpg", "B.jpg", -1},
		{"img.jpg", "img1.jpg", -1},
		{"a-b.jpg", "a_b.jpg", -1},
		{"cr5681.jpg", "cr5681-1.jpg", 1},
		// numeric ties fall back to byte order
		{"img02.jpg", "img2.jpg", -1},
		{"IMG2.jpg", "img2.jpg", -1},
		{"", "a", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareNames(tt.a, tt.b))
		})
	}
}

func TestCompareNames_LongDigitRuns(t *testing.T) {
	a := "img99999999999999999999999.jpg"
	b := "img100000000000000000000000.jpg"
	assert.Equal(t, -1, CompareNames(a, b))
}

func TestCompareKeys(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"numeric order", "G2", "G10", -1},
		{"numeric order reversed", "G10", "G2", 1},
		{"no digits is lexical", "ALPHA", "BETA", -1},
		{"one side without digits is lexical", "G10", "ALPHA", 1},
		{"equal numbers fall back to lexical", "G02", "G2", -1},
		{"different prefix same number", "A5", "B5", -1},
		{"number beats prefix", "B1", "A2", -1},
		{"empty key first", "", "ALPHA", -1},
		{"empty key vs digits", "", "CR5681", -1},
		{"identical", "CR5681", "CR5681", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareKeys(tt.a, tt.b))
		})
	}
}

func TestCompareDigits(t *testing.T) {
	assert.Equal(t, 0, compareDigits("007", "7"))
	assert.Equal(t, -1, compareDigits("9", "10"))
	assert.Equal(t, 1, compareDigits("20", "19"))
	assert.Equal(t, 0, compareDigits("0", "000"))
}
