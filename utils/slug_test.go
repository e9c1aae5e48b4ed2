package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Classic Tee", "classic-tee"},
		{"Summer Sale 2026!", "summer-sale-2026"},
		{"  spaced   out  ", "spaced-out"},
		{"Über-Cool Ägide", "über-cool-ägide"},
		{"---", ""},
		{"", ""},
		{"a&b/c", "a-b-c"},
		{"ALREADY-SLUGGED", "already-slugged"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Slugify(tc.in), "Slugify(%q)", tc.in)
	}
}
