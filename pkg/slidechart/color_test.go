package slidechart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHex(t *testing.T) {
	tests := []struct {
		value, fallback, want string
	}{
		{"#abc", "#000000", "#AABBCC"},
		{"abc", "#000000", "#AABBCC"},
		{"#2563eb", "#000000", "#2563EB"},
		{"2563EB", "#000000", "#2563EB"},
		{"zzz", "#112233", "#112233"},
		{"#12345", "#112233", "#112233"},
		{"#1234567", "#112233", "#112233"},
		{"", "#112233", "#112233"},
		{" #abc", "#112233", "#112233"},
		{"rgb(0,0,0)", "", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeHex(tt.value, tt.fallback), "NormalizeHex(%q, %q)", tt.value, tt.fallback)
	}
}

func TestIsHex(t *testing.T) {
	assert.True(t, IsHex("#fff"))
	assert.True(t, IsHex("A1B2C3"))
	assert.False(t, IsHex("blue"))
	assert.False(t, IsHex(""))
}

func TestPaletteResolved(t *testing.T) {
	assert.Equal(t, Palette{"#AABBCC", "#112233"}, Palette{"#abc", "nope", "112233"}.Resolved())
	assert.Equal(t, Palette{DefaultColor}, Palette{}.Resolved())
	assert.Equal(t, Palette{DefaultColor}, Palette{"bad"}.Resolved())
	assert.Equal(t, Palette{DefaultColor}, Palette(nil).Resolved())
}

func TestPaletteAt(t *testing.T) {
	p := Palette{"#111111", "#222222", "#333333"}
	assert.Equal(t, "#111111", p.At(0))
	assert.Equal(t, "#333333", p.At(2))
	assert.Equal(t, "#111111", p.At(3))
	assert.Equal(t, "#222222", p.At(7))
	assert.Equal(t, DefaultColor, Palette{}.At(4))
}
