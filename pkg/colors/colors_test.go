package colors

import (
	"image/color"
	"testing"

	"github.com/wesen/graphview/pkg/errors"
)

func TestParseNames(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"RED", Red},
		{"red", Red},
		{" Blue ", Blue},
		{"DARK_GRAY", DarkGray},
		{"dark-gray", DarkGray},
		{"lightgrey", LightGray},
		{"MAGENTA", Magenta},
	}
	for _, tc := range tests {
		got, err := Parse(tc.in)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseHex(t *testing.T) {
	got, err := Parse("#00d4a0")
	if err != nil {
		t.Fatalf("Parse hex: %v", err)
	}
	want := color.RGBA{0x00, 0xd4, 0xa0, 0xff}
	if got != want {
		t.Errorf("Parse(#00d4a0) = %v, want %v", got, want)
	}

	got, err = Parse("ff8000")
	if err != nil {
		t.Fatalf("Parse bare hex: %v", err)
	}
	if got != (color.RGBA{0xff, 0x80, 0x00, 0xff}) {
		t.Errorf("Parse(ff8000) = %v", got)
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := Parse("not-a-color")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestHexRoundTrip(t *testing.T) {
	c := color.RGBA{0x12, 0x34, 0x56, 0xff}
	if got := Hex(c); got != "#123456" {
		t.Errorf("Hex = %q, want #123456", got)
	}
}

func TestNamesComplete(t *testing.T) {
	if len(Names()) != 14 {
		t.Errorf("expected 14 named colors, got %d", len(Names()))
	}
}
