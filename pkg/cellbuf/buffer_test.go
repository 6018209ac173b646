package cellbuf

import (
	"image/color"
	"strings"
	"testing"
)

var (
	testBG   = Style{FG: color.RGBA{0x80, 0x80, 0x80, 0xff}}
	testRed  = Style{FG: color.RGBA{0xff, 0, 0, 0xff}}
	testBlue = Style{FG: color.RGBA{0, 0, 0xff, 0xff}, Bold: true}
)

func TestNew(t *testing.T) {
	b := New(10, 5, testBG)
	if b.W != 10 || b.H != 5 {
		t.Fatalf("expected 10x5, got %dx%d", b.W, b.H)
	}
	if len(b.Cells) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(b.Cells))
	}
	for y := 0; y < 5; y++ {
		if len(b.Cells[y]) != 10 {
			t.Fatalf("row %d: expected 10 cols, got %d", y, len(b.Cells[y]))
		}
		for x := 0; x < 10; x++ {
			c := b.Cells[y][x]
			if c.Ch != ' ' || c.Style != testBG {
				t.Fatalf("cell (%d,%d): expected space/testBG, got %q/%v", x, y, c.Ch, c.Style)
			}
		}
	}
}

func TestNewZeroSize(t *testing.T) {
	b := New(0, 0, testBG)
	if b.W != 0 || b.H != 0 {
		t.Fatalf("expected 0x0, got %dx%d", b.W, b.H)
	}
	if result := b.Render(); result != "" {
		t.Fatalf("expected empty string, got %q", result)
	}
}

func TestNewNegativeSize(t *testing.T) {
	b := New(-5, -3, testBG)
	if b.W != 0 || b.H != 0 {
		t.Fatalf("expected 0x0 for negative sizes, got %dx%d", b.W, b.H)
	}
}

func TestInBounds(t *testing.T) {
	b := New(10, 5, testBG)
	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{9, 4, true},
		{5, 2, true},
		{-1, 0, false},
		{0, -1, false},
		{10, 0, false},
		{0, 5, false},
		{10, 5, false},
	}
	for _, tc := range tests {
		got := b.InBounds(tc.x, tc.y)
		if got != tc.want {
			t.Errorf("InBounds(%d, %d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestSetAndAt(t *testing.T) {
	b := New(10, 5, testBG)
	b.Set(3, 2, 'X', testRed)
	c := b.At(3, 2)
	if c.Ch != 'X' || c.Style != testRed {
		t.Fatalf("expected X/testRed, got %q/%v", c.Ch, c.Style)
	}
	if got := b.At(-1, 0); got != (Cell{}) {
		t.Errorf("At out of bounds = %v, want zero cell", got)
	}
}

func TestSetOutOfBounds(t *testing.T) {
	b := New(10, 5, testBG)
	b.Set(-1, 0, 'X', testRed)
	b.Set(0, -1, 'X', testRed)
	b.Set(10, 0, 'X', testRed)
	b.Set(0, 5, 'X', testRed)
	b.Set(100, 100, 'X', testRed)

	for y := 0; y < 5; y++ {
		for x := 0; x < 10; x++ {
			if b.Cells[y][x].Ch != ' ' {
				t.Fatalf("out-of-bounds Set modified cell (%d,%d)", x, y)
			}
		}
	}
}

func TestSetString(t *testing.T) {
	b := New(10, 5, testBG)
	b.SetString(2, 1, "Héllo", testBlue)

	expected := []rune("Héllo")
	for i, ch := range expected {
		c := b.Cells[1][2+i]
		if c.Ch != ch || c.Style != testBlue {
			t.Errorf("pos %d: expected %q/testBlue, got %q/%v", i, ch, c.Ch, c.Style)
		}
	}
	if b.Cells[1][1].Ch != ' ' {
		t.Error("cell before string was modified")
	}
	if b.Cells[1][7].Ch != ' ' {
		t.Error("cell after string was modified")
	}
}

func TestSetStringClipsAtBounds(t *testing.T) {
	b := New(5, 1, testBG)
	b.SetString(3, 0, "Hello", testRed)
	if b.Cells[0][3].Ch != 'H' || b.Cells[0][4].Ch != 'e' {
		t.Error("expected H and e at positions 3,4")
	}
}

func TestSetStringWideRunes(t *testing.T) {
	b := New(6, 1, testBG)
	n := b.SetString(0, 0, "a世b", testRed)
	if n != 4 {
		t.Errorf("SetString width = %d, want 4", n)
	}
	if b.Cells[0][1].Ch != '世' || b.Cells[0][2].Ch != 0 || b.Cells[0][3].Ch != 'b' {
		t.Errorf("cells = %q %q %q", b.Cells[0][1].Ch, b.Cells[0][2].Ch, b.Cells[0][3].Ch)
	}
	if got := b.Plain(); got != "a世b  " {
		t.Errorf("Plain = %q, want %q", got, "a世b  ")
	}
}

func TestFillAndResize(t *testing.T) {
	b := New(5, 3, testBG)
	b.Set(2, 1, 'X', testRed)
	b.Fill(testBlue)
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			c := b.Cells[y][x]
			if c.Ch != ' ' || c.Style != testBlue {
				t.Fatalf("Fill: cell (%d,%d) = %q/%v, want space/testBlue", x, y, c.Ch, c.Style)
			}
		}
	}

	b.Resize(8, 2, testBG)
	if b.W != 8 || b.H != 2 || len(b.Cells) != 2 || len(b.Cells[0]) != 8 {
		t.Fatalf("Resize: got %dx%d", b.W, b.H)
	}
}

func TestRenderLineCount(t *testing.T) {
	b := New(20, 5, testBG)
	lines := strings.Split(b.Render(), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
}

func TestRenderContent(t *testing.T) {
	b := New(10, 1, testBG)
	b.SetString(2, 0, "Hi", testRed)
	result := b.Render()
	if !strings.Contains(result, "Hi") {
		t.Fatalf("rendered output doesn't contain 'Hi': %q", result)
	}
}

func TestRenderMergesRuns(t *testing.T) {
	uniform := New(50, 1, testBG).Render()

	b2 := New(50, 1, testBG)
	for x := 0; x < 50; x++ {
		if x%2 == 0 {
			b2.Set(x, 0, '.', testRed)
		} else {
			b2.Set(x, 0, '.', testBlue)
		}
	}
	alternating := b2.Render()

	if len(uniform) >= len(alternating) {
		t.Errorf("uniform render (%d bytes) should be shorter than alternating (%d bytes)",
			len(uniform), len(alternating))
	}
}

func TestRenderUnstyled(t *testing.T) {
	b := New(5, 1, Style{})
	b.SetString(0, 0, "plain", Style{})
	if got := b.Render(); got != "plain" {
		t.Fatalf("unstyled render = %q, want %q", got, "plain")
	}
}

func TestPlain(t *testing.T) {
	b := New(3, 2, testBG)
	b.Set(1, 1, '#', testRed)
	if got := b.Plain(); got != "   \n # " {
		t.Errorf("Plain = %q", got)
	}
}

func BenchmarkRender200x50(b *testing.B) {
	buf := New(200, 50, testBG)
	for y := 0; y < 50; y++ {
		for x := 0; x < 200; x++ {
			if x%5 == 0 && y%3 == 0 {
				buf.Set(x, y, '·', testRed)
			}
		}
		buf.Set(y, y%50, '/', testBlue)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = buf.Render()
	}
}
