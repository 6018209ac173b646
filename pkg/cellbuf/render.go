package cellbuf

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// lipglossStyle converts a cell Style into the equivalent lipgloss style.
func lipglossStyle(s Style) lipgloss.Style {
	st := lipgloss.NewStyle()
	if s.FG.A != 0 {
		st = st.Foreground(s.FG)
	}
	if s.BG.A != 0 {
		st = st.Background(s.BG)
	}
	if s.Bold {
		st = st.Bold(true)
	}
	return st
}

// Render converts the buffer into a styled string.
//
// Consecutive cells with the same Style are merged into runs and rendered
// with a single Style.Render() call per run, and each distinct Style is
// converted to a lipgloss style once per call.
//
// Rows are joined with "\n". An empty buffer (W==0 or H==0) returns "".
func (b *Buffer) Render() string {
	if b.W == 0 || b.H == 0 {
		return ""
	}

	cache := make(map[Style]lipgloss.Style)
	styleOf := func(s Style) lipgloss.Style {
		if st, ok := cache[s]; ok {
			return st
		}
		st := lipglossStyle(s)
		cache[s] = st
		return st
	}

	lines := make([]string, b.H)
	chunk := make([]rune, 0, b.W)

	for y := 0; y < b.H; y++ {
		var sb strings.Builder
		row := b.Cells[y]

		runStart := 0
		for x := 1; x <= b.W; x++ {
			if x < b.W && row[x].Style == row[runStart].Style {
				continue
			}
			chunk = chunk[:0]
			for i := runStart; i < x; i++ {
				if row[i].Ch != 0 {
					chunk = append(chunk, row[i].Ch)
				}
			}
			if row[runStart].Style == (Style{}) {
				sb.WriteString(string(chunk))
			} else {
				sb.WriteString(styleOf(row[runStart].Style).Render(string(chunk)))
			}
			runStart = x
		}

		lines[y] = sb.String()
	}

	return strings.Join(lines, "\n")
}

// Plain returns the buffer's characters without any styling.
func (b *Buffer) Plain() string {
	lines := make([]string, b.H)
	for y, row := range b.Cells {
		rs := make([]rune, 0, len(row))
		for _, c := range row {
			if c.Ch != 0 {
				rs = append(rs, c.Ch)
			}
		}
		lines[y] = string(rs)
	}
	return strings.Join(lines, "\n")
}
