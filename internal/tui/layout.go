package tui

import "github.com/mmcdole/slide/internal/slider"

// Screen geometry. View renders to exactly these rows and columns so that
// mouse hits can be resolved without re-rendering.
const (
	HeaderHeight   = 2 // title line + blank
	ArrowWidth     = 5
	CardHeight     = 7 // border + 5 content lines
	StripGap       = 1 // blank line between card and strip
	IndicatorWidth = 2 // glyph + space

	MinCardWidth = 24
	MaxCardWidth = 80
)

// sliderLayout holds the computed geometry for one frame
type sliderLayout struct {
	cardWidth int
	stripRow  int
	perRow    int // indicators per strip row
}

// layout computes the geometry for the current terminal width
func (m Model) layout() sliderLayout {
	cw := m.Width - 2*ArrowWidth
	cw = min(max(cw, MinCardWidth), MaxCardWidth)
	return sliderLayout{
		cardWidth: cw,
		stripRow:  HeaderHeight + CardHeight + StripGap,
		perRow:    max(1, cw/IndicatorWidth),
	}
}

// stripRows returns how many rows n indicators occupy
func (l sliderLayout) stripRows(n int) int {
	if n == 0 {
		return 1
	}
	return (n + l.perRow - 1) / l.perRow
}

// hitTest resolves a click at (x, y) over a listing of n images
func (l sliderLayout) hitTest(x, y, n int) slider.Event {
	if y >= HeaderHeight && y < HeaderHeight+CardHeight {
		switch {
		case x >= 0 && x < ArrowWidth:
			return slider.StepLeftEvent{}
		case x >= ArrowWidth+l.cardWidth && x < 2*ArrowWidth+l.cardWidth:
			return slider.StepRightEvent{}
		}
		return nil
	}

	if y < l.stripRow || y >= l.stripRow+l.stripRows(n) {
		return nil
	}
	col := x - ArrowWidth
	if col < 0 {
		return nil
	}
	slot := col / IndicatorWidth
	if slot >= l.perRow {
		return nil
	}
	idx := (y-l.stripRow)*l.perRow + slot
	if idx >= n {
		return nil
	}
	return slider.JumpTo{Index: idx}
}
