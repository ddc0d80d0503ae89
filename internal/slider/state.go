package slider

import (
	"fmt"

	"github.com/mmcdole/slide/internal/domain"
)

// Phase is the fetch lifecycle stage
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not started"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// errorTemplate is the prefix shown for every fetch failure
const errorTemplate = "Error while fetching images data: %v"

// State is one snapshot of the slider. Treat it as immutable: Reduce returns
// a new value and never writes through the Images slice.
type State struct {
	Phase     Phase
	Images    []domain.Image // Set once, on the Ready transition
	Current   int            // Cursor into Images, meaningful only while Ready and non-empty
	Err       string         // Display message, set only when Failed
	RequestID uint64         // Request whose result is awaited or was applied
	Closed    bool           // Set by Teardown, after which nothing changes
}

// Indicator is one entry of the indicator strip
type Indicator struct {
	Index    int
	Selected bool
}

// New returns a slider that has not started fetching
func New() State {
	return State{Phase: PhaseNotStarted}
}

// Len returns the number of loaded images
func (s State) Len() int { return len(s.Images) }

// IsEmpty reports whether no images are loaded
func (s State) IsEmpty() bool { return len(s.Images) == 0 }

// Navigable reports whether navigation events have any effect
func (s State) Navigable() bool {
	return s.Phase == PhaseReady && !s.Closed && len(s.Images) > 0
}

// CurrentImage returns the image at the cursor
func (s State) CurrentImage() (domain.Image, bool) {
	if s.Phase != PhaseReady || s.Current < 0 || s.Current >= len(s.Images) {
		return domain.Image{}, false
	}
	return s.Images[s.Current], true
}

// IsVisible reports whether image i is the one on display
func (s State) IsVisible(i int) bool {
	return s.Phase == PhaseReady && i == s.Current && i >= 0 && i < len(s.Images)
}

// Indicators returns one strip entry per image, with the current one selected
func (s State) Indicators() []Indicator {
	if s.Phase != PhaseReady {
		return nil
	}
	out := make([]Indicator, len(s.Images))
	for i := range s.Images {
		out[i] = Indicator{Index: i, Selected: i == s.Current}
	}
	return out
}

// ErrorMessage formats a fetch failure for display
func ErrorMessage(err error) string {
	return fmt.Sprintf(errorTemplate, err)
}

// StepLeft returns the index left of i in a list of n, wrapping to n-1.
// With n <= 0 it returns i unchanged.
func StepLeft(i, n int) int {
	if n <= 0 {
		return i
	}
	if i < 1 {
		return n - 1
	}
	return i - 1
}

// StepRight returns the index right of i in a list of n, wrapping to 0.
// With n <= 0 it returns i unchanged.
func StepRight(i, n int) int {
	if n <= 0 {
		return i
	}
	if i >= n-1 {
		return 0
	}
	return i + 1
}
