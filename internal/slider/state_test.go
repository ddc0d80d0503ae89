package slider

import (
	"errors"
	"strings"
	"testing"

	"github.com/mmcdole/slide/internal/domain"
)

func images(ids ...string) []domain.Image {
	out := make([]domain.Image, len(ids))
	for i, id := range ids {
		out[i] = domain.Image{ID: id, DownloadURL: "https://example.test/" + id}
	}
	return out
}

// ready builds a Ready state holding imgs, going through the reducer.
func ready(imgs []domain.Image) State {
	s := Reduce(New(), FetchStarted{RequestID: 1})
	return Reduce(s, FetchSucceeded{RequestID: 1, Images: imgs})
}

func TestStepInverse(t *testing.T) {
	for n := 1; n <= 12; n++ {
		for i := 0; i < n; i++ {
			if got := StepRight(StepLeft(i, n), n); got != i {
				t.Errorf("n=%d: StepRight(StepLeft(%d)) = %d", n, i, got)
			}
			if got := StepLeft(StepRight(i, n), n); got != i {
				t.Errorf("n=%d: StepLeft(StepRight(%d)) = %d", n, i, got)
			}
		}
	}
}

func TestStepWrapBoundaries(t *testing.T) {
	for n := 1; n <= 12; n++ {
		if got := StepRight(n-1, n); got != 0 {
			t.Errorf("StepRight(%d, %d) = %d, want 0", n-1, n, got)
		}
		if got := StepLeft(0, n); got != n-1 {
			t.Errorf("StepLeft(0, %d) = %d, want %d", n, got, n-1)
		}
	}
}

func TestStepEmptyIsIdentity(t *testing.T) {
	if got := StepLeft(0, 0); got != 0 {
		t.Errorf("StepLeft(0, 0) = %d", got)
	}
	if got := StepRight(3, 0); got != 3 {
		t.Errorf("StepRight(3, 0) = %d", got)
	}
}

func TestIndicators(t *testing.T) {
	s := ready(images("a", "b", "c"))
	s = Reduce(s, JumpTo{Index: 1})

	ind := s.Indicators()
	if len(ind) != 3 {
		t.Fatalf("Expected 3 indicators, got %d", len(ind))
	}
	for i, in := range ind {
		if in.Index != i {
			t.Errorf("indicator %d has index %d", i, in.Index)
		}
		if in.Selected != (i == 1) {
			t.Errorf("indicator %d selected = %v", i, in.Selected)
		}
	}

	if New().Indicators() != nil {
		t.Error("Expected no indicators before Ready")
	}
}

func TestCurrentImage(t *testing.T) {
	s := ready(images("a", "b"))
	img, ok := s.CurrentImage()
	if !ok || img.ID != "a" {
		t.Fatalf("CurrentImage() = %v, %v", img, ok)
	}

	if _, ok := ready(nil).CurrentImage(); ok {
		t.Error("Expected no current image for an empty list")
	}

	// JumpTo is unchecked; an out-of-range cursor must not panic here
	s = Reduce(s, JumpTo{Index: 9})
	if _, ok := s.CurrentImage(); ok {
		t.Error("Expected no current image for an out-of-range cursor")
	}
}

func TestErrorMessage(t *testing.T) {
	msg := ErrorMessage(errors.New("timeout"))
	if msg != "Error while fetching images data: timeout" {
		t.Errorf("ErrorMessage() = %q", msg)
	}
	if !strings.Contains(msg, "timeout") {
		t.Error("message must contain the cause")
	}
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{
		PhaseNotStarted: "not started",
		PhaseLoading:    "loading",
		PhaseReady:      "ready",
		PhaseFailed:     "failed",
		Phase(42):       "phase(42)",
	}
	for p, want := range tests {
		if got := p.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", int(p), got, want)
		}
	}
}
