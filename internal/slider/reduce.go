package slider

import (
	"slices"

	"github.com/mmcdole/slide/internal/domain"
)

// Event is an input to Reduce
type Event interface {
	isEvent()
}

// FetchStarted moves a fresh slider to Loading for the given request
type FetchStarted struct {
	RequestID uint64
}

// FetchSucceeded delivers the decoded list for a request
type FetchSucceeded struct {
	RequestID uint64
	Images    []domain.Image
}

// FetchFailed delivers the error for a request
type FetchFailed struct {
	RequestID uint64
	Err       error
}

// StepLeftEvent moves the cursor one image left, wrapping to the end
type StepLeftEvent struct{}

// StepRightEvent moves the cursor one image right, wrapping to the start
type StepRightEvent struct{}

// JumpTo moves the cursor to Index. The caller guarantees 0 <= Index < Len().
type JumpTo struct {
	Index int
}

// Teardown ends the slider's lifetime. Later results are ignored.
type Teardown struct{}

func (FetchStarted) isEvent()   {}
func (FetchSucceeded) isEvent() {}
func (FetchFailed) isEvent()    {}
func (StepLeftEvent) isEvent()  {}
func (StepRightEvent) isEvent() {}
func (JumpTo) isEvent()         {}
func (Teardown) isEvent()       {}

// Reduce applies ev to s and returns the resulting state.
// Events that do not apply in the current phase return s unchanged.
func Reduce(s State, ev Event) State {
	if s.Closed {
		return s
	}

	switch e := ev.(type) {
	case FetchStarted:
		if s.Phase != PhaseNotStarted {
			return s
		}
		s.Phase = PhaseLoading
		s.RequestID = e.RequestID
		s.Current = 0

	case FetchSucceeded:
		if s.Phase != PhaseLoading || e.RequestID != s.RequestID {
			return s
		}
		s.Phase = PhaseReady
		s.Images = slices.Clone(e.Images)
		if s.Images == nil {
			s.Images = []domain.Image{}
		}
		s.Current = 0

	case FetchFailed:
		if s.Phase != PhaseLoading || e.RequestID != s.RequestID {
			return s
		}
		s.Phase = PhaseFailed
		s.Err = ErrorMessage(e.Err)

	case StepLeftEvent:
		if !s.Navigable() {
			return s
		}
		s.Current = StepLeft(s.Current, len(s.Images))

	case StepRightEvent:
		if !s.Navigable() {
			return s
		}
		s.Current = StepRight(s.Current, len(s.Images))

	case JumpTo:
		if s.Phase != PhaseReady {
			return s
		}
		s.Current = e.Index

	case Teardown:
		s.Closed = true
	}

	return s
}
