// Package slider holds the index cycler behind the image slider.
//
// State is a plain value. It only changes through Reduce, which takes the
// current State and an Event and returns the next State:
//
//	s := slider.New()
//	s = slider.Reduce(s, slider.FetchStarted{RequestID: 1})
//	s = slider.Reduce(s, slider.FetchSucceeded{RequestID: 1, Images: imgs})
//	s = slider.Reduce(s, slider.StepRightEvent{})
//
// The fetch lifecycle runs NotStarted → Loading → Ready or Failed, and the
// last two are terminal. Navigation only applies while Ready and wraps at
// both ends of the list. Results for a stale request, or delivered after
// Teardown, are dropped.
package slider
