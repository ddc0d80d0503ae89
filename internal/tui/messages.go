package tui

import "github.com/mmcdole/slide/internal/domain"

// Message types for the TUI

// ErrMsg represents an error outside the fetch lifecycle
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// ImagesLoadedMsg delivers a decoded listing for a request
type ImagesLoadedMsg struct {
	RequestID uint64
	Images    []domain.Image
	FromCache bool
}

// ImagesFailedMsg delivers a failed listing request
type ImagesFailedMsg struct {
	RequestID uint64
	Err       error
}

// OpenedMsg signals an image was handed to the external viewer
type OpenedMsg struct {
	URL string
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
