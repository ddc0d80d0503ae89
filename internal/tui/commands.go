package tui

import (
	"context"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/slide/internal/domain"
	"github.com/mmcdole/slide/internal/service"
)

// Command factories for async operations

var requestSeq atomic.Uint64

// nextRequestID returns a process-unique fetch request id
func nextRequestID() uint64 {
	return requestSeq.Add(1)
}

// FetchImagesCmd loads the listing once. ctx is the model's lifetime context,
// so teardown aborts an in-flight request.
func FetchImagesCmd(ctx context.Context, svc *service.GalleryService, q domain.Query, requestID uint64, refresh bool) tea.Cmd {
	return func() tea.Msg {
		images, fromCache, err := svc.Load(ctx, q, refresh)
		if err != nil {
			return ImagesFailedMsg{RequestID: requestID, Err: err}
		}
		return ImagesLoadedMsg{RequestID: requestID, Images: images, FromCache: fromCache}
	}
}

// OpenImageCmd hands url to the external viewer
func OpenImageCmd(opener Opener, url string) tea.Cmd {
	return func() tea.Msg {
		if err := opener.Open(url); err != nil {
			return ErrMsg{Err: err, Context: "opening image"}
		}
		return OpenedMsg{URL: url}
	}
}

// ClearStatusCmd clears the status message after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
