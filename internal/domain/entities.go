package domain

import "fmt"

// Image is a single record from an image listing endpoint.
// Only ID and DownloadURL are required; the rest is display metadata.
type Image struct {
	ID          string // Unique identifier, used as the list key
	Author      string // Photographer or uploader
	Width       int    // Source width in pixels (0 if unknown)
	Height      int    // Source height in pixels (0 if unknown)
	URL         string // Landing page for the image
	DownloadURL string // Direct locator used for display
}

// GetID returns the unique identifier for this image
func (i Image) GetID() string { return i.ID }

// GetTitle returns the display title: the author, or the ID when no author is known
func (i Image) GetTitle() string {
	if i.Author != "" {
		return i.Author
	}
	return "#" + i.ID
}

// GetDescription returns secondary info for display (e.g., "5000×3333")
func (i Image) GetDescription() string {
	if i.Width == 0 || i.Height == 0 {
		return ""
	}
	return fmt.Sprintf("%d×%d", i.Width, i.Height)
}

// Query holds the pagination parameters sent to the listing endpoint.
// Both values are passed through verbatim.
type Query struct {
	Page  string
	Limit string
}
