package picsum

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/mmcdole/slide/internal/domain"
)

// DecodeImages parses and validates a listing payload.
// The top level must be an array; every element must be an object with a
// non-empty id (string or number) and a non-empty download_url.
func DecodeImages(body []byte) ([]domain.Image, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '[' {
		return nil, &domain.DecodeError{Index: -1, Reason: "expected a JSON array"}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(body, &elems); err != nil {
		return nil, &domain.DecodeError{Index: -1, Reason: err.Error()}
	}

	dtos := make([]ImageDTO, len(elems))
	for i, raw := range elems {
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || raw[0] != '{' {
			return nil, &domain.DecodeError{Index: i, Reason: "expected an object"}
		}
		if err := json.Unmarshal(raw, &dtos[i]); err != nil {
			return nil, &domain.DecodeError{Index: i, Reason: err.Error()}
		}
	}

	return MapImages(dtos)
}

// MapImages converts listing DTOs to domain images, validating required fields
func MapImages(dtos []ImageDTO) ([]domain.Image, error) {
	images := make([]domain.Image, 0, len(dtos))
	for i, d := range dtos {
		img, err := MapImage(d)
		if err != nil {
			err.Index = i
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

// MapImage converts a single DTO. The returned error has Index 0.
func MapImage(d ImageDTO) (domain.Image, *domain.DecodeError) {
	id, reason := parseID(d.ID)
	if reason != "" {
		return domain.Image{}, &domain.DecodeError{Field: "id", Reason: reason}
	}
	if reason := checkDownloadURL(d.DownloadURL); reason != "" {
		return domain.Image{}, &domain.DecodeError{Field: "download_url", Reason: reason}
	}

	return domain.Image{
		ID:          id,
		Author:      d.Author,
		Width:       d.Width,
		Height:      d.Height,
		URL:         d.URL,
		DownloadURL: d.DownloadURL,
	}, nil
}

// checkDownloadURL requires an absolute http(s) URL with a host.
// A non-empty reason means the URL is unusable.
func checkDownloadURL(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "missing"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "not a URL"
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "must be an http or https URL"
	}
	if u.Host == "" {
		return "missing host"
	}
	return ""
}

// parseID normalises a string or number id to a string.
// A non-empty reason means the id is unusable.
func parseID(raw json.RawMessage) (string, string) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", "missing"
	}

	switch {
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err.Error()
		}
		if strings.TrimSpace(s) == "" {
			return "", "empty"
		}
		return s, ""

	case raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9'):
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", err.Error()
		}
		return n.String(), ""

	default:
		return "", "must be a string or number"
	}
}
