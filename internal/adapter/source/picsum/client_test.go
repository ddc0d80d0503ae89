package picsum

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/slide/internal/domain"
)

func TestBuildRequestURL(t *testing.T) {
	tests := []struct {
		name   string
		page   string
		limit  string
		legacy bool
		want   string
	}{
		{"legacy", "2", "10", true, "https://x.test/list?page=2&limit=110"},
		{"legacy empty limit", "1", "", true, "https://x.test/list?page=1&limit=1"},
		{"legacy verbatim", "a b", "5&x=1", true, "https://x.test/list?page=a b&limit=15&x=1"},
		{"plain", "2", "10", false, "https://x.test/list?page=2&limit=10"},
		{"plain escaped", "a b", "5&x=1", false, "https://x.test/list?page=a+b&limit=5%26x%3D1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildRequestURL("https://x.test/list", tt.page, tt.limit, tt.legacy)
			if err != nil {
				t.Fatalf("BuildRequestURL failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := BuildRequestURL("", "1", "1", true); err == nil {
		t.Error("Expected error for empty base URL")
	}
}

func TestEffectiveLimit(t *testing.T) {
	if got := EffectiveLimit("10", true); got != "110" {
		t.Errorf("legacy: got %q", got)
	}
	if got := EffectiveLimit("10", false); got != "10" {
		t.Errorf("plain: got %q", got)
	}
}

func TestListImagesSendsLegacyQuery(t *testing.T) {
	var gotQuery, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`[{"id":"0","author":"A","width":10,"height":20,"url":"u","download_url":"https://picsum.test/id/0/10/20"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/v2/list", true, time.Second, nil)
	images, err := c.ListImages(context.Background(), domain.Query{Page: "3", Limit: "10"})
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}

	if gotQuery != "page=3&limit=110" {
		t.Errorf("query = %q", gotQuery)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q", gotAccept)
	}
	want := domain.Image{ID: "0", Author: "A", Width: 10, Height: 20, URL: "u", DownloadURL: "https://picsum.test/id/0/10/20"}
	if len(images) != 1 || images[0] != want {
		t.Errorf("images = %+v", images)
	}
}

func TestListImagesStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, false, time.Second, nil)
	_, err := c.ListImages(context.Background(), domain.Query{Page: "1", Limit: "1"})

	var se *domain.StatusError
	if !errors.As(err, &se) || se.Code != http.StatusNotFound {
		t.Fatalf("Expected StatusError 404, got %v", err)
	}
	if !errors.Is(err, domain.ErrFetchFailed) || !errors.Is(err, domain.ErrUnexpectedStatus) {
		t.Errorf("Expected fetch failure sentinels, got %v", err)
	}
}

func TestListImagesDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"not a list"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, true, time.Second, nil)
	_, err := c.ListImages(context.Background(), domain.Query{})
	if !errors.Is(err, domain.ErrDecode) {
		t.Fatalf("Expected ErrDecode, got %v", err)
	}
}

func TestListImagesServerOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	c := NewClient(addr, true, time.Second, nil)
	_, err := c.ListImages(context.Background(), domain.Query{})
	if !errors.Is(err, domain.ErrServerOffline) {
		t.Fatalf("Expected ErrServerOffline, got %v", err)
	}
	if !errors.Is(err, domain.ErrFetchFailed) {
		t.Errorf("Expected ErrFetchFailed, got %v", err)
	}
}

func TestListImagesCancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	c := NewClient(srv.URL, true, 0, nil)

	errCh := make(chan error, 1)
	go func() {
		_, err := c.ListImages(ctx, domain.Query{})
		errCh <- err
	}()

	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ListImages did not return after cancel")
	}
}

func TestRequestURLMatchesRequest(t *testing.T) {
	c := NewClient("https://x.test/list", true, 0, nil)
	got, err := c.RequestURL(domain.Query{Page: "1", Limit: "5"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(got, "?page=1&limit=15") {
		t.Errorf("RequestURL = %q", got)
	}
}
