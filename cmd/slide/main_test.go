package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/mmcdole/slide/internal/adapter"
	"github.com/mmcdole/slide/internal/adapter/source/picsum"
	"github.com/mmcdole/slide/internal/domain"
)

func TestApplyFlags(t *testing.T) {
	cfg := adapter.DefaultConfig()
	applyFlags(cfg, flags{url: "http://localhost:8080/list", limit: "5"})

	if cfg.Source.URL != "http://localhost:8080/list" {
		t.Errorf("Expected url override, got %q", cfg.Source.URL)
	}
	if cfg.Source.Limit != "5" {
		t.Errorf("Expected limit override, got %q", cfg.Source.Limit)
	}
	if cfg.Source.Page != "1" {
		t.Errorf("Expected default page to survive, got %q", cfg.Source.Page)
	}
}

func TestWriteListing(t *testing.T) {
	images := []domain.Image{
		{ID: "0", Author: "Alejandro Escamilla", Width: 5000, Height: 3333, DownloadURL: "https://picsum.photos/id/0/5000/3333"},
		{ID: "1", DownloadURL: "https://picsum.photos/id/1/5000/3333"},
	}

	var buf bytes.Buffer
	if err := writeListing(&buf, images, 1); err != nil {
		t.Fatalf("writeListing: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "  0\tAlejandro Escamilla\t5000×3333\t") {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "* 1\t#1\t") {
		t.Errorf("Expected marked second line, got %q", lines[1])
	}
}

func listingServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var gets atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gets.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"0","author":"A","download_url":"https://picsum.test/id/0/10/20"}]`))
	}))
	t.Cleanup(srv.Close)
	return srv, &gets
}

func TestDefaultConfigFetchesOncePerMount(t *testing.T) {
	srv, gets := listingServer(t)

	cfg := adapter.DefaultConfig()
	cfg.Source.URL = srv.URL
	cfg.Cache.Dir = t.TempDir()
	logger := adapter.NullLogger()
	q := domain.Query{Page: cfg.Source.Page, Limit: cfg.Source.Limit}

	for mount := 1; mount <= 2; mount++ {
		client := picsum.NewClient(cfg.Source.URL, cfg.Source.LegacyLimit, cfg.Source.Timeout, logger)
		svc, closeStore := newGallery(cfg, client, logger)

		_, fromCache, err := svc.Load(context.Background(), q, false)
		closeStore()
		if err != nil {
			t.Fatalf("mount %d: Load failed: %v", mount, err)
		}
		if fromCache {
			t.Errorf("mount %d: default config must not serve from cache", mount)
		}
		if got := int(gets.Load()); got != mount {
			t.Errorf("mount %d: expected %d GETs, got %d", mount, mount, got)
		}
	}
}

func TestEnabledCacheServesSecondMount(t *testing.T) {
	srv, gets := listingServer(t)

	cfg := adapter.DefaultConfig()
	cfg.Source.URL = srv.URL
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = t.TempDir()
	logger := adapter.NullLogger()
	q := domain.Query{Page: cfg.Source.Page, Limit: cfg.Source.Limit}

	var fromCache bool
	for mount := 1; mount <= 2; mount++ {
		client := picsum.NewClient(cfg.Source.URL, cfg.Source.LegacyLimit, cfg.Source.Timeout, logger)
		svc, closeStore := newGallery(cfg, client, logger)

		var err error
		_, fromCache, err = svc.Load(context.Background(), q, false)
		closeStore()
		if err != nil {
			t.Fatalf("mount %d: Load failed: %v", mount, err)
		}
	}
	if !fromCache || gets.Load() != 1 {
		t.Errorf("Expected opt-in cache to serve the second mount, fromCache=%v GETs=%d", fromCache, gets.Load())
	}
}
