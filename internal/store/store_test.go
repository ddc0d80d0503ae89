package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmcdole/slide/internal/domain"
)

var testImages = []domain.Image{
	{ID: "0", Author: "Alejandro Escamilla", Width: 5000, Height: 3333, DownloadURL: "https://picsum.photos/id/0/5000/3333"},
	{ID: "1", Author: "Alejandro Escamilla", Width: 5000, Height: 3333, DownloadURL: "https://picsum.photos/id/1/5000/3333"},
}

func TestMemoryStore(t *testing.T) {
	s, err := NewImageStore("", "")
	if err != nil {
		t.Fatalf("NewImageStore failed: %v", err)
	}
	defer s.Close()

	if _, _, ok := s.GetImages("k"); ok {
		t.Fatal("Expected miss on empty store")
	}

	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	if err := s.SaveImages("k", testImages); err != nil {
		t.Fatalf("SaveImages failed: %v", err)
	}

	got, at, ok := s.GetImages("k")
	if !ok {
		t.Fatal("Expected hit after save")
	}
	if len(got) != 2 || got[1] != testImages[1] {
		t.Errorf("got %+v", got)
	}
	if !at.Equal(fixed) {
		t.Errorf("FetchedAt = %v, want %v", at, fixed)
	}

	s.Invalidate("k")
	if _, _, ok := s.GetImages("k"); ok {
		t.Error("Expected miss after Invalidate")
	}
}

func TestBoltStorePersists(t *testing.T) {
	dir := t.TempDir()

	s, err := NewImageStore(dir, "https://picsum.photos/v2/list")
	if err != nil {
		t.Fatalf("NewImageStore failed: %v", err)
	}
	if err := s.SaveImages("a", testImages); err != nil {
		t.Fatalf("SaveImages failed: %v", err)
	}
	if err := s.SaveImages("empty", []domain.Image{}); err != nil {
		t.Fatalf("SaveImages failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Reopen: memory cache is gone, data must come from disk
	s, err = NewImageStore(dir, "https://PICSUM.photos/v2/list/")
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()

	got, _, ok := s.GetImages("a")
	if !ok || len(got) != 2 || got[0].ID != "0" {
		t.Errorf("after reopen got %+v, %v", got, ok)
	}

	empty, _, ok := s.GetImages("empty")
	if !ok || empty == nil || len(empty) != 0 {
		t.Errorf("Expected cached empty list, got %#v, %v", empty, ok)
	}
}

func TestBoltStoreInvalidateAll(t *testing.T) {
	s, err := NewImageStore(t.TempDir(), "src")
	if err != nil {
		t.Fatalf("NewImageStore failed: %v", err)
	}
	defer s.Close()

	for _, k := range []string{"a", "b", "c"} {
		if err := s.SaveImages(k, testImages); err != nil {
			t.Fatal(err)
		}
	}

	s.InvalidateAll()

	for _, k := range []string{"a", "b", "c"} {
		if _, _, ok := s.GetImages(k); ok {
			t.Errorf("Expected %q gone after InvalidateAll", k)
		}
	}
}

func TestHashSourceURLNormalizes(t *testing.T) {
	a := hashSourceURL("https://picsum.photos/v2/list")
	b := hashSourceURL("HTTPS://picsum.photos/v2/list/")
	if a != b {
		t.Errorf("Expected same hash, got %s and %s", a, b)
	}
	if len(a) != 12 {
		t.Errorf("Expected 12 hex chars, got %q", a)
	}
}

func TestClearAllRemovesOnlySourceCaches(t *testing.T) {
	base := t.TempDir()

	s, err := NewImageStore(base, "https://picsum.photos/v2/list")
	if err != nil {
		t.Fatalf("NewImageStore failed: %v", err)
	}
	if err := s.SaveImages("k", testImages); err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Unrelated content, including a hash-shaped directory without a database
	keep := []string{
		filepath.Join(base, "notes.txt"),
		filepath.Join(base, "Documents", "slide.db"),
		filepath.Join(base, "abcdef012345", "other.txt"),
	}
	for _, p := range keep {
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	n, err := ClearAll(base)
	if err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 cache removed, got %d", n)
	}
	if _, err := os.Stat(filepath.Join(base, hashSourceURL("https://picsum.photos/v2/list"))); !os.IsNotExist(err) {
		t.Errorf("Expected source cache removed, stat err = %v", err)
	}
	for _, p := range keep {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("Expected %s to survive: %v", p, err)
		}
	}
}

func TestClearAllMissingDir(t *testing.T) {
	n, err := ClearAll(filepath.Join(t.TempDir(), "absent"))
	if err != nil || n != 0 {
		t.Errorf("ClearAll on missing dir = %d, %v", n, err)
	}
	if n, err := ClearAll(""); err != nil || n != 0 {
		t.Errorf("ClearAll(\"\") = %d, %v", n, err)
	}
}
