package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/slide/internal/adapter"
	"github.com/mmcdole/slide/internal/adapter/source/picsum"
	"github.com/mmcdole/slide/internal/domain"
	"github.com/mmcdole/slide/internal/service"
	"github.com/mmcdole/slide/internal/store"
	"github.com/mmcdole/slide/internal/tui"
	"github.com/mmcdole/slide/internal/tui/styles"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

// flags holds command line overrides for the loaded configuration
type flags struct {
	url        string
	page       string
	limit      string
	author     string
	refresh    bool
	print      bool
	clearCache bool
}

func main() {
	var f flags
	var showVersion bool
	flag.StringVar(&f.url, "url", "", "image listing URL")
	flag.StringVar(&f.page, "page", "", "page to request")
	flag.StringVar(&f.limit, "limit", "", "page size")
	flag.StringVar(&f.author, "author", "", "start at the best match for this author")
	flag.BoolVar(&f.refresh, "refresh", false, "bypass the listing cache")
	flag.BoolVar(&f.print, "print", false, "print the listing instead of starting the UI")
	flag.BoolVar(&f.clearCache, "clear-cache", false, "remove cached listings and exit")
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("slide %s\n", Version)
		return
	}

	if err := run(f); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(f flags) error {
	// Load configuration
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cfg, f)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if f.clearCache {
		n, err := store.ClearAll(cfg.Cache.Dir)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Cleared %d cached source(s)\n", n)
		return nil
	}

	// Setup logger
	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting slide", "version", Version, "source", cfg.Source.URL)

	if cfg.Source.LegacyLimit {
		logger.Warn("legacy limit query in use",
			"limit", cfg.Source.Limit,
			"effectiveLimit", picsum.EffectiveLimit(cfg.Source.Limit, true))
	}

	client := picsum.NewClient(cfg.Source.URL, cfg.Source.LegacyLimit, cfg.Source.Timeout, logger)
	query := domain.Query{Page: cfg.Source.Page, Limit: cfg.Source.Limit}
	requestURL, err := client.RequestURL(query)
	if err != nil {
		return err
	}

	gallerySvc, closeStore := newGallery(cfg, client, logger)
	defer closeStore()
	if f.refresh {
		if err := gallerySvc.Forget(query); err != nil {
			logger.Warn("failed to drop cached listing", "error", err)
		}
	}

	if f.print || !term.IsTerminal(int(os.Stdout.Fd())) {
		return printListing(gallerySvc, query, f, logger)
	}

	launcher := adapter.NewLauncher(cfg.Viewer.Command, cfg.Viewer.Args, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := tui.NewModel(ctx, gallerySvc, launcher, logger, tui.Options{
		Query:     query,
		SourceURL: requestURL,
		Refresh:   f.refresh,
		Author:    f.author,
		ShowHelp:  cfg.UI.ShowHelp,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// newGallery wires the listing service. The store is attached only when the
// cache is enabled; the returned func closes it.
func newGallery(cfg *adapter.Config, repo domain.ImageRepository, logger *slog.Logger) (*service.GalleryService, func()) {
	if !cfg.Cache.Enabled {
		return service.NewGalleryService(repo, nil, cfg.Cache.TTL, logger), func() {}
	}

	s, err := store.NewImageStore(cfg.Cache.Dir, cfg.Source.URL)
	if err != nil {
		logger.Warn("cache unavailable, continuing without it", "error", err)
		return service.NewGalleryService(repo, nil, cfg.Cache.TTL, logger), func() {}
	}
	return service.NewGalleryService(repo, s, cfg.Cache.TTL, logger), func() { s.Close() }
}

// applyFlags overrides configuration with any flags given on the command line
func applyFlags(cfg *adapter.Config, f flags) {
	if f.url != "" {
		cfg.Source.URL = f.url
	}
	if f.page != "" {
		cfg.Source.Page = f.page
	}
	if f.limit != "" {
		cfg.Source.Limit = f.limit
	}
}

// printListing fetches the listing once and writes one line per image
func printListing(svc *service.GalleryService, q domain.Query, f flags, logger *slog.Logger) error {
	images, err := loadWithSpinner(svc, q, f.refresh)
	if err != nil {
		logger.Error("listing failed", "error", err)
		return fmt.Errorf("failed to fetch images: %w", err)
	}

	start := -1
	if f.author != "" {
		if idx, ok := service.NewSearchService(images).Best(f.author); ok {
			start = idx
		} else {
			fmt.Fprintf(os.Stderr, "No image by %q\n", f.author)
		}
	}

	return writeListing(os.Stdout, images, start)
}

// writeListing writes id, author, size and download URL for each image.
// The image at mark, if any, is prefixed with an asterisk.
func writeListing(w io.Writer, images []domain.Image, mark int) error {
	for i, img := range images {
		prefix := " "
		if i == mark {
			prefix = "*"
		}
		if _, err := fmt.Fprintf(w, "%s %s\t%s\t%s\t%s\n", prefix, img.GetID(), img.GetTitle(), img.GetDescription(), img.DownloadURL); err != nil {
			return err
		}
	}
	return nil
}

// loadWithSpinner loads the listing, animating a spinner on stderr when it is a terminal
func loadWithSpinner(svc *service.GalleryService, q domain.Query, refresh bool) ([]domain.Image, error) {
	ctx := context.Background()
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		images, _, err := svc.Load(ctx, q, refresh)
		return images, err
	}

	type result struct {
		images []domain.Image
		err    error
	}
	resultCh := make(chan result, 1)

	go func() {
		images, _, err := svc.Load(ctx, q, refresh)
		resultCh <- result{images, err}
	}()

	frame := 0
	fmt.Fprintf(os.Stderr, "\r%s Loading...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case res := <-resultCh:
			fmt.Fprint(os.Stderr, clearSpinnerLine)
			return res.images, res.err

		case <-ticker.C:
			frame++
			fmt.Fprintf(os.Stderr, "\r%s Loading...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
		}
	}
}
