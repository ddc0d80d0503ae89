package adapter

import (
	"fmt"
	"log/slog"
	neturl "net/url"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Launcher opens image URLs in an external viewer
type Launcher struct {
	command string   // configured viewer command, empty for auto-detect
	args    []string // additional arguments for the viewer
	goos    string
	logger  *slog.Logger

	// start runs argv without waiting; swapped out in tests
	start func(argv []string) error
}

// launchPath defines a single way to launch a viewer
type launchPath struct {
	path      string   // Command path: "imv", "feh", or "open-a:AppName"
	openFlags []string // For "open-a:" paths only - flags for macOS open command (e.g., ["-n"])
}

// viewers registry - platform launch paths per known viewer
var viewers = map[string]map[string][]launchPath{
	"imv": {"linux": {{path: "imv"}}},
	"feh": {"linux": {{path: "feh"}}, "darwin": {{path: "feh"}}},
	"preview": {
		"darwin": {{path: "open-a:Preview", openFlags: []string{"-n"}}},
	},
}

// candidateViewers defines the preferred viewer order for each platform.
// Only viewers that can load a URL directly are listed.
var candidateViewers = map[string][]string{
	"darwin": {"preview"},
	"linux":  {"imv", "feh"},
}

// NewLauncher creates a new Launcher. An empty command means auto-detect.
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command: command,
		args:    args,
		goos:    runtime.GOOS,
		logger:  logger,
		start:   startDetached,
	}
}

func startDetached(argv []string) error {
	if _, err := exec.LookPath(argv[0]); err != nil {
		return err
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// Don't wait; the viewer outlives this call
	return cmd.Process.Release()
}

// Open shows url in the configured viewer, a detected one, or the system default
func (l *Launcher) Open(url string) error {
	if err := checkURL(url); err != nil {
		return err
	}

	// Tier 1: User configured a specific viewer
	if l.command != "" {
		argv := l.configuredArgv(url)
		l.logger.Info("launching configured viewer", "viewer", viewerName(l.command), "argv", argv)
		if err := l.start(argv); err != nil {
			return fmt.Errorf("failed to launch %s: %w", l.command, err)
		}
		return nil
	}

	// Tier 2: Try candidate chain
	for _, argv := range l.candidateArgvs(url) {
		err := l.start(argv)
		if err == nil {
			l.logger.Info("launched with detected viewer", "command", argv[0])
			return nil
		}
		l.logger.Debug("viewer not available", "command", argv[0], "error", err)
	}

	// Tier 3: Fall back to system default (open/xdg-open/start)
	argv := l.defaultArgv(url)
	l.logger.Info("using system default viewer", "os", l.goos, "url", url)
	if err := l.start(argv); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}

// checkURL accepts only absolute http(s) URLs, so nothing handed to a
// viewer can be read as a flag or a local path
func checkURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("no URL to open")
	}
	u, err := neturl.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("refusing to open %q: not an http(s) URL", raw)
	}
	return nil
}

// configuredArgv builds the command line for the configured viewer, URL last
func (l *Launcher) configuredArgv(url string) []string {
	argv := append([]string{l.command}, l.args...)
	return append(argv, url)
}

// candidateArgvs returns the command lines to try, in order, for the current platform
func (l *Launcher) candidateArgvs(url string) [][]string {
	candidates, ok := candidateViewers[l.goos]
	if !ok {
		candidates = candidateViewers["linux"]
	}

	var out [][]string
	for _, name := range candidates {
		for _, lp := range viewers[name][l.goos] {
			if app, ok := strings.CutPrefix(lp.path, "open-a:"); ok {
				argv := append([]string{"open"}, lp.openFlags...)
				out = append(out, append(argv, "-a", app, url))
				continue
			}
			out = append(out, []string{lp.path, url})
		}
	}
	return out
}

// defaultArgv opens the URL using the system default handler
func (l *Launcher) defaultArgv(url string) []string {
	switch l.goos {
	case "darwin":
		return []string{"open", url}
	case "windows":
		// Not through cmd, which would interpret & and | in the URL
		return []string{"rundll32", "url.dll,FileProtocolHandler", url}
	default:
		return []string{"xdg-open", url}
	}
}

// viewerName returns the lowercase base name of a command (for logging and lookup)
func viewerName(command string) string {
	base := strings.ToLower(filepath.Base(command))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
