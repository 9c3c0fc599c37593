package allowlist

import (
	"errors"
	"fmt"
	"log/slog"
	"net/netip"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/nao1215/eolallowlist/internal/config"
	"github.com/nao1215/eolallowlist/internal/model"
)

// TimestampLayout is the layout of the capture timestamp logged with every
// written file, e.g. "05_Jan_2024_13_07_22-UTC".
const TimestampLayout = "02_Jan_2006_15_04_05-UTC"

// ErrEmptyAllowlist is returned when there is no URL and no IP to write.
var ErrEmptyAllowlist = errors.New("no content available for allowlists")

// FileNames holds the destination file names.
type FileNames struct {
	URLs  string
	IPs   string
	FQDNs string
}

// Writer writes an Allowlist to a directory.
type Writer struct {
	dir    string
	names  FileNames
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Writer.
type Option func(*Writer)

// WithFileNames overrides the destination file names. Empty names keep the
// default.
func WithFileNames(names FileNames) Option {
	return func(w *Writer) {
		if names.URLs != "" {
			w.names.URLs = names.URLs
		}
		if names.IPs != "" {
			w.names.IPs = names.IPs
		}
		if names.FQDNs != "" {
			w.names.FQDNs = names.FQDNs
		}
	}
}

// WithClock sets the clock used for capture timestamps.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) {
		if now != nil {
			w.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Writer) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWriter creates a Writer for dir.
func NewWriter(dir string, opts ...Option) *Writer {
	w := &Writer{
		dir: dir,
		names: FileNames{
			URLs:  config.DefaultURLsFile,
			IPs:   config.DefaultIPsFile,
			FQDNs: config.DefaultFQDNsFile,
		},
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Names returns the destination file names.
func (w *Writer) Names() FileNames {
	return w.names
}

// Write writes the URLs, IPs and FQDNs of list, in that order.
// It stops at the first file that cannot be written; files written before
// the failure are reported along with the error.
func (w *Writer) Write(list *model.Allowlist) ([]model.WrittenFile, error) {
	if list.IsEmpty() {
		w.logger.Error("no content available for allowlists")
		return nil, ErrEmptyAllowlist
	}

	if err := os.MkdirAll(w.dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	entries := []struct {
		name  string
		label string
		lines []string
	}{
		{name: w.names.URLs, label: "non-IPs", lines: list.URLs.Sorted()},
		{name: w.names.IPs, label: "IPs", lines: SortIPs(list.IPs.Values())},
		{name: w.names.FQDNs, label: "FQDNs", lines: list.FQDNs.Sorted()},
	}

	written := make([]model.WrittenFile, 0, len(entries))
	for _, e := range entries {
		path := filepath.Join(w.dir, e.name)
		if err := writeFile(path, strings.Join(e.lines, "\n")); err != nil {
			return written, err
		}

		ts := Timestamp(w.now())
		w.logger.Info(fmt.Sprintf("%s written", e.label),
			"count", len(e.lines),
			"file", e.name,
			"at", ts,
		)
		written = append(written, model.WrittenFile{
			Name:      e.name,
			Path:      path,
			Count:     len(e.lines),
			Timestamp: ts,
		})
	}
	return written, nil
}

// SortIPs returns the IPv4 addresses sorted by numeric value. Strings that
// do not parse as addresses are placed last in lexicographic order.
func SortIPs(ips []string) []string {
	type entry struct {
		raw  string
		addr netip.Addr
		ok   bool
	}

	entries := make([]entry, 0, len(ips))
	for _, ip := range ips {
		addr, err := netip.ParseAddr(ip)
		entries = append(entries, entry{raw: ip, addr: addr, ok: err == nil})
	}

	slices.SortStableFunc(entries, func(a, b entry) int {
		switch {
		case a.ok && b.ok:
			return a.addr.Compare(b.addr)
		case a.ok:
			return -1
		case b.ok:
			return 1
		default:
			return strings.Compare(a.raw, b.raw)
		}
	})

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.raw
	}
	return out
}

// Timestamp formats t in UTC with TimestampLayout.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// writeFile writes content to path.tmp and renames it over path.
func writeFile(path, content string) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil { //nolint:gosec // allowlists are meant to be world-readable
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
