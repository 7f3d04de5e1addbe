// Package loader resolves sources into (document identifier, raw text) pairs.
//
// Supported sources: local files, doublestar glob patterns, directories
// (non-recursive scan for text-like files), "-" for standard input, and
// http(s) URLs. HTML sources pass through readability extraction and
// HTML-to-Markdown conversion; plain text is read as-is. Identifiers derive
// from base filenames, so corpora following the
// "<NameBlock>_<descriptor>.<ext>" convention keep that shape downstream.
package loader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/csbailey5t/winnow/internal/corpus"
)

// Size limits to prevent memory overload when reading documents.
const (
	MaxFileSizeBytes = 50 * 1024 * 1024  // 50MB limit for files
	MaxHTTPSizeBytes = 100 * 1024 * 1024 // 100MB limit for HTTP content (may not have Content-Length)
)

// HTTPRequestTimeout bounds each URL fetch.
const HTTPRequestTimeout = 30 * time.Second

// specific timeout thresholds (based on HTTPRequestTimeout)
var (
	httpDialTimeout           = HTTPRequestTimeout / 6
	httpTLSTimeout            = HTTPRequestTimeout / 6
	httpResponseHeaderTimeout = HTTPRequestTimeout / 2
)

// textExtensions are the file types picked up when a source is a directory.
var textExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
}

// Options controls loading behavior.
type Options struct {
	// Selector is an optional CSS selector narrowing HTML extraction.
	Selector string

	// IncludeAll bypasses readability extraction for HTML sources and
	// converts the full document.
	IncludeAll bool
}

// limitedReadCloser wraps an io.ReadCloser to enforce size limits
type limitedReadCloser struct {
	io.ReadCloser
	N      int64  // max bytes remaining
	source string // for error messages
}

func (l *limitedReadCloser) Read(p []byte) (n int, err error) {
	if l.N <= 0 {
		return 0, fmt.Errorf("content from %q exceeds size limit", l.source)
	}
	if int64(len(p)) > l.N {
		p = p[0:l.N]
	}
	n, err = l.ReadCloser.Read(p)
	l.N -= int64(n)
	return
}

// httpClient is a shared HTTP client with timeouts to prevent indefinite
// hangs. Safe for concurrent use.
var httpClient = &http.Client{
	Timeout: HTTPRequestTimeout,
	Transport: &http.Transport{
		Dial: (&net.Dialer{
			Timeout: httpDialTimeout,
		}).Dial,
		TLSHandshakeTimeout:   httpTLSTimeout,
		ResponseHeaderTimeout: httpResponseHeaderTimeout,
		DisableKeepAlives:     true,
	},
}

// Load resolves every source and returns one document per resolved item,
// in resolution order. Failing sources are skipped with a debug log entry;
// Load fails only when nothing at all could be loaded.
func Load(ctx context.Context, sources []string, opts Options) ([]corpus.Document, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("no sources provided")
	}

	var docs []corpus.Document
	var lastErr error
	for _, source := range sources {
		resolved, err := expandSource(source)
		if err != nil {
			slog.Debug("source expansion failed", "source", source, "error", err)
			lastErr = err
			continue
		}
		for _, item := range resolved {
			doc, err := loadOne(ctx, item, opts)
			if err != nil {
				slog.Debug("source load failed", "source", item, "error", err)
				lastErr = err
				continue
			}
			docs = append(docs, doc)
		}
	}

	if len(docs) == 0 {
		if lastErr != nil {
			return nil, fmt.Errorf("no documents loaded: %w", lastErr)
		}
		return nil, fmt.Errorf("no documents loaded")
	}

	slog.Debug("documents loaded", "sources", len(sources), "documents", len(docs))
	return docs, nil
}

// expandSource resolves one source argument into concrete items. Stdin and URLs
// pass through; glob patterns expand via doublestar; directories expand to
// their text-like files, sorted for deterministic corpus order.
func expandSource(source string) ([]string, error) {
	if source == "-" || isURL(source) {
		return []string{source}, nil
	}

	if strings.ContainsAny(source, "*?[{") {
		matches, err := doublestar.FilepathGlob(source)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", source, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match pattern %q", source)
		}
		sort.Strings(matches)
		return matches, nil
	}

	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("failed to access %q: %w", source, err)
	}
	if !info.IsDir() {
		return []string{source}, nil
	}

	entries, err := os.ReadDir(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %q: %w", source, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if textExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, filepath.Join(source, entry.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no text files in directory %q", source)
	}
	sort.Strings(files)
	return files, nil
}

// loadOne reads a single resolved item into a document.
func loadOne(ctx context.Context, source string, opts Options) (corpus.Document, error) {
	reader, err := open(ctx, source)
	if err != nil {
		return corpus.Document{}, err
	}
	defer reader.Close()

	id := DocumentID(source)

	var text string
	if isHTML(source) {
		var baseURL *url.URL
		if isURL(source) {
			baseURL, _ = url.Parse(source) // ignore parse errors, will use nil
		}
		text, err = extractHTML(reader, opts.Selector, opts.IncludeAll, baseURL)
		if err != nil {
			return corpus.Document{}, fmt.Errorf("failed to extract content from %q: %w", source, err)
		}
	} else {
		raw, err := io.ReadAll(reader)
		if err != nil {
			return corpus.Document{}, fmt.Errorf("failed to read %q: %w", source, err)
		}
		text = string(raw)
	}

	if strings.TrimSpace(text) == "" {
		return corpus.Document{}, fmt.Errorf("no content in %q", source)
	}

	return corpus.Document{ID: id, Raw: text}, nil
}

// open returns a size-limited reader for one item: stdin, a URL, or a file.
func open(ctx context.Context, source string) (io.ReadCloser, error) {
	switch {
	case source == "-":
		return &limitedReadCloser{
			ReadCloser: os.Stdin,
			N:          MaxFileSizeBytes,
			source:     "stdin",
		}, nil
	case isURL(source):
		return openURL(ctx, source)
	default:
		return openFile(source)
	}
}

// openURL fetches content over HTTP with the shared client.
func openURL(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for URL %q: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", "winnow/0.1")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL %q: %w", rawURL, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP request failed for URL %q: status %d %s", rawURL, resp.StatusCode, resp.Status)
	}

	// check the Content-Length header if present to fail early on oversized responses
	if contentLength := resp.Header.Get("Content-Length"); contentLength != "" {
		if size, err := strconv.ParseInt(contentLength, 10, 64); err == nil && size > MaxHTTPSizeBytes {
			resp.Body.Close()
			return nil, fmt.Errorf("HTTP content too large (%d bytes > %d bytes limit)", size, MaxHTTPSizeBytes)
		}
	}

	return &limitedReadCloser{
		ReadCloser: resp.Body,
		N:          MaxHTTPSizeBytes,
		source:     rawURL,
	}, nil
}

// openFile opens a local file, rejecting oversized files before reading.
func openFile(filePath string) (io.ReadCloser, error) {
	fileInfo, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file %q does not exist", filePath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to access file %q: %w", filePath, err)
	}

	if fileInfo.Size() > MaxFileSizeBytes {
		return nil, fmt.Errorf("file %q is too large (%d bytes > %d bytes limit)",
			filePath, fileInfo.Size(), MaxFileSizeBytes)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", filePath, err)
	}

	return file, nil
}

// DocumentID derives an identifier from a source: the base filename for
// files, the URL path basename (or host when the path is empty) for URLs,
// and "stdin" for standard input.
func DocumentID(source string) string {
	switch {
	case source == "-":
		return "stdin"
	case isURL(source):
		u, err := url.Parse(source)
		if err != nil {
			return source
		}
		base := path.Base(u.Path)
		if base == "." || base == "/" || base == "" {
			return u.Host
		}
		return base
	default:
		return filepath.Base(source)
	}
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func isHTML(source string) bool {
	if isURL(source) {
		u, err := url.Parse(source)
		if err != nil {
			return true
		}
		ext := strings.ToLower(path.Ext(u.Path))
		// URLs default to HTML unless the path clearly names a text file
		return ext != ".txt" && ext != ".md"
	}
	ext := strings.ToLower(filepath.Ext(source))
	return ext == ".html" || ext == ".htm"
}
