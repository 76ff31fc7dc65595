// Package harvest pulls unfamiliar English words out of web articles.
package harvest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
)

// MaxBodySize bounds how much of a page is read.
const MaxBodySize = 10 * 1024 * 1024

// Article is the readable part of a page.
type Article struct {
	Title    string
	Byline   string
	SiteName string
	Text     string
	Source   string
}

// Extract runs readability over an HTML document. pageURL resolves
// relative links and may be nil.
func Extract(r io.Reader, pageURL *url.URL) (Article, error) {
	if pageURL == nil {
		pageURL = &url.URL{}
	}
	a, err := readability.FromReader(r, pageURL)
	if err != nil {
		return Article{}, fmt.Errorf("extract article: %w", err)
	}
	return Article{
		Title:    strings.TrimSpace(a.Title),
		Byline:   a.Byline,
		SiteName: a.SiteName,
		Text:     a.TextContent,
		Source:   pageURL.String(),
	}, nil
}

// Load reads an article from an http(s) URL or a local HTML file.
func Load(ctx context.Context, client *http.Client, src string) (Article, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return Fetch(ctx, client, src)
	}

	f, err := os.Open(src)
	if err != nil {
		return Article{}, err
	}
	defer f.Close()

	abs, err := filepath.Abs(src)
	if err != nil {
		return Article{}, err
	}
	return Extract(io.LimitReader(f, MaxBodySize), &url.URL{Scheme: "file", Path: abs})
}

// Fetch downloads rawURL and extracts its article. A nil client uses a
// 30 second timeout.
func Fetch(ctx context.Context, client *http.Client, rawURL string) (Article, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Article{}, fmt.Errorf("parse url: %w", err)
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Article{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return Article{}, fmt.Errorf("fetch %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Article{}, fmt.Errorf("fetch %s: status %d", u, resp.StatusCode)
	}
	if resp.ContentLength > MaxBodySize {
		return Article{}, fmt.Errorf("fetch %s: body of %d bytes exceeds %d", u, resp.ContentLength, MaxBodySize)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return Article{}, fmt.Errorf("read body: %w", err)
	}
	if len(body) > MaxBodySize {
		return Article{}, fmt.Errorf("fetch %s: body exceeds %d bytes", u, MaxBodySize)
	}
	return Extract(bytes.NewReader(body), u)
}
