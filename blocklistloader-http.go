package adrules

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"
)

// HTTPLoader reads a list from a server via HTTP(S).
type HTTPLoader struct {
	url string
	opt HTTPLoaderOptions
}

// HTTPLoaderOptions holds options for HTTP list loaders.
type HTTPLoaderOptions struct {
	// HTTP client, defaults to http.DefaultClient.
	Client *http.Client

	// Time limit for the whole request including reading the body. Defaults to 25s.
	Timeout time.Duration

	// Headers sent with every request. Some list hosts reject requests without
	// a browser-like User-Agent.
	Headers map[string]string
}

var _ BlocklistLoader = &HTTPLoader{}

const defaultHTTPTimeout = 25 * time.Second

// DefaultRequestHeaders are sent by the downloader unless configured otherwise.
var DefaultRequestHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
	"Accept":          "text/plain, */*",
	"Accept-Language": "en-US,en;q=0.9",
	"Cache-Control":   "no-cache",
	"Pragma":          "no-cache",
}

func NewHTTPLoader(url string, opt HTTPLoaderOptions) *HTTPLoader {
	if opt.Client == nil {
		opt.Client = http.DefaultClient
	}
	if opt.Timeout == 0 {
		opt.Timeout = defaultHTTPTimeout
	}
	return &HTTPLoader{url, opt}
}

// Fetch returns the raw body of the list.
func (l *HTTPLoader) Fetch(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, l.opt.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", l.url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range l.opt.Headers {
		req.Header.Set(k, v)
	}

	resp, err := l.opt.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, StatusError{URL: l.url, Code: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

func (l *HTTPLoader) Load() ([]string, error) {
	b, err := l.Fetch(context.Background())
	if err != nil {
		return nil, err
	}
	return readLines(bytes.NewReader(b))
}

func (l *HTTPLoader) String() string {
	return l.url
}
