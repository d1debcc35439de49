package adrules

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Downloader fetches source lists into a local directory. Failures of individual
// sources are logged and never abort the batch, the previously downloaded copy of
// a failed source stays in place.
type Downloader struct {
	opt DownloaderOptions
}

// DownloaderOptions holds options for the list downloader.
type DownloaderOptions struct {
	// Directory the lists are written to.
	Dir string

	// Local filenames for source URLs. URLs without an entry are named after the
	// last element of their path.
	Names FriendlyNames

	// Number of concurrent downloads, defaults to 5.
	Workers int

	// Per-source time limit, defaults to 25s.
	Timeout time.Duration

	// Request headers, defaults to DefaultRequestHeaders.
	Headers map[string]string

	// HTTP client, defaults to http.DefaultClient.
	Client *http.Client

	// Content hashes from earlier runs. Lists with an unchanged hash are not
	// rewritten. Defaults to an in-memory cache.
	Cache HashCache
}

// DownloadReport lists the source URLs by outcome.
type DownloadReport struct {
	Updated   []string
	Unchanged []string
	Failed    []string
}

type downloadResult int

const (
	downloadUpdated downloadResult = iota
	downloadUnchanged
	downloadFailed
)

func (r downloadResult) String() string {
	switch r {
	case downloadUpdated:
		return "updated"
	case downloadUnchanged:
		return "unchanged"
	}
	return "failed"
}

const defaultDownloadWorkers = 5

var downloadsTotal = getVarCounter("downloader", "downloads_total", "Source downloads by result.", "result")

func NewDownloader(opt DownloaderOptions) *Downloader {
	if opt.Workers <= 0 {
		opt.Workers = defaultDownloadWorkers
	}
	if opt.Timeout == 0 {
		opt.Timeout = defaultHTTPTimeout
	}
	if opt.Headers == nil {
		opt.Headers = DefaultRequestHeaders
	}
	if opt.Cache == nil {
		opt.Cache = newMemoryHashCache()
	}
	return &Downloader{opt: opt}
}

// Run downloads all urls. The returned error is only non-nil if the target
// directory can't be created or the hash cache can't be persisted, individual
// download failures are reported in DownloadReport.Failed.
func (d *Downloader) Run(ctx context.Context, urls []string) (*DownloadReport, error) {
	if err := os.MkdirAll(d.opt.Dir, 0o755); err != nil {
		return nil, err
	}
	Log.WithField("sources", len(urls)).Info("downloading source lists")

	var (
		mu     sync.Mutex
		report DownloadReport
		g      errgroup.Group
	)
	g.SetLimit(d.opt.Workers)
	for _, url := range urls {
		url := url
		g.Go(func() error {
			result := d.download(ctx, url)
			downloadsTotal.WithLabelValues(result.String()).Inc()
			mu.Lock()
			defer mu.Unlock()
			switch result {
			case downloadUpdated:
				report.Updated = append(report.Updated, url)
			case downloadUnchanged:
				report.Unchanged = append(report.Unchanged, url)
			default:
				report.Failed = append(report.Failed, url)
			}
			return nil
		})
	}
	_ = g.Wait()
	sort.Strings(report.Updated)
	sort.Strings(report.Unchanged)
	sort.Strings(report.Failed)

	Log.WithField("updated", len(report.Updated)).
		WithField("unchanged", len(report.Unchanged)).
		WithField("failed", len(report.Failed)).
		Info("downloads completed")
	return &report, d.opt.Cache.Flush()
}

func (d *Downloader) download(ctx context.Context, url string) downloadResult {
	filename := filepath.Join(d.opt.Dir, SafeFilename(url, d.opt.Names))
	log := Log.WithField("url", url).WithField("file", filepath.Base(filename))
	log.Debug("downloading")

	loader := NewHTTPLoader(url, HTTPLoaderOptions{
		Client:  d.opt.Client,
		Timeout: d.opt.Timeout,
		Headers: d.opt.Headers,
	})
	body, err := loader.Fetch(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Warn("download timed out")
		} else {
			log.WithError(err).Warn("download failed")
		}
		return downloadFailed
	}

	sum := md5.Sum(body)
	hash := hex.EncodeToString(sum[:])
	if cached, ok := d.opt.Cache.Lookup(url); ok && cached == hash && fileExists(filename) {
		log.Debug("skipping unchanged list")
		return downloadUnchanged
	}

	err = writeFileAtomic(filename, func(w io.Writer) error {
		_, err := w.Write(body)
		return err
	})
	if err != nil {
		log.WithError(err).Error("failed to store list")
		return downloadFailed
	}
	d.opt.Cache.Store(url, hash)
	log.WithField("bytes", len(body)).Info("downloaded list")
	return downloadUpdated
}

func fileExists(filename string) bool {
	fi, err := os.Stat(filename)
	return err == nil && fi.Mode().IsRegular()
}

// memoryHashCache is used when no persistent cache is configured.
type memoryHashCache struct {
	mu     sync.Mutex
	hashes map[string]string
}

func newMemoryHashCache() *memoryHashCache {
	return &memoryHashCache{hashes: make(map[string]string)}
}

func (c *memoryHashCache) Lookup(url string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.hashes[url]
	return h, ok
}

func (c *memoryHashCache) Store(url, hash string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hashes[url] = hash
}

func (c *memoryHashCache) Flush() error { return nil }
