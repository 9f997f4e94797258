package ics

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"calendar-sync/core/reconcile"

	"go.uber.org/zap"
)

// FetchResult contains the outcome of a fetch.
type FetchResult struct {
	Body      []byte
	FromCache bool // true if the cached body was reused after a 304
}

// cacheEntry holds HTTP cache metadata for the feed URL.
type cacheEntry struct {
	URL          string    `json:"url"`
	ETag         string    `json:"etag,omitempty"`
	LastModified string    `json:"last_modified,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Fetcher downloads a feed, honoring ETag and Last-Modified when a cache directory is set.
type Fetcher struct {
	client    *http.Client
	url       string
	cacheDir  string
	userAgent string
	logger    *zap.Logger
}

// NewFetcher creates a new Fetcher for the configured URL.
func NewFetcher(cfg Config, logger *zap.Logger) *Fetcher {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ResponseHeaderTimeout: timeoutDuration,
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Fetcher{
		client:    &http.Client{Transport: transport, Timeout: 2 * timeoutDuration},
		url:       cfg.URL,
		cacheDir:  cfg.CacheDir,
		userAgent: cfg.UserAgent,
		logger:    logger,
	}
}

// Fetch downloads the feed. Errors wrap reconcile.ErrSourceUnavailable.
func (f *Fetcher) Fetch(ctx context.Context) (FetchResult, error) {
	if f.url == "" {
		return FetchResult{}, fmt.Errorf("%w: source URL is empty", reconcile.ErrSourceUnavailable)
	}

	var (
		cachePath  string
		meta       cacheEntry
		cachedBody []byte
	)
	if f.cacheDir != "" {
		cachePath = f.cachePathForURL(f.url)
		if err := os.MkdirAll(cachePath, 0o700); err != nil {
			f.logger.Warn("Feed cache unavailable, fetching without it", zap.String("dir", cachePath), zap.Error(err))
			cachePath = ""
		} else {
			meta, _ = loadCacheMeta(cachePath)
			cachedBody, _ = loadCacheBody(cachePath)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return FetchResult{}, fmt.Errorf("%w: %v", reconcile.ErrSourceUnavailable, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	// Only ask for a 304 when there is a body to fall back on.
	if len(cachedBody) > 0 {
		if meta.ETag != "" {
			req.Header.Set("If-None-Match", meta.ETag)
		}
		if meta.LastModified != "" {
			req.Header.Set("If-Modified-Since", meta.LastModified)
		}
	}

	f.logger.Debug("Fetching source calendar", zap.String("url", redactURL(f.url)))

	resp, err := f.client.Do(req)
	if err != nil {
		return FetchResult{}, fmt.Errorf("%w: %s: %v", reconcile.ErrSourceUnavailable, redactURL(f.url), redactError(err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotModified && len(cachedBody) > 0:
		f.logger.Info("Source calendar not modified, using cache", zap.String("url", redactURL(f.url)))
		return FetchResult{Body: cachedBody, FromCache: true}, nil

	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return FetchResult{}, fmt.Errorf("%w: reading body: %v", reconcile.ErrSourceUnavailable, err)
		}

		if cachePath != "" {
			entry := cacheEntry{
				URL:          redactURL(f.url),
				ETag:         resp.Header.Get("ETag"),
				LastModified: resp.Header.Get("Last-Modified"),
			}
			if err := saveCache(cachePath, entry, body); err != nil {
				f.logger.Warn("Failed to save feed cache", zap.Error(err))
			}
		}

		f.logger.Debug("Fetched source calendar",
			zap.String("url", redactURL(f.url)),
			zap.Int("status", resp.StatusCode),
			zap.Int("bytes", len(body)))
		return FetchResult{Body: body}, nil

	default:
		return FetchResult{}, fmt.Errorf("%w: %s returned %s", reconcile.ErrSourceUnavailable, redactURL(f.url), resp.Status)
	}
}

func (f *Fetcher) cachePathForURL(u string) string {
	sum := sha256.Sum256([]byte(u))
	return filepath.Join(f.cacheDir, hex.EncodeToString(sum[:8]))
}

func loadCacheMeta(cachePath string) (cacheEntry, error) {
	var meta cacheEntry
	data, err := os.ReadFile(filepath.Join(cachePath, "meta.json"))
	if err != nil {
		return meta, err
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return cacheEntry{}, err
	}
	return meta, nil
}

func loadCacheBody(cachePath string) ([]byte, error) {
	return os.ReadFile(filepath.Join(cachePath, "body.ics"))
}

func saveCache(cachePath string, meta cacheEntry, body []byte) error {
	// Write body first so meta never points at a missing body.
	if err := os.WriteFile(filepath.Join(cachePath, "body.ics"), body, 0o600); err != nil {
		return err
	}

	meta.UpdatedAt = time.Now().UTC()
	data, err := json.MarshalIndent(&meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(cachePath, "meta.json"), data, 0o600)
}

// redactURL keeps scheme and host only. Feed URLs usually carry a secret token.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "ics://...(redacted)"
	}
	return u.Scheme + "://" + u.Host + "/...(redacted)"
}

// redactError strips the request URL that net/http embeds in transport errors.
func redactError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}
