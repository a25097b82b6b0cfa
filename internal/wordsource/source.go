// Package wordsource loads the bilingual word list from a remote CSV export
// with local fallbacks.
package wordsource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"wordmatch/internal/domain"

	"go.uber.org/zap"
)

var (
	ErrEmptyList        = errors.New("word list is empty")
	ErrAllSourcesFailed = errors.New("all word sources failed")
)

// Source yields the word list
type Source interface {
	Name() string
	Load(ctx context.Context) ([]domain.Entry, error)
}

// HTTPSource fetches a CSV export over HTTP
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPSource creates an HTTP source with a bounded client timeout
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{URL: url, Client: &http.Client{Timeout: timeout}}
}

func (s *HTTPSource) Name() string { return s.URL }

// Load downloads and parses the CSV; any non-2xx status is an error
func (s *HTTPSource) Load(ctx context.Context) ([]domain.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", s.URL, resp.StatusCode)
	}
	return ParseCSV(resp.Body)
}

// FileSource reads a local CSV file
type FileSource struct {
	Path string
}

func (s *FileSource) Name() string { return s.Path }

func (s *FileSource) Load(ctx context.Context) ([]domain.Entry, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer f.Close()
	return ParseCSV(f)
}

// Chain tries each source in order and returns the first non-empty list
type Chain struct {
	sources []Source
	logger  *zap.Logger
}

// NewChain creates a fallback chain
func NewChain(logger *zap.Logger, sources ...Source) *Chain {
	return &Chain{sources: sources, logger: logger}
}

func (c *Chain) Name() string { return "chain" }

// Load returns ErrAllSourcesFailed, wrapping every cause, when no source yields words
func (c *Chain) Load(ctx context.Context) ([]domain.Entry, error) {
	errs := []error{ErrAllSourcesFailed}
	for i, src := range c.sources {
		entries, err := src.Load(ctx)
		if err == nil && len(entries) == 0 {
			err = ErrEmptyList
		}
		if err != nil {
			c.logger.Warn("Word source failed",
				zap.String("source", src.Name()),
				zap.Int("position", i),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}

		c.logger.Info("Word list loaded",
			zap.String("source", src.Name()),
			zap.Int("words", len(entries)),
		)
		return entries, nil
	}
	return nil, errors.Join(errs...)
}
