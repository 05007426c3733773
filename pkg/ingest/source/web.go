package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/buzzlab/relevance/pkg/ingest"

	"codeberg.org/readeck/go-readability/v2"
	"golang.org/x/sync/singleflight"
)

// Web fetches pages and extracts their readable text. Fetches are cached
// and deduplicated, so concurrent ingestion runs hitting the same URL
// trigger a single request.
type Web struct {
	urls     []string
	category string

	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewWeb builds a web source over the given URLs. All extracted records
// share the given category.
func NewWeb(urls []string, category string) *Web {
	return &Web{
		urls:     urls,
		category: category,
		cache:    make(map[string][]byte),
	}
}

// Load fetches every URL and returns one record per successfully
// extracted page. A single failed URL fails the load; partial-failure
// handling belongs to the pipeline, not the loader.
func (w *Web) Load(ctx context.Context) ([]ingest.SourceRecord, error) {
	records := make([]ingest.SourceRecord, 0, len(w.urls))
	for _, pageURL := range w.urls {
		text, err := w.fetch(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", pageURL, err)
		}
		records = append(records, ingest.SourceRecord{
			ID:        slugFromURL(pageURL),
			Text:      string(text),
			Category:  w.category,
			SourceURL: pageURL,
		})
	}
	return records, nil
}

func (w *Web) fetch(ctx context.Context, pageURL string) ([]byte, error) {
	w.cacheMu.RLock()
	if cached, ok := w.cache[pageURL]; ok {
		w.cacheMu.RUnlock()
		return cached, nil
	}
	w.cacheMu.RUnlock()

	result, err, _ := w.group.Do(pageURL, func() (any, error) {
		w.cacheMu.RLock()
		if cached, ok := w.cache[pageURL]; ok {
			w.cacheMu.RUnlock()
			return cached, nil
		}
		w.cacheMu.RUnlock()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch url: %w", err)
		}
		defer resp.Body.Close()

		var text []byte
		contentType := resp.Header.Get("Content-Type")
		if strings.Contains(contentType, "text/html") {
			parsed, err := url.Parse(pageURL)
			if err != nil {
				return nil, fmt.Errorf("failed to parse url: %w", err)
			}
			article, err := readability.FromReader(resp.Body, parsed)
			if err != nil {
				return nil, fmt.Errorf("failed to parse html: %w", err)
			}
			var builder strings.Builder
			if err := article.RenderText(&builder); err != nil {
				return nil, fmt.Errorf("failed to render article text: %w", err)
			}
			text = []byte(builder.String())
		} else {
			text, err = io.ReadAll(resp.Body)
			if err != nil {
				return nil, fmt.Errorf("failed to read response body: %w", err)
			}
		}

		w.cacheMu.Lock()
		w.cache[pageURL] = text
		w.cacheMu.Unlock()

		return text, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}

func slugFromURL(pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return pageURL
	}
	slug := parsed.Host + parsed.Path
	slug = strings.Trim(slug, "/")
	slug = strings.NewReplacer("/", "-", ".", "-").Replace(slug)
	return strings.ToLower(slug)
}
