package demo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const indexFileName = "index.json"

var ErrMonthNotFound = errors.New("demo month not found")

// Feed reads the partition index and single month partitions.
type Feed interface {
	Index(ctx context.Context) (Index, error)
	Month(ctx context.Context, key string) ([]Entry, error)
}

// DirFeed reads partitions written by WritePartitions from a local directory.
type DirFeed struct {
	dir string
}

func NewDirFeed(dir string) *DirFeed {
	return &DirFeed{dir: dir}
}

func (feed *DirFeed) Index(ctx context.Context) (Index, error) {
	var index Index
	if err := feed.readJSON(ctx, indexFileName, &index); err != nil {
		return Index{}, fmt.Errorf("read demo index: %w", err)
	}
	return index, nil
}

func (feed *DirFeed) Month(ctx context.Context, key string) ([]Entry, error) {
	entries := make([]Entry, 0)
	if err := feed.readJSON(ctx, key+".json", &entries); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMonthNotFound, key)
		}
		return nil, fmt.Errorf("read demo month %s: %w", key, err)
	}
	return entries, nil
}

func (feed *DirFeed) readJSON(ctx context.Context, name string, target any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	content, err := os.ReadFile(filepath.Join(feed.dir, name))
	if err != nil {
		return err
	}
	return json.Unmarshal(content, target)
}

// HTTPFeed reads partitions from a static file server, for example a CDN
// bucket holding the output of "kira demo build".
type HTTPFeed struct {
	client *resty.Client
}

func NewHTTPFeed(baseURL string, timeout time.Duration) *HTTPFeed {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	return &HTTPFeed{client: client}
}

func (feed *HTTPFeed) Index(ctx context.Context) (Index, error) {
	var index Index
	if err := feed.getJSON(ctx, "/"+indexFileName, &index); err != nil {
		return Index{}, fmt.Errorf("fetch demo index: %w", err)
	}
	return index, nil
}

func (feed *HTTPFeed) Month(ctx context.Context, key string) ([]Entry, error) {
	entries := make([]Entry, 0)
	if err := feed.getJSON(ctx, "/"+key+".json", &entries); err != nil {
		if errors.Is(err, ErrMonthNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrMonthNotFound, key)
		}
		return nil, fmt.Errorf("fetch demo month %s: %w", key, err)
	}
	return entries, nil
}

func (feed *HTTPFeed) getJSON(ctx context.Context, path string, target any) error {
	resp, err := feed.client.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		return err
	}
	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return ErrMonthNotFound
	case resp.StatusCode() != http.StatusOK:
		return fmt.Errorf("status %d", resp.StatusCode())
	}
	if err := json.Unmarshal(resp.Body(), target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
