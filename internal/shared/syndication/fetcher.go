// Package syndication fetches and parses remote RSS, Atom and JSON feeds.
package syndication

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
	"github.com/samber/oops"
)

const userAgent = "MobilePortal/1.0 (+feed importer)"

// Fetcher downloads and parses remote feeds.
type Fetcher struct {
	parser *gofeed.Parser
}

// NewFetcher creates a fetcher whose requests time out after timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	parser.Client = &http.Client{Timeout: timeout}
	return &Fetcher{parser: parser}
}

// Fetch downloads and parses the feed at url.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*gofeed.Feed, error) {
	feed, err := f.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, oops.With("url", url, "context", "failed to fetch feed").Wrap(err)
	}
	return feed, nil
}

// Extension returns the first value of a namespaced extension element such
// as xcal:dtstart, or "" when absent.
func Extension(item *gofeed.Item, prefix, name string) string {
	if item == nil || item.Extensions == nil {
		return ""
	}
	values := item.Extensions[prefix][name]
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0].Value)
}

// ExtensionAny tries each prefix in turn.
func ExtensionAny(item *gofeed.Item, name string, prefixes ...string) string {
	for _, prefix := range prefixes {
		if v := Extension(item, prefix, name); v != "" {
			return v
		}
	}
	return ""
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"20060102T150405Z",
	"20060102T150405",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"20060102",
	time.RFC1123Z,
	time.RFC1123,
}

// ParseTime accepts the date formats found in event extensions.
func ParseTime(s string) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, true
		}
	}
	return nil, false
}

// ParseFloat parses an optional coordinate.
func ParseFloat(s string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &f
}

// ParseDuration converts itunes:duration values (SS, MM:SS or HH:MM:SS)
// into seconds.
func ParseDuration(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	seconds := 0
	for _, part := range strings.Split(s, ":") {
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0
		}
		seconds = seconds*60 + n
	}
	return seconds
}

// ITunes returns the item's iTunes extension, never nil.
func ITunes(item *gofeed.Item) *ext.ITunesItemExtension {
	if item == nil || item.ITunesExt == nil {
		return &ext.ITunesItemExtension{}
	}
	return item.ITunesExt
}
