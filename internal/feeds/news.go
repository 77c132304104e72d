package feeds

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/joblinours/cyberdash/internal/config"
	"github.com/joblinours/cyberdash/internal/models"
)

const (
	perFeedLimit = 5
	newsLimit    = 20
	newsTimeout  = 5 * time.Second
)

// NewsAdapter aggregates headlines from the configured RSS/Atom feeds.
type NewsAdapter struct {
	feeds  []config.FeedSource
	client *http.Client
}

// NewNewsAdapter creates an adapter over the configured feed list.
func NewNewsAdapter(feeds []config.FeedSource) *NewsAdapter {
	return &NewsAdapter{
		feeds:  feeds,
		client: newHTTPClient(newsTimeout),
	}
}

// Domain implements Adapter.
func (a *NewsAdapter) Domain() models.Domain { return models.DomainNews }

// Fetch polls every feed, keeps at most five entries per feed, sorts all
// entries newest first, and truncates to twenty. Feeds that fail are
// skipped; their errors are joined and returned alongside whatever the
// healthy feeds produced.
func (a *NewsAdapter) Fetch(ctx context.Context) (any, error) {
	items := make([]models.NewsItem, 0, newsLimit)
	var errs []error

	for _, feed := range a.feeds {
		entries, err := a.fetchFeed(ctx, feed)
		if err != nil {
			errs = append(errs, fmt.Errorf("feed %s: %w", feed.Title, err))
			continue
		}
		items = append(items, entries...)
	}

	sortNewsByRecency(items)
	if len(items) > newsLimit {
		items = items[:newsLimit]
	}
	return items, errors.Join(errs...)
}

func (a *NewsAdapter) fetchFeed(ctx context.Context, feed config.FeedSource) ([]models.NewsItem, error) {
	body, err := getBody(ctx, a.client, feed.URL)
	if err != nil {
		return nil, err
	}
	entries, err := parseFeed(body)
	if err != nil {
		return nil, err
	}
	if len(entries) > perFeedLimit {
		entries = entries[:perFeedLimit]
	}
	for i := range entries {
		entries[i].Source = feed.Title
	}
	return entries, nil
}

// rssDoc covers both RSS 2.0 (channel/item) and Atom (entry) documents.
type rssDoc struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
	Entries []atomEntry `xml:"entry"`
}

type rssItem struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	PubDate string `xml:"pubDate"`
	Date    string `xml:"date"`
}

type atomEntry struct {
	Title string `xml:"title"`
	Link  struct {
		Href string `xml:"href,attr"`
	} `xml:"link"`
	Updated   string `xml:"updated"`
	Published string `xml:"published"`
}

func parseFeed(data []byte) ([]models.NewsItem, error) {
	var doc rssDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	var items []models.NewsItem
	for _, it := range doc.Channel.Items {
		published := it.PubDate
		if published == "" {
			published = it.Date
		}
		items = append(items, models.NewsItem{
			Title:     it.Title,
			Link:      it.Link,
			Published: published,
		})
	}
	for _, e := range doc.Entries {
		published := e.Published
		if published == "" {
			published = e.Updated
		}
		items = append(items, models.NewsItem{
			Title:     e.Title,
			Link:      e.Link.Href,
			Published: published,
		})
	}
	return items, nil
}

// publishedFormats are the timestamp layouts seen across real-world feeds.
var publishedFormats = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parsePublished(s string) time.Time {
	for _, layout := range publishedFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// sortNewsByRecency orders items newest first. Entries whose timestamps do
// not parse sort last; ties fall back to the raw string so ordering stays
// deterministic across refreshes.
func sortNewsByRecency(items []models.NewsItem) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, tj := parsePublished(items[i].Published), parsePublished(items[j].Published)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return items[i].Published > items[j].Published
	})
}
