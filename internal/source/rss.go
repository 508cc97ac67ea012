// Package source implements the RSSSource struct and its methods for fetching and normalizing RSS/Atom feed items.
package source

import (
	"context"
	"regexp"
	"strings"

	"github.com/SlyMarbo/rss"
	"github.com/go-shiori/go-readability"
	"github.com/samber/lo"

	"github.com/0x0BSoD/newsHub/internal/model"
)

type RSSSource struct {
	URL        string
	SourceID   string
	SourceName string

	client *Client
}

func NewRSSSourceFromModel(m model.Source, client *Client) RSSSource {
	return RSSSource{
		URL:        m.FeedURL,
		SourceID:   m.ID,
		SourceName: m.Name,
		client:     client,
	}
}

func (s RSSSource) Fetch(ctx context.Context) ([]model.Item, error) {
	body, err := s.client.FetchRaw(ctx, s.URL)
	if err != nil {
		return nil, err
	}

	feed, err := rss.Parse(body)
	if err != nil {
		return nil, &ParseError{URL: s.URL, Err: err}
	}

	return lo.Map(feed.Items, func(item *rss.Item, _ int) model.Item {
		return model.Item{
			Title:      item.Title,
			Link:       item.Link,
			Date:       item.Date,
			DateValid:  item.DateValid,
			SourceName: s.SourceName,
			Summary:    itemText(item),
		}
	}), nil
}

func (s RSSSource) ID() string {
	return s.SourceID
}

func (s RSSSource) Name() string {
	return s.SourceName
}

// Probe fetches and parses the feed once and returns its title. Used to
// validate a candidate URL before it is registered.
func Probe(ctx context.Context, client *Client, url string) (string, error) {
	body, err := client.FetchRaw(ctx, url)
	if err != nil {
		return "", err
	}

	feed, err := rss.Parse(body)
	if err != nil {
		return "", &ParseError{URL: url, Err: err}
	}

	return strings.TrimSpace(feed.Title), nil
}

// itemText returns the snippet for an item. The feed's own summary is used as
// is; items that only carry a full HTML body are reduced to readable text.
func itemText(item *rss.Item) string {
	if s := strings.TrimSpace(item.Summary); s != "" {
		return s
	}

	content := strings.TrimSpace(item.Content)
	if content == "" {
		return ""
	}

	doc, err := readability.FromReader(strings.NewReader(content), nil)
	if err != nil || strings.TrimSpace(doc.TextContent) == "" {
		return content
	}
	return cleanupText(doc.TextContent)
}

var redundantNewLines = regexp.MustCompile(`\n{3,}`)

func cleanupText(text string) string {
	return strings.TrimSpace(redundantNewLines.ReplaceAllString(text, "\n"))
}
