package registry

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0x0BSoD/newsHub/internal/model"
	"github.com/0x0BSoD/newsHub/internal/source"
)

const registryTestFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example Feed</title>
    <link>https://example.com</link>
    <description>example</description>
    <item>
      <title>Post</title>
      <link>https://example.com/post/1</link>
      <description>snippet</description>
      <pubDate>Mon, 11 Aug 2025 08:00:00 +0000</pubDate>
    </item>
  </channel>
</rss>`

type fakeSourceStorage struct {
	sources []model.Source
	added   []model.Source
	deleted []string
	err     error
}

func (f *fakeSourceStorage) Sources(_ context.Context) ([]model.Source, error) {
	return f.sources, f.err
}

func (f *fakeSourceStorage) Add(_ context.Context, src model.Source) (model.Source, error) {
	if f.err != nil {
		return model.Source{}, f.err
	}
	src.ID = "src-1"
	src.CreatedAt = time.Now().UTC()
	f.added = append(f.added, src)
	return src, nil
}

func (f *fakeSourceStorage) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func TestAddDerivesNameFromFeedTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, registryTestFeed)
	}))
	defer srv.Close()

	storage := &fakeSourceStorage{}
	r := New(storage, source.NewClient(0))

	created, err := r.Add(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Example Feed", created.Name)
	assert.Equal(t, srv.URL, created.FeedURL)
	assert.NotEmpty(t, created.ID)
	require.Len(t, storage.added, 1)
}

func TestAddRejectsUnfetchableURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	storage := &fakeSourceStorage{}
	r := New(storage, source.NewClient(0))

	_, err := r.Add(context.Background(), srv.URL)

	var statusErr *source.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Empty(t, storage.added)
}

func TestAddRejectsUnparsableFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprint(w, `<?xml version="1.0"?><rss version="2.0"><channel>`)
	}))
	defer srv.Close()

	storage := &fakeSourceStorage{}
	r := New(storage, source.NewClient(0))

	_, err := r.Add(context.Background(), srv.URL)

	var parseErr *source.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Empty(t, storage.added)
}

func TestRemoveMissingIDIsNoop(t *testing.T) {
	storage := &fakeSourceStorage{}
	r := New(storage, source.NewClient(0))

	require.NoError(t, r.Remove(context.Background(), "no-such-id"))
	assert.Equal(t, []string{"no-such-id"}, storage.deleted)
}

func TestList(t *testing.T) {
	storage := &fakeSourceStorage{sources: []model.Source{
		{ID: "b", Name: "Newer"},
		{ID: "a", Name: "Older"},
	}}
	r := New(storage, source.NewClient(0))

	sources, err := r.List(context.Background())
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "Newer", sources[0].Name)
}
