// Package registry manages the set of subscribed feed sources.
package registry

import (
	"context"

	"github.com/0x0BSoD/newsHub/internal/model"
	"github.com/0x0BSoD/newsHub/internal/source"
)

type SourceStorage interface {
	Sources(ctx context.Context) ([]model.Source, error)
	Add(ctx context.Context, source model.Source) (model.Source, error)
	Delete(ctx context.Context, id string) error
}

type Registry struct {
	storage SourceStorage
	client  *source.Client
}

func New(storage SourceStorage, client *source.Client) *Registry {
	return &Registry{
		storage: storage,
		client:  client,
	}
}

// List returns all registered sources, newest first.
func (r *Registry) List(ctx context.Context) ([]model.Source, error) {
	return r.storage.Sources(ctx)
}

// Add probes the URL before anything is persisted: a candidate that cannot be
// fetched and parsed as a feed is rejected with the underlying fetch or parse
// error. The source name is derived from the feed title.
func (r *Registry) Add(ctx context.Context, url string) (model.Source, error) {
	title, err := source.Probe(ctx, r.client, url)
	if err != nil {
		return model.Source{}, err
	}
	if title == "" {
		title = url
	}

	return r.storage.Add(ctx, model.Source{
		Name:    title,
		FeedURL: url,
	})
}

// Remove deletes the source with the given id. A missing id is treated as
// success.
func (r *Registry) Remove(ctx context.Context, id string) error {
	return r.storage.Delete(ctx, id)
}
