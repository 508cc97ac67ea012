// Package model defines the data structures used in newsHub: Source describes a registered feed, Item is a parsed feed entry, and Article is a news item persisted in the database.
package model

import "time"

type Source struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	FeedURL   string    `db:"feed_url" json:"url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Item struct {
	Title      string
	Link       string
	Summary    string
	Date       time.Time
	DateValid  bool
	SourceName string
}

type Article struct {
	ID          int64     `db:"id" json:"id"`
	SourceID    string    `db:"source_id" json:"feed_id"`
	Title       string    `db:"title" json:"title"`
	Link        string    `db:"link" json:"link"`
	Summary     string    `db:"summary" json:"description"`
	Source      string    `db:"source" json:"source"`
	PublishedAt time.Time `db:"published_at" json:"published_at"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
