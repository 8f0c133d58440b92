package models

import "time"

// Headline represents one persisted news item.
//
// Base fields are fixed at creation (first write wins on the hash);
// theme_id and reflection are each filled exactly once, lazily, by the
// ingestion pipeline. is_active and displayed_at belong to the display
// scheduler and are never touched here.
type Headline struct {
	ID             int64      `json:"id" db:"id"`
	Hash           string     `json:"hash" db:"hash"`
	Title          string     `json:"title" db:"title"`
	Source         string     `json:"source" db:"source"`
	URL            string     `json:"url" db:"url"`
	Description    *string    `json:"description" db:"description"`
	PublishedAt    time.Time  `json:"published_at" db:"published_at"`
	Sentiment      Sentiment  `json:"sentiment" db:"sentiment"`
	SentimentScore float64    `json:"sentiment_score" db:"sentiment_score"`
	Keywords       []string   `json:"keywords" db:"keywords"`
	ThemeID        *int64     `json:"theme_id" db:"theme_id"`
	Reflection     *string    `json:"reflection" db:"reflection"`
	IsActive       bool       `json:"is_active" db:"is_active"`
	DisplayedAt    *time.Time `json:"displayed_at" db:"displayed_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// FormattedHeadline is the output-ready representation served by the API
type FormattedHeadline struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Source      string        `json:"source"`
	URL         string        `json:"url"`
	Description *string       `json:"description"`
	PublishedAt string        `json:"published_at"`
	Sentiment   string        `json:"sentiment"`
	Keywords    []string      `json:"keywords"`
	Theme       *ThemeSummary `json:"theme"`
	Reflection  *string       `json:"reflection"`
}

// ThemeSummary is the compact theme reference embedded in a formatted headline
type ThemeSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
