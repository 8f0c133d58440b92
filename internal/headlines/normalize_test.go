package headlines

import (
	"testing"
	"time"

	"github.com/quietfeed/quietfeed/internal/adapters/upstream"
	"github.com/quietfeed/quietfeed/pkg/models"
)

func TestNormalizeRecord_Defaults(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	h := normalizeRecord(upstream.RawRecord{}, now)

	if h.Hash != "" || h.Title != "" || h.Source != "" || h.URL != "" {
		t.Errorf("missing string fields should default to empty, got %+v", h)
	}
	if h.Description != nil {
		t.Errorf("missing description should be nil, got %v", *h.Description)
	}
	if !h.PublishedAt.Equal(now) {
		t.Errorf("missing publishedAt should default to ingestion time, got %v", h.PublishedAt)
	}
	if h.Sentiment != models.SentimentNeutral {
		t.Errorf("missing sentiment should default to neutral, got %s", h.Sentiment)
	}
	if h.SentimentScore != 0.0 {
		t.Errorf("missing sentimentScore should default to 0.0, got %f", h.SentimentScore)
	}
	if h.Keywords == nil || len(h.Keywords) != 0 {
		t.Errorf("missing keywords should default to empty slice, got %v", h.Keywords)
	}
}

func TestNormalizeRecord_LooseTyping(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		raw   upstream.RawRecord
		check func(t *testing.T, h models.Headline)
	}{
		{
			name: "non-string hash defaults to empty",
			raw:  upstream.RawRecord{"hash": 42.0},
			check: func(t *testing.T, h models.Headline) {
				if h.Hash != "" {
					t.Errorf("expected empty hash, got %q", h.Hash)
				}
			},
		},
		{
			name: "sentiment is case-insensitive",
			raw:  upstream.RawRecord{"sentiment": "POSITIVE"},
			check: func(t *testing.T, h models.Headline) {
				if h.Sentiment != models.SentimentPositive {
					t.Errorf("expected positive, got %s", h.Sentiment)
				}
			},
		},
		{
			name: "unrecognized sentiment normalizes to neutral",
			raw:  upstream.RawRecord{"sentiment": "ecstatic"},
			check: func(t *testing.T, h models.Headline) {
				if h.Sentiment != models.SentimentNeutral {
					t.Errorf("expected neutral, got %s", h.Sentiment)
				}
			},
		},
		{
			name: "numeric string score is parsed",
			raw:  upstream.RawRecord{"sentimentScore": "0.8"},
			check: func(t *testing.T, h models.Headline) {
				if h.SentimentScore != 0.8 {
					t.Errorf("expected 0.8, got %f", h.SentimentScore)
				}
			},
		},
		{
			name: "non-numeric score defaults to zero",
			raw:  upstream.RawRecord{"sentimentScore": "very good"},
			check: func(t *testing.T, h models.Headline) {
				if h.SentimentScore != 0.0 {
					t.Errorf("expected 0.0, got %f", h.SentimentScore)
				}
			},
		},
		{
			name: "keywords keep only string elements in order",
			raw:  upstream.RawRecord{"keywords": []interface{}{"ai", 3.0, "senate"}},
			check: func(t *testing.T, h models.Headline) {
				if len(h.Keywords) != 2 || h.Keywords[0] != "ai" || h.Keywords[1] != "senate" {
					t.Errorf("expected [ai senate], got %v", h.Keywords)
				}
			},
		},
		{
			name: "non-array keywords default to empty",
			raw:  upstream.RawRecord{"keywords": "ai,senate"},
			check: func(t *testing.T, h models.Headline) {
				if len(h.Keywords) != 0 {
					t.Errorf("expected empty keywords, got %v", h.Keywords)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, normalizeRecord(tt.raw, now))
		})
	}
}

func TestNormalizeRecord_PublishedAt(t *testing.T) {
	fallback := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	h := normalizeRecord(upstream.RawRecord{"publishedAt": "2026-08-29T10:30:00Z"}, fallback)
	want := time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)
	if !h.PublishedAt.Equal(want) {
		t.Errorf("expected %v, got %v", want, h.PublishedAt)
	}

	h = normalizeRecord(upstream.RawRecord{"publishedAt": "not a date"}, fallback)
	if !h.PublishedAt.Equal(fallback) {
		t.Errorf("unparseable publishedAt should fall back to ingestion time, got %v", h.PublishedAt)
	}
}
