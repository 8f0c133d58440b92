package headlines

import (
	"strconv"
	"time"

	"github.com/quietfeed/quietfeed/internal/adapters/upstream"
	"github.com/quietfeed/quietfeed/pkg/models"
)

// Accepted publishedAt layouts, tried in order
var publishedAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// normalizeRecord converts a loosely typed wire record into a headline
// with every field defaulted. Invalid or missing fields never produce
// an error, only defaults.
func normalizeRecord(raw upstream.RawRecord, now time.Time) models.Headline {
	return models.Headline{
		Hash:           stringField(raw, "hash"),
		Title:          stringField(raw, "title"),
		Source:         stringField(raw, "source"),
		URL:            stringField(raw, "url"),
		Description:    optionalStringField(raw, "description"),
		PublishedAt:    timeField(raw, "publishedAt", now),
		Sentiment:      models.ParseSentiment(stringField(raw, "sentiment")),
		SentimentScore: numberField(raw, "sentimentScore"),
		Keywords:       keywordsField(raw, "keywords"),
	}
}

func stringField(raw upstream.RawRecord, key string) string {
	if v, ok := raw[key].(string); ok {
		return v
	}
	return ""
}

func optionalStringField(raw upstream.RawRecord, key string) *string {
	if v, ok := raw[key].(string); ok {
		return &v
	}
	return nil
}

func timeField(raw upstream.RawRecord, key string, fallback time.Time) time.Time {
	v, ok := raw[key].(string)
	if !ok {
		return fallback
	}
	for _, layout := range publishedAtLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return fallback
}

// numberField accepts JSON numbers and numeric strings, defaults to 0.0
func numberField(raw upstream.RawRecord, key string) float64 {
	switch v := raw[key].(type) {
	case float64:
		return v
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return 0.0
}

// keywordsField keeps the string elements of the wire array, in order
func keywordsField(raw upstream.RawRecord, key string) []string {
	items, ok := raw[key].([]interface{})
	if !ok {
		return []string{}
	}

	keywords := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			keywords = append(keywords, s)
		}
	}
	return keywords
}
