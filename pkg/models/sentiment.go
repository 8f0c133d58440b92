package models

import "strings"

// Sentiment is the normalized sentiment label carried by a headline
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// ParseSentiment normalizes a raw sentiment string (case-insensitive).
// Anything that is not positive or negative becomes neutral.
func ParseSentiment(raw string) Sentiment {
	switch strings.ToLower(raw) {
	case "positive":
		return SentimentPositive
	case "negative":
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// String returns the sentiment label
func (s Sentiment) String() string {
	return string(s)
}
