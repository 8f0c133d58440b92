package reflection

import (
	"math/rand"
	"time"

	"github.com/quietfeed/quietfeed/pkg/models"
)

// Pools holds the candidate phrases per normalized sentiment
type Pools map[models.Sentiment][]string

// DefaultPools returns the canonical reflection phrases
func DefaultPools() Pools {
	return Pools{
		models.SentimentPositive: {
			"A moment of progress in our shared journey.",
			"A reminder that positive change is possible.",
			"Something to appreciate in today's news.",
		},
		models.SentimentNegative: {
			"A complex situation that deserves thoughtful consideration.",
			"A challenge that calls for understanding and care.",
			"An opportunity to reflect on how we respond to difficulty.",
		},
		models.SentimentNeutral: {
			"An update worth noting, without urgency.",
			"Information to consider at your own pace.",
			"A piece of the larger picture, calmly presented.",
		},
	}
}

// Generator picks a reflection phrase for a headline's sentiment.
// The randomness source is injected so tests can pin the pick.
type Generator struct {
	pools Pools
	rng   *rand.Rand
}

// NewGenerator creates a generator over the given pools. A nil rng gets
// a time-seeded source.
func NewGenerator(pools Pools, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{pools: pools, rng: rng}
}

// Generate returns one phrase, uniformly picked from the pool matching
// the sentiment. Sentiment is already normalized at ingestion, so an
// unknown value is treated as neutral.
func (g *Generator) Generate(sentiment models.Sentiment) string {
	pool, ok := g.pools[sentiment]
	if !ok || len(pool) == 0 {
		pool = g.pools[models.SentimentNeutral]
	}
	return pool[g.rng.Intn(len(pool))]
}
