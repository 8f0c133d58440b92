package reflection

import (
	"math/rand"
	"testing"

	"github.com/quietfeed/quietfeed/pkg/models"
)

func contains(pool []string, phrase string) bool {
	for _, p := range pool {
		if p == phrase {
			return true
		}
	}
	return false
}

func TestGenerator_PicksFromMatchingPool(t *testing.T) {
	pools := DefaultPools()
	gen := NewGenerator(pools, rand.New(rand.NewSource(1)))

	sentiments := []models.Sentiment{
		models.SentimentPositive,
		models.SentimentNegative,
		models.SentimentNeutral,
	}

	for _, sentiment := range sentiments {
		for i := 0; i < 20; i++ {
			phrase := gen.Generate(sentiment)
			if !contains(pools[sentiment], phrase) {
				t.Fatalf("phrase %q not in %s pool", phrase, sentiment)
			}
		}
	}
}

func TestGenerator_SeededPickIsReproducible(t *testing.T) {
	a := NewGenerator(DefaultPools(), rand.New(rand.NewSource(42)))
	b := NewGenerator(DefaultPools(), rand.New(rand.NewSource(42)))

	for i := 0; i < 10; i++ {
		if got, want := a.Generate(models.SentimentPositive), b.Generate(models.SentimentPositive); got != want {
			t.Fatalf("same seed diverged: %q vs %q", got, want)
		}
	}
}

func TestGenerator_UnknownSentimentFallsBackToNeutral(t *testing.T) {
	pools := DefaultPools()
	gen := NewGenerator(pools, rand.New(rand.NewSource(7)))

	phrase := gen.Generate(models.Sentiment("confused"))
	if !contains(pools[models.SentimentNeutral], phrase) {
		t.Errorf("expected a neutral phrase, got %q", phrase)
	}
}

func TestDefaultPools_HaveAtLeastThreePhrases(t *testing.T) {
	for sentiment, pool := range DefaultPools() {
		if len(pool) < 3 {
			t.Errorf("%s pool has %d phrases, want at least 3", sentiment, len(pool))
		}
	}
}
