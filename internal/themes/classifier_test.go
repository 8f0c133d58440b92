package themes

import (
	"testing"

	"github.com/quietfeed/quietfeed/pkg/models"
)

func seededThemes() []models.Theme {
	names := []string{"Technology", "Politics", "Business", "Health", "Science", "Environment", "Mindfulness", "General"}

	themes := make([]models.Theme, 0, len(names))
	for i, name := range names {
		themes = append(themes, models.Theme{ID: int64(i + 1), Name: name})
	}
	return themes
}

func TestClassifier_Classify(t *testing.T) {
	classifier := NewClassifier(DefaultKeywordIndex())
	available := seededThemes()

	tests := []struct {
		name     string
		keywords []string
		want     string
		matched  bool
	}{
		{
			name:     "single technology keyword",
			keywords: []string{"ai"},
			want:     "Technology",
			matched:  true,
		},
		{
			name:     "case folded match",
			keywords: []string{"CLIMATE"},
			want:     "Environment",
			matched:  true,
		},
		{
			name:     "mindfulness keyword",
			keywords: []string{"meditation"},
			want:     "Mindfulness",
			matched:  true,
		},
		{
			name:     "no match",
			keywords: []string{"sports", "football"},
			matched:  false,
		},
		{
			name:     "empty keywords",
			keywords: nil,
			matched:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme, matched := classifier.Classify(tt.keywords, available)

			if matched != tt.matched {
				t.Fatalf("expected matched=%v, got %v", tt.matched, matched)
			}
			if matched && theme.Name != tt.want {
				t.Errorf("expected theme %s, got %s", tt.want, theme.Name)
			}
		})
	}
}

// Ties resolve by scanning themes in name-ascending order: with both
// "ai" and "senate" present, Politics sorts before Technology and wins.
func TestClassifier_TieBreaksByThemeNameOrder(t *testing.T) {
	classifier := NewClassifier(DefaultKeywordIndex())
	available := seededThemes()

	for i := 0; i < 10; i++ {
		theme, matched := classifier.Classify([]string{"ai", "senate"}, available)
		if !matched {
			t.Fatal("expected a match")
		}
		if theme.Name != "Politics" {
			t.Fatalf("expected Politics (first in name order), got %s", theme.Name)
		}
	}
}

func TestClassifier_DoesNotMutateInput(t *testing.T) {
	classifier := NewClassifier(DefaultKeywordIndex())
	available := seededThemes()

	first := available[0].Name
	classifier.Classify([]string{"ai"}, available)

	if available[0].Name != first {
		t.Errorf("available themes slice was reordered")
	}
}
