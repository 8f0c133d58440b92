package headlines

import (
	"context"
	"time"

	"github.com/quietfeed/quietfeed/internal/adapters/upstream"
	"github.com/quietfeed/quietfeed/internal/reflection"
	"github.com/quietfeed/quietfeed/internal/themes"
	"github.com/quietfeed/quietfeed/pkg/models"
)

// Store persists headlines with first-write-wins semantics
type Store interface {
	Upsert(ctx context.Context, h models.Headline) (models.Headline, error)
	SetThemeIfAbsent(ctx context.Context, id int64, themeID int64) (int64, error)
	SetReflectionIfAbsent(ctx context.Context, id int64, reflection string) (string, error)
}

// ThemeStore provides the available themes and the General fallback
type ThemeStore interface {
	List(ctx context.Context) ([]models.Theme, error)
	FirstOrCreate(ctx context.Context, name, description, color string) (models.Theme, error)
}

// Pipeline orchestrates fetch-result processing: normalize, dedupe-upsert,
// classify-if-missing, reflect-if-missing, format
type Pipeline struct {
	store       Store
	themes      ThemeStore
	classifier  *themes.Classifier
	reflections *reflection.Generator
	now         func() time.Time
}

// NewPipeline creates the ingestion pipeline
func NewPipeline(store Store, themeStore ThemeStore, classifier *themes.Classifier, reflections *reflection.Generator) *Pipeline {
	return &Pipeline{
		store:       store,
		themes:      themeStore,
		classifier:  classifier,
		reflections: reflections,
		now:         time.Now,
	}
}

// Process ingests a batch of raw records in input order and returns the
// formatted headlines in the same order. Theme and reflection are filled
// exactly once per headline; reruns over the same hashes change nothing.
func (p *Pipeline) Process(ctx context.Context, raw []upstream.RawRecord) ([]models.FormattedHeadline, error) {
	available, err := p.themes.List(ctx)
	if err != nil {
		return nil, err
	}

	themesByID := make(map[int64]models.Theme, len(available))
	for _, t := range available {
		themesByID[t.ID] = t
	}

	processed := make([]models.FormattedHeadline, 0, len(raw))
	for _, record := range raw {
		headline, err := p.store.Upsert(ctx, normalizeRecord(record, p.now()))
		if err != nil {
			return nil, err
		}

		if headline.ThemeID == nil {
			// Classification uses the persisted keywords, not the
			// incoming record's, so duplicates keep the original theme
			theme, matched := p.classifier.Classify(headline.Keywords, available)
			if !matched {
				theme, err = p.themes.FirstOrCreate(ctx, themes.GeneralName, themes.GeneralDescription, themes.GeneralColor)
				if err != nil {
					return nil, err
				}
				themesByID[theme.ID] = theme
			}

			winner, err := p.store.SetThemeIfAbsent(ctx, headline.ID, theme.ID)
			if err != nil {
				return nil, err
			}
			headline.ThemeID = &winner
		}

		if headline.Reflection == nil {
			winner, err := p.store.SetReflectionIfAbsent(ctx, headline.ID, p.reflections.Generate(headline.Sentiment))
			if err != nil {
				return nil, err
			}
			headline.Reflection = &winner
		}

		processed = append(processed, formatHeadline(headline, themesByID))
	}

	return processed, nil
}

// formatHeadline shapes a persisted headline for the read API
func formatHeadline(h models.Headline, themesByID map[int64]models.Theme) models.FormattedHeadline {
	keywords := h.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	var summary *models.ThemeSummary
	if h.ThemeID != nil {
		if theme, ok := themesByID[*h.ThemeID]; ok {
			summary = &models.ThemeSummary{
				ID:    theme.ID,
				Name:  theme.Name,
				Color: theme.Color,
			}
		}
	}

	return models.FormattedHeadline{
		ID:          h.ID,
		Title:       h.Title,
		Source:      h.Source,
		URL:         h.URL,
		Description: h.Description,
		PublishedAt: h.PublishedAt.Format(time.RFC3339),
		Sentiment:   h.Sentiment.String(),
		Keywords:    keywords,
		Theme:       summary,
		Reflection:  h.Reflection,
	}
}
