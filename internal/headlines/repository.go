package headlines

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/quietfeed/quietfeed/pkg/models"
)

const headlineColumns = `
	id, hash, title, source, url, description, published_at,
	sentiment, sentiment_score, keywords, theme_id, reflection,
	is_active, displayed_at, created_at, updated_at
`

// Repository handles database operations for headlines
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates new headline repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Upsert inserts the headline keyed by its content hash and returns the
// persisted row. If a row with the hash already exists it is returned
// untouched (first write wins). The unique constraint on hash makes this
// safe under concurrent ingestion of the same batch.
func (r *Repository) Upsert(ctx context.Context, h models.Headline) (models.Headline, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO headlines (
			hash, title, source, url, description, published_at,
			sentiment, sentiment_score, keywords
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (hash) DO NOTHING
	`,
		h.Hash,
		h.Title,
		h.Source,
		h.URL,
		h.Description,
		h.PublishedAt,
		h.Sentiment,
		h.SentimentScore,
		pq.Array(h.Keywords),
	)
	if err != nil {
		return models.Headline{}, fmt.Errorf("failed to upsert headline: %w", err)
	}

	return r.getByHash(ctx, h.Hash)
}

// SetThemeIfAbsent assigns the theme only when none is set yet and
// returns the winning theme id. The COALESCE keeps the first assignment
// even under concurrent writers.
func (r *Repository) SetThemeIfAbsent(ctx context.Context, id int64, themeID int64) (int64, error) {
	var winner int64

	err := r.db.QueryRowContext(ctx, `
		UPDATE headlines
		SET theme_id = COALESCE(theme_id, $2), updated_at = NOW()
		WHERE id = $1
		RETURNING theme_id
	`, id, themeID).Scan(&winner)
	if err != nil {
		return 0, fmt.Errorf("failed to set theme: %w", err)
	}

	return winner, nil
}

// SetReflectionIfAbsent assigns the reflection only when none is set yet
// and returns the winning reflection
func (r *Repository) SetReflectionIfAbsent(ctx context.Context, id int64, reflection string) (string, error) {
	var winner string

	err := r.db.QueryRowContext(ctx, `
		UPDATE headlines
		SET reflection = COALESCE(reflection, $2), updated_at = NOW()
		WHERE id = $1
		RETURNING reflection
	`, id, reflection).Scan(&winner)
	if err != nil {
		return "", fmt.Errorf("failed to set reflection: %w", err)
	}

	return winner, nil
}

// ThemeCounts returns the number of headlines per assigned theme
func (r *Repository) ThemeCounts(ctx context.Context) (map[int64]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT theme_id, COUNT(*)
		FROM headlines
		WHERE theme_id IS NOT NULL
		GROUP BY theme_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count headlines by theme: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var themeID int64
		var count int
		if err := rows.Scan(&themeID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan theme count: %w", err)
		}
		counts[themeID] = count
	}

	return counts, rows.Err()
}

func (r *Repository) getByHash(ctx context.Context, hash string) (models.Headline, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+headlineColumns+`
		FROM headlines
		WHERE hash = $1
	`, hash)

	var h models.Headline
	var keywords pq.StringArray

	err := row.Scan(
		&h.ID,
		&h.Hash,
		&h.Title,
		&h.Source,
		&h.URL,
		&h.Description,
		&h.PublishedAt,
		&h.Sentiment,
		&h.SentimentScore,
		&keywords,
		&h.ThemeID,
		&h.Reflection,
		&h.IsActive,
		&h.DisplayedAt,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	if err != nil {
		return models.Headline{}, fmt.Errorf("failed to load headline: %w", err)
	}

	h.Keywords = keywords
	return h, nil
}
