package themes

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/quietfeed/quietfeed/pkg/models"
)

// Repository handles database operations for themes
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates new theme repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// List returns all themes ordered by name ascending. Classification
// iterates this order, so ties stay deterministic.
func (r *Repository) List(ctx context.Context) ([]models.Theme, error) {
	themes := make([]models.Theme, 0)

	err := r.db.SelectContext(ctx, &themes, `
		SELECT id, name, description, color, created_at, updated_at
		FROM themes
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list themes: %w", err)
	}

	return themes, nil
}

// FirstOrCreate returns the theme with the given name, creating it with
// the supplied description and color if it does not exist. Safe under
// concurrent callers via the unique name constraint.
func (r *Repository) FirstOrCreate(ctx context.Context, name, description, color string) (models.Theme, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO themes (name, description, color)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO NOTHING
	`, name, description, color)
	if err != nil {
		return models.Theme{}, fmt.Errorf("failed to create theme %q: %w", name, err)
	}

	var theme models.Theme
	err = r.db.GetContext(ctx, &theme, `
		SELECT id, name, description, color, created_at, updated_at
		FROM themes
		WHERE name = $1
	`, name)
	if err != nil {
		return models.Theme{}, fmt.Errorf("failed to load theme %q: %w", name, err)
	}

	return theme, nil
}

// ListWithCounts returns all themes with their headline counts, ordered
// by name ascending
func (r *Repository) ListWithCounts(ctx context.Context) ([]models.ThemeWithCount, error) {
	themes := make([]models.ThemeWithCount, 0)

	err := r.db.SelectContext(ctx, &themes, `
		SELECT
			t.id, t.name, t.description, t.color, t.created_at, t.updated_at,
			COUNT(h.id) AS headlines_count
		FROM themes t
		LEFT JOIN headlines h ON h.theme_id = t.id
		GROUP BY t.id
		ORDER BY t.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list themes with counts: %w", err)
	}

	return themes, nil
}
