package themes

import (
	"sort"
	"strings"

	"github.com/quietfeed/quietfeed/pkg/models"
)

// Fallback theme, created on first need when no trigger set matches
const (
	GeneralName        = "General"
	GeneralDescription = "General news"
	GeneralColor       = "#6366f1"
)

// Classifier assigns a theme to a headline by matching its keywords
// against an immutable trigger table.
type Classifier struct {
	index KeywordIndex
}

// NewClassifier creates a classifier over the given trigger table
func NewClassifier(index KeywordIndex) *Classifier {
	return &Classifier{index: index}
}

// Classify scans the available themes in name-ascending order and returns
// the first theme whose trigger set contains any of the headline keywords
// (case-folded). First match wins, not best match. Returns false when no
// theme matches; the caller falls back to the General theme.
func (c *Classifier) Classify(keywords []string, available []models.Theme) (models.Theme, bool) {
	ordered := make([]models.Theme, len(available))
	copy(ordered, available)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Name < ordered[j].Name
	})

	for _, theme := range ordered {
		triggers := c.index.Keywords(theme.Name)
		if len(triggers) == 0 {
			continue
		}
		for _, kw := range keywords {
			if _, ok := triggers[strings.ToLower(kw)]; ok {
				return theme, true
			}
		}
	}

	return models.Theme{}, false
}
