package themes

// KeywordIndex maps a theme name to its set of lowercase trigger keywords
type KeywordIndex map[string]map[string]struct{}

// Keywords returns the trigger set for a theme name, nil if unknown
func (idx KeywordIndex) Keywords(themeName string) map[string]struct{} {
	return idx[themeName]
}

// DefaultKeywordIndex returns the canonical theme trigger table
func DefaultKeywordIndex() KeywordIndex {
	table := map[string][]string{
		"Technology":  {"tech", "technology", "digital", "software", "ai", "artificial", "computer"},
		"Politics":    {"politics", "political", "government", "election", "policy", "senate", "congress"},
		"Business":    {"business", "economy", "market", "trade", "financial", "stock", "company"},
		"Health":      {"health", "medical", "doctor", "hospital", "disease", "treatment", "medicine"},
		"Science":     {"science", "research", "study", "scientific", "discovery", "experiment"},
		"Environment": {"climate", "environment", "green", "carbon", "renewable", "energy", "sustainability"},
		"Mindfulness": {
			"mindfulness", "meditation", "mental health", "wellness", "mindful", "meditate", "mental",
			"wellbeing", "well-being", "self-care", "awareness", "presence", "calm", "peace", "zen",
			"yoga", "therapy", "counseling", "psychology",
		},
	}

	idx := make(KeywordIndex, len(table))
	for name, words := range table {
		set := make(map[string]struct{}, len(words))
		for _, w := range words {
			set[w] = struct{}{}
		}
		idx[name] = set
	}
	return idx
}
