package services

// Scores holds the per-category agree counts for one respondent.
type Scores map[Category]int

// NewScores returns a zeroed score map covering all four categories.
func NewScores() Scores {
	s := make(Scores, len(Categories))
	for _, c := range Categories {
		s[c] = 0
	}
	return s
}

// Total is the number of agree answers across all categories.
func (s Scores) Total() int {
	sum := 0
	for _, c := range Categories {
		sum += s[c]
	}
	return sum
}

// Dominant returns the category with the highest score. Ties resolve to
// the category listed first in Categories, so an all-zero set always
// yields Activist.
func (s Scores) Dominant() Category {
	best := Categories[0]
	for _, c := range Categories[1:] {
		if s[c] > s[best] {
			best = c
		}
	}
	return best
}

// ScoreResponses folds a validated response set into per-category totals.
// Every agree adds one point to its question's category; disagrees add
// nothing. Scores are raw counts, not normalized by how many questions a
// category has.
func ScoreResponses(set ResponseSet, catalog *Catalog) Scores {
	scores := NewScores()
	for id, v := range set {
		if v != AnswerAgree {
			continue
		}
		if cat, ok := catalog.CategoryOf(id); ok {
			scores[cat]++
		}
	}
	return scores
}
