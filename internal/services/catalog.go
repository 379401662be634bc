package services

import (
	"fmt"
	"sort"
)

// Question is one catalog entry. The category is keyed by the question id
// alone; display text lives in TextI18n keyed by locale. A translation can
// never change the classification of a question.
type Question struct {
	ID       int               `json:"id"`
	Category Category          `json:"category"`
	TextI18n map[string]string `json:"text_i18n,omitempty"`
}

// Text returns the question text for locale, falling back to English.
func (q *Question) Text(locale string) string {
	if t := q.TextI18n[locale]; t != "" {
		return t
	}
	return q.TextI18n["en"]
}

// Catalog is the fixed question set the engine validates and scores
// against. It is built once from store data and read-only afterwards.
type Catalog struct {
	questions []*Question
	byID      map[int]*Question
}

func NewCatalog(questions []*Question) (*Catalog, error) {
	byID := make(map[int]*Question, len(questions))
	ordered := make([]*Question, 0, len(questions))
	for _, q := range questions {
		if q == nil {
			continue
		}
		if !q.Category.Valid() {
			return nil, NewInvalidError(fmt.Sprintf("question %d has unknown category %q", q.ID, q.Category))
		}
		if _, dup := byID[q.ID]; dup {
			return nil, NewInvalidError(fmt.Sprintf("duplicate question id %d", q.ID))
		}
		byID[q.ID] = q
		ordered = append(ordered, q)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })
	return &Catalog{questions: ordered, byID: byID}, nil
}

func (c *Catalog) Len() int { return len(c.questions) }

// Questions returns the catalog entries ordered by id.
func (c *Catalog) Questions() []*Question {
	return append([]*Question(nil), c.questions...)
}

func (c *Catalog) Get(id int) *Question { return c.byID[id] }

// CategoryOf resolves the category for a question id.
func (c *Catalog) CategoryOf(id int) (Category, bool) {
	q, ok := c.byID[id]
	if !ok {
		return "", false
	}
	return q.Category, true
}

// CountByCategory returns how many questions carry each category tag.
// Counts need not be equal across categories; scoring compares raw counts
// either way.
func (c *Catalog) CountByCategory() map[Category]int {
	out := make(map[Category]int, len(Categories))
	for _, cat := range Categories {
		out[cat] = 0
	}
	for _, q := range c.questions {
		out[q.Category]++
	}
	return out
}
