package services

import "sort"

// ResultStore abstracts the read paths over stored Results and the raw
// answer log.
type ResultStore interface {
	Catalog() (*Catalog, error)
	GetResultByUser(userID string) (*Result, error)
	ListResults() ([]*Result, error)
	ListAnswersByUser(userID string) ([]AnswerRecord, error)
}

type ResultService struct {
	store ResultStore
}

func NewResultService(store ResultStore) *ResultService {
	return &ResultService{store: store}
}

// OwnResult returns the caller's current Result, or a not-found error when
// the user has not submitted yet.
func (s *ResultService) OwnResult(userID string) (*Result, error) {
	r, err := s.store.GetResultByUser(userID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, NewNotFoundError("no result for user")
	}
	return r, nil
}

// AllResults returns every stored Result, unordered.
func (s *ResultService) AllResults() ([]*Result, error) {
	return s.store.ListResults()
}

// UserAnswers returns one user's raw answers joined with catalog metadata,
// ordered by question id. Question text is resolved to locale.
func (s *ResultService) UserAnswers(userID, locale string) ([]AnswerView, error) {
	records, err := s.store.ListAnswersByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, NewNotFoundError("no answers for user")
	}
	catalog, err := s.store.Catalog()
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool { return records[i].QuestionID < records[j].QuestionID })
	out := make([]AnswerView, 0, len(records))
	for _, rec := range records {
		q := catalog.Get(rec.QuestionID)
		if q == nil {
			// answer to a question since removed from the catalog; skip
			continue
		}
		out = append(out, AnswerView{
			QuestionID:  q.ID,
			Question:    q.Text(locale),
			Category:    q.Category,
			Value:       rec.Value,
			SubmittedAt: rec.SubmittedAt,
		})
	}
	return out, nil
}
