package services

import (
	"strings"
	"time"
)

// SubmissionStore abstracts persistence operations required by
// SubmissionService. SaveSubmission must replace the user's previous
// answers and Result atomically: a reader sees either the old submission
// in full or the new one in full.
type SubmissionStore interface {
	Catalog() (*Catalog, error)
	SaveSubmission(userID string, answers []AnswerRecord, result *Result) error
}

// SubmissionService hosts the validate→score→persist workflow for one
// questionnaire submission.
type SubmissionService struct {
	store SubmissionStore
	now   func() time.Time
}

func NewSubmissionService(store SubmissionStore) *SubmissionService {
	return &SubmissionService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates and scores one user's answer set, then persists the
// Result together with the raw answers, replacing any prior submission.
// The returned Result reflects the stored values.
func (s *SubmissionService) Submit(userID string, answers []Answer) (*Result, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewUnauthorizedError("user required")
	}
	catalog, err := s.store.Catalog()
	if err != nil {
		return nil, err
	}
	set, err := ValidateAnswers(catalog, answers)
	if err != nil {
		return nil, err
	}
	scores := ScoreResponses(set, catalog)
	now := s.now()
	result := &Result{
		UserID:    userID,
		Scores:    scores,
		Dominant:  scores.Dominant(),
		CreatedAt: now,
	}
	records := make([]AnswerRecord, 0, len(set))
	for _, q := range catalog.Questions() {
		v, ok := set[q.ID]
		if !ok {
			continue
		}
		records = append(records, AnswerRecord{
			UserID:      userID,
			QuestionID:  q.ID,
			Value:       v,
			SubmittedAt: now,
		})
	}
	if err := s.store.SaveSubmission(userID, records, result); err != nil {
		return nil, err
	}
	return result, nil
}
