package services

import (
	"testing"
	"time"
)

var testTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// mustCatalog builds a small fixed catalog, one question per style.
func mustCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog([]*Question{
		{ID: 1, Category: Activist, TextI18n: map[string]string{"en": "I act first and think later.", "es": "Primero actúo y luego pienso."}},
		{ID: 2, Category: Reflector, TextI18n: map[string]string{"en": "I prefer to watch before joining in."}},
		{ID: 3, Category: Theorist, TextI18n: map[string]string{"en": "I want the underlying model."}},
		{ID: 4, Category: Pragmatist, TextI18n: map[string]string{"en": "I only care if it works."}},
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return c
}

func intPtr(v int) *int { return &v }

// completeAnswers answers every catalog question with the given values,
// keyed by question id. Missing ids get disagree.
func completeAnswers(c *Catalog, values map[int]int) []Answer {
	out := make([]Answer, 0, c.Len())
	for _, q := range c.Questions() {
		v := values[q.ID]
		out = append(out, Answer{QuestionID: q.ID, Value: intPtr(v)})
	}
	return out
}

// stubStore is an in-memory implementation of every per-service store
// interface.
type stubStore struct {
	catalog    *Catalog
	catalogErr error

	results map[string]*Result
	answers map[string][]AnswerRecord
	users   map[string]*User // keyed by email

	saveErr   error
	saveCalls int
}

func newStubStore(c *Catalog) *stubStore {
	return &stubStore{
		catalog: c,
		results: map[string]*Result{},
		answers: map[string][]AnswerRecord{},
		users:   map[string]*User{},
	}
}

func (s *stubStore) Catalog() (*Catalog, error) {
	if s.catalogErr != nil {
		return nil, s.catalogErr
	}
	return s.catalog, nil
}

func (s *stubStore) SaveSubmission(userID string, answers []AnswerRecord, result *Result) error {
	s.saveCalls++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.answers[userID] = append([]AnswerRecord(nil), answers...)
	s.results[userID] = result
	return nil
}

func (s *stubStore) GetResultByUser(userID string) (*Result, error) {
	return s.results[userID], nil
}

func (s *stubStore) ListResults() ([]*Result, error) {
	out := make([]*Result, 0, len(s.results))
	for _, r := range s.results {
		out = append(out, r)
	}
	return out, nil
}

func (s *stubStore) ListAnswersByUser(userID string) ([]AnswerRecord, error) {
	return s.answers[userID], nil
}

func (s *stubStore) FindUserByEmail(email string) (*User, error) {
	return s.users[email], nil
}

func (s *stubStore) AddUser(u *User) error {
	s.users[u.Email] = u
	return nil
}

func (s *stubStore) CountUsers() (int, error) {
	return len(s.users), nil
}

func wantCode(t *testing.T, err error, code ErrorCode) {
	t.Helper()
	se, ok := AsServiceError(err)
	if !ok {
		t.Fatalf("expected ServiceError %q, got %v", code, err)
	}
	if se.Code != code {
		t.Fatalf("expected code %q, got %q (%s)", code, se.Code, se.Message)
	}
}
