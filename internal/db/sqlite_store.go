package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/quadrantlabs/lsq/internal/services"
)

// timeFormat is how timestamps are stored in SQLite text columns.
const timeFormat = time.RFC3339Nano

// SQLiteStore persists users, answers and results in SQLite. It implements
// every per-service store interface the API layer composes.
type SQLiteStore struct {
	db *sql.DB

	mu      sync.Mutex
	catalog *services.Catalog
}

// NewSQLiteStore wraps an open database handle and applies the pragmas the
// store relies on. Migrations must already have run.
func NewSQLiteStore(sqlDB *sql.DB) (*SQLiteStore, error) {
	pragmas := []string{
		"PRAGMA foreign_keys = ON;",
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
	}
	for _, p := range pragmas {
		if _, err := sqlDB.Exec(p); err != nil {
			return nil, fmt.Errorf("apply pragma %q: %w", p, err)
		}
	}
	return &SQLiteStore{db: sqlDB}, nil
}

// Catalog loads the question set once and caches it; the catalog is fixed
// for the lifetime of the process.
func (s *SQLiteStore) Catalog() (*services.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.catalog != nil {
		return s.catalog, nil
	}

	rows, err := s.db.Query(`SELECT id, category FROM questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	byID := make(map[int]*services.Question)
	var questions []*services.Question
	for rows.Next() {
		var (
			id  int
			cat string
		)
		if err := rows.Scan(&id, &cat); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		category, err := services.ParseCategory(cat)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", id, err)
		}
		q := &services.Question{ID: id, Category: category, TextI18n: map[string]string{}}
		byID[id] = q
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}

	texts, err := s.db.Query(`SELECT question_id, locale, text FROM question_texts`)
	if err != nil {
		return nil, fmt.Errorf("query question texts: %w", err)
	}
	defer texts.Close()
	for texts.Next() {
		var (
			id     int
			locale string
			text   string
		)
		if err := texts.Scan(&id, &locale, &text); err != nil {
			return nil, fmt.Errorf("scan question text: %w", err)
		}
		if q, ok := byID[id]; ok {
			q.TextI18n[locale] = text
		}
	}
	if err := texts.Err(); err != nil {
		return nil, fmt.Errorf("iterate question texts: %w", err)
	}

	catalog, err := services.NewCatalog(questions)
	if err != nil {
		return nil, err
	}
	s.catalog = catalog
	return catalog, nil
}

// SaveSubmission replaces the user's raw answer log and result row in one
// transaction. A failed write leaves any previous submission intact.
func (s *SQLiteStore) SaveSubmission(userID string, answers []services.AnswerRecord, result *services.Result) error {
	if result == nil {
		return errors.New("save submission: nil result")
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin submission tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM responses WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear previous answers: %w", err)
	}
	insert, err := tx.Prepare(`INSERT INTO responses (user_id, question_id, answer, submitted_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare answer insert: %w", err)
	}
	defer insert.Close()
	for _, a := range answers {
		if _, err := insert.Exec(userID, a.QuestionID, a.Value, a.SubmittedAt.UTC().Format(timeFormat)); err != nil {
			return fmt.Errorf("insert answer %d: %w", a.QuestionID, err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO results (user_id, activist_score, reflector_score, theorist_score, pragmatist_score, dominant_category, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			activist_score = excluded.activist_score,
			reflector_score = excluded.reflector_score,
			theorist_score = excluded.theorist_score,
			pragmatist_score = excluded.pragmatist_score,
			dominant_category = excluded.dominant_category,
			created_at = excluded.created_at`,
		userID,
		result.Scores[services.Activist],
		result.Scores[services.Reflector],
		result.Scores[services.Theorist],
		result.Scores[services.Pragmatist],
		string(result.Dominant),
		result.CreatedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("upsert result: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit submission: %w", err)
	}
	return nil
}

const resultColumns = `user_id, activist_score, reflector_score, theorist_score, pragmatist_score, dominant_category, created_at`

func scanResult(row interface{ Scan(...any) error }) (*services.Result, error) {
	var (
		r          services.Result
		activist   int
		reflector  int
		theorist   int
		pragmatist int
		dominant   string
		createdAt  string
	)
	if err := row.Scan(&r.UserID, &activist, &reflector, &theorist, &pragmatist, &dominant, &createdAt); err != nil {
		return nil, err
	}
	r.Scores = services.Scores{
		services.Activist:   activist,
		services.Reflector:  reflector,
		services.Theorist:   theorist,
		services.Pragmatist: pragmatist,
	}
	r.Dominant = services.Category(dominant)
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// GetResultByUser returns nil without error when the user has no result.
func (s *SQLiteStore) GetResultByUser(userID string) (*services.Result, error) {
	row := s.db.QueryRow(`SELECT `+resultColumns+` FROM results WHERE user_id = ?`, userID)
	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get result for %s: %w", userID, err)
	}
	return r, nil
}

func (s *SQLiteStore) ListResults() ([]*services.Result, error) {
	rows, err := s.db.Query(`SELECT ` + resultColumns + ` FROM results ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []*services.Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) listAnswers(where string, args ...any) ([]services.AnswerRecord, error) {
	query := `SELECT user_id, question_id, answer, submitted_at FROM responses`
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY user_id, question_id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var out []services.AnswerRecord
	for rows.Next() {
		var (
			rec         services.AnswerRecord
			submittedAt string
		)
		if err := rows.Scan(&rec.UserID, &rec.QuestionID, &rec.Value, &submittedAt); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		rec.SubmittedAt = parseTime(submittedAt)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answers: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) ListAnswersByUser(userID string) ([]services.AnswerRecord, error) {
	return s.listAnswers("user_id = ?", userID)
}

func (s *SQLiteStore) ListAllAnswers() ([]services.AnswerRecord, error) {
	return s.listAnswers("")
}

func (s *SQLiteStore) AddUser(u *services.User) error {
	if u == nil {
		return errors.New("add user: nil user")
	}
	_, err := s.db.Exec(
		`INSERT INTO users (id, email, name, pass_hash, is_admin, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, strings.ToLower(u.Email), u.Name, u.PassHash, boolToInt(u.Admin), u.CreatedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("insert user %s: %w", u.Email, err)
	}
	return nil
}

const userColumns = `id, email, name, pass_hash, is_admin, created_at`

func scanUser(row interface{ Scan(...any) error }) (*services.User, error) {
	var (
		u         services.User
		isAdmin   int
		createdAt string
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PassHash, &isAdmin, &createdAt); err != nil {
		return nil, err
	}
	u.Admin = isAdmin != 0
	u.CreatedAt = parseTime(createdAt)
	return &u, nil
}

// GetUser returns nil without error when no user has that id.
func (s *SQLiteStore) GetUser(id string) (*services.User, error) {
	row := s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return u, nil
}

// FindUserByEmail returns nil without error when no account matches.
func (s *SQLiteStore) FindUserByEmail(email string) (*services.User, error) {
	row := s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = ?`, strings.ToLower(email))
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", email, err)
	}
	return u, nil
}

func (s *SQLiteStore) ListUsers() ([]*services.User, error) {
	rows, err := s.db.Query(`SELECT ` + userColumns + ` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var out []*services.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) CountUsers() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeFormat, s)
	if err != nil {
		// Older rows may carry second precision.
		t, _ = time.Parse(time.RFC3339, s)
	}
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
