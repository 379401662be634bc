package services

import "time"

// User is an account known to the identity layer. Services always receive
// the acting user id explicitly; nothing is inferred from ambient state.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	PassHash  []byte    `json:"-"`
	Admin     bool      `json:"admin"`
	CreatedAt time.Time `json:"created_at"`
}

// Result is the persisted outcome of one scored submission. A user has at
// most one current Result; resubmission replaces it whole, never field by
// field.
type Result struct {
	UserID    string    `json:"user_id"`
	Scores    Scores    `json:"scores"`
	Dominant  Category  `json:"dominant_category"`
	CreatedAt time.Time `json:"created_at"`
}

// AnswerRecord is one row of the raw answer log kept alongside Results so
// administrators can inspect what a respondent actually ticked.
type AnswerRecord struct {
	UserID      string    `json:"user_id,omitempty"`
	QuestionID  int       `json:"question_id"`
	Value       int       `json:"answer"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// AnswerView joins a raw answer with catalog metadata for display.
type AnswerView struct {
	QuestionID  int       `json:"question_id"`
	Question    string    `json:"question"`
	Category    Category  `json:"category"`
	Value       int       `json:"answer"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// QuestionView is a catalog entry resolved to a single locale.
type QuestionView struct {
	ID       int      `json:"id"`
	Category Category `json:"category"`
	Text     string   `json:"text"`
}
