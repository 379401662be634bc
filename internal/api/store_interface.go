package api

import "github.com/quadrantlabs/lsq/internal/services"

// Store is the full persistence contract the API layer wires into the
// services. It is the union of the per-service store interfaces plus the
// identity reads the admin views need.
type Store interface {
	// Catalog returns the fixed question set.
	Catalog() (*services.Catalog, error)

	// SaveSubmission atomically replaces a user's raw answers and Result.
	SaveSubmission(userID string, answers []services.AnswerRecord, result *services.Result) error

	GetResultByUser(userID string) (*services.Result, error)
	ListResults() ([]*services.Result, error)
	ListAnswersByUser(userID string) ([]services.AnswerRecord, error)
	ListAllAnswers() ([]services.AnswerRecord, error)

	AddUser(u *services.User) error
	GetUser(id string) (*services.User, error)
	FindUserByEmail(email string) (*services.User, error)
	ListUsers() ([]*services.User, error)
	CountUsers() (int, error)
}

var (
	_ services.SubmissionStore = Store(nil)
	_ services.ResultStore     = Store(nil)
	_ services.AnalyticsStore  = Store(nil)
	_ services.CatalogStore    = Store(nil)
	_ services.AuthStore       = Store(nil)
)
