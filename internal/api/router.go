package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/quadrantlabs/lsq/internal/middleware"
	"github.com/quadrantlabs/lsq/internal/services"
	"github.com/quadrantlabs/lsq/internal/utils"
)

// Router wires the HTTP surface to the domain services. All handlers take
// the acting user id from the request's auth claims and pass it down
// explicitly; no handler mutates shared state of its own.
type Router struct {
	store       Store
	auth        *services.AuthService
	catalog     *services.CatalogService
	submissions *services.SubmissionService
	results     *services.ResultService
	analytics   *services.AnalyticsService
}

func NewRouter(store Store) *Router {
	return &Router{
		store:       store,
		auth:        services.NewAuthService(store, middleware.SignToken),
		catalog:     services.NewCatalogService(store),
		submissions: services.NewSubmissionService(store),
		results:     services.NewResultService(store),
		analytics:   services.NewAnalyticsService(store),
	}
}

// Register mounts all API routes. RequireAuth/RequireAdmin assume the
// whole mux is wrapped in middleware.WithAuth.
func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/auth/register", rt.handleRegister) // POST
	mux.HandleFunc("/api/auth/login", rt.handleLogin)       // POST
	mux.HandleFunc("/api/questions", rt.handleQuestions)    // GET

	mux.Handle("/api/me", middleware.RequireAuth(http.HandlerFunc(rt.handleMe)))                // GET
	mux.Handle("/api/responses", middleware.RequireAuth(http.HandlerFunc(rt.handleSubmit)))    // POST
	mux.Handle("/api/results/me", middleware.RequireAuth(http.HandlerFunc(rt.handleMyResult))) // GET

	mux.Handle("/api/admin/results", middleware.RequireAdmin(http.HandlerFunc(rt.handleAdminResults))) // GET
	mux.Handle("/api/admin/users", middleware.RequireAdmin(http.HandlerFunc(rt.handleAdminUsers)))     // GET
	mux.Handle("/api/admin/users/", middleware.RequireAdmin(http.HandlerFunc(rt.handleAdminUserScoped)))
	mux.Handle("/api/admin/summary", middleware.RequireAdmin(http.HandlerFunc(rt.handleAdminSummary))) // GET
	mux.Handle("/api/admin/export", middleware.RequireAdmin(http.HandlerFunc(rt.handleAdminExport)))   // GET
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func statusForCode(code services.ErrorCode) int {
	switch code {
	case services.ErrorIncompleteSubmission, services.ErrorUnknownQuestion,
		services.ErrorInvalidAnswerValue, services.ErrorDuplicateAnswer,
		services.ErrorInvalid:
		return http.StatusBadRequest
	case services.ErrorUnauthorized:
		return http.StatusUnauthorized
	case services.ErrorForbidden:
		return http.StatusForbidden
	case services.ErrorNotFound:
		return http.StatusNotFound
	case services.ErrorConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError maps service errors to HTTP status codes and localizes the
// user-facing message where a translation exists. Store faults are logged
// and surfaced as plain 500s.
func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, err error) {
	se, ok := services.AsServiceError(err)
	if !ok {
		log.Printf("api: %s %s: %v", r.Method, r.URL.Path, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	locale := middleware.LocaleFromContext(r.Context())
	msg := utils.T(locale, "errors."+string(se.Code))
	if msg == "errors."+string(se.Code) {
		msg = se.Message
	}
	writeJSON(w, statusForCode(se.Code), map[string]any{
		"error":   se.Code,
		"message": msg,
		"detail":  se.Message,
	})
}

// POST /api/auth/register
func (rt *Router) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := rt.auth.Register(req.Email, req.Name, req.Password)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": res.Token, "user": res.User})
}

// POST /api/auth/login
func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := rt.auth.Login(req.Email, req.Password)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": res.Token, "user": res.User})
}

// GET /api/me
func (rt *Router) handleMe(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())
	u, err := rt.store.GetUser(claims.UID)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	if u == nil {
		rt.writeError(w, r, services.NewNotFoundError("user not found"))
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// GET /api/questions?lang=xx
func (rt *Router) handleQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	locale := middleware.LocaleFromContext(r.Context())
	questions, err := rt.catalog.Questions(locale)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": questions})
}

// POST /api/responses
// { answers: [{question_id: int, answer: 0|1}] } — every catalog question
// must appear exactly once. Returns the stored Result.
func (rt *Router) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	uid, _ := middleware.UserIDFromContext(r.Context())
	var req struct {
		Answers []services.Answer `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := rt.submissions.Submit(uid, req.Answers)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GET /api/results/me
func (rt *Router) handleMyResult(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserIDFromContext(r.Context())
	result, err := rt.results.OwnResult(uid)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GET /api/admin/results
func (rt *Router) handleAdminResults(w http.ResponseWriter, r *http.Request) {
	results, err := rt.results.AllResults()
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

type adminUserView struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Admin     bool   `json:"admin"`
	HasResult bool   `json:"has_result"`
}

// GET /api/admin/users
func (rt *Router) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := rt.store.ListUsers()
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	results, err := rt.results.AllResults()
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	submitted := make(map[string]bool, len(results))
	for _, res := range results {
		submitted[res.UserID] = true
	}
	out := make([]adminUserView, 0, len(users))
	for _, u := range users {
		out = append(out, adminUserView{
			ID:        u.ID,
			Email:     u.Email,
			Name:      u.Name,
			Admin:     u.Admin,
			HasResult: submitted[u.ID],
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": out, "total": len(out)})
}

// GET /api/admin/users/{id}/responses
func (rt *Router) handleAdminUserScoped(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/admin/users/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[1] != "responses" || parts[0] == "" {
		http.NotFound(w, r)
		return
	}
	locale := middleware.LocaleFromContext(r.Context())
	answers, err := rt.results.UserAnswers(parts[0], locale)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user_id": parts[0], "answers": answers})
}

// GET /api/admin/summary
func (rt *Router) handleAdminSummary(w http.ResponseWriter, r *http.Request) {
	snapshot, err := rt.analytics.Summary()
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

// GET /api/admin/export?kind=results|answers
func (rt *Router) handleAdminExport(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = "results"
	}
	switch kind {
	case "results":
		results, err := rt.results.AllResults()
		if err != nil {
			rt.writeError(w, r, err)
			return
		}
		b, err := services.ExportResultsCSV(results)
		if err != nil {
			rt.writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=results.csv")
		_, _ = w.Write(b)
	case "answers":
		records, err := rt.store.ListAllAnswers()
		if err != nil {
			rt.writeError(w, r, err)
			return
		}
		catalog, err := rt.store.Catalog()
		if err != nil {
			rt.writeError(w, r, err)
			return
		}
		b, err := services.ExportAnswersCSV(records, catalog)
		if err != nil {
			rt.writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=answers.csv")
		_, _ = w.Write(b)
	default:
		http.Error(w, "unsupported export kind", http.StatusBadRequest)
	}
}
