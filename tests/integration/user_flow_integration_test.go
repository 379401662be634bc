//go:build integration

package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

func baseURL() string {
	if v := os.Getenv("LSQ_TEST_BASE_URL"); strings.TrimSpace(v) != "" {
		return strings.TrimRight(v, "/")
	}
	return "http://127.0.0.1:8080"
}

func TestQuestionnaireJourneyIntegration(t *testing.T) {
	client := &http.Client{Timeout: 5 * time.Second}
	base := baseURL()

	userEmail := fmt.Sprintf("integration_%d@example.com", time.Now().UnixNano())
	password := "Secret123!"

	var registerResp struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	doPost(t, client, base+"/api/auth/register", "", map[string]string{
		"email":    userEmail,
		"name":     "Integration Tester",
		"password": password,
	}, &registerResp)
	if registerResp.Token == "" || registerResp.User.ID == "" {
		t.Fatalf("unexpected register response: %+v", registerResp)
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	doPost(t, client, base+"/api/auth/login", "", map[string]string{
		"email":    userEmail,
		"password": password,
	}, &loginResp)
	token := loginResp.Token
	if token == "" {
		t.Fatalf("login did not return token")
	}

	var questionsResp struct {
		Questions []struct {
			ID       int    `json:"id"`
			Category string `json:"category"`
			Text     string `json:"text"`
		} `json:"questions"`
	}
	doGet(t, client, base+"/api/questions", token, &questionsResp)
	if len(questionsResp.Questions) == 0 {
		t.Fatalf("expected seeded questions")
	}

	// Agree with every question in an even position, disagree otherwise.
	answers := make([]map[string]int, 0, len(questionsResp.Questions))
	for i, q := range questionsResp.Questions {
		answers = append(answers, map[string]int{
			"question_id": q.ID,
			"answer":      i % 2,
		})
	}
	var submitResp struct {
		UserID   string         `json:"user_id"`
		Scores   map[string]int `json:"scores"`
		Dominant string         `json:"dominant_category"`
	}
	doPost(t, client, base+"/api/responses", token, map[string]any{
		"answers": answers,
	}, &submitResp)
	if submitResp.UserID != registerResp.User.ID {
		t.Fatalf("submit returned user %q, want %q", submitResp.UserID, registerResp.User.ID)
	}
	if submitResp.Dominant == "" {
		t.Fatalf("expected dominant category in submit response: %+v", submitResp)
	}

	var resultResp struct {
		Scores   map[string]int `json:"scores"`
		Dominant string         `json:"dominant_category"`
	}
	doGet(t, client, base+"/api/results/me", token, &resultResp)
	if resultResp.Dominant != submitResp.Dominant {
		t.Fatalf("stored result %q differs from submit response %q", resultResp.Dominant, submitResp.Dominant)
	}

	// An incomplete resubmission must be rejected and must not clobber the
	// stored result.
	incomplete := answers[:len(answers)-1]
	status, body := doPostRaw(t, client, base+"/api/responses", token, map[string]any{
		"answers": incomplete,
	})
	if status != http.StatusBadRequest {
		t.Fatalf("incomplete submission status %d body %s", status, body)
	}
	if !strings.Contains(body, "incomplete_submission") {
		t.Fatalf("expected incomplete_submission error, got %s", body)
	}
	doGet(t, client, base+"/api/results/me", token, &resultResp)
	if resultResp.Dominant != submitResp.Dominant {
		t.Fatalf("rejected submission changed the stored result")
	}
}

func TestAdminSurfaceIntegration(t *testing.T) {
	client := &http.Client{Timeout: 5 * time.Second}
	base := baseURL()

	adminEmail := os.Getenv("LSQ_TEST_ADMIN_EMAIL")
	adminPassword := os.Getenv("LSQ_TEST_ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		t.Skip("LSQ_TEST_ADMIN_EMAIL / LSQ_TEST_ADMIN_PASSWORD not set")
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	doPost(t, client, base+"/api/auth/login", "", map[string]string{
		"email":    adminEmail,
		"password": adminPassword,
	}, &loginResp)
	if loginResp.Token == "" {
		t.Fatalf("admin login did not return token")
	}

	var summaryResp struct {
		Total          int                `json:"total_results"`
		Distribution   map[string]int     `json:"distribution"`
		Averages       map[string]float64 `json:"averages"`
		CompletionRate float64            `json:"completion_rate"`
	}
	doGet(t, client, base+"/api/admin/summary", loginResp.Token, &summaryResp)
	for _, cat := range []string{"activist", "reflector", "theorist", "pragmatist"} {
		if _, ok := summaryResp.Distribution[cat]; !ok {
			t.Fatalf("summary distribution missing %s: %+v", cat, summaryResp)
		}
	}

	status, body := doGetRaw(t, client, base+"/api/admin/export?kind=results", loginResp.Token)
	if status != http.StatusOK {
		t.Fatalf("export status %d body %s", status, body)
	}
	if !strings.HasPrefix(body, "user_id,activist,reflector,theorist,pragmatist") {
		t.Fatalf("unexpected export header: %s", body)
	}
}

func doPost(t *testing.T, client *http.Client, url, token string, body any, out any) {
	t.Helper()
	status, respBody := doPostRaw(t, client, url, token, body)
	if status < 200 || status >= 300 {
		t.Fatalf("unexpected status %d for %s: %s", status, url, respBody)
	}
	if out != nil {
		if err := json.Unmarshal([]byte(respBody), out); err != nil {
			t.Fatalf("decode response from %s: %v", url, err)
		}
	}
}

func doPostRaw(t *testing.T, client *http.Client, url, token string, body any) (int, string) {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("http post %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(respBody)
}

func doGet(t *testing.T, client *http.Client, url, token string, out any) {
	t.Helper()
	status, body := doGetRaw(t, client, url, token)
	if status != http.StatusOK {
		t.Fatalf("unexpected status %d for %s: %s", status, url, body)
	}
	if out != nil {
		if err := json.Unmarshal([]byte(body), out); err != nil {
			t.Fatalf("decode response from %s: %v", url, err)
		}
	}
}

func doGetRaw(t *testing.T, client *http.Client, url, token string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("http get %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}
