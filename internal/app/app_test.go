package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"studentshub/internal/config"
	"studentshub/internal/infrastructure/cache"
	"studentshub/internal/repository/memory"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func testApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Config{
		App: config.AppConfig{AppName: "studentshub-test", BcryptCost: bcrypt.MinCost},
		JWT: config.JWTConfig{
			AccessSecret:  "access-secret",
			RefreshSecret: "refresh-secret",
			AccessTTL:     time.Minute,
			RefreshTTL:    time.Hour,
		},
		RateLimit: config.RateLimitConfig{ApplyLimit: 10, ApplyWindow: time.Minute},
	}
	logger := log.New(io.Discard, "", 0)
	return New(Wire(cfg, memory.New(), cache.NewRedis(config.RedisConfig{}, logger), logger))
}

func call(t *testing.T, a *App, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.Fiber.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: decode: %v", method, path, err)
	}
	return resp.StatusCode, env
}

func register(t *testing.T, a *App, email, role string) string {
	t.Helper()
	status, env := call(t, a, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":      email,
		"password":   "password123",
		"role":       role,
		"first_name": "Test",
		"last_name":  "User",
	})
	if status != http.StatusCreated {
		t.Fatalf("register %s: status %d (%s)", email, status, env.Message)
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil || out.AccessToken == "" {
		t.Fatalf("register %s: missing token: %v", email, err)
	}
	return out.AccessToken
}

func TestAuthFlow(t *testing.T) {
	a := testApp(t)
	register(t, a, "ada@uni.test", "student")

	status, _ := call(t, a, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": "ada@uni.test", "password": "password123", "role": "student",
	})
	if status != http.StatusConflict {
		t.Fatalf("duplicate email: expected 409, got %d", status)
	}

	status, _ = call(t, a, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": "root@uni.test", "password": "password123", "role": "admin",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("admin sign-up: expected 400, got %d", status)
	}

	status, env := call(t, a, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "ADA@uni.test", "password": "password123",
	})
	if status != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", status, env.Message)
	}

	status, _ = call(t, a, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "ada@uni.test", "password": "wrong-password",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("bad password: expected 401, got %d", status)
	}

	status, _ = call(t, a, http.MethodGet, "/api/v1/users/me", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("me without token: expected 401, got %d", status)
	}
}

func TestApplyFlow(t *testing.T) {
	a := testApp(t)
	companyToken := register(t, a, "hr@acme.test", "company")
	studentToken := register(t, a, "ada@uni.test", "student")

	status, env := call(t, a, http.MethodPost, "/api/v1/jobs", companyToken, map[string]any{"title": "Backend Intern"})
	if status != http.StatusForbidden {
		t.Fatalf("job without company profile: expected 403, got %d (%s)", status, env.Message)
	}

	status, env = call(t, a, http.MethodPut, "/api/v1/companies/me", companyToken, map[string]string{
		"company_name": "Acme Labs",
		"location":     "Jakarta",
	})
	if status != http.StatusOK {
		t.Fatalf("company profile: expected 200, got %d (%s)", status, env.Message)
	}

	status, env = call(t, a, http.MethodPost, "/api/v1/jobs", companyToken, map[string]any{
		"title":       "Backend Intern",
		"description": "Build APIs in Go.",
		"job_type":    "internship",
		"location":    "Jakarta",
	})
	if status != http.StatusCreated {
		t.Fatalf("create job: expected 201, got %d (%s)", status, env.Message)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode job: %v", err)
	}

	status, _ = call(t, a, http.MethodPost, "/api/v1/jobs", studentToken, map[string]any{"title": "x"})
	if status != http.StatusForbidden {
		t.Fatalf("student creating job: expected 403, got %d", status)
	}

	apply := map[string]string{"job_id": created.ID, "cover_letter": "I would love to join."}
	status, env = call(t, a, http.MethodPost, "/api/v1/applications", studentToken, apply)
	if status != http.StatusCreated {
		t.Fatalf("apply: expected 201, got %d (%s)", status, env.Message)
	}
	var applied struct {
		ApplicationID string `json:"application_id"`
		Status        string `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &applied); err != nil {
		t.Fatalf("decode apply: %v", err)
	}
	if applied.Status != "pending" {
		t.Fatalf("expected pending, got %q", applied.Status)
	}

	status, env = call(t, a, http.MethodPost, "/api/v1/applications", studentToken, apply)
	if status != http.StatusConflict {
		t.Fatalf("duplicate apply: expected 409, got %d", status)
	}
	var dup struct {
		ApplicationID string `json:"application_id"`
	}
	if err := json.Unmarshal(env.Data, &dup); err != nil || dup.ApplicationID != applied.ApplicationID {
		t.Fatalf("expected existing application id %s, got %s (%v)", applied.ApplicationID, dup.ApplicationID, err)
	}

	status, _ = call(t, a, http.MethodPatch, "/api/v1/applications/"+applied.ApplicationID+"/status", companyToken,
		map[string]string{"status": "hired"})
	if status != http.StatusBadRequest {
		t.Fatalf("skipping states: expected 400, got %d", status)
	}
	status, env = call(t, a, http.MethodPatch, "/api/v1/applications/"+applied.ApplicationID+"/status", companyToken,
		map[string]string{"status": "reviewing"})
	if status != http.StatusOK {
		t.Fatalf("review: expected 200, got %d (%s)", status, env.Message)
	}

	status, env = call(t, a, http.MethodGet, "/api/v1/notifications/unread-count", studentToken, nil)
	if status != http.StatusOK {
		t.Fatalf("unread count: expected 200, got %d", status)
	}
	var unread struct {
		UnreadCount int `json:"unread_count"`
	}
	if err := json.Unmarshal(env.Data, &unread); err != nil || unread.UnreadCount != 1 {
		t.Fatalf("expected 1 unread notification, got %d (%v)", unread.UnreadCount, err)
	}
}

func TestApply_MissingJob(t *testing.T) {
	a := testApp(t)
	studentToken := register(t, a, "ada@uni.test", "student")

	status, _ := call(t, a, http.MethodPost, "/api/v1/applications", studentToken, map[string]string{
		"job_id":       "5b0b7a3e-3f4e-4a55-9d0f-0a4f3c21a111",
		"cover_letter": "hi",
	})
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}

	status, _ = call(t, a, http.MethodPost, "/api/v1/applications", studentToken, map[string]string{
		"job_id":       "not-a-uuid",
		"cover_letter": "hi",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
}

func TestSavedJobs_RoleGuard(t *testing.T) {
	a := testApp(t)
	companyToken := register(t, a, "hr@acme.test", "company")

	status, _ := call(t, a, http.MethodGet, "/api/v1/saved-jobs", companyToken, nil)
	if status != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", status)
	}
}

func TestHealth_DegradedWithoutDatabase(t *testing.T) {
	a := testApp(t)
	status, env := call(t, a, http.MethodGet, "/health", "", nil)
	if status != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", status)
	}
	var checks map[string]string
	if err := json.Unmarshal(env.Data, &checks); err != nil {
		t.Fatalf("decode checks: %v", err)
	}
	if checks["cache"] != "bypassed" {
		t.Fatalf("expected bypassed cache, got %v", checks)
	}
}

func TestListenAddr(t *testing.T) {
	cases := map[string]string{"8080": ":8080", ":9000": ":9000", " 3000 ": ":3000"}
	for in, want := range cases {
		got, err := ListenAddr(in)
		if err != nil || got != want {
			t.Fatalf("ListenAddr(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ListenAddr(""); err == nil {
		t.Fatalf("expected error for empty port")
	}
}

func TestWire_AppliesBcryptCost(t *testing.T) {
	a := testApp(t)
	register(t, a, "cost@uni.test", "student")

	u, err := a.Container.Store.Users().GetByEmail(context.Background(), "cost@uni.test")
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(u.PasswordHash))
	if err != nil || cost != bcrypt.MinCost {
		t.Fatalf("expected cost %d, got %d (%v)", bcrypt.MinCost, cost, err)
	}
}

func TestSavedJobsBulkAndDashboardFlow(t *testing.T) {
	a := testApp(t)
	companyToken := register(t, a, "hr@acme.test", "company")
	studentToken := register(t, a, "ada@uni.test", "student")

	if status, env := call(t, a, http.MethodPut, "/api/v1/companies/me", companyToken, map[string]string{
		"company_name": "Acme Labs",
		"location":     "Jakarta",
	}); status != http.StatusOK {
		t.Fatalf("company profile: expected 200, got %d (%s)", status, env.Message)
	}
	status, env := call(t, a, http.MethodPost, "/api/v1/jobs", companyToken, map[string]any{
		"title":       "Backend Intern",
		"description": "Build APIs in Go.",
		"job_type":    "internship",
		"location":    "Jakarta",
	})
	if status != http.StatusCreated {
		t.Fatalf("create job: expected 201, got %d (%s)", status, env.Message)
	}
	var jobOut struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &jobOut); err != nil {
		t.Fatalf("decode job: %v", err)
	}

	status, env = call(t, a, http.MethodPost, "/api/v1/saved-jobs", studentToken, map[string]string{"job_id": jobOut.ID})
	if status != http.StatusCreated {
		t.Fatalf("save job: expected 201, got %d (%s)", status, env.Message)
	}
	var saved struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &saved); err != nil {
		t.Fatalf("decode saved job: %v", err)
	}

	status, env = call(t, a, http.MethodDelete, "/api/v1/saved-jobs/bulk", studentToken, map[string]any{
		"saved_job_ids": []string{saved.ID},
	})
	if status != http.StatusOK {
		t.Fatalf("bulk unsave: expected 200, got %d (%s)", status, env.Message)
	}
	var bulk struct {
		DeletedCount int `json:"deleted_count"`
	}
	if err := json.Unmarshal(env.Data, &bulk); err != nil || bulk.DeletedCount != 1 {
		t.Fatalf("expected deleted_count 1, got %d (%v)", bulk.DeletedCount, err)
	}

	status, _ = call(t, a, http.MethodDelete, "/api/v1/saved-jobs/bulk", studentToken, map[string]any{
		"saved_job_ids": []string{"not-a-uuid"},
	})
	if status != http.StatusBadRequest {
		t.Fatalf("bulk unsave with bad id: expected 400, got %d", status)
	}

	search := map[string]any{"search_query": "go intern", "filters": map[string]any{"remote": true}}
	if status, env := call(t, a, http.MethodPost, "/api/v1/saved-searches", studentToken, search); status != http.StatusCreated {
		t.Fatalf("save search: expected 201, got %d (%s)", status, env.Message)
	}
	status, env = call(t, a, http.MethodPost, "/api/v1/saved-searches", studentToken, search)
	if status != http.StatusOK {
		t.Fatalf("repeat search: expected 200, got %d (%s)", status, env.Message)
	}
	var bumped struct {
		SearchCount int `json:"search_count"`
	}
	if err := json.Unmarshal(env.Data, &bumped); err != nil || bumped.SearchCount != 2 {
		t.Fatalf("expected search_count 2, got %d (%v)", bumped.SearchCount, err)
	}

	status, env = call(t, a, http.MethodGet, "/api/v1/dashboard/stats", studentToken, nil)
	if status != http.StatusOK {
		t.Fatalf("dashboard stats: expected 200, got %d (%s)", status, env.Message)
	}
	var stats struct {
		Role      string `json:"role"`
		SavedJobs *int   `json:"saved_jobs"`
	}
	if err := json.Unmarshal(env.Data, &stats); err != nil || stats.Role != "student" || stats.SavedJobs == nil || *stats.SavedJobs != 0 {
		t.Fatalf("unexpected dashboard stats %s (%v)", env.Data, err)
	}

	if status, _ := call(t, a, http.MethodGet, "/api/v1/dashboard/recent-activity", companyToken, nil); status != http.StatusOK {
		t.Fatalf("recent activity: expected 200, got %d", status)
	}
}
