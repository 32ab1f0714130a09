package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/jobboard-service/internal/api/http"
	"github.com/spec-kit/jobboard-service/internal/api/http/handlers"
	"github.com/spec-kit/jobboard-service/internal/auth"
	"github.com/spec-kit/jobboard-service/internal/config"
	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/observability"
	"github.com/spec-kit/jobboard-service/internal/persistence"
	"github.com/spec-kit/jobboard-service/internal/repository"
	"github.com/spec-kit/jobboard-service/internal/service"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users []*domain.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_unique"}
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	f.users = append(f.users, &stored)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

type fakeJobRepo struct {
	mu        sync.Mutex
	jobs      []domain.Job
	clock     time.Time
	listCalls int
	failWith  error
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeJobRepo) Create(_ context.Context, job *domain.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clock = f.clock.Add(time.Second)
	job.ID = uuid.NewString()
	job.CreatedAt = f.clock
	job.UpdatedAt = f.clock
	f.jobs = append(f.jobs, *job)
	return nil
}

func (f *fakeJobRepo) Update(_ context.Context, job *domain.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.jobs {
		if f.jobs[i].ID == job.ID {
			f.clock = f.clock.Add(time.Second)
			job.CreatedAt = f.jobs[i].CreatedAt
			job.UpdatedAt = f.clock
			f.jobs[i] = *job
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeJobRepo) GetByID(_ context.Context, id string) (*domain.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.jobs {
		if f.jobs[i].ID == id {
			copied := f.jobs[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeJobRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.jobs {
		if f.jobs[i].ID == id {
			f.jobs = append(f.jobs[:i], f.jobs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeJobRepo) ListWithFilter(_ context.Context, filter repository.JobFilter) ([]domain.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++

	if f.failWith != nil {
		return nil, f.failWith
	}

	var matched []domain.Job
	for _, job := range f.jobs {
		if filter.Search != nil && !strings.Contains(strings.ToLower(job.Title), strings.ToLower(*filter.Search)) {
			continue
		}
		if filter.Type != nil && job.Type != *filter.Type {
			continue
		}
		if filter.Location != nil && job.Location != *filter.Location {
			continue
		}
		matched = append(matched, job)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (f *fakeJobRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.jobs)
}

type testEnv struct {
	app   *fiber.App
	users *fakeUserRepo
	jobs  *fakeJobRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := &fakeUserRepo{}
	jobs := newFakeJobRepo()

	authCfg := config.AuthConfig{JWTSecret: "unit-test-secret", TokenTTLHours: 24, BcryptCost: 4}
	authService := service.NewAuthService(authCfg, users)
	jobService := service.NewJobService(jobs)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("test", "dev", &persistence.Postgres{}, &persistence.Redis{}),
		Users:          handlers.NewUsersHandler(authService),
		Jobs:           handlers.NewJobsHandler(jobService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), users),
	})

	return &testEnv{app: app, users: users, jobs: jobs}
}

func (e *testEnv) request(t *testing.T, method, path, token string, payload any) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, path, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	res.Body.Close()
	return res, raw
}

func decode(t *testing.T, raw []byte, dst any) {
	t.Helper()
	if err := json.Unmarshal(raw, dst); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
}

func validProfile(email string) map[string]any {
	return map[string]any{
		"name":              "Ada Lovelace",
		"email":             email,
		"password":          "correct-horse",
		"phone_number":      "+31612345678",
		"gender":            "female",
		"date_of_birth":     "1990-12-10",
		"membership_status": "free",
	}
}

func (e *testEnv) registerAndLogin(t *testing.T, email string) string {
	t.Helper()
	res, raw := e.request(t, http.MethodPost, "/api/auth/register", "", validProfile(email))
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: status %d, body %s", email, res.StatusCode, raw)
	}
	var body struct {
		Token string `json:"token"`
	}
	decode(t, raw, &body)
	if body.Token == "" {
		t.Fatal("register returned empty token")
	}
	return body.Token
}

func validJob(title string) map[string]any {
	return map[string]any{
		"title":       title,
		"type":        "Full-Time",
		"location":    "Amsterdam",
		"description": "Build and operate backend services.",
		"salary":      "€70K - €80K",
		"company": map[string]any{
			"name":         "Acme B.V.",
			"description":  "Tooling for developers.",
			"contactEmail": "jobs@acme.example",
			"contactPhone": "+31201234567",
		},
	}
}

func (e *testEnv) createJob(t *testing.T, token, title string) string {
	t.Helper()
	res, raw := e.request(t, http.MethodPost, "/api/jobs", token, validJob(title))
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create job %q: status %d, body %s", title, res.StatusCode, raw)
	}
	var body struct {
		ID string `json:"id"`
	}
	decode(t, raw, &body)
	if body.ID == "" {
		t.Fatal("created job has no id")
	}
	return body.ID
}

func jobsPath(query string) string {
	if query == "" {
		return "/api/jobs"
	}
	return fmt.Sprintf("/api/jobs?%s", query)
}
