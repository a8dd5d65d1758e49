package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/garnizeh/skillsnap/internal/cache"
	"github.com/garnizeh/skillsnap/internal/config"
	"github.com/garnizeh/skillsnap/pkg/models"
	"github.com/garnizeh/skillsnap/pkg/repository/mock"
)

const testSecret = "test-secret"

type testEnv struct {
	mocks  *mock.Mocks
	cache  *cache.Cache
	router *mux.Router
}

// newTestEnv wires the handlers against in-memory repositories and a
// fresh cache, on the same route patterns as production but without the
// auth guard so resource tests stay focused.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	m := mock.NewMocks()
	c := cache.New()
	inv := cache.NewInvalidator(c, logger)
	ttl := config.CacheConfig{
		ListingTTL:     time.Minute,
		ListingSliding: 30 * time.Second,
		StatisticsTTL:  time.Minute,
	}

	users := NewPortfolioUsersHandler(m.Users, m.Projects, m.Skills, m.Stats, c, inv, ttl)
	projects := NewProjectsHandler(m.Projects, m.Users, m.Stats, c, inv, ttl)
	skills := NewSkillsHandler(m.Skills, m.Users, m.Stats, c, inv, ttl)

	r := mux.NewRouter()

	r.HandleFunc("/portfolio-users", users.List).Methods("GET")
	r.HandleFunc("/portfolio-users/search", users.Search).Methods("GET")
	r.HandleFunc("/portfolio-users/statistics", users.Statistics).Methods("GET")
	r.HandleFunc("/portfolio-users/{id:[0-9]+}", users.Get).Methods("GET")
	r.HandleFunc("/portfolio-users/{id:[0-9]+}/projects", users.Projects).Methods("GET")
	r.HandleFunc("/portfolio-users/{id:[0-9]+}/skills", users.Skills).Methods("GET")
	r.HandleFunc("/portfolio-users/{id:[0-9]+}/statistics", users.UserStatistics).Methods("GET")
	r.HandleFunc("/portfolio-users", users.Create).Methods("POST")
	r.HandleFunc("/portfolio-users/{id:[0-9]+}", users.Update).Methods("PUT")
	r.HandleFunc("/portfolio-users/{id:[0-9]+}", users.Delete).Methods("DELETE")

	r.HandleFunc("/projects", projects.List).Methods("GET")
	r.HandleFunc("/projects/search", projects.Search).Methods("GET")
	r.HandleFunc("/projects/statistics", projects.Statistics).Methods("GET")
	r.HandleFunc("/projects/by-user/{id:[0-9]+}", projects.ByOwner).Methods("GET")
	r.HandleFunc("/projects/{id:[0-9]+}", projects.Get).Methods("GET")
	r.HandleFunc("/projects", projects.Create).Methods("POST")
	r.HandleFunc("/projects/{id:[0-9]+}", projects.Update).Methods("PUT")
	r.HandleFunc("/projects/{id:[0-9]+}", projects.Delete).Methods("DELETE")

	r.HandleFunc("/skills", skills.List).Methods("GET")
	r.HandleFunc("/skills/search", skills.Search).Methods("GET")
	r.HandleFunc("/skills/statistics", skills.Statistics).Methods("GET")
	r.HandleFunc("/skills/levels", skills.Levels).Methods("GET")
	r.HandleFunc("/skills/by-level/{level}", skills.ByLevel).Methods("GET")
	r.HandleFunc("/skills/by-user/{id:[0-9]+}", skills.ByOwner).Methods("GET")
	r.HandleFunc("/skills/{id:[0-9]+}", skills.Get).Methods("GET")
	r.HandleFunc("/skills", skills.Create).Methods("POST")
	r.HandleFunc("/skills/{id:[0-9]+}", skills.Update).Methods("PUT")
	r.HandleFunc("/skills/{id:[0-9]+}", skills.Delete).Methods("DELETE")

	return &testEnv{mocks: m, cache: c, router: r}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// seedUser inserts a portfolio user straight through the mock repo and
// returns its id.
func (e *testEnv) seedUser(t *testing.T, name string) uint {
	t.Helper()

	u := models.PortfolioUser{Name: name, Bio: name + " bio"}
	id, err := e.mocks.Users.CreatePortfolioUser(context.Background(), &u)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return id
}

func (e *testEnv) seedProject(t *testing.T, ownerID uint, title string) uint {
	t.Helper()

	p := models.Project{Title: title, Description: title + " description", PortfolioUserID: ownerID}
	id, err := e.mocks.Projects.CreateProject(context.Background(), &p)
	if err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return id
}

func (e *testEnv) seedSkill(t *testing.T, ownerID uint, name, level string) uint {
	t.Helper()

	s := models.Skill{Name: name, Level: level, PortfolioUserID: ownerID}
	id, err := e.mocks.Skills.CreateSkill(context.Background(), &s)
	if err != nil {
		t.Fatalf("seed skill: %v", err)
	}
	return id
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, want, rec.Body.String())
	}
}

func assertMessage(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()

	var resp messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode message: %v (body: %s)", err, rec.Body.String())
	}
	if resp.Message != want {
		t.Fatalf("message = %q, want %q", resp.Message, want)
	}
}
