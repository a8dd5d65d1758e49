package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/garnizeh/skillsnap/pkg/models"
)

func TestListPortfolioUsersCached(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "Alex")

	for i := 0; i < 2; i++ {
		rec := env.do(t, "GET", "/portfolio-users", nil)
		assertStatus(t, rec, http.StatusOK)
	}

	if env.mocks.Users.ListCalls != 1 {
		t.Fatalf("repository listed %d times, want 1", env.mocks.Users.ListCalls)
	}
}

// User listings embed owned skills, so a skill write must refresh them.
func TestUserListingEvictedBySkillWrite(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "Alex")

	assertStatus(t, env.do(t, "GET", "/portfolio-users", nil), http.StatusOK)
	if env.mocks.Users.ListCalls != 1 {
		t.Fatalf("repository listed %d times, want 1", env.mocks.Users.ListCalls)
	}

	assertStatus(t, env.do(t, "POST", "/skills", models.Skill{
		Name:            "Go",
		Level:           "Expert",
		PortfolioUserID: owner,
	}), http.StatusCreated)

	assertStatus(t, env.do(t, "GET", "/portfolio-users", nil), http.StatusOK)
	if env.mocks.Users.ListCalls != 2 {
		t.Fatalf("repository listed %d times, want 2 (skill write must evict the user listing)",
			env.mocks.Users.ListCalls)
	}
}

func TestCreatePortfolioUser(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "POST", "/portfolio-users", models.PortfolioUser{
		Name: "Alex",
		Bio:  "Backend developer",
	})
	assertStatus(t, rec, http.StatusCreated)

	got := decodeBody[models.PortfolioUser](t, rec)
	if got.ID == 0 || got.Name != "Alex" {
		t.Fatalf("got %+v, want a created user with an id", got)
	}
}

func TestCreatePortfolioUserValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		body    any
		message string
	}{
		{"missing name", models.PortfolioUser{Bio: "b"}, "Name is required."},
		{"missing bio", models.PortfolioUser{Name: "Alex"}, "Bio is required."},
		{"malformed json", "{", "Invalid request."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, "POST", "/portfolio-users", tt.body)
			assertStatus(t, rec, http.StatusBadRequest)
			assertMessage(t, rec, tt.message)
		})
	}
}

func TestGetPortfolioUserNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "GET", "/portfolio-users/9", nil)
	assertStatus(t, rec, http.StatusNotFound)
	assertMessage(t, rec, "Portfolio user with ID 9 not found.")
}

func TestUpdatePortfolioUser(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedUser(t, "Alex")

	rec := env.do(t, "PUT", fmt.Sprintf("/portfolio-users/%d", id), models.PortfolioUser{
		Name: "Alexandra",
		Bio:  "Updated bio",
	})
	assertStatus(t, rec, http.StatusNoContent)

	rec = env.do(t, "GET", fmt.Sprintf("/portfolio-users/%d", id), nil)
	if got := decodeBody[models.PortfolioUser](t, rec); got.Name != "Alexandra" {
		t.Fatalf("name = %q, want Alexandra", got.Name)
	}
}

func TestDeletePortfolioUser(t *testing.T) {
	env := newTestEnv(t)
	id := env.seedUser(t, "Alex")

	rec := env.do(t, "DELETE", fmt.Sprintf("/portfolio-users/%d", id), nil)
	assertStatus(t, rec, http.StatusNoContent)

	rec = env.do(t, "DELETE", fmt.Sprintf("/portfolio-users/%d", id), nil)
	assertStatus(t, rec, http.StatusNotFound)
	assertMessage(t, rec, fmt.Sprintf("Portfolio user with ID %d not found.", id))
}

func TestOwnedCollections(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "Alex")
	env.seedProject(t, owner, "Task Tracker")
	env.seedSkill(t, owner, "Go", "Expert")

	rec := env.do(t, "GET", fmt.Sprintf("/portfolio-users/%d/projects", owner), nil)
	assertStatus(t, rec, http.StatusOK)
	if got := decodeBody[[]models.Project](t, rec); len(got) != 1 {
		t.Fatalf("got %d projects, want 1", len(got))
	}

	rec = env.do(t, "GET", fmt.Sprintf("/portfolio-users/%d/skills", owner), nil)
	assertStatus(t, rec, http.StatusOK)
	if got := decodeBody[[]models.Skill](t, rec); len(got) != 1 {
		t.Fatalf("got %d skills, want 1", len(got))
	}
}

// The nested collection endpoints and the by-user endpoints are the same
// read with the same parameters, so they share one cache entry.
func TestOwnedProjectsShareCacheWithByUser(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "Alex")
	env.seedProject(t, owner, "Task Tracker")

	assertStatus(t, env.do(t, "GET", fmt.Sprintf("/portfolio-users/%d/projects", owner), nil), http.StatusOK)
	assertStatus(t, env.do(t, "GET", fmt.Sprintf("/projects/by-user/%d", owner), nil), http.StatusOK)

	if env.mocks.Projects.ByOwnerCalls != 1 {
		t.Fatalf("repository queried %d times, want 1 (both routes share the entry)",
			env.mocks.Projects.ByOwnerCalls)
	}
}

func TestUserStatistics(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "Alex")
	env.seedProject(t, owner, "One")
	env.seedProject(t, owner, "Two")
	env.seedSkill(t, owner, "Go", "Expert")

	path := fmt.Sprintf("/portfolio-users/%d/statistics", owner)
	for i := 0; i < 2; i++ {
		rec := env.do(t, "GET", path, nil)
		assertStatus(t, rec, http.StatusOK)

		got := decodeBody[models.UserStatistics](t, rec)
		if got.ProjectCount != 2 || got.SkillCount != 1 {
			t.Fatalf("got %+v, want 2 projects and 1 skill", got)
		}
	}

	if env.mocks.Stats.StatsCalls != 1 {
		t.Fatalf("statistics recomputed %d times, want 1", env.mocks.Stats.StatsCalls)
	}
}

func TestUserStatisticsUnknownOwner(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "GET", "/portfolio-users/3/statistics", nil)
	assertStatus(t, rec, http.StatusNotFound)
	assertMessage(t, rec, "Portfolio user with ID 3 not found.")
}

func TestSearchPortfolioUsers(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "Alex Johnson")
	env.seedUser(t, "Sam Smith")

	rec := env.do(t, "GET", "/portfolio-users/search?name=alex", nil)
	assertStatus(t, rec, http.StatusOK)
	if got := decodeBody[[]models.PortfolioUser](t, rec); len(got) != 1 {
		t.Fatalf("got %d users, want 1", len(got))
	}
}

func TestPortfolioStatistics(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "Alex")
	env.seedProject(t, owner, "One")
	env.seedSkill(t, owner, "Go", "Expert")

	rec := env.do(t, "GET", "/portfolio-users/statistics", nil)
	assertStatus(t, rec, http.StatusOK)

	got := decodeBody[models.PortfolioStatistics](t, rec)
	if got.TotalProjects != 1 || got.TotalSkills != 1 {
		t.Fatalf("got %+v, want 1 project and 1 skill", got)
	}
}
