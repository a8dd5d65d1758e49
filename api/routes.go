package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/garnizeh/skillsnap/internal/cache"
	"github.com/garnizeh/skillsnap/internal/config"
	"github.com/garnizeh/skillsnap/internal/db"
	"github.com/garnizeh/skillsnap/internal/repository/sqlite"
)

// SetupRoutes wires repositories, the cache, the invalidator and the
// handlers into the router. Reads are open; writes and the
// account-scoped auth endpoints require a bearer token.
func SetupRoutes(cfg *config.Config, version, buildTime string, database *db.DB) http.Handler {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository, cache, invalidation
	repo := sqlite.New(database)
	c := cache.New()
	inv := cache.NewInvalidator(c, logger)

	// Create handlers
	systemHandler := NewSystemHandler(database)
	authHandler := NewAuthHandler(repo, cfg.JWTSecret, cfg.TokenDuration)
	usersHandler := NewPortfolioUsersHandler(repo, repo, repo, repo, c, inv, cfg.Cache)
	projectsHandler := NewProjectsHandler(repo, repo, repo, c, inv, cfg.Cache)
	skillsHandler := NewSkillsHandler(repo, repo, repo, c, inv, cfg.Cache)

	auth := RequireAuth(cfg.JWTSecret)

	// System endpoints
	r.HandleFunc("/healthz", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")

	// Auth endpoints
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/auth/logout", auth(authHandler.Logout)).Methods("POST")
	r.HandleFunc("/auth/me", auth(authHandler.Me)).Methods("GET")

	// Portfolio user endpoints
	r.HandleFunc("/portfolio-users", usersHandler.List).Methods("GET")
	r.HandleFunc("/portfolio-users/search", usersHandler.Search).Methods("GET")
	r.HandleFunc("/portfolio-users/statistics", usersHandler.Statistics).Methods("GET")
	r.HandleFunc("/portfolio-users/{id:[0-9]+}", usersHandler.Get).Methods("GET")
	r.HandleFunc("/portfolio-users/{id:[0-9]+}/projects", usersHandler.Projects).Methods("GET")
	r.HandleFunc("/portfolio-users/{id:[0-9]+}/skills", usersHandler.Skills).Methods("GET")
	r.HandleFunc("/portfolio-users/{id:[0-9]+}/statistics", usersHandler.UserStatistics).Methods("GET")
	r.HandleFunc("/portfolio-users", auth(usersHandler.Create)).Methods("POST")
	r.HandleFunc("/portfolio-users/{id:[0-9]+}", auth(usersHandler.Update)).Methods("PUT")
	r.HandleFunc("/portfolio-users/{id:[0-9]+}", auth(usersHandler.Delete)).Methods("DELETE")

	// Project endpoints
	r.HandleFunc("/projects", projectsHandler.List).Methods("GET")
	r.HandleFunc("/projects/search", projectsHandler.Search).Methods("GET")
	r.HandleFunc("/projects/statistics", projectsHandler.Statistics).Methods("GET")
	r.HandleFunc("/projects/by-user/{id:[0-9]+}", projectsHandler.ByOwner).Methods("GET")
	r.HandleFunc("/projects/{id:[0-9]+}", projectsHandler.Get).Methods("GET")
	r.HandleFunc("/projects", auth(projectsHandler.Create)).Methods("POST")
	r.HandleFunc("/projects/{id:[0-9]+}", auth(projectsHandler.Update)).Methods("PUT")
	r.HandleFunc("/projects/{id:[0-9]+}", auth(projectsHandler.Delete)).Methods("DELETE")

	// Skill endpoints
	r.HandleFunc("/skills", skillsHandler.List).Methods("GET")
	r.HandleFunc("/skills/search", skillsHandler.Search).Methods("GET")
	r.HandleFunc("/skills/statistics", skillsHandler.Statistics).Methods("GET")
	r.HandleFunc("/skills/levels", skillsHandler.Levels).Methods("GET")
	r.HandleFunc("/skills/by-level/{level}", skillsHandler.ByLevel).Methods("GET")
	r.HandleFunc("/skills/by-user/{id:[0-9]+}", skillsHandler.ByOwner).Methods("GET")
	r.HandleFunc("/skills/{id:[0-9]+}", skillsHandler.Get).Methods("GET")
	r.HandleFunc("/skills", auth(skillsHandler.Create)).Methods("POST")
	r.HandleFunc("/skills/{id:[0-9]+}", auth(skillsHandler.Update)).Methods("PUT")
	r.HandleFunc("/skills/{id:[0-9]+}", auth(skillsHandler.Delete)).Methods("DELETE")

	// CORS
	co := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	return co.Handler(r)
}
