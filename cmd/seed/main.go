// Command seed inserts a sample portfolio into an empty database so the
// client has something to render on a fresh install.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/garnizeh/skillsnap/internal/config"
	"github.com/garnizeh/skillsnap/internal/db"
	"github.com/garnizeh/skillsnap/internal/repository/sqlite"
	"github.com/garnizeh/skillsnap/pkg/models"
)

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	repo := sqlite.New(database)

	existing, err := repo.ListPortfolioUsers(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Seed check error: %v\n", err)
		os.Exit(1)
	}
	if len(existing) > 0 {
		fmt.Println("Database has already been seeded.")
		return
	}

	user := models.PortfolioUser{
		Name:            "Jordan Developer",
		Bio:             "Full-stack developer passionate about learning new tech.",
		ProfileImageURL: "https://example.com/images/jordan.png",
		Projects: []models.Project{
			{Title: "Task Tracker", Description: "Manage tasks effectively.", ImageURL: "https://example.com/images/task.png"},
			{Title: "Weather App", Description: "Forecast weather using APIs.", ImageURL: "https://example.com/images/weather.png"},
		},
		Skills: []models.Skill{
			{Name: "Go", Level: "Advanced"},
			{Name: "SQL", Level: "Intermediate"},
		},
	}

	if _, err := repo.CreatePortfolioUser(ctx, &user); err != nil {
		fmt.Fprintf(os.Stderr, "Seed error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Sample data inserted.")
}
