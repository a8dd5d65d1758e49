// Package repository declares the public contracts the API layer depends
// on; concrete implementations live under internal/.
package repository

import (
	"context"

	"github.com/garnizeh/skillsnap/pkg/models"
)

// Read operations return (nil, nil) when the record does not exist;
// a non-nil error always means a store fault or a tagged write failure.

type PortfolioUserRepo interface {
	CreatePortfolioUser(ctx context.Context, u *models.PortfolioUser) (uint, error)
	GetPortfolioUserByID(ctx context.Context, id uint) (*models.PortfolioUser, error)
	PortfolioUserExists(ctx context.Context, id uint) (bool, error)
	ListPortfolioUsers(ctx context.Context) ([]models.PortfolioUser, error)
	SearchPortfolioUsers(ctx context.Context, name string) ([]models.PortfolioUser, error)
	UpdatePortfolioUser(ctx context.Context, u *models.PortfolioUser) error
	DeletePortfolioUser(ctx context.Context, id uint) error
}

type ProjectRepo interface {
	CreateProject(ctx context.Context, p *models.Project) (uint, error)
	GetProjectByID(ctx context.Context, id uint) (*models.Project, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	ListProjectsByOwner(ctx context.Context, ownerID uint) ([]models.Project, error)
	SearchProjects(ctx context.Context, title string, ownerID uint) ([]models.Project, error)
	UpdateProject(ctx context.Context, p *models.Project) error
	DeleteProject(ctx context.Context, id uint) error
}

type SkillRepo interface {
	CreateSkill(ctx context.Context, s *models.Skill) (uint, error)
	GetSkillByID(ctx context.Context, id uint) (*models.Skill, error)
	ListSkills(ctx context.Context) ([]models.Skill, error)
	ListSkillsByOwner(ctx context.Context, ownerID uint) ([]models.Skill, error)
	ListSkillsByLevel(ctx context.Context, level string) ([]models.Skill, error)
	SearchSkills(ctx context.Context, name, level string, ownerID uint) ([]models.Skill, error)
	UpdateSkill(ctx context.Context, s *models.Skill) error
	DeleteSkill(ctx context.Context, id uint) error
}

type AccountRepo interface {
	CreateAccount(ctx context.Context, a *models.Account) (uint, error)
	GetAccountByID(ctx context.Context, id uint) (*models.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
}

type StatisticsRepo interface {
	ProjectStatistics(ctx context.Context) (*models.ProjectStatistics, error)
	SkillStatistics(ctx context.Context) (*models.SkillStatistics, error)
	PortfolioStatistics(ctx context.Context) (*models.PortfolioStatistics, error)
	UserStatistics(ctx context.Context, ownerID uint) (*models.UserStatistics, error)
}
