// Package models holds the domain entities persisted by the repository
// layer and the statistics result shapes returned by the aggregate
// queries. JSON field names follow the wire contract (camelCase).
package models

import (
	"strings"
	"time"
)

// PortfolioUser owns a collection of projects and skills. Deleting a
// user cascades deletion of everything it owns.
type PortfolioUser struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name" gorm:"size:100;not null;index" validate:"required"`
	Bio             string    `json:"bio" gorm:"size:500;not null" validate:"required"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty" gorm:"size:500"`
	AccountID       *uint     `json:"accountId,omitempty" gorm:"index"`
	Projects        []Project `json:"projects" gorm:"constraint:OnDelete:CASCADE"`
	Skills          []Skill   `json:"skills" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

// Project cannot exist without a valid owner.
type Project struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Title           string    `json:"title" gorm:"size:200;not null;index" validate:"required"`
	Description     string    `json:"description" gorm:"size:1000;not null" validate:"required"`
	ImageURL        string    `json:"imageUrl,omitempty" gorm:"size:500"`
	PortfolioUserID uint      `json:"portfolioUserId" gorm:"not null;index" validate:"required"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

// Skill is unique per (name, owner), compared case-insensitively. The
// COLLATE NOCASE unique index backstops the write-path duplicate check.
type Skill struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name" gorm:"type:TEXT COLLATE NOCASE;size:100;not null;uniqueIndex:idx_skills_name_owner" validate:"required"`
	Level           string    `json:"level" gorm:"size:50;not null;index" validate:"required"`
	PortfolioUserID uint      `json:"portfolioUserId" gorm:"not null;index;uniqueIndex:idx_skills_name_owner" validate:"required"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

// Account is the authentication identity. Portfolio users may link to
// one; the password hash never leaves the server.
type Account struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"size:255;not null;uniqueIndex" validate:"required,email"`
	PasswordHash string    `json:"-" gorm:"size:100;not null"`
	Role         string    `json:"role" gorm:"size:50;not null;default:User"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// SkillLevels is the fixed, ordered set of valid skill levels.
var SkillLevels = []string{"Beginner", "Novice", "Intermediate", "Advanced", "Expert", "Master"}

// ValidSkillLevel reports whether level is one of SkillLevels,
// case-insensitively.
func ValidSkillLevel(level string) bool {
	for _, l := range SkillLevels {
		if strings.EqualFold(l, level) {
			return true
		}
	}
	return false
}

// OwnerCount is a per-owner row in group-by aggregations.
type OwnerCount struct {
	PortfolioUserID uint  `json:"portfolioUserId"`
	Count           int64 `json:"count"`
}

// LevelCount is a per-level row in skill aggregations.
type LevelCount struct {
	Level string `json:"level"`
	Count int64  `json:"count"`
}

// SkillNameCount is a per-skill-name popularity row.
type SkillNameCount struct {
	Name  string `json:"skillName"`
	Count int64  `json:"count"`
}

// ProjectStatistics is recomputed in full from store state on each
// cache miss.
type ProjectStatistics struct {
	TotalProjects          int64        `json:"totalProjects"`
	TotalUsers             int64        `json:"totalUsers"`
	AverageProjectsPerUser float64      `json:"averageProjectsPerUser"`
	ProjectsByUser         []OwnerCount `json:"projectsByUser"`
}

type SkillStatistics struct {
	TotalSkills          int64            `json:"totalSkills"`
	TotalUsers           int64            `json:"totalUsers"`
	AverageSkillsPerUser float64          `json:"averageSkillsPerUser"`
	SkillsByLevel        []LevelCount     `json:"skillsByLevel"`
	MostPopularSkills    []SkillNameCount `json:"mostPopularSkills"`
	SkillsByUser         []OwnerCount     `json:"skillsByUser"`
}

// PortfolioStatistics is the site-wide summary behind
// GET /portfolio-users/statistics.
type PortfolioStatistics struct {
	TotalUsers             int64   `json:"totalUsers"`
	TotalProjects          int64   `json:"totalProjects"`
	TotalSkills            int64   `json:"totalSkills"`
	AverageProjectsPerUser float64 `json:"averageProjectsPerUser"`
	AverageSkillsPerUser   float64 `json:"averageSkillsPerUser"`
}

// UserStatistics summarizes a single owner.
type UserStatistics struct {
	PortfolioUserID uint         `json:"portfolioUserId"`
	ProjectCount    int64        `json:"projectCount"`
	SkillCount      int64        `json:"skillCount"`
	SkillsByLevel   []LevelCount `json:"skillsByLevel"`
}
