package sqlite

import (
	"context"
	"fmt"
	"math"

	"github.com/garnizeh/skillsnap/pkg/models"
)

// Statistics are always recomputed in full from current store state; the
// cache layer decides how long the result lives.

func (r *Repo) ProjectStatistics(ctx context.Context) (*models.ProjectStatistics, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Project{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}

	byUser, err := r.ownerCounts(ctx, &models.Project{})
	if err != nil {
		return nil, err
	}

	return &models.ProjectStatistics{
		TotalProjects:          total,
		TotalUsers:             int64(len(byUser)),
		AverageProjectsPerUser: averagePerOwner(byUser),
		ProjectsByUser:         byUser,
	}, nil
}

func (r *Repo) SkillStatistics(ctx context.Context) (*models.SkillStatistics, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Skill{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count skills: %w", err)
	}

	byLevel := []models.LevelCount{}
	err := r.db.WithContext(ctx).Model(&models.Skill{}).
		Select("level, COUNT(*) AS count").
		Group("level").
		Order("count DESC").
		Scan(&byLevel).Error
	if err != nil {
		return nil, fmt.Errorf("group skills by level: %w", err)
	}

	popular := []models.SkillNameCount{}
	err = r.db.WithContext(ctx).Model(&models.Skill{}).
		Select("name, COUNT(*) AS count").
		Group("name").
		Order("count DESC").
		Limit(10).
		Scan(&popular).Error
	if err != nil {
		return nil, fmt.Errorf("group skills by name: %w", err)
	}

	byUser, err := r.ownerCounts(ctx, &models.Skill{})
	if err != nil {
		return nil, err
	}

	return &models.SkillStatistics{
		TotalSkills:          total,
		TotalUsers:           int64(len(byUser)),
		AverageSkillsPerUser: averagePerOwner(byUser),
		SkillsByLevel:        byLevel,
		MostPopularSkills:    popular,
		SkillsByUser:         byUser,
	}, nil
}

func (r *Repo) PortfolioStatistics(ctx context.Context) (*models.PortfolioStatistics, error) {
	var users, projects, skills int64
	if err := r.db.WithContext(ctx).Model(&models.PortfolioUser{}).Count(&users).Error; err != nil {
		return nil, fmt.Errorf("count portfolio users: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(&models.Project{}).Count(&projects).Error; err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(&models.Skill{}).Count(&skills).Error; err != nil {
		return nil, fmt.Errorf("count skills: %w", err)
	}

	stats := &models.PortfolioStatistics{
		TotalUsers:    users,
		TotalProjects: projects,
		TotalSkills:   skills,
	}
	if users > 0 {
		stats.AverageProjectsPerUser = round2(float64(projects) / float64(users))
		stats.AverageSkillsPerUser = round2(float64(skills) / float64(users))
	}

	return stats, nil
}

func (r *Repo) UserStatistics(ctx context.Context, ownerID uint) (*models.UserStatistics, error) {
	var projects, skills int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).
		Where("portfolio_user_id = ?", ownerID).
		Count(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("count projects of user %d: %w", ownerID, err)
	}
	err = r.db.WithContext(ctx).Model(&models.Skill{}).
		Where("portfolio_user_id = ?", ownerID).
		Count(&skills).Error
	if err != nil {
		return nil, fmt.Errorf("count skills of user %d: %w", ownerID, err)
	}

	byLevel := []models.LevelCount{}
	err = r.db.WithContext(ctx).Model(&models.Skill{}).
		Select("level, COUNT(*) AS count").
		Where("portfolio_user_id = ?", ownerID).
		Group("level").
		Order("count DESC").
		Scan(&byLevel).Error
	if err != nil {
		return nil, fmt.Errorf("group skills of user %d: %w", ownerID, err)
	}

	return &models.UserStatistics{
		PortfolioUserID: ownerID,
		ProjectCount:    projects,
		SkillCount:      skills,
		SkillsByLevel:   byLevel,
	}, nil
}

func (r *Repo) ownerCounts(ctx context.Context, model any) ([]models.OwnerCount, error) {
	counts := []models.OwnerCount{}
	err := r.db.WithContext(ctx).Model(model).
		Select("portfolio_user_id, COUNT(*) AS count").
		Group("portfolio_user_id").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("group by owner: %w", err)
	}

	return counts, nil
}

func averagePerOwner(counts []models.OwnerCount) float64 {
	if len(counts) == 0 {
		return 0
	}

	var sum int64
	for _, c := range counts {
		sum += c.Count
	}
	return round2(float64(sum) / float64(len(counts)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
