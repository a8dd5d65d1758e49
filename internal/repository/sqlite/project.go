package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/garnizeh/skillsnap/pkg/errs"
	"github.com/garnizeh/skillsnap/pkg/models"
)

func (r *Repo) CreateProject(ctx context.Context, p *models.Project) (uint, error) {
	if p == nil {
		return 0, errs.E(errs.KindValidation, "project is required")
	}

	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return 0, fmt.Errorf("create project: %w", err)
	}

	return p.ID, nil
}

func (r *Repo) GetProjectByID(ctx context.Context, id uint) (*models.Project, error) {
	var p models.Project
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project %d: %w", id, err)
	}

	return &p, nil
}

func (r *Repo) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.WithContext(ctx).Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	return projects, nil
}

func (r *Repo) ListProjectsByOwner(ctx context.Context, ownerID uint) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Where("portfolio_user_id = ?", ownerID).
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("list projects of user %d: %w", ownerID, err)
	}

	return projects, nil
}

// SearchProjects filters by title substring and, when ownerID is
// non-zero, by owner. Both filters absent returns the full listing.
func (r *Repo) SearchProjects(ctx context.Context, title string, ownerID uint) ([]models.Project, error) {
	q := r.db.WithContext(ctx).Model(&models.Project{})
	if title != "" {
		q = q.Where("title LIKE ?", "%"+title+"%")
	}
	if ownerID != 0 {
		q = q.Where("portfolio_user_id = ?", ownerID)
	}

	var projects []models.Project
	if err := q.Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("search projects: %w", err)
	}

	return projects, nil
}

func (r *Repo) UpdateProject(ctx context.Context, p *models.Project) error {
	if p == nil || p.ID == 0 {
		return errs.E(errs.KindValidation, "project id is required")
	}

	res := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ? AND updated_at = ?", p.ID, p.UpdatedAt).
		Updates(map[string]any{
			"title":             p.Title,
			"description":       p.Description,
			"image_url":         p.ImageURL,
			"portfolio_user_id": p.PortfolioUserID,
			"updated_at":        time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("update project %d: %w", p.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return r.updateMissReason(ctx, &models.Project{}, p.ID,
			fmt.Sprintf("Project with ID %d not found.", p.ID))
	}

	return nil
}

func (r *Repo) DeleteProject(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Project{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete project %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.E(errs.KindNotFound, fmt.Sprintf("Project with ID %d not found.", id))
	}

	return nil
}
