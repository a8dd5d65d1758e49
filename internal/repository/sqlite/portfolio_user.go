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

func (r *Repo) CreatePortfolioUser(ctx context.Context, u *models.PortfolioUser) (uint, error) {
	if u == nil {
		return 0, errs.E(errs.KindValidation, "portfolio user is required")
	}

	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return 0, fmt.Errorf("create portfolio user: %w", err)
	}

	return u.ID, nil
}

func (r *Repo) GetPortfolioUserByID(ctx context.Context, id uint) (*models.PortfolioUser, error) {
	var u models.PortfolioUser
	err := r.db.WithContext(ctx).
		Preload("Projects").
		Preload("Skills").
		First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get portfolio user %d: %w", id, err)
	}

	ensureOwned(&u)
	return &u, nil
}

// PortfolioUserExists is the lightweight owner-reference check used by
// the write path and the by-owner read endpoints.
func (r *Repo) PortfolioUserExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PortfolioUser{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check portfolio user %d: %w", id, err)
	}

	return count > 0, nil
}

func (r *Repo) ListPortfolioUsers(ctx context.Context) ([]models.PortfolioUser, error) {
	var users []models.PortfolioUser
	err := r.db.WithContext(ctx).
		Preload("Projects").
		Preload("Skills").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list portfolio users: %w", err)
	}

	for i := range users {
		ensureOwned(&users[i])
	}
	return users, nil
}

func (r *Repo) SearchPortfolioUsers(ctx context.Context, name string) ([]models.PortfolioUser, error) {
	q := r.db.WithContext(ctx).
		Preload("Projects").
		Preload("Skills")
	if name != "" {
		q = q.Where("name LIKE ?", "%"+name+"%")
	}

	var users []models.PortfolioUser
	if err := q.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("search portfolio users: %w", err)
	}

	for i := range users {
		ensureOwned(&users[i])
	}
	return users, nil
}

// UpdatePortfolioUser replaces the mutable fields of the record, guarded
// by the updated_at value the caller read. Zero rows affected means the
// record was deleted (not found) or changed (conflict) in between.
func (r *Repo) UpdatePortfolioUser(ctx context.Context, u *models.PortfolioUser) error {
	if u == nil || u.ID == 0 {
		return errs.E(errs.KindValidation, "portfolio user id is required")
	}

	res := r.db.WithContext(ctx).
		Model(&models.PortfolioUser{}).
		Where("id = ? AND updated_at = ?", u.ID, u.UpdatedAt).
		Updates(map[string]any{
			"name":              u.Name,
			"bio":               u.Bio,
			"profile_image_url": u.ProfileImageURL,
			"updated_at":        time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("update portfolio user %d: %w", u.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return r.updateMissReason(ctx, &models.PortfolioUser{}, u.ID,
			fmt.Sprintf("Portfolio user with ID %d not found.", u.ID))
	}

	return nil
}

// DeletePortfolioUser removes the user and cascades its projects and
// skills in one transaction.
func (r *Repo) DeletePortfolioUser(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("portfolio_user_id = ?", id).Delete(&models.Project{}).Error; err != nil {
			return fmt.Errorf("cascade projects of user %d: %w", id, err)
		}
		if err := tx.Where("portfolio_user_id = ?", id).Delete(&models.Skill{}).Error; err != nil {
			return fmt.Errorf("cascade skills of user %d: %w", id, err)
		}

		res := tx.Delete(&models.PortfolioUser{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete portfolio user %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return errs.E(errs.KindNotFound, fmt.Sprintf("Portfolio user with ID %d not found.", id))
		}
		return nil
	})
}

// updateMissReason distinguishes a vanished record from a concurrent
// modification after an optimistic update matched nothing.
func (r *Repo) updateMissReason(ctx context.Context, model any, id uint, notFoundMsg string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("recheck record %d: %w", id, err)
	}
	if count == 0 {
		return errs.E(errs.KindNotFound, notFoundMsg)
	}
	return errs.E(errs.KindConflict, "The record was modified by another request. Reload and retry.")
}

func ensureOwned(u *models.PortfolioUser) {
	if u.Projects == nil {
		u.Projects = []models.Project{}
	}
	if u.Skills == nil {
		u.Skills = []models.Skill{}
	}
}
