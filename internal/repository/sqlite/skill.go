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

// CreateSkill inserts the skill unless the owner already holds one with
// the same name, compared case-insensitively. The check and the insert
// share a transaction; the NOCASE unique index backstops it.
func (r *Repo) CreateSkill(ctx context.Context, s *models.Skill) (uint, error) {
	if s == nil {
		return 0, errs.E(errs.KindValidation, "skill is required")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Skill{}).
			Where("portfolio_user_id = ? AND name = ? COLLATE NOCASE", s.PortfolioUserID, s.Name).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("check duplicate skill: %w", err)
		}
		if count > 0 {
			return errs.E(errs.KindDuplicate,
				fmt.Sprintf("The user already has the skill '%s'. Use PUT to update the skill level.", s.Name))
		}

		if err := tx.Create(s).Error; err != nil {
			return fmt.Errorf("create skill: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return s.ID, nil
}

func (r *Repo) GetSkillByID(ctx context.Context, id uint) (*models.Skill, error) {
	var s models.Skill
	err := r.db.WithContext(ctx).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get skill %d: %w", id, err)
	}

	return &s, nil
}

func (r *Repo) ListSkills(ctx context.Context) ([]models.Skill, error) {
	var skills []models.Skill
	if err := r.db.WithContext(ctx).Find(&skills).Error; err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}

	return skills, nil
}

func (r *Repo) ListSkillsByOwner(ctx context.Context, ownerID uint) ([]models.Skill, error) {
	var skills []models.Skill
	err := r.db.WithContext(ctx).
		Where("portfolio_user_id = ?", ownerID).
		Find(&skills).Error
	if err != nil {
		return nil, fmt.Errorf("list skills of user %d: %w", ownerID, err)
	}

	return skills, nil
}

func (r *Repo) ListSkillsByLevel(ctx context.Context, level string) ([]models.Skill, error) {
	var skills []models.Skill
	err := r.db.WithContext(ctx).
		Where("level = ? COLLATE NOCASE", level).
		Find(&skills).Error
	if err != nil {
		return nil, fmt.Errorf("list skills by level: %w", err)
	}

	return skills, nil
}

func (r *Repo) SearchSkills(ctx context.Context, name, level string, ownerID uint) ([]models.Skill, error) {
	q := r.db.WithContext(ctx).Model(&models.Skill{})
	if name != "" {
		q = q.Where("name LIKE ?", "%"+name+"%")
	}
	if level != "" {
		q = q.Where("level = ? COLLATE NOCASE", level)
	}
	if ownerID != 0 {
		q = q.Where("portfolio_user_id = ?", ownerID)
	}

	var skills []models.Skill
	if err := q.Find(&skills).Error; err != nil {
		return nil, fmt.Errorf("search skills: %w", err)
	}

	return skills, nil
}

// UpdateSkill replaces the record, rejecting a rename that collides with
// another skill of the same owner.
func (r *Repo) UpdateSkill(ctx context.Context, s *models.Skill) error {
	if s == nil || s.ID == 0 {
		return errs.E(errs.KindValidation, "skill id is required")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Skill{}).
			Where("portfolio_user_id = ? AND name = ? COLLATE NOCASE AND id <> ?", s.PortfolioUserID, s.Name, s.ID).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("check duplicate skill: %w", err)
		}
		if count > 0 {
			return errs.E(errs.KindDuplicate,
				fmt.Sprintf("The user already has another skill with the name '%s'.", s.Name))
		}

		res := tx.Model(&models.Skill{}).
			Where("id = ? AND updated_at = ?", s.ID, s.UpdatedAt).
			Updates(map[string]any{
				"name":              s.Name,
				"level":             s.Level,
				"portfolio_user_id": s.PortfolioUserID,
				"updated_at":        time.Now(),
			})
		if res.Error != nil {
			return fmt.Errorf("update skill %d: %w", s.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return r.updateMissReason(ctx, &models.Skill{}, s.ID,
				fmt.Sprintf("Skill with ID %d not found.", s.ID))
		}
		return nil
	})
}

func (r *Repo) DeleteSkill(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Skill{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete skill %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.E(errs.KindNotFound, fmt.Sprintf("Skill with ID %d not found.", id))
	}

	return nil
}
