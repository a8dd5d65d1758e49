package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/garnizeh/skillsnap/pkg/errs"
	"github.com/garnizeh/skillsnap/pkg/models"
)

func (r *Repo) CreateAccount(ctx context.Context, a *models.Account) (uint, error) {
	if a == nil {
		return 0, errs.E(errs.KindValidation, "account is required")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Account{}).
			Where("email = ? COLLATE NOCASE", a.Email).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("check duplicate account: %w", err)
		}
		if count > 0 {
			return errs.E(errs.KindDuplicate, "Email is already registered.")
		}

		if err := tx.Create(a).Error; err != nil {
			return fmt.Errorf("create account: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return a.ID, nil
}

func (r *Repo) GetAccountByID(ctx context.Context, id uint) (*models.Account, error) {
	var a models.Account
	err := r.db.WithContext(ctx).First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get account %d: %w", id, err)
	}

	return &a, nil
}

func (r *Repo) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var a models.Account
	err := r.db.WithContext(ctx).
		Where("email = ? COLLATE NOCASE", email).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get account by email: %w", err)
	}

	return &a, nil
}
