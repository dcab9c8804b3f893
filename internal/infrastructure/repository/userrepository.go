// Package repository implements the domain repository interfaces on gorm.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"bilig/internal/domain/user"
	"bilig/internal/infrastructure/persistence/models"
	apperrors "bilig/internal/shared/errors"
	"bilig/internal/shared/logger"
)

// UserRepositoryImpl implements the user.Repository interface
type UserRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB, logger logger.Interface) user.Repository {
	return &UserRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, u *user.User) error {
	model := userToModel(u)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return err
		}
		r.logger.Errorw("failed to create user", "email", u.Email().String(), "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := u.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set user ID: %w", err)
	}
	return nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, u *user.User) error {
	model := userToModel(u)
	model.ID = u.ID()

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		r.logger.Errorw("failed to update user", "user_id", u.ID(), "error", err)
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, userID uint) (*user.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return userFromModel(&model)
}

func (r *UserRepositoryImpl) GetBySID(ctx context.Context, sid string) (*user.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by sid: %w", err)
	}
	return userFromModel(&model)
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return userFromModel(&model)
}

func (r *UserRepositoryImpl) List(ctx context.Context, offset, limit int) ([]*user.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.UserModel{}).Where("status = ?", user.StatusActive.String())

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var rows []models.UserModel
	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*user.User, 0, len(rows))
	for i := range rows {
		u, err := userFromModel(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, nil
}

func (r *UserRepositoryImpl) Delete(ctx context.Context, userID uint) error {
	result := r.db.WithContext(ctx).Delete(&models.UserModel{}, userID)
	if result.Error != nil {
		r.logger.Errorw("failed to delete user", "user_id", userID, "error", result.Error)
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("user not found")
	}
	return nil
}

func userToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		SID:          u.SID(),
		Email:        u.Email().String(),
		PasswordHash: u.PasswordHash(),
		Name:         u.Name(),
		Role:         u.Role().String(),
		Status:       u.Status().String(),
		Version:      u.Version(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

func userFromModel(m *models.UserModel) (*user.User, error) {
	email, err := user.NewEmail(m.Email)
	if err != nil {
		return nil, fmt.Errorf("corrupt email on user %d: %w", m.ID, err)
	}
	return user.ReconstructUser(
		m.ID,
		m.SID,
		email,
		m.PasswordHash,
		m.Name,
		user.Role(m.Role),
		user.Status(m.Status),
		m.CreatedAt,
		m.UpdatedAt,
		m.Version,
	)
}
