package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"bilig/internal/domain/entitlement"
	"bilig/internal/infrastructure/persistence/models"
	"bilig/internal/shared/biztime"
	apperrors "bilig/internal/shared/errors"
	"bilig/internal/shared/logger"
)

// EntitlementRepositoryImpl implements the entitlement.Repository interface
type EntitlementRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewEntitlementRepository creates a new entitlement repository instance
func NewEntitlementRepository(db *gorm.DB, logger logger.Interface) entitlement.Repository {
	return &EntitlementRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *EntitlementRepositoryImpl) Create(ctx context.Context, e *entitlement.Entitlement) error {
	model := entitlementToModel(e)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			// Concurrent grant for the same pair; the caller re-reads and
			// refreshes instead.
			return err
		}
		r.logger.Errorw("failed to create entitlement",
			"user_id", e.UserID(), "course_id", e.CourseID(), "error", err)
		return fmt.Errorf("failed to create entitlement: %w", err)
	}

	if err := e.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set entitlement ID: %w", err)
	}
	return nil
}

func (r *EntitlementRepositoryImpl) Update(ctx context.Context, e *entitlement.Entitlement) error {
	model := entitlementToModel(e)
	model.ID = e.ID()

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		r.logger.Errorw("failed to update entitlement", "entitlement_id", e.ID(), "error", err)
		return fmt.Errorf("failed to update entitlement: %w", err)
	}
	return nil
}

func (r *EntitlementRepositoryImpl) GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*entitlement.Entitlement, error) {
	var model models.EntitlementModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get entitlement: %w", err)
	}
	return entitlementFromModel(&model)
}

func (r *EntitlementRepositoryImpl) GetByUser(ctx context.Context, userID uint) ([]*entitlement.Entitlement, error) {
	var rows []models.EntitlementModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user entitlements: %w", err)
	}
	return entitlementsFromModels(rows)
}

func (r *EntitlementRepositoryImpl) List(ctx context.Context, offset, limit int) ([]*entitlement.Entitlement, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.EntitlementModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count entitlements: %w", err)
	}

	var rows []models.EntitlementModel
	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list entitlements: %w", err)
	}

	entitlements, err := entitlementsFromModels(rows)
	if err != nil {
		return nil, 0, err
	}
	return entitlements, total, nil
}

func (r *EntitlementRepositoryImpl) GetExpired(ctx context.Context, userID uint) ([]*entitlement.Entitlement, error) {
	query := r.db.WithContext(ctx).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at <= ?",
			entitlement.StatusActive.String(), biztime.NowUTC())
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}

	var rows []models.EntitlementModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query expired entitlements: %w", err)
	}
	return entitlementsFromModels(rows)
}

func (r *EntitlementRepositoryImpl) DeleteByUser(ctx context.Context, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.EntitlementModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete user entitlements", "user_id", userID, "error", result.Error)
		return 0, fmt.Errorf("failed to delete user entitlements: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *EntitlementRepositoryImpl) DeleteByCourseIDs(ctx context.Context, courseIDs []uint) (int64, error) {
	if len(courseIDs) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Delete(&models.EntitlementModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete orphan entitlements", "course_ids", courseIDs, "error", result.Error)
		return 0, fmt.Errorf("failed to delete orphan entitlements: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *EntitlementRepositoryImpl) DistinctCourseIDs(ctx context.Context) ([]uint, error) {
	var courseIDs []uint
	err := r.db.WithContext(ctx).
		Model(&models.EntitlementModel{}).
		Distinct("course_id").
		Pluck("course_id", &courseIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to collect entitlement course IDs: %w", err)
	}
	return courseIDs, nil
}

func entitlementToModel(e *entitlement.Entitlement) *models.EntitlementModel {
	return &models.EntitlementModel{
		SID:        e.SID(),
		UserID:     e.UserID(),
		CourseID:   e.CourseID(),
		AccessType: e.AccessType().String(),
		Status:     e.Status().String(),
		GrantedAt:  e.GrantedAt(),
		ExpiresAt:  e.ExpiresAt(),
		OrderID:    e.OrderID(),
		GrantedBy:  e.GrantedBy(),
		Notes:      e.Notes(),
		Version:    e.Version(),
		CreatedAt:  e.CreatedAt(),
		UpdatedAt:  e.UpdatedAt(),
	}
}

func entitlementFromModel(m *models.EntitlementModel) (*entitlement.Entitlement, error) {
	return entitlement.ReconstructEntitlement(entitlement.EntitlementReconstructParams{
		ID:         m.ID,
		SID:        m.SID,
		UserID:     m.UserID,
		CourseID:   m.CourseID,
		AccessType: entitlement.AccessType(m.AccessType),
		Status:     entitlement.Status(m.Status),
		GrantedAt:  m.GrantedAt,
		ExpiresAt:  m.ExpiresAt,
		OrderID:    m.OrderID,
		GrantedBy:  m.GrantedBy,
		Notes:      m.Notes,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
		Version:    m.Version,
	})
}

func entitlementsFromModels(rows []models.EntitlementModel) ([]*entitlement.Entitlement, error) {
	entitlements := make([]*entitlement.Entitlement, 0, len(rows))
	for i := range rows {
		e, err := entitlementFromModel(&rows[i])
		if err != nil {
			return nil, err
		}
		entitlements = append(entitlements, e)
	}
	return entitlements, nil
}
