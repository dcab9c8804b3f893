package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"bilig/internal/domain/enrollment"
	"bilig/internal/infrastructure/persistence/models"
	"bilig/internal/shared/logger"
)

// EnrollmentRepositoryImpl implements the enrollment.Repository interface
type EnrollmentRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewEnrollmentRepository creates a new enrollment repository instance
func NewEnrollmentRepository(db *gorm.DB, logger logger.Interface) enrollment.Repository {
	return &EnrollmentRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *EnrollmentRepositoryImpl) Create(ctx context.Context, e *enrollment.Enrollment) error {
	model, err := enrollmentToModel(e)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create enrollment",
			"user_id", e.UserID(), "course_id", e.CourseID(), "error", err)
		return fmt.Errorf("failed to create enrollment: %w", err)
	}
	e.SetID(model.ID)
	return nil
}

func (r *EnrollmentRepositoryImpl) Update(ctx context.Context, e *enrollment.Enrollment) error {
	model, err := enrollmentToModel(e)
	if err != nil {
		return err
	}
	model.ID = e.ID()

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		r.logger.Errorw("failed to update enrollment", "enrollment_id", e.ID(), "error", err)
		return fmt.Errorf("failed to update enrollment: %w", err)
	}
	return nil
}

func (r *EnrollmentRepositoryImpl) GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*enrollment.Enrollment, error) {
	var model models.EnrollmentModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}
	return enrollmentFromModel(&model)
}

func (r *EnrollmentRepositoryImpl) GetByUser(ctx context.Context, userID uint) ([]*enrollment.Enrollment, error) {
	var rows []models.EnrollmentModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}

	enrollments := make([]*enrollment.Enrollment, 0, len(rows))
	for i := range rows {
		e, err := enrollmentFromModel(&rows[i])
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, nil
}

func (r *EnrollmentRepositoryImpl) HasCompleted(ctx context.Context, userID, courseID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.EnrollmentModel{}).
		Where("user_id = ? AND course_id = ? AND completed_at IS NOT NULL", userID, courseID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment completion: %w", err)
	}
	return count > 0, nil
}

func (r *EnrollmentRepositoryImpl) DeleteByUser(ctx context.Context, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.EnrollmentModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete user enrollments", "user_id", userID, "error", result.Error)
		return 0, fmt.Errorf("failed to delete user enrollments: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func enrollmentToModel(e *enrollment.Enrollment) (*models.EnrollmentModel, error) {
	completed := e.CompletedLessons()
	if completed == nil {
		completed = []string{}
	}
	encoded, err := json.Marshal(completed)
	if err != nil {
		return nil, fmt.Errorf("failed to encode completed lessons: %w", err)
	}

	return &models.EnrollmentModel{
		UserID:           e.UserID(),
		CourseID:         e.CourseID(),
		CompletedLessons: string(encoded),
		CompletedAt:      e.CompletedAt(),
		CreatedAt:        e.CreatedAt(),
		UpdatedAt:        e.UpdatedAt(),
	}, nil
}

func enrollmentFromModel(m *models.EnrollmentModel) (*enrollment.Enrollment, error) {
	var completed []string
	if m.CompletedLessons != "" {
		if err := json.Unmarshal([]byte(m.CompletedLessons), &completed); err != nil {
			return nil, fmt.Errorf("corrupt progress on enrollment %d: %w", m.ID, err)
		}
	}
	return enrollment.ReconstructEnrollment(
		m.ID,
		m.UserID,
		m.CourseID,
		completed,
		m.CompletedAt,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}
