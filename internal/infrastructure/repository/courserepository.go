package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"bilig/internal/domain/course"
	vo "bilig/internal/domain/shared/valueobjects"
	"bilig/internal/infrastructure/persistence/models"
	apperrors "bilig/internal/shared/errors"
	"bilig/internal/shared/logger"
)

// CourseRepositoryImpl implements the course.Repository interface
type CourseRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewCourseRepository creates a new course repository instance
func NewCourseRepository(db *gorm.DB, logger logger.Interface) course.Repository {
	return &CourseRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *CourseRepositoryImpl) Create(ctx context.Context, c *course.Course) error {
	model := courseToModel(c)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create course", "course_sid", c.SID(), "error", err)
		return fmt.Errorf("failed to create course: %w", err)
	}
	if err := c.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set course ID: %w", err)
	}
	return nil
}

// Update persists the course row and reconciles its lessons: new lessons
// are inserted, changed lessons updated, removed lessons deleted.
func (r *CourseRepositoryImpl) Update(ctx context.Context, c *course.Course) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := courseToModel(c)
		model.ID = c.ID()
		model.Lessons = nil
		if err := tx.Save(model).Error; err != nil {
			return fmt.Errorf("failed to update course: %w", err)
		}

		keep := make([]string, 0, len(c.Lessons()))
		for _, lesson := range c.Lessons() {
			keep = append(keep, lesson.SID())
			row := lessonToModel(lesson, c.ID())
			if lesson.ID() == 0 {
				if err := tx.Create(row).Error; err != nil {
					return fmt.Errorf("failed to create lesson: %w", err)
				}
			} else {
				row.ID = lesson.ID()
				if err := tx.Save(row).Error; err != nil {
					return fmt.Errorf("failed to update lesson: %w", err)
				}
			}
		}

		del := tx.Where("course_id = ?", c.ID())
		if len(keep) > 0 {
			del = del.Where("sid NOT IN ?", keep)
		}
		if err := del.Delete(&models.LessonModel{}).Error; err != nil {
			return fmt.Errorf("failed to prune lessons: %w", err)
		}
		return nil
	})
}

func (r *CourseRepositoryImpl) Delete(ctx context.Context, courseID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", courseID).Delete(&models.LessonModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete lessons: %w", err)
		}
		result := tx.Delete(&models.CourseModel{}, courseID)
		if result.Error != nil {
			return fmt.Errorf("failed to delete course: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.NewNotFoundError("course not found")
		}
		return nil
	})
}

func (r *CourseRepositoryImpl) GetByID(ctx context.Context, courseID uint) (*course.Course, error) {
	var model models.CourseModel
	err := r.db.WithContext(ctx).Preload("Lessons", lessonOrder).First(&model, courseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return courseFromModel(&model)
}

func (r *CourseRepositoryImpl) GetBySID(ctx context.Context, sid string) (*course.Course, error) {
	var model models.CourseModel
	err := r.db.WithContext(ctx).Preload("Lessons", lessonOrder).Where("sid = ?", sid).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get course by sid: %w", err)
	}
	return courseFromModel(&model)
}

func (r *CourseRepositoryImpl) List(ctx context.Context, status course.Status, offset, limit int) ([]*course.Course, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CourseModel{})
	if status != "" {
		query = query.Where("status = ?", status.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}

	var rows []models.CourseModel
	if err := query.Preload("Lessons", lessonOrder).Order("id DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list courses: %w", err)
	}

	courses := make([]*course.Course, 0, len(rows))
	for i := range rows {
		c, err := courseFromModel(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		courses = append(courses, c)
	}
	return courses, total, nil
}

func (r *CourseRepositoryImpl) ExistingIDs(ctx context.Context, courseIDs []uint) (map[uint]bool, error) {
	if len(courseIDs) == 0 {
		return map[uint]bool{}, nil
	}

	var found []uint
	err := r.db.WithContext(ctx).
		Model(&models.CourseModel{}).
		Where("id IN ?", courseIDs).
		Pluck("id", &found).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check course IDs: %w", err)
	}

	existing := make(map[uint]bool, len(found))
	for _, id := range found {
		existing[id] = true
	}
	return existing, nil
}

func lessonOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func courseToModel(c *course.Course) *models.CourseModel {
	return &models.CourseModel{
		SID:           c.SID(),
		TitleMN:       c.Title().MN,
		TitleEN:       c.Title().EN,
		DescriptionMN: c.Description().MN,
		DescriptionEN: c.Description().EN,
		Amount:        c.Price().Amount(),
		Currency:      c.Price().Currency(),
		Status:        c.Status().String(),
		Version:       c.Version(),
		CreatedAt:     c.CreatedAt(),
		UpdatedAt:     c.UpdatedAt(),
	}
}

func lessonToModel(l *course.Lesson, courseID uint) *models.LessonModel {
	return &models.LessonModel{
		SID:          l.SID(),
		CourseID:     courseID,
		TitleMN:      l.Title().MN,
		TitleEN:      l.Title().EN,
		VideoAssetID: l.VideoAssetID(),
		DurationSec:  l.DurationSec(),
		Position:     l.Position(),
		FreePreview:  l.IsFreePreview(),
	}
}

func courseFromModel(m *models.CourseModel) (*course.Course, error) {
	lessons := make([]*course.Lesson, 0, len(m.Lessons))
	for _, row := range m.Lessons {
		lessons = append(lessons, course.ReconstructLesson(
			row.ID,
			row.SID,
			course.BilingualText{MN: row.TitleMN, EN: row.TitleEN},
			row.VideoAssetID,
			row.DurationSec,
			row.Position,
			row.FreePreview,
		))
	}

	return course.ReconstructCourse(
		m.ID,
		m.SID,
		course.BilingualText{MN: m.TitleMN, EN: m.TitleEN},
		course.BilingualText{MN: m.DescriptionMN, EN: m.DescriptionEN},
		vo.NewMoney(m.Amount, m.Currency),
		course.Status(m.Status),
		lessons,
		m.CreatedAt,
		m.UpdatedAt,
		m.Version,
	)
}
