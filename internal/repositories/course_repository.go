package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"corso/internal/models/db_models"
)

type CourseRepository interface {
	SaveCourse(ctx context.Context, course *db_models.SavedCourse) (uuid.UUID, error)
	GetByID(ctx context.Context, userID, courseID string) (*db_models.SavedCourse, error)
	ListByUser(ctx context.Context, userID string, page, pageSize int) ([]db_models.SavedCourse, error)
	Delete(ctx context.Context, userID string, courseID uuid.UUID) error
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) SaveCourse(ctx context.Context, course *db_models.SavedCourse) (uuid.UUID, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(course).Error
	})
	if err != nil {
		return uuid.Nil, err
	}
	return course.ID, nil
}

func (r *courseRepository) GetByID(ctx context.Context, userID, courseID string) (*db_models.SavedCourse, error) {
	var course db_models.SavedCourse
	err := r.db.WithContext(ctx).
		Preload("Stops", func(db *gorm.DB) *gorm.DB {
			return db.Order("saved_course_stops.position ASC")
		}).
		Preload("Stops.Place").
		First(&course, "id = ? AND user_id = ?", courseID, userID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]db_models.SavedCourse, error) {
	var courses []db_models.SavedCourse
	offset := (page - 1) * pageSize

	err := r.db.WithContext(ctx).
		Preload("Stops").
		Where("user_id = ?", userID).
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) Delete(ctx context.Context, userID string, courseID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Ownership gate before touching any rows: stops must never be
		// stripped from a course the caller does not own.
		var course db_models.SavedCourse
		if err := tx.Select("id").First(&course, "id = ? AND user_id = ?", courseID, userID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&db_models.SavedCourseStop{}, "course_id = ?", courseID).Error; err != nil {
			return err
		}
		return tx.Delete(&db_models.SavedCourse{}, "id = ?", courseID).Error
	})
}
