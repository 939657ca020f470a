package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"corso/internal/models/db_models"
)

type PlaceRepository interface {
	CreatePlace(ctx context.Context, place *db_models.Place) (uuid.UUID, error)
	UpdatePlace(ctx context.Context, place *db_models.Place) error
	Delete(ctx context.Context, id uuid.UUID) error

	GetByID(ctx context.Context, id string) (*db_models.Place, error)
	GetByIDs(ctx context.Context, ids []string) ([]db_models.Place, error)
	ListByUser(ctx context.Context, userID string, page, pageSize int) ([]db_models.Place, error)
	AttachTags(ctx context.Context, place *db_models.Place, names []string) error
}

type placeRepository struct {
	db *gorm.DB
}

func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	return &placeRepository{db: db}
}

func (r *placeRepository) CreatePlace(ctx context.Context, place *db_models.Place) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(place).Error; err != nil {
		return uuid.Nil, err
	}
	return place.ID, nil
}

func (r *placeRepository) UpdatePlace(ctx context.Context, place *db_models.Place) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Save(place)
		if result.Error != nil {
			return fmt.Errorf("failed to update place: %w", result.Error)
		}

		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}

func (r *placeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Delete(&db_models.Place{}, "id = ?", id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// Read helpers return a default value and nil error when no rows are found.

func (r *placeRepository) GetByID(ctx context.Context, id string) (*db_models.Place, error) {
	var place db_models.Place
	err := r.db.WithContext(ctx).
		Preload("Tags").
		First(&place, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &place, nil
}

func (r *placeRepository) GetByIDs(ctx context.Context, ids []string) ([]db_models.Place, error) {
	var places []db_models.Place
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("id IN ?", ids).
		Find(&places).Error
	if err != nil {
		return nil, err
	}
	return places, nil
}

func (r *placeRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]db_models.Place, error) {
	var places []db_models.Place
	offset := (page - 1) * pageSize

	err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("user_id = ?", userID).
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&places).Error
	if err != nil {
		return nil, err
	}
	return places, nil
}

func (r *placeRepository) AttachTags(ctx context.Context, place *db_models.Place, names []string) error {
	for _, name := range names {
		if name == "" {
			continue
		}
		var tag db_models.Tag
		if err := r.db.WithContext(ctx).
			Where(db_models.Tag{Name: name}).
			FirstOrCreate(&tag, db_models.Tag{Name: name}).Error; err != nil {
			return err
		}
		if err := r.db.WithContext(ctx).Model(place).Association("Tags").Append(&tag); err != nil {
			return err
		}
	}
	return nil
}
