package repositories

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"corso/internal/models/db_models"
)

type IPlaceEmbeddingRepository interface {
	Upsert(ctx context.Context, embedding db_models.PlaceEmbedding) error
	GetByPlaceID(ctx context.Context, placeID string) (*db_models.PlaceEmbedding, error)
	ListNearestByVector(ctx context.Context, vector pgvector.Vector, limit int) ([]db_models.PlaceEmbedding, error)
}

type PlaceEmbeddingRepository struct {
	db *gorm.DB
}

func NewPlaceEmbeddingRepository(db *gorm.DB) IPlaceEmbeddingRepository {
	return &PlaceEmbeddingRepository{
		db: db,
	}
}

func (p *PlaceEmbeddingRepository) Upsert(ctx context.Context, embedding db_models.PlaceEmbedding) error {
	return p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "place_id"}},
			UpdateAll: true,
		}).
		Create(&embedding).Error
}

func (p *PlaceEmbeddingRepository) GetByPlaceID(ctx context.Context, placeID string) (*db_models.PlaceEmbedding, error) {
	var embedding db_models.PlaceEmbedding
	err := p.db.WithContext(ctx).First(&embedding, "place_id = ?", placeID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &embedding, nil
}

func (p *PlaceEmbeddingRepository) ListNearestByVector(ctx context.Context, vector pgvector.Vector, limit int) ([]db_models.PlaceEmbedding, error) {
	var results []db_models.PlaceEmbedding

	query := `
        SELECT *
        FROM place_embeddings
        ORDER BY embedding <=> $1
        LIMIT $2
    `

	err := p.db.WithContext(ctx).Raw(query, vector.String(), limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
