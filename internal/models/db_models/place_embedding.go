package db_models

import (
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"time"
)

type PlaceEmbedding struct {
	PlaceID   string `gorm:"primaryKey;column:place_id"`
	Name      string
	Category  string
	Tags      pq.StringArray  `gorm:"type:text[]"`
	Embedding pgvector.Vector `gorm:"type:vector(1536)"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}
