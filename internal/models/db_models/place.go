package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Place struct {
	BaseModel
	UserID      uuid.UUID
	Name        string
	Category    string
	Address     string
	Latitude    float64
	Longitude   float64
	StayMinutes int `gorm:"default:60"`

	// Where the place was saved from: instagram | youtube | naver_blog | manual
	SourceType string
	SourceURL  string

	Description string
	Images      pq.StringArray `gorm:"type:text[]"`
	// Raw LLM extraction payload, kept for re-classification
	Extraction string `gorm:"type:jsonb"`

	Tags []Tag `gorm:"many2many:place_tags"`
}
