package request_models

import "github.com/google/uuid"

type CreatePlaceRequest struct {
	Name        string   `json:"name" binding:"required"`
	Category    string   `json:"category"`
	Address     string   `json:"address"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	StayMinutes int      `json:"stay_minutes"`
	SourceURL   string   `json:"source_url"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Tags        []string `json:"tags"`
}

type UpdatePlaceRequest struct {
	ID          uuid.UUID `json:"id" binding:"required"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Address     string    `json:"address"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	StayMinutes int       `json:"stay_minutes"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
}
