package db_models

import "github.com/google/uuid"

// SavedCourse is a persisted snapshot of a generated course. Generation
// itself never writes here; saving copies the computed content under a
// user-chosen name.
type SavedCourse struct {
	BaseModel
	UserID               uuid.UUID
	Name                 string
	Description          string
	TransportMode        string
	TotalDistanceKm      float64
	TotalDurationMinutes int
	OptimizationScore    float64

	Stops []SavedCourseStop `gorm:"foreignKey:CourseID"`
}

type SavedCourseStop struct {
	BaseModel
	CourseID              uuid.UUID
	PlaceID               uuid.UUID
	Position              int
	TravelDistanceKm      float64
	TravelDurationMinutes int
	StayMinutes           int
	ArrivalTime           string // "HH:MM", empty when the course had no start time

	Place Place `gorm:"foreignKey:PlaceID"`
}
