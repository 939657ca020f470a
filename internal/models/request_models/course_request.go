package request_models

// GenerateCourseRequest carries the candidate place set, not a pre-ordered
// sequence; the planner decides the visiting order.
type GenerateCourseRequest struct {
	PlaceIDs       []string `json:"place_ids" binding:"required"`
	StartLatitude  *float64 `json:"start_latitude"`
	StartLongitude *float64 `json:"start_longitude"`
	TransportMode  string   `json:"transport_mode"`
	StartTime      string   `json:"start_time"` // "HH:MM", optional
}

// ScoreCourseRequest scores a caller-supplied ordering of the same fields.
// Here place order is meaningful: it is the sequence being scored.
type ScoreCourseRequest struct {
	PlaceIDs       []string `json:"place_ids" binding:"required"`
	StartLatitude  *float64 `json:"start_latitude"`
	StartLongitude *float64 `json:"start_longitude"`
	TransportMode  string   `json:"transport_mode"`
}

type SaveCourseRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	Course      SaveCoursePayload   `json:"course" binding:"required"`
}

type SaveCoursePayload struct {
	TransportMode        string           `json:"transport_mode"`
	TotalDistanceKm      float64          `json:"total_distance_km"`
	TotalDurationMinutes int              `json:"total_duration_minutes"`
	OptimizationScore    float64          `json:"optimization_score"`
	Stops                []SaveCourseStop `json:"stops" binding:"required"`
}

type SaveCourseStop struct {
	PlaceID               string  `json:"place_id" binding:"required"`
	Position              int     `json:"position"`
	TravelDistanceKm      float64 `json:"travel_distance_km"`
	TravelDurationMinutes int     `json:"travel_duration_minutes"`
	StayMinutes           int     `json:"estimated_duration_minutes"`
	ArrivalTime           string  `json:"arrival_time"`
}
