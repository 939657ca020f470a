package response_models

type CourseStop struct {
	PlaceID   string  `json:"place_id"`
	PlaceName string  `json:"place_name"`
	Category  string  `json:"category"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Position  int     `json:"position"`

	// Inbound leg; absent for position 0 when there is no start point.
	TravelDistanceKm      *float64 `json:"travel_distance_km,omitempty"`
	TravelDurationMinutes *int     `json:"travel_duration_minutes,omitempty"`

	EstimatedDurationMinutes int    `json:"estimated_duration_minutes"`
	ArrivalTime              string `json:"arrival_time,omitempty"`
}

type Course struct {
	CourseID             string       `json:"course_id"`
	UserID               string       `json:"user_id"`
	Stops                []CourseStop `json:"stops"`
	TotalDistanceKm      float64      `json:"total_distance_km"`
	TotalDurationMinutes int          `json:"total_duration_minutes"`
	OptimizationScore    float64      `json:"optimization_score"`
	TransportMode        string       `json:"transport_mode"`
	CreatedAt            string       `json:"created_at"`
}

// CourseScore compares a caller-supplied ordering against the optimum for
// the same place set.
type CourseScore struct {
	TotalDistanceKm      float64 `json:"total_distance_km"`
	TotalDurationMinutes int     `json:"total_duration_minutes"`
	OptimizationScore    float64 `json:"optimization_score"`
	BestDistanceKm       float64 `json:"best_distance_km"`
	WorstDistanceKm      float64 `json:"worst_distance_km"`
	TransportMode        string  `json:"transport_mode"`
}

type SavedCourseResponse struct {
	CourseID   string `json:"course_id"`
	CourseName string `json:"course_name"`
	IsSaved    bool   `json:"is_saved"`
	SavedAt    string `json:"saved_at"`
}

type SavedCourseSummary struct {
	CourseID             string  `json:"course_id"`
	Name                 string  `json:"name"`
	Description          string  `json:"description"`
	TransportMode        string  `json:"transport_mode"`
	StopCount            int     `json:"stop_count"`
	TotalDistanceKm      float64 `json:"total_distance_km"`
	TotalDurationMinutes int     `json:"total_duration_minutes"`
	SavedAt              string  `json:"saved_at"`
}
