package response_models

type Place struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Address     string   `json:"address"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	StayMinutes int      `json:"stay_minutes"`
	SourceType  string   `json:"source_type"`
	SourceURL   string   `json:"source_url"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Tags        []string `json:"tags"`
}

type SimilarPlace struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}
