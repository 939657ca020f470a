package request_models

// AnalyzeLinkRequest holds a social link and its caption/post text. Media
// download and OCR happen outside this service; only text comes in.
type AnalyzeLinkRequest struct {
	URL       string  `json:"url" binding:"required,url"`
	Content   string  `json:"content" binding:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
