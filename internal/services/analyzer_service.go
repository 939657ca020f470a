package services

import (
	"context"
	"encoding/json"
	"log"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"corso/internal/models/db_models"
	"corso/internal/models/request_models"
	"corso/internal/models/response_models"
	"corso/internal/repositories"
	"corso/pkg/utils"
)

type AnalyzerServiceInterface interface {
	AnalyzeLink(ctx context.Context, userID string, req request_models.AnalyzeLinkRequest) (*response_models.Place, error)
}

// AnalyzerService is the link-analyzer: given a social post's URL and text,
// it classifies the place being talked about and saves it for the user.
// Classification goes through the configured LLM first and degrades to the
// rule-based classifier on provider failure.
type AnalyzerService struct {
	placeRepo     repositories.PlaceRepository
	embeddingRepo repositories.IPlaceEmbeddingRepository
	classifier    utils.PlaceClassifierInterface
	fallback      utils.PlaceClassifierInterface
}

func NewAnalyzerService(
	placeRepo repositories.PlaceRepository,
	embeddingRepo repositories.IPlaceEmbeddingRepository,
	classifier utils.PlaceClassifierInterface,
) AnalyzerServiceInterface {
	return &AnalyzerService{
		placeRepo:     placeRepo,
		embeddingRepo: embeddingRepo,
		classifier:    classifier,
		fallback:      utils.NewRuleBasedClassifier(),
	}
}

// Default stay estimate per extracted category, minutes.
var categoryStayMinutes = map[string]int{
	"restaurant": 90,
	"cafe":       60,
	"bar":        120,
	"attraction": 90,
	"shopping":   60,
}

// DetectSourceType maps a link host to the platforms the analyzer knows.
func DetectSourceType(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "link"
	}
	host := strings.ToLower(u.Hostname())
	switch {
	case strings.Contains(host, "instagram.com"):
		return "instagram"
	case strings.Contains(host, "youtube.com"), strings.Contains(host, "youtu.be"):
		return "youtube"
	case strings.Contains(host, "blog.naver.com"), strings.Contains(host, "naver.me"):
		return "naver_blog"
	default:
		return "link"
	}
}

func (a *AnalyzerService) AnalyzeLink(ctx context.Context, userID string, req request_models.AnalyzeLinkRequest) (*response_models.Place, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	sourceType := DetectSourceType(req.URL)

	classification, err := a.classifier.ClassifyContent(ctx, sourceType, req.Content)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Printf("LLM classification failed, using rule-based fallback: %v", err)
		classification, err = a.fallback.ClassifyContent(ctx, sourceType, req.Content)
		if err != nil {
			return nil, utils.ErrAnalyzeFailed
		}
	}

	raw, _ := json.Marshal(classification)

	stay := categoryStayMinutes[classification.Category]
	if stay == 0 {
		stay = DefaultStayMinutes
	}

	place := &db_models.Place{
		UserID:      userUUID,
		Name:        classification.Name,
		Category:    classification.Category,
		Address:     classification.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		StayMinutes: stay,
		SourceType:  sourceType,
		SourceURL:   req.URL,
		Extraction:  string(raw),
	}

	if _, err := a.placeRepo.CreatePlace(ctx, place); err != nil {
		log.Printf("Error creating analyzed place: %v", err)
		return nil, utils.ErrDatabaseError
	}
	if len(classification.Tags) > 0 {
		if err := a.placeRepo.AttachTags(ctx, place, classification.Tags); err != nil {
			log.Printf("Error attaching tags: %v", err)
			return nil, utils.ErrDatabaseError
		}
	}

	a.upsertEmbedding(ctx, place, classification)

	saved, err := a.placeRepo.GetByID(ctx, place.ID.String())
	if err != nil || saved == nil {
		return nil, utils.ErrDatabaseError
	}
	out := toPlaceResponse(saved)
	return &out, nil
}

// upsertEmbedding is best effort: similarity search degrades gracefully, a
// failed embedding never fails the analysis.
func (a *AnalyzerService) upsertEmbedding(ctx context.Context, place *db_models.Place, classification *utils.LinkClassification) {
	text := place.Name + " " + place.Category + " " + strings.Join(classification.Tags, " ")
	vector, err := a.classifier.GetEmbedding(ctx, text)
	if err != nil {
		log.Printf("Embedding generation failed for place %s: %v", place.ID, err)
		vector = utils.TextToVector(text)
	}

	err = a.embeddingRepo.Upsert(ctx, db_models.PlaceEmbedding{
		PlaceID:   place.ID.String(),
		Name:      place.Name,
		Category:  place.Category,
		Tags:      classification.Tags,
		Embedding: vector,
	})
	if err != nil {
		log.Printf("Embedding upsert failed for place %s: %v", place.ID, err)
	}
}
