package services

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"corso/internal/models/db_models"
	"corso/internal/models/request_models"
	"corso/internal/models/response_models"
	"corso/internal/repositories"
	"corso/pkg/utils"
)

type PlaceServiceInterface interface {
	GetPlaceByID(ctx context.Context, userID, id string) (response_models.Place, error)
	ListPlaces(ctx context.Context, userID string, page, pageSize int) ([]response_models.Place, error)
	CreatePlace(ctx context.Context, userID string, req request_models.CreatePlaceRequest) (string, error)
	UpdatePlace(ctx context.Context, userID string, req request_models.UpdatePlaceRequest) error
	DeletePlace(ctx context.Context, userID string, id uuid.UUID) error
	GetSimilarPlaces(ctx context.Context, placeID string, limit int) ([]response_models.SimilarPlace, error)
}

type PlaceService struct {
	placeRepo     repositories.PlaceRepository
	embeddingRepo repositories.IPlaceEmbeddingRepository
}

func NewPlaceService(placeRepo repositories.PlaceRepository, embeddingRepo repositories.IPlaceEmbeddingRepository) PlaceServiceInterface {
	return &PlaceService{
		placeRepo:     placeRepo,
		embeddingRepo: embeddingRepo,
	}
}

func (p *PlaceService) GetPlaceByID(ctx context.Context, userID, id string) (response_models.Place, error) {
	place, err := p.fetchOwnedPlace(ctx, userID, id)
	if err != nil {
		return response_models.Place{}, err
	}
	return toPlaceResponse(place), nil
}

// fetchOwnedPlace loads a place and hides other users' records behind the
// same not-found error, so ids cannot be probed across accounts.
func (p *PlaceService) fetchOwnedPlace(ctx context.Context, userID, id string) (*db_models.Place, error) {
	place, err := p.placeRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("Error fetching place: %v", err)
		return nil, utils.ErrDatabaseError
	}
	if place == nil || place.UserID.String() != userID {
		return nil, utils.ErrPlaceNotFound
	}
	return place, nil
}

func (p *PlaceService) ListPlaces(ctx context.Context, userID string, page, pageSize int) ([]response_models.Place, error) {
	places, err := p.placeRepo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		log.Printf("Error listing places: %v", err)
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.Place, 0, len(places))
	for i := range places {
		out = append(out, toPlaceResponse(&places[i]))
	}
	return out, nil
}

func (p *PlaceService) CreatePlace(ctx context.Context, userID string, req request_models.CreatePlaceRequest) (string, error) {
	point := GeoPoint{Lat: req.Latitude, Lng: req.Longitude}
	if !point.Valid() {
		return "", utils.ErrInvalidCoordinate
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return "", utils.ErrInvalidInput
	}

	newPlace := &db_models.Place{
		UserID:      userUUID,
		Name:        req.Name,
		Category:    req.Category,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		StayMinutes: req.StayMinutes,
		SourceType:  "manual",
		SourceURL:   req.SourceURL,
		Description: req.Description,
		Images:      req.Images,
	}

	id, err := p.placeRepo.CreatePlace(ctx, newPlace)
	if err != nil {
		log.Printf("Error creating place: %v", err)
		return "", utils.ErrDatabaseError
	}

	if len(req.Tags) > 0 {
		if err := p.placeRepo.AttachTags(ctx, newPlace, req.Tags); err != nil {
			log.Printf("Error attaching tags: %v", err)
			return "", utils.ErrDatabaseError
		}
	}

	return id.String(), nil
}

func (p *PlaceService) UpdatePlace(ctx context.Context, userID string, req request_models.UpdatePlaceRequest) error {
	existing, err := p.fetchOwnedPlace(ctx, userID, req.ID.String())
	if err != nil {
		return err
	}

	point := GeoPoint{Lat: req.Latitude, Lng: req.Longitude}
	if !point.Valid() {
		return utils.ErrInvalidCoordinate
	}

	existing.Name = req.Name
	existing.Category = req.Category
	existing.Address = req.Address
	existing.Latitude = req.Latitude
	existing.Longitude = req.Longitude
	existing.StayMinutes = req.StayMinutes
	existing.Description = req.Description
	existing.Images = req.Images

	if err := p.placeRepo.UpdatePlace(ctx, existing); err != nil {
		log.Printf("Error updating place: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (p *PlaceService) DeletePlace(ctx context.Context, userID string, id uuid.UUID) error {
	if _, err := p.fetchOwnedPlace(ctx, userID, id.String()); err != nil {
		return err
	}

	if err := p.placeRepo.Delete(ctx, id); err != nil {
		log.Printf("Error deleting place: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (p *PlaceService) GetSimilarPlaces(ctx context.Context, placeID string, limit int) ([]response_models.SimilarPlace, error) {
	if limit <= 0 || limit > 20 {
		limit = 10
	}

	embedding, err := p.embeddingRepo.GetByPlaceID(ctx, placeID)
	if err != nil {
		log.Printf("Error fetching embedding: %v", err)
		return nil, utils.ErrDatabaseError
	}

	vector := utils.TextToVector("")
	if embedding != nil {
		vector = embedding.Embedding
	} else {
		// No stored embedding yet; derive a query vector from the place itself.
		place, err := p.placeRepo.GetByID(ctx, placeID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if place == nil {
			return nil, utils.ErrPlaceNotFound
		}
		vector = utils.TextToVector(place.Name + " " + place.Category + " " + place.Description)
	}

	neighbors, err := p.embeddingRepo.ListNearestByVector(ctx, vector, limit+1)
	if err != nil {
		log.Printf("Error searching embeddings: %v", err)
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.SimilarPlace, 0, limit)
	for _, n := range neighbors {
		if n.PlaceID == placeID {
			continue
		}
		out = append(out, response_models.SimilarPlace{
			ID:       n.PlaceID,
			Name:     n.Name,
			Category: n.Category,
		})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func toPlaceResponse(place *db_models.Place) response_models.Place {
	tags := make([]string, 0, len(place.Tags))
	for _, t := range place.Tags {
		tags = append(tags, t.Name)
	}

	stay := place.StayMinutes
	if stay <= 0 {
		stay = DefaultStayMinutes
	}

	return response_models.Place{
		ID:          place.ID.String(),
		Name:        place.Name,
		Category:    place.Category,
		Address:     strings.TrimSpace(place.Address),
		Latitude:    place.Latitude,
		Longitude:   place.Longitude,
		StayMinutes: stay,
		SourceType:  place.SourceType,
		SourceURL:   place.SourceURL,
		Description: place.Description,
		Images:      place.Images,
		Tags:        tags,
	}
}
