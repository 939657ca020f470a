package place_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"corso/internal/repositories"
	"corso/internal/services"
)

var Module = fx.Provide(
	providePlaceRepo, provideEmbeddingRepo, providePlaceService)

func providePlaceRepo(db *gorm.DB) repositories.PlaceRepository {
	return repositories.NewPlaceRepository(db)
}

func provideEmbeddingRepo(db *gorm.DB) repositories.IPlaceEmbeddingRepository {
	return repositories.NewPlaceEmbeddingRepository(db)
}

func providePlaceService(placeRepo repositories.PlaceRepository, embeddingRepo repositories.IPlaceEmbeddingRepository) services.PlaceServiceInterface {
	return services.NewPlaceService(placeRepo, embeddingRepo)
}
