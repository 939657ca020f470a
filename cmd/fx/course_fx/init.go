package course_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"corso/internal/repositories"
	"corso/internal/services"
)

var Module = fx.Provide(provideCourseRepo, providePlanner, provideCourseService)

func provideCourseRepo(db *gorm.DB) repositories.CourseRepository {
	return repositories.NewCourseRepository(db)
}

func providePlanner(estimator services.TravelEstimator) *services.SequencePlanner {
	return services.NewSequencePlanner(estimator)
}

func provideCourseService(
	placeRepo repositories.PlaceRepository,
	courseRepo repositories.CourseRepository,
	planner *services.SequencePlanner,
) services.CourseServiceInterface {
	return services.NewCourseService(placeRepo, courseRepo, planner)
}
