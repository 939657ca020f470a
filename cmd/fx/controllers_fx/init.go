package controllers_fx

import (
	"go.uber.org/fx"

	"corso/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewPlaceController),
	fx.Provide(controllers.NewCourseController),
	fx.Provide(controllers.NewAnalyzeController))
