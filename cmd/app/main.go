package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"corso/cmd/fx/account_fx"
	"corso/cmd/fx/analyzer_fx"
	"corso/cmd/fx/controllers_fx"
	"corso/cmd/fx/course_fx"
	"corso/cmd/fx/db_fx"
	"corso/cmd/fx/place_fx"
	"corso/cmd/fx/routing_fx"
	"corso/internal/api/controllers"
	"corso/internal/infra"
	"corso/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	app := fx.New(
		fx.Provide(infra.LoadConfig),
		db_fx.Module,
		account_fx.Module,
		place_fx.Module,
		routing_fx.Module,
		course_fx.Module,
		analyzer_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg infra.Config, db *gorm.DB) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at :%s", cfg.Port)
				if err := engine.Run(":" + cfg.Port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			infra.ClosePostgresql(db)
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	placeController *controllers.PlaceController,
	courseController *controllers.CourseController,
	analyzeController *controllers.AnalyzeController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, accountController, placeController, courseController, analyzeController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	placeController *controllers.PlaceController,
	courseController *controllers.CourseController,
	analyzeController *controllers.AnalyzeController) {

	accounts := r.Group("/accounts")
	accounts.POST("/signup", accountController.Register)
	accounts.POST("/login", accountController.Login)
	accounts.GET("/me", middleware.JWTAuthMiddleware(), accountController.Me)

	places := r.Group("/places")
	places.Use(middleware.JWTAuthMiddleware())
	places.GET("", placeController.ListPlaces)
	places.GET("/:id", placeController.GetPlaceById)
	places.GET("/:id/similar", placeController.GetSimilarPlaces)
	places.POST("", placeController.CreatePlace)
	places.PUT("", placeController.UpdatePlace)
	places.DELETE("/:id", placeController.DeletePlace)

	links := r.Group("/links")
	links.Use(middleware.JWTAuthMiddleware())
	links.POST("/analyze", analyzeController.AnalyzeLink)

	courses := r.Group("/courses")
	courses.Use(middleware.JWTAuthMiddleware())
	courses.POST("/generate", courseController.GenerateCourse)
	courses.POST("/score", courseController.ScoreCourse)
	courses.POST("/save", courseController.SaveCourse)
	courses.GET("", courseController.ListSavedCourses)
	courses.GET("/:courseId", courseController.GetSavedCourse)
	courses.DELETE("/:courseId", courseController.DeleteSavedCourse)
}
