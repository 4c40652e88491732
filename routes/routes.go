package routes

import (
	"log"

	"github.com/Arg10M10/nutrisnap-health-hub-sub001/config"
	"github.com/Arg10M10/nutrisnap-health-hub-sub001/controllers"
	"github.com/Arg10M10/nutrisnap-health-hub-sub001/middlewares"
	"github.com/Arg10M10/nutrisnap-health-hub-sub001/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	// Wire the service graph once; controllers share instances.
	rek, err := services.NewRekognitionService()
	if err != nil {
		log.Fatalf("rekognition init failed: %v", err)
	}
	off := services.NewOpenFoodFactsService()
	ai := services.NewAIService()
	limits := services.NewAILimitService(config.DB)
	foodSvc := services.NewFoodService(off, rek, ai)
	mealSvc := services.NewMealService(foodSvc)
	exerciseSvc := services.NewExerciseService(ai)
	progressSvc := services.NewProgressService(mealSvc, exerciseSvc)
	hub := services.NewRealtimeHub()

	foodCtl := controllers.NewFoodController(foodSvc, limits)
	mealCtl := controllers.NewMealController(mealSvc, progressSvc, hub)
	exerciseCtl := controllers.NewExerciseController(exerciseSvc, progressSvc, limits, hub)
	suggestionCtl := controllers.NewSuggestionController(ai, limits)
	progressCtl := controllers.NewProgressController(progressSvc)
	realtimeCtl := controllers.NewRealtimeController(hub)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/verify", controllers.VerifyMFA)
	}

	// Everything else needs a token
	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		user := api.Group("/user")
		{
			user.GET("/profile", controllers.GetProfile)
			user.PUT("/profile", controllers.UpdateProfile)
			user.POST("/onboarding", controllers.CompleteOnboarding)
			user.GET("/weight-history", controllers.WeightHistory)
			user.DELETE("", controllers.DeleteAccount)
		}

		plan := api.Group("/plan")
		{
			plan.POST("/calculate", controllers.CalculatePlan)
			plan.POST("/recompute", controllers.RecomputePlan)
		}

		goals := api.Group("/goals")
		{
			goals.GET("", progressCtl.GetGoals)
			goals.GET("/by-date", progressCtl.GetGoalsByDate)
			goals.PUT("", progressCtl.UpdateGoals)
			goals.GET("/history", progressCtl.History)
			goals.GET("/badges", progressCtl.Badges)
		}

		food := api.Group("/food")
		{
			food.GET("/search", foodCtl.Search)
			food.GET("/barcode/:code", foodCtl.LookupBarcode)
			food.POST("/recognize", foodCtl.RecognizePhoto)
			food.POST("/analyze-text", foodCtl.AnalyzeText)
		}

		meals := api.Group("/meals")
		{
			meals.POST("", mealCtl.Add)
			meals.GET("", mealCtl.List)
			meals.GET("/recent", mealCtl.Recent)
			meals.GET("/:id", mealCtl.Get)
			meals.PUT("/:id", mealCtl.Update)
			meals.DELETE("/:id", mealCtl.Delete)
		}

		exercise := api.Group("/exercise")
		{
			exercise.POST("", exerciseCtl.Log)
			exercise.POST("/estimate", exerciseCtl.LogWithEstimate)
			exercise.GET("", exerciseCtl.List)
			exercise.DELETE("/:id", exerciseCtl.Delete)
		}

		aiGroup := api.Group("/ai")
		{
			aiGroup.GET("/suggestions", suggestionCtl.GetSuggestions)
			aiGroup.POST("/diet-plan", suggestionCtl.GenerateDietPlan)
			aiGroup.POST("/workouts", suggestionCtl.GenerateWorkouts)
		}

		api.GET("/ws/progress", realtimeCtl.ProgressSocket)
	}

	return r
}
