package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	appsvc "fittrack/internal/app"
	"fittrack/internal/bootstrap"
	"fittrack/internal/cache"
	rabbitmqClient "fittrack/internal/platform/rabbitmq"
	"fittrack/internal/repository"
	"fittrack/internal/transport/http/handler"
	"fittrack/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	// Request bodies are fixed schemas; unknown fields are a client bug.
	binding.EnableDecoderDisallowUnknownFields = true

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.StaticFile("/", "web/index.html")
	router.StaticFile("/login", "web/login.html")
	router.StaticFile("/register", "web/register.html")
	router.StaticFile("/dashboard", "web/dashboard.html")
	router.StaticFile("/diet", "web/diet.html")
	router.StaticFile("/expert", "web/expert.html")
	router.Static("/static", "web/static")
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	activityRepo := repository.NewActivityRepository(app.MySQL)
	activityCache := cache.NewActivityCache(
		app.Redis,
		time.Duration(app.Config.Redis.ActivityTTLSeconds)*time.Second,
		time.Duration(app.Config.Redis.ActivityDirtyTTLSeconds)*time.Second,
	)
	eventPublisher := rabbitmqClient.NewEventPublisher(app.MQConn, app.Config.RabbitMQ.ActivityEventQueue)

	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	activityService := appsvc.NewActivityService(activityRepo, activityCache, eventPublisher)
	authHandler := handler.NewAuthHandler(authService)
	activityHandler := handler.NewActivityHandler(activityService)

	api := router.Group("/api")
	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", middleware.AuthJWT(app.Config.Auth.JWTSecret), authHandler.Me)

	activityGroup := api.Group("/activities")
	activityGroup.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret))
	activityGroup.GET("", activityHandler.List)
	activityGroup.POST("", activityHandler.Create)
	activityGroup.GET("/summary", activityHandler.Summary)

	return router
}
