package app

import (
	"creai_edu_backend/docs"
	"creai_edu_backend/internal/config"
	"creai_edu_backend/internal/middleware"
	"creai_edu_backend/internal/util"
	"creai_edu_backend/pkg/monitoring"
	"creai_edu_backend/pkg/security"
	"creai_edu_backend/pkg/tracing"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(security.CORS(cfg.CORS))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit))
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}
	router.Use(monitoring.MetricsMiddleware())
	router.Use(middleware.TryAuth(cfg.JWT.Secret))
}

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	api := router.Group("/api")

	// 1. 课程内容
	a.registerContentRoutes(api, c)

	// 2. 练习与测验
	a.registerPracticeRoutes(api, c)

	// 3. 用户与登录
	a.registerUserRoutes(api, c)

	// 4. 网络实验室与 JSONPlaceholder 演练场
	a.registerLabRoutes(api, c)

	// 5. 调试接口，仅 debug 模式
	if cfg.Server.Mode == gin.DebugMode {
		a.registerDebugRoutes(api, c)
	}

	router.NoRoute(func(ctx *gin.Context) {
		util.Error(ctx, http.StatusNotFound, "Route "+ctx.Request.URL.Path+" not found")
	})
}

func (a *App) registerContentRoutes(api *gin.RouterGroup, c *controllers) {
	modules := api.Group("/modules")
	{
		modules.GET("", c.content.ListModules)
		modules.GET("/:slug", c.content.GetModule)
		modules.GET("/:slug/lessons", c.content.GetModuleLessons)
		modules.GET("/:slug/lessons/:lessonSlug", c.content.GetLesson)
		modules.GET("/:slug/lessons/:lessonSlug/rendered", c.content.GetRenderedLesson)
	}

	lessons := api.Group("/lessons")
	{
		lessons.GET("", c.lesson.ListLessons)
		lessons.GET("/:lessonId", c.lesson.GetLesson)
		lessons.POST("/:lessonId/complete", c.lesson.CompleteLesson)
	}
}

func (a *App) registerPracticeRoutes(api *gin.RouterGroup, c *controllers) {
	exercises := api.Group("/exercises")
	{
		exercises.GET("/:exerciseId", c.exercise.GetExercise)
		exercises.POST("/:exerciseId/run", c.exercise.RunExercise)
	}

	sessions := api.Group("/exercise-sessions")
	{
		sessions.POST("", c.exercise.StartSession)
		sessions.GET("/:id", c.exercise.GetSession)
		sessions.PUT("/:id/code", c.exercise.UpdateCode)
		sessions.POST("/:id/run", c.exercise.RunSession)
		sessions.POST("/:id/hints/next", c.exercise.NextHint)
		sessions.POST("/:id/reset", c.exercise.ResetSession)
	}

	quiz := api.Group("/quiz-sessions")
	{
		quiz.POST("", c.quiz.CreateSession)
		quiz.GET("/:id", c.quiz.GetSession)
		quiz.POST("/:id/answer", c.quiz.Answer)
		quiz.POST("/:id/next", c.quiz.Next)
		quiz.POST("/:id/restart", c.quiz.Restart)
	}
}

func (a *App) registerUserRoutes(api *gin.RouterGroup, c *controllers) {
	users := api.Group("/users")
	{
		users.POST("", c.user.CreateUser)
		users.GET("", c.user.ListUsers)
		users.GET("/:id", c.user.GetUser)
	}

	auth := api.Group("/auth")
	{
		auth.POST("/login", c.auth.Login)
		auth.GET("/me", c.auth.Me)
	}
}

func (a *App) registerLabRoutes(api *gin.RouterGroup, c *controllers) {
	network := api.Group("/network")
	{
		network.GET("/public-ip", c.network.PublicIP)
		network.POST("/analyze-url", c.network.AnalyzeURL)
		network.GET("/ip-exercise", c.network.IPExercise)
		network.GET("/dns-exercise", c.network.DNSExercise)
		network.GET("/internet-stats", c.network.InternetStats)
		network.GET("/classify-ip", c.network.ClassifyIP)
	}

	playground := api.Group("/playground")
	{
		playground.GET("/posts", c.playground.ListPosts)
		playground.GET("/posts/:id", c.playground.GetPost)
		playground.POST("/posts", c.playground.CreatePost)
		playground.PUT("/posts/:id", c.playground.UpdatePost)
		playground.DELETE("/posts/:id", c.playground.DeletePost)
		playground.GET("/users", c.playground.ListUsers)
		playground.GET("/comments", c.playground.ListComments)
		playground.GET("/todos", c.playground.ListTodos)
		playground.GET("/albums", c.playground.ListAlbums)
	}
}

func (a *App) registerDebugRoutes(api *gin.RouterGroup, c *controllers) {
	debug := api.Group("/debug")
	{
		debug.GET("/lessons", c.content.DebugLessons)
		debug.POST("/modules/:id/publish", c.content.PublishModule)
		debug.POST("/modules/:id/archive", c.content.ArchiveModule)
		debug.POST("/lessons/:id/publish", c.content.PublishLesson)
		debug.POST("/lessons/:id/archive", c.content.ArchiveLesson)
	}
}
