package app

import (
	"context"
	"creai_edu_backend/internal/config"
	"creai_edu_backend/internal/controller"
	"creai_edu_backend/internal/exercise"
	"creai_edu_backend/internal/render"
	"creai_edu_backend/internal/repository"
	"creai_edu_backend/internal/seed"
	"creai_edu_backend/internal/service"
	"creai_edu_backend/pkg/configwatcher"
	"creai_edu_backend/pkg/database"
	"creai_edu_backend/pkg/jsonplaceholder"
	"creai_edu_backend/pkg/logger"
	"creai_edu_backend/pkg/monitoring"
	"creai_edu_backend/pkg/tracing"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	Catalog         *service.CatalogService
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	module   repository.ModuleRepository
	lesson   repository.LessonRepository
	exercise repository.ExerciseRepository
	user     repository.UserRepository
}

type services struct {
	storage          *service.StorageService
	catalog          *service.CatalogService
	content          *service.ContentService
	progress         *service.ProgressService
	exercise         *service.ExerciseService
	quiz             *service.QuizService
	user             *service.UserService
	auth             *service.AuthService
	network          *service.NetworkService
	playground       *service.PlaygroundService
	sandbox          *exercise.Sandbox
	exerciseSessions *service.SessionStore[*exercise.Session]
	quizSessions     *service.SessionStore[*service.QuizSession]
}

type controllers struct {
	content    *controller.ContentController
	lesson     *controller.LessonController
	exercise   *controller.ExerciseController
	quiz       *controller.QuizController
	user       *controller.UserController
	auth       *controller.AuthController
	network    *controller.NetworkController
	playground *controller.PlaygroundController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// initRepositories db 为 nil 时使用内存存储
func (a *App) initRepositories(db *gorm.DB) *repositories {
	if db == nil {
		return &repositories{
			module:   repository.NewMemoryModuleRepository(),
			lesson:   repository.NewMemoryLessonRepository(),
			exercise: repository.NewMemoryExerciseRepository(),
			user:     repository.NewMemoryUserRepository(),
		}
	}
	return &repositories{
		module:   repository.NewGormModuleRepository(db),
		lesson:   repository.NewGormLessonRepository(db),
		exercise: repository.NewGormExerciseRepository(db),
		user:     repository.NewGormUserRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(&cfg.Storage)
	if err != nil {
		return nil, err
	}
	s.storage = storage
	s.catalog = service.NewCatalogService(storage, seed.Repositories{
		Modules:   repos.module,
		Lessons:   repos.lesson,
		Exercises: repos.exercise,
	})

	s.content = service.NewContentService(repos.module, repos.lesson, render.NewRenderer(), rdb, cfg.CacheTTL())
	s.progress = service.NewProgressService(repos.lesson)

	s.sandbox = exercise.NewSandbox(cfg.Sandbox)
	s.exerciseSessions = service.NewSessionStore[*exercise.Session](cfg.SessionTTL())
	s.quizSessions = service.NewSessionStore[*service.QuizSession](cfg.SessionTTL())
	s.exercise = service.NewExerciseService(repos.exercise, s.sandbox, s.exerciseSessions, s.progress)
	s.quiz = service.NewQuizService(s.content, s.quizSessions, s.progress)

	s.user = service.NewUserService(repos.user)
	s.auth = service.NewAuthService(repos.user, cfg)

	s.network = service.NewNetworkService(&cfg.Network, rdb, cfg.CacheTTL())
	s.playground = service.NewPlaygroundService(jsonplaceholder.New(cfg.Network.JSONPlaceholderURL, cfg.NetworkTimeout()))

	return s, nil
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		content:    controller.NewContentController(s.content),
		lesson:     controller.NewLessonController(s.content, s.progress),
		exercise:   controller.NewExerciseController(s.exercise),
		quiz:       controller.NewQuizController(s.quiz),
		user:       controller.NewUserController(s.user),
		auth:       controller.NewAuthController(s.auth),
		network:    controller.NewNetworkController(s.network),
		playground: controller.NewPlaygroundController(s.playground),
		health:     controller.NewHealthController(a.DB, a.Redis),
	}
}

// NewApp 初始化日志、存储、缓存与追踪，然后装配路由
func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == gin.DebugMode)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("initialize redis: %w", err)
	}

	app, err := newApp(context.Background(), cfg, db, rdb)
	if err != nil {
		return nil, err
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("creai-edu-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, fmt.Errorf("initialize tracing: %w", err)
		}
		app.tracer = tp
	}
	return app, nil
}

func newApp(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*App, error) {
	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		return nil, err
	}
	app.services = services
	app.Catalog = services.catalog

	if _, err := services.catalog.Bootstrap(ctx, cfg.Catalog.Bundle); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	app.RegisterConfigCallback(logger.SetLevel)
	app.RegisterConfigCallback(func(c *config.Config) {
		services.sandbox.SetTimeout(c.SandboxTimeout())
	})

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, app.initControllers(services), cfg)

	return app, nil
}

// startBackgroundTasks 会话清理与配置热加载，ctx 结束时退出
func (a *App) startBackgroundTasks(ctx context.Context, wg *sync.WaitGroup) {
	interval := a.Config.SessionTTL() / 2
	wg.Add(2)
	go func() {
		defer wg.Done()
		a.services.exerciseSessions.RunJanitor(ctx, interval)
	}()
	go func() {
		defer wg.Done()
		a.services.quizSessions.RunJanitor(ctx, interval)
	}()

	if a.Config.File == "" {
		return
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		err := configwatcher.WatchConfig(ctx, a.Config.File, func(c *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(c)
			}
		})
		if err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

func (a *App) Run() error {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	a.startBackgroundTasks(ctx, &wg)

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	var runErr error
	select {
	case <-quit:
		logger.Log.Info("Shutting down server...")
	case runErr = <-errCh:
		logger.Log.Error("Server failed", zap.Error(runErr))
	}

	cancel()
	wg.Wait()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
	return runErr
}
