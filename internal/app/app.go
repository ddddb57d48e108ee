package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"study_portal_backend/internal/catalog"
	"study_portal_backend/internal/config"
	"study_portal_backend/internal/controller"
	"study_portal_backend/internal/middleware"
	"study_portal_backend/internal/repository"
	"study_portal_backend/internal/service"
	"study_portal_backend/pkg/configwatcher"
	"study_portal_backend/pkg/database"
	"study_portal_backend/pkg/logger"
	"study_portal_backend/pkg/monitoring"
	"study_portal_backend/pkg/security"
	"study_portal_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const configFile = "configs/config.yaml"

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	Catalog         *catalog.Engine
	services        *services
	users           middleware.UserLookup
	configCallbacks []func(*config.Config)
	tracer          *sdktrace.TracerProvider
	closeRedis      func()
}

type repositories struct {
	user    *repository.UserRepository
	forum   *repository.ForumRepository
	task    *repository.TaskRepository
	setting *repository.SettingRepository
}

type services struct {
	auth     *service.AuthService
	user     *service.UserService
	settings *service.SettingsService
	storage  *service.StorageService
	material *service.MaterialService
	report   *service.ReportService
	chat     *service.ChatService
	forum    *service.ForumService
	planner  *service.PlannerService
	notify   *service.NotificationService
}

type controllers struct {
	auth     *controller.AuthController
	material *controller.MaterialController
	note     *controller.NoteController
	admin    *controller.AdminController
	forum    *controller.ForumController
	chat     *controller.ChatController
	task     *controller.TaskController
	health   *controller.HealthController
	notify   *controller.NotificationController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) reloadConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:    repository.NewUserRepository(db),
		forum:   repository.NewForumRepository(db),
		task:    repository.NewTaskRepository(db),
		setting: repository.NewSettingRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.settings = service.NewSettingsService(repos.setting)
	s.auth = service.NewAuthService(repos.user, s.settings, cfg)
	s.user = service.NewUserService(repos.user)
	s.material = service.NewMaterialService(a.Catalog, s.storage, cfg)
	s.report = service.NewReportService(a.Catalog)
	s.chat = service.NewChatService(cfg.Chat, rdb, nil)
	s.forum = service.NewForumService(repos.forum, repos.user)
	s.planner = service.NewPlannerService(repos.task)
	s.notify = service.NewNotificationService(database.SeedNotifications())

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth, s.user),
		material: controller.NewMaterialController(s.material),
		note:     controller.NewNoteController(s.material),
		admin:    controller.NewAdminController(s.material, s.report, s.user, s.settings),
		forum:    controller.NewForumController(s.forum),
		chat:     controller.NewChatController(s.chat),
		task:     controller.NewTaskController(s.planner),
		health:   controller.NewHealthController(db, a.Catalog),
		notify:   controller.NewNotificationController(s.notify),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))
	router.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{"/metrics"}),
		gzip.WithExcludedPathsRegexs([]string{`/download$`}),
	))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// loadCatalog 目录只保存在内存中，每次启动重新载入初始资料
func (a *App) loadCatalog(cfg *config.Config) {
	if cfg.Server.SeedMaterials {
		a.Catalog.Load(database.SeedMaterials(time.Now()))
	}
	st := a.Catalog.Stats()
	monitoring.SetCatalogCounts(st.Pending, st.Approved)
	logger.Log.Info("Catalog loaded", zap.Int("materials", st.Total), zap.Int("pending", st.Pending))
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, closeRedis, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 缓存不可用时助手仍可工作
		logger.Log.Warn("Failed to initialize redis, chat cache disabled", zap.Error(err))
	}

	app := &App{
		Config:     cfg,
		DB:         db,
		Redis:      rdb,
		Catalog:    catalog.NewEngine(),
		closeRedis: closeRedis,
	}

	// 监控初始化
	monitoring.Init()
	app.loadCatalog(cfg)

	repos := app.initRepositories(db)
	app.users = repos.user
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		services.chat.UpdateConfig(newCfg.Chat)
	})

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go func() {
		if err := configwatcher.WatchConfig(watchCtx, configFile, a.reloadConfig); err != nil {
			logger.Log.Warn("Config watcher stopped", zap.Error(err))
		}
	}()

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.closeRedis != nil {
		a.closeRedis()
	}

	log.Println("Server exiting")
}
