package app

import (
	"study_portal_backend/docs"
	"study_portal_backend/internal/config"
	"study_portal_backend/internal/middleware"
	"study_portal_backend/internal/model"
	"study_portal_backend/pkg/monitoring"
	"study_portal_backend/pkg/security"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(可选登录，管理员可见未审核资料)
	a.registerPublicRoutes(router, c, cfg)

	// 2. 需要登录的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg, a.users))
	{
		a.registerUserRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	public.Use(middleware.TryAuthMiddleware(cfg, a.users))
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/announcement", c.admin.GetAnnouncement)

		// AI 助手单独限流
		public.POST("/chat", security.RateLimiter(cfg.RateLimit.ChatPerMinute, time.Minute), c.chat.Chat)

		public.GET("/materials", c.material.ListMaterials)
		public.GET("/materials/recent", c.material.RecentMaterials)
		public.GET("/materials/subjects", c.material.ListSubjects)
		public.GET("/materials/:id", c.material.GetMaterial)
		public.GET("/materials/:id/download", c.material.DownloadMaterial)

		public.GET("/notes", c.note.ListNotes)
		public.GET("/forum/posts", c.forum.ListPosts)
	}
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/user/preferences", c.auth.UpdatePreferences)
	rg.GET("/notifications", c.notify.ListNotifications)

	// 资料与笔记
	rg.POST("/materials", c.material.UploadMaterial)
	rg.DELETE("/materials/:id", c.material.DeleteMaterial)
	rg.POST("/notes", c.note.CreateNote)
	rg.PUT("/notes/:id", c.note.UpdateNote)

	rg.POST("/forum/posts", c.forum.CreatePost)

	// 学习计划
	rg.GET("/planner/tasks", c.task.ListTasks)
	rg.POST("/planner/tasks", c.task.CreateTask)
	rg.PATCH("/planner/tasks/:id/toggle", c.task.ToggleTask)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg, a.users), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.GET("/materials", c.admin.ListMaterials)
		admin.GET("/materials/export", c.admin.ExportMaterials)
		admin.PUT("/materials/:id/approval", c.admin.SetApproval)
		admin.DELETE("/materials/:id", c.material.DeleteMaterial)
		admin.GET("/stats", c.admin.GetStats)

		admin.GET("/users", c.admin.ListUsers)
		admin.PUT("/users/:email/role", c.admin.ChangeRole)

		admin.GET("/settings", c.admin.GetSettings)
		admin.PUT("/settings", c.admin.UpdateSettings)
	}
}
