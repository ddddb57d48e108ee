// @title Study Portal 后端 API
// @version 1.0
// @description SPPU 学习资料门户的后端服务：资料目录、笔记、论坛、学习计划和 AI 助手。

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"log"
	"study_portal_backend/internal/app"
	"study_portal_backend/internal/config"
	"study_portal_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
