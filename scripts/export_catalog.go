// 导出初始资料目录为 xlsx，便于核对种子数据
//
// 用法: go run scripts/export_catalog.go [输出文件]

package main

import (
	"log"
	"os"
	"study_portal_backend/internal/catalog"
	"study_portal_backend/internal/config"
	"study_portal_backend/internal/model"
	"study_portal_backend/internal/service"
	"study_portal_backend/pkg/database"
	"time"
)

func main() {
	out := "catalog.xlsx"
	if len(os.Args) > 1 {
		out = os.Args[1]
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	engine := catalog.NewEngine()
	engine.Load(database.SeedMaterials(time.Now()))

	admin := &catalog.Viewer{Email: cfg.Admin.Email, Role: model.RoleAdmin}
	buf, err := service.NewReportService(engine).ExportCatalog(admin)
	if err != nil {
		log.Fatalf("导出失败: %v", err)
	}

	if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
		log.Fatalf("写入文件失败: %v", err)
	}
	log.Printf("已导出 %d 条资料到 %s", engine.Len(), out)
}
