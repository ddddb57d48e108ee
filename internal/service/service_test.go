package service

import (
	"fmt"
	"strings"
	"study_portal_backend/internal/catalog"
	"study_portal_backend/internal/config"
	"study_portal_backend/internal/model"
	"study_portal_backend/internal/repository"
	"study_portal_backend/pkg/database"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	adminViewer   = &catalog.Viewer{Email: "admin@sppu.com", Role: model.RoleAdmin}
	studentViewer = &catalog.Viewer{Email: "student@sppu.com", Role: model.RoleUser}
	otherViewer   = &catalog.Viewer{Email: "other@sppu.com", Role: model.RoleUser}
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server:  config.ServerConfig{Mode: "test", MaxUploadMB: 1},
		JWT:     config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
		Storage: config.StorageConfig{Type: "local", LocalPath: t.TempDir()},
		Catalog: config.CatalogConfig{NotesPageSize: 6, RecentCount: 4},
		Chat:    config.ChatConfig{Provider: "gemini", Model: "gemini-2.5-flash"},
	}
}

func newAuthService(t *testing.T) (*AuthService, *SettingsService) {
	t.Helper()
	db := newTestDB(t)
	settings := NewSettingsService(repository.NewSettingRepository(db))
	return NewAuthService(repository.NewUserRepository(db), settings, newTestConfig(t)), settings
}
