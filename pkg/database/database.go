package database

import (
	"errors"
	"log"
	"study_portal_backend/internal/config"
	"study_portal_backend/internal/model"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func logLevel(mode string) logger.LogLevel {
	switch mode {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// InitDB 打开 SQLite（默认内存库）并完成迁移和初始数据
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Database.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel(cfg.Database.LogMode)),
	})
	if err != nil {
		return nil, err
	}

	// 内存库在连接全部关闭后会被销毁，保持单连接
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetConnMaxLifetime(0)
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := SeedUsers(db, &cfg.Admin); err != nil {
		return nil, err
	}
	if err := SeedSettings(db); err != nil {
		return nil, err
	}
	if err := SeedForum(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.ForumPost{},
		&model.StudyTask{},
		&model.SiteSetting{},
	)
}

type seedUser struct {
	email, password, name string
	role                  model.UserRole
}

// SeedUsers 默认学生账号和配置中的管理员账号，已存在则跳过
func SeedUsers(db *gorm.DB, admin *config.AdminConfig) error {
	users := []seedUser{
		{email: "student@sppu.com", password: "password123", name: "Student User", role: model.RoleUser},
	}
	if admin.Email != "" && admin.Password != "" {
		users = append(users, seedUser{email: admin.Email, password: admin.Password, name: admin.Name, role: model.RoleAdmin})
	} else {
		log.Println("Admin password not configured, skipping admin account")
	}

	for _, u := range users {
		email := model.NormalizeEmail(u.email)
		var existing model.User
		err := db.Where("email = ?", email).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if err := db.Create(&model.User{
			Email:    email,
			Name:     u.name,
			Password: string(hashed),
			Role:     u.role,
			Avatar:   model.AvatarFor(email),
			Theme:    model.ThemeLight,
		}).Error; err != nil {
			return err
		}
	}
	return nil
}

func SeedSettings(db *gorm.DB) error {
	defaults := []model.SiteSetting{
		{Key: model.SettingAnnouncementMessage, Value: ""},
		{Key: model.SettingAnnouncementActive, Value: "false"},
		{Key: model.SettingRegistrationsOpen, Value: "true"},
	}
	for _, s := range defaults {
		var count int64
		db.Model(&model.SiteSetting{}).Where(&model.SiteSetting{Key: s.Key}).Count(&count)
		if count == 0 {
			if err := db.Create(&s).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// SeedForum 论坛默认欢迎帖
func SeedForum(db *gorm.DB) error {
	var count int64
	db.Model(&model.ForumPost{}).Count(&count)
	if count > 0 {
		return nil
	}
	post := &model.ForumPost{
		Title:        "Welcome to the SPPU study forum",
		Content:      "Ask questions about syllabus, exams and resources. Be kind and help each other!",
		AuthorName:   "Admin User",
		AuthorAvatar: model.AvatarFor("admin@sppu.com"),
	}
	post.CreatedAt = time.Now()
	return db.Create(post).Error
}
