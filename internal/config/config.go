package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Admin     AdminConfig
	Storage   StorageConfig
	Tracing   TracingConfig `mapstructure:"tracing"`
	Redis     RedisConfig
	Chat      ChatConfig
	Catalog   CatalogConfig
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
	// 聊天接口单独限流
	ChatPerMinute int `mapstructure:"chat_per_minute"`
}

// ChatConfig AI 助手配置，APIKey 为空时助手返回未配置提示
type ChatConfig struct {
	Provider       string        `mapstructure:"provider"`
	APIKey         string        `mapstructure:"api_key"`
	Model          string        `mapstructure:"model"`
	BaseURL        string        `mapstructure:"base_url"`
	TimeoutSeconds int           `mapstructure:"timeout_seconds"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl_minutes"`
}

func (c ChatConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type ServerConfig struct {
	Port          string
	Mode          string
	MaxUploadMB   int64 `mapstructure:"max_upload_mb"`
	SeedMaterials bool  `mapstructure:"seed_materials"`
}

// DatabaseConfig 默认使用内存 SQLite，重启后数据不保留
type DatabaseConfig struct {
	DSN     string `mapstructure:"dsn"`
	LogMode string `mapstructure:"log_mode"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	MinioUseSSL   bool   `mapstructure:"minio_use_ssl"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type RedisConfig struct {
	Enabled  bool
	Embedded bool
	Host     string
	Port     int
	Password string
	DB       int
}

type CatalogConfig struct {
	NotesPageSize int `mapstructure:"notes_page_size"`
	RecentCount   int `mapstructure:"recent_count"`
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.max_upload_mb", 25)
	viper.SetDefault("server.seed_materials", true)
	viper.SetDefault("database.dsn", "file::memory:?cache=shared")
	viper.SetDefault("database.log_mode", "warn")
	viper.SetDefault("jwt.expire_hours", 24)
	viper.SetDefault("admin.email", "admin@sppu.com")
	viper.SetDefault("admin.name", "Admin User")
	viper.SetDefault("redis.enabled", true)
	viper.SetDefault("redis.embedded", true)
	viper.SetDefault("storage.type", "local")
	viper.SetDefault("storage.local_path", "uploads")
	viper.SetDefault("chat.provider", "gemini")
	viper.SetDefault("chat.model", "gemini-2.5-flash")
	viper.SetDefault("chat.timeout_seconds", 15)
	viper.SetDefault("chat.cache_ttl_minutes", 30)
	viper.SetDefault("catalog.notes_page_size", 6)
	viper.SetDefault("catalog.recent_count", 4)
	viper.SetDefault("rate_limit.max_requests", 1000)
	viper.SetDefault("rate_limit.window_minutes", 1)
	viper.SetDefault("rate_limit.chat_per_minute", 10)
}

func LoadConfig(path string) (*Config, error) {
	// .env 只做补充，不覆盖已存在的环境变量
	_ = godotenv.Load()

	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("STUDY_PORTAL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Admin
	viper.BindEnv("admin.email", "ADMIN_EMAIL")
	viper.BindEnv("admin.password", "ADMIN_PASSWORD")

	// Redis
	viper.BindEnv("redis.enabled", "REDIS_ENABLED")
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")
	viper.BindEnv("server.port", "PORT")

	// Chat：兼容前端项目中的 GEMINI_API_KEY / API_KEY
	viper.BindEnv("chat.api_key", "GEMINI_API_KEY", "API_KEY")
	viper.BindEnv("chat.provider", "CHAT_PROVIDER")
	viper.BindEnv("chat.model", "CHAT_MODEL")
	viper.BindEnv("chat.base_url", "CHAT_BASE_URL")

	// Storage
	viper.BindEnv("storage.type", "STORAGE_TYPE")
	viper.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	viper.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	viper.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	viper.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour
	cfg.Chat.CacheTTL = cfg.Chat.CacheTTL * time.Minute

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	// 生产环境校验 JWT Secret 强度
	if c.Server.Mode == "release" && len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(c.JWT.Secret))
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required")
	}
	switch c.Chat.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("unsupported chat provider %q", c.Chat.Provider)
	}
	if c.Catalog.NotesPageSize <= 0 {
		c.Catalog.NotesPageSize = 6
	}
	if c.Catalog.RecentCount <= 0 {
		c.Catalog.RecentCount = 4
	}
	return nil
}
