package database

import (
	"context"
	"fmt"
	"log"
	"study_portal_backend/internal/config"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

// InitRedis 未启用时返回 nil 客户端，调用方需处理无缓存的情况。
// Embedded 模式下启动进程内的 miniredis，无需外部服务。
func InitRedis(cfg *config.RedisConfig) (*redis.Client, func(), error) {
	noop := func() {}
	if !cfg.Enabled {
		log.Println("Redis disabled, chat replies will not be cached")
		return nil, noop, nil
	}

	if cfg.Embedded {
		mr, err := miniredis.Run()
		if err != nil {
			return nil, noop, fmt.Errorf("failed to start embedded redis: %w", err)
		}
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		log.Printf("Embedded Redis started on %s", mr.Addr())
		return rdb, func() {
			rdb.Close()
			mr.Close()
		}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     20,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, noop, err
	}

	log.Println("Redis connection established")
	return rdb, func() { rdb.Close() }, nil
}
