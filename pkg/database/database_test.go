package database

import (
	"context"
	"fmt"
	"study_portal_backend/internal/config"
	"study_portal_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{
			DSN:     fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
			LogMode: "silent",
		},
		Admin: config.AdminConfig{Email: "Admin@SPPU.com", Password: "admin12345", Name: "Admin User"},
	}
}

func TestInitDBSeedsUsersAndSettings(t *testing.T) {
	cfg := testConfig(t)
	db, err := InitDB(cfg)
	require.NoError(t, err)

	var users []model.User
	require.NoError(t, db.Order("id").Find(&users).Error)
	require.Len(t, users, 2)
	assert.Equal(t, "student@sppu.com", users[0].Email)
	assert.Equal(t, model.RoleUser, users[0].Role)
	assert.Equal(t, "admin@sppu.com", users[1].Email)
	assert.Equal(t, model.RoleAdmin, users[1].Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[1].Password), []byte("admin12345")))

	var settings int64
	db.Model(&model.SiteSetting{}).Count(&settings)
	assert.Equal(t, int64(3), settings)

	// 重复执行不会产生重复数据
	require.NoError(t, SeedUsers(db, &cfg.Admin))
	require.NoError(t, SeedSettings(db))
	require.NoError(t, SeedForum(db))
	var count int64
	db.Model(&model.User{}).Count(&count)
	assert.Equal(t, int64(2), count)
	db.Model(&model.ForumPost{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSeedMaterials(t *testing.T) {
	now := time.Now()
	records := SeedMaterials(now)
	require.NotEmpty(t, records)

	seen := make(map[uint64]bool)
	for i, r := range records {
		assert.False(t, seen[r.ID], "duplicate id %d", r.ID)
		seen[r.ID] = true
		assert.True(t, r.Type.Valid())
		assert.True(t, r.Branch.Valid())
		assert.True(t, r.Year.Valid())
		if i > 0 {
			assert.True(t, !r.UploadedAt.After(records[i-1].UploadedAt), "records must be most recent first")
		}
		if r.Type == model.TypeNotes {
			assert.NotEmpty(t, r.Tags)
		}
	}
}

func TestInitRedisDisabled(t *testing.T) {
	rdb, closeFn, err := InitRedis(&config.RedisConfig{Enabled: false})
	assert.NoError(t, err)
	assert.Nil(t, rdb)
	closeFn()
}

func TestInitRedisEmbedded(t *testing.T) {
	rdb, closeFn, err := InitRedis(&config.RedisConfig{Enabled: true, Embedded: true})
	require.NoError(t, err)
	defer closeFn()

	ctx := context.Background()
	require.NoError(t, rdb.Set(ctx, "k", "v", time.Minute).Err())
	got, err := rdb.Get(ctx, "k").Result()
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}
