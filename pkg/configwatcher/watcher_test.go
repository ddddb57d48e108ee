package configwatcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"study_portal_backend/internal/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseConfig = `
server:
  mode: debug
storage:
  type: minio
jwt:
  secret: "watcher-test-secret"
chat:
  provider: gemini
  api_key: "%s"
`

func writeConfig(t *testing.T, path, key string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(baseConfig, key)), 0644))
}

func TestWatchConfigReloadsOnWrite(t *testing.T) {
	Debounce = 50 * time.Millisecond
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeConfig(t, path, "first")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- WatchConfig(ctx, path, func(cfg *config.Config) { reloaded <- cfg })
	}()

	// 等待 watcher 就绪后再修改文件
	time.Sleep(100 * time.Millisecond)
	writeConfig(t, path, "second")

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "second", cfg.Chat.APIKey)
	case <-time.After(3 * time.Second):
		t.Fatal("config was not reloaded")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}
