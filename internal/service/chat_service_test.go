package service

import (
	"context"
	"errors"
	"study_portal_backend/internal/config"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	mu     sync.Mutex
	reply  string
	err    error
	calls  int
	system string
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	p.system = systemInstruction
	if p.err != nil {
		return "", p.err
	}
	return p.reply + ": " + prompt, nil
}

func fakeFactory(p *fakeProvider) ProviderFactory {
	return func(ctx context.Context, cfg config.ChatConfig) (ChatProvider, error) {
		return p, nil
	}
}

func chatConfig(key string) config.ChatConfig {
	return config.ChatConfig{Provider: "gemini", APIKey: key, Model: "gemini-2.5-flash", CacheTTL: time.Minute}
}

func TestChatService_NotConfigured(t *testing.T) {
	p := &fakeProvider{reply: "hi"}
	s := NewChatService(chatConfig(""), nil, fakeFactory(p))

	assert.Equal(t, ReplyNotConfigured, s.RunChat(context.Background(), "What is ISE?"))
	assert.Zero(t, p.calls)
}

func TestChatService_ReplyUsesSystemInstruction(t *testing.T) {
	p := &fakeProvider{reply: "answer"}
	s := NewChatService(chatConfig("key"), nil, fakeFactory(p))

	assert.Equal(t, "answer: What is ISE?", s.RunChat(context.Background(), "What is ISE?"))
	assert.Equal(t, SystemInstruction, p.system)
}

func TestChatService_ProviderErrorFallsBack(t *testing.T) {
	p := &fakeProvider{err: errors.New("quota exceeded")}
	s := NewChatService(chatConfig("key"), nil, fakeFactory(p))

	assert.Equal(t, ReplyUnavailable, s.RunChat(context.Background(), "hello"))
}

func TestChatService_FactoryErrorFallsBack(t *testing.T) {
	s := NewChatService(chatConfig("key"), nil, func(ctx context.Context, cfg config.ChatConfig) (ChatProvider, error) {
		return nil, errors.New("bad key")
	})

	assert.Equal(t, ReplyUnavailable, s.RunChat(context.Background(), "hello"))
}

func TestChatService_CachesReplies(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	p := &fakeProvider{reply: "cached"}
	s := NewChatService(chatConfig("key"), rdb, fakeFactory(p))
	ctx := context.Background()

	first := s.RunChat(ctx, "Exam pattern?")
	second := s.RunChat(ctx, "  exam   PATTERN? ")
	assert.Equal(t, first, second)
	assert.Equal(t, 1, p.calls)

	key := chatCacheKey(chatConfig("key"), "Exam pattern?")
	assert.True(t, mr.Exists(key))
	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists(key))

	s.RunChat(ctx, "Exam pattern?")
	assert.Equal(t, 2, p.calls)
}

func TestChatService_CacheFailureIgnored(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	mr.Close()

	p := &fakeProvider{reply: "ok"}
	s := NewChatService(chatConfig("key"), rdb, fakeFactory(p))

	assert.Equal(t, "ok: hi", s.RunChat(context.Background(), "hi"))
}

func TestChatService_UpdateConfig(t *testing.T) {
	p := &fakeProvider{reply: "v2"}
	s := NewChatService(chatConfig(""), nil, fakeFactory(p))
	require.Equal(t, ReplyNotConfigured, s.RunChat(context.Background(), "q"))

	s.UpdateConfig(chatConfig("new-key"))
	assert.Equal(t, "v2: q", s.RunChat(context.Background(), "q"))

	s.UpdateConfig(chatConfig(""))
	assert.Equal(t, ReplyNotConfigured, s.RunChat(context.Background(), "q"))
}

type blockingProvider struct {
	entered chan struct{}
	release chan struct{}

	mu     sync.Mutex
	closed bool
}

func newBlockingProvider() *blockingProvider {
	return &blockingProvider{entered: make(chan struct{}), release: make(chan struct{})}
}

func (p *blockingProvider) Name() string { return "blocking" }

func (p *blockingProvider) Generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	close(p.entered)
	<-p.release
	if p.isClosed() {
		return "", errors.New("client closed")
	}
	return "done", nil
}

func (p *blockingProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *blockingProvider) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func TestChatService_UpdateConfigWaitsForInflightCalls(t *testing.T) {
	old := newBlockingProvider()
	next := &fakeProvider{reply: "v2"}
	providers := []ChatProvider{old, next}
	s := NewChatService(chatConfig("key"), nil, func(ctx context.Context, cfg config.ChatConfig) (ChatProvider, error) {
		p := providers[0]
		providers = providers[1:]
		return p, nil
	})

	replies := make(chan string, 1)
	go func() { replies <- s.RunChat(context.Background(), "q") }()
	<-old.entered

	s.UpdateConfig(chatConfig("rotated-key"))
	assert.False(t, old.isClosed())
	assert.Equal(t, "v2: q", s.RunChat(context.Background(), "q"))

	close(old.release)
	assert.Equal(t, "done", <-replies)
	assert.Eventually(t, old.isClosed, time.Second, 10*time.Millisecond)
}
