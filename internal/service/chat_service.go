package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"study_portal_backend/internal/config"
	"study_portal_backend/internal/util"
	"study_portal_backend/pkg/logger"
	"study_portal_backend/pkg/monitoring"
	"study_portal_backend/pkg/tracing"
	"sync"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	ReplyNotConfigured = "The AI assistant is not configured. Please set the API_KEY environment variable."
	ReplyUnavailable   = "I'm having trouble connecting to my brain right now. Please try again in a moment."

	chatCacheKeyPrefix = "chat_reply:"
)

// SystemInstruction 固定的助手设定，每次请求都会带上
const SystemInstruction = `You are a specialized AI assistant for Savitribai Phule Pune University (SPPU) engineering students studying the 2024 curriculum. Your goal is to provide clear, concise, and accurate information. Be friendly and encouraging.

You have knowledge about:
- **Curriculum & Syllabus:** The 2024 pattern syllabus for all branches (Computer, IT, Mechanical, Civil, Electrical, ENTC) and all years (1st to 4th). The first year is common for all branches.
- **Common First Year Subjects:** Engineering Mathematics I, Engineering Physics, Engineering Chemistry, Basic Electrical Engineering, Basic Electronics Engineering, Programming and Problem Solving.
- **Exam Patterns:** The typical structure of In-Semester Exams (ISE), End-Semester Exams (ESE), and practical/oral exams.
- **Previous Year Question Papers (PYQs):** You can describe common question types and important topics based on past papers.
- **Study Resources:** You can recommend study strategies and types of materials (notes, model papers) for effective preparation.
- **App Features:** The app has a 'Notes' section where users can create personal notes, add comma-separated tags (e.g., 'maths, unit-1, calculus'), and then search or filter by those tags to find them easily.

When asked a question, provide a direct answer based on this context. Do not invent information. If you don't know the answer, say so. For example, if asked for a specific question from a 2023 paper, you can say, "I can't provide the exact question, but I can tell you that questions on that topic are very common for that subject."`

// ProviderFactory 根据配置创建模型客户端，测试中可替换
type ProviderFactory func(ctx context.Context, cfg config.ChatConfig) (ChatProvider, error)

func DefaultProviderFactory(ctx context.Context, cfg config.ChatConfig) (ChatProvider, error) {
	if cfg.Provider == util.ChatProviderOpenAI {
		return NewOpenAIProvider(cfg), nil
	}
	return NewGeminiProvider(ctx, cfg)
}

// providerHandle 记录正在使用该客户端的请求数，替换后等请求结束再关闭
type providerHandle struct {
	ChatProvider
	inflight sync.WaitGroup
}

// ChatService AI 学习助手。RunChat 从不返回错误：
// 未配置密钥返回固定提示，调用失败返回致歉文本。
type ChatService struct {
	mu       sync.RWMutex
	cfg      config.ChatConfig
	provider *providerHandle
	initErr  error

	Redis   *redis.Client
	factory ProviderFactory
}

func NewChatService(cfg config.ChatConfig, rdb *redis.Client, factory ProviderFactory) *ChatService {
	if factory == nil {
		factory = DefaultProviderFactory
	}
	s := &ChatService{Redis: rdb, factory: factory}
	s.UpdateConfig(cfg)
	return s
}

// UpdateConfig 配置文件变更时替换模型客户端
func (s *ChatService) UpdateConfig(cfg config.ChatConfig) {
	var (
		handle *providerHandle
		err    error
	)
	if cfg.APIKey != "" {
		var provider ChatProvider
		provider, err = s.factory(context.Background(), cfg)
		if err != nil {
			logger.Log.Error("Failed to initialize chat provider", zap.String("provider", cfg.Provider), zap.Error(err))
		} else {
			handle = &providerHandle{ChatProvider: provider}
		}
	}

	s.mu.Lock()
	old := s.provider
	s.cfg = cfg
	s.provider = handle
	s.initErr = err
	s.mu.Unlock()

	if old != nil && (handle == nil || old.ChatProvider != handle.ChatProvider) {
		go closeProvider(old)
	}
	logger.Log.Info("Chat provider configured",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model),
		zap.Bool("apiKey", cfg.APIKey != ""))
}

// closeProvider 等待仍在使用旧客户端的请求结束后关闭
func closeProvider(h *providerHandle) {
	h.inflight.Wait()
	if closer, ok := h.ChatProvider.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Log.Warn("Failed to close chat provider", zap.Error(err))
		}
	}
}

// acquire 返回当前配置和客户端；客户端非空时调用方结束后需调用 inflight.Done
func (s *ChatService) acquire() (config.ChatConfig, *providerHandle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.provider != nil {
		s.provider.inflight.Add(1)
	}
	return s.cfg, s.provider, s.initErr
}

func (s *ChatService) RunChat(ctx context.Context, prompt string) string {
	cfg, provider, initErr := s.acquire()
	if provider != nil {
		defer provider.inflight.Done()
	}
	if cfg.APIKey == "" {
		monitoring.ChatReplies.WithLabelValues(cfg.Provider, "not_configured").Inc()
		return ReplyNotConfigured
	}
	if provider == nil {
		logger.Log.Error("Chat provider unavailable", zap.Error(initErr))
		monitoring.ChatReplies.WithLabelValues(cfg.Provider, "fallback").Inc()
		return ReplyUnavailable
	}

	ctx, span := tracing.StartSpan(ctx, "chat.run",
		attribute.String("chat.provider", provider.Name()),
		attribute.String("chat.model", cfg.Model))
	defer span.End()

	key := chatCacheKey(cfg, prompt)
	if reply, ok := s.cached(ctx, key); ok {
		span.SetAttributes(attribute.Bool("chat.cached", true))
		monitoring.ChatReplies.WithLabelValues(provider.Name(), "cached").Inc()
		return reply
	}

	callCtx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	reply, err := provider.Generate(callCtx, SystemInstruction, prompt)
	if err != nil {
		tracing.RecordError(span, err)
		logger.Log.Error("Chat provider error", zap.String("provider", provider.Name()), zap.Error(err))
		monitoring.ChatReplies.WithLabelValues(provider.Name(), "fallback").Inc()
		return ReplyUnavailable
	}

	s.store(ctx, key, reply, cfg)
	monitoring.ChatReplies.WithLabelValues(provider.Name(), "ok").Inc()
	return reply
}

// 缓存读写失败不影响回复
func (s *ChatService) cached(ctx context.Context, key string) (string, bool) {
	if s.Redis == nil {
		return "", false
	}
	reply, err := s.Redis.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("Chat cache read failed", zap.Error(err))
		}
		return "", false
	}
	return reply, true
}

func (s *ChatService) store(ctx context.Context, key, reply string, cfg config.ChatConfig) {
	if s.Redis == nil || cfg.CacheTTL <= 0 {
		return
	}
	if err := s.Redis.Set(ctx, key, reply, cfg.CacheTTL).Err(); err != nil {
		logger.Log.Warn("Chat cache write failed", zap.Error(err))
	}
}

// chatCacheKey 同一模型下，大小写和首尾空白不同的问题共用缓存
func chatCacheKey(cfg config.ChatConfig, prompt string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(prompt), " "))
	sum := sha256.Sum256([]byte(cfg.Provider + "|" + cfg.Model + "|" + normalized))
	return chatCacheKeyPrefix + hex.EncodeToString(sum[:])
}
