package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"recipebot/internal/core/ai/provider"

	"go.uber.org/zap"
)

// ErrEmptyContent AI 回傳空白內容
var ErrEmptyContent = errors.New("empty content in AI response")

// Service AI 服務，將 provider 包裝為單一 prompt 進、文字出的生成器
type Service struct {
	provider    provider.Provider
	logger      *zap.Logger
	maxTokens   int
	temperature float64
}

// NewService 創建 AI 服務
func NewService(p provider.Provider, logger *zap.Logger, maxTokens int, temperature float64) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		provider:    p,
		logger:      logger,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// Generate 送出 prompt 並回傳 AI 產生的文字
func (s *Service) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := s.provider.Generate(ctx, provider.UserPrompt(prompt, s.maxTokens, s.temperature))
	duration := time.Since(start)

	if err != nil {
		s.logger.Error("AI call failed",
			zap.String("model", s.provider.GetModel()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return "", fmt.Errorf("ai generate: %w", err)
	}

	if strings.TrimSpace(resp.Content) == "" {
		s.logger.Error("AI call returned empty content",
			zap.String("model", s.provider.GetModel()),
			zap.Duration("duration", duration),
		)
		return "", ErrEmptyContent
	}

	s.logger.Info("AI call succeeded",
		zap.String("model", s.provider.GetModel()),
		zap.Duration("duration", duration),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)
	return resp.Content, nil
}

// Close 釋放 provider 資源
func (s *Service) Close() error {
	return s.provider.Close()
}
