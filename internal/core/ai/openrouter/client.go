package openrouter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"recipebot/internal/core/ai/provider"
	"recipebot/internal/infrastructure/config"
	"recipebot/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	defaultBaseURL     = "https://openrouter.ai/api/v1"
	completionsPath    = "/chat/completions"
	maxLoggedBodyRunes = 500
)

// ErrEmptyChoices 回應中沒有任何 choice
var ErrEmptyChoices = errors.New("empty choices in response")

// Client OpenRouter API 客戶端
type Client struct {
	client  *resty.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

var _ provider.Provider = (*Client)(nil)

// chatRequest 表示 API 請求
type chatRequest struct {
	Model       string             `json:"model"`
	Messages    []provider.Message `json:"messages"`
	MaxTokens   int                `json:"max_tokens,omitempty"`
	Temperature float64            `json:"temperature"`
}

// chatResponse OpenRouter 響應結構
type chatResponse struct {
	ID      string         `json:"id"`
	Model   string         `json:"model"`
	Choices []choice       `json:"choices"`
	Usage   provider.Usage `json:"usage"`
}

type choice struct {
	Message provider.Message `json:"message"`
}

// APIError 表示 API 回傳非 2xx 狀態
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("openrouter returned status %d: %s", e.StatusCode, e.Body)
}

// NewClient 創建新的 OpenRouter 客戶端
func NewClient(cfg config.OpenRouterConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("HTTP-Referer", cfg.Referer).
		SetHeader("X-Title", cfg.Title)

	return &Client{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger.With(zap.String("provider", "openrouter")),
	}
}

// Generate 生成回應
func (c *Client) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	if req == nil || len(req.Messages) == 0 {
		return nil, errors.New("request has no messages")
	}

	body := chatRequest{
		Model:       c.model,
		Messages:    req.Messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	c.logger.Debug("Sending request to OpenRouter",
		zap.String("model", c.model),
		zap.Int("messages", len(req.Messages)),
		zap.Int("max_tokens", req.MaxTokens),
	)

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(completionsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		apiErr := &APIError{
			StatusCode: resp.StatusCode(),
			Body:       common.Truncate(resp.String(), maxLoggedBodyRunes),
		}
		c.logger.Error("OpenRouter returned error status",
			zap.Int("status_code", apiErr.StatusCode),
			zap.String("response", apiErr.Body),
		)
		return nil, apiErr
	}

	// 解析回應
	var result chatResponse
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse OpenRouter response: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, ErrEmptyChoices
	}

	return &provider.Response{
		ID:      result.ID,
		Model:   result.Model,
		Content: result.Choices[0].Message.Content,
		Usage:   result.Usage,
	}, nil
}

// GetModel 獲取當前使用的模型名稱
func (c *Client) GetModel() string {
	return c.model
}

// GetTimeout 獲取請求超時時間
func (c *Client) GetTimeout() time.Duration {
	return c.timeout
}

// Close 關閉客戶端
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
