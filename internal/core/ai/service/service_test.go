package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"recipebot/internal/core/ai/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*provider.Response)
	return resp, args.Error(1)
}

func (m *mockProvider) GetModel() string { return "test/model" }

func (m *mockProvider) GetTimeout() time.Duration { return time.Second }

func (m *mockProvider) Close() error {
	return m.Called().Error(0)
}

func userPrompt(content string) interface{} {
	return mock.MatchedBy(func(req *provider.Request) bool {
		return len(req.Messages) == 1 &&
			req.Messages[0].Role == provider.RoleUser &&
			req.Messages[0].Content == content &&
			req.MaxTokens == 1000
	})
}

func TestService_Generate(t *testing.T) {
	p := new(mockProvider)
	p.On("Generate", mock.Anything, userPrompt("Cook with:\n2kg pork")).
		Return(&provider.Response{Content: "Title: Pork Stew", Usage: provider.Usage{TotalTokens: 42}}, nil)

	core, logs := observer.New(zapcore.InfoLevel)
	svc := NewService(p, zap.New(core), 1000, 0.7)

	content, err := svc.Generate(context.Background(), "Cook with:\n2kg pork")
	require.NoError(t, err)
	assert.Equal(t, "Title: Pork Stew", content)
	p.AssertExpectations(t)

	entries := logs.FilterMessage("AI call succeeded").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "test/model", entries[0].ContextMap()["model"])
	assert.EqualValues(t, 42, entries[0].ContextMap()["total_tokens"])
}

func TestService_Generate_ProviderError(t *testing.T) {
	cause := errors.New("status 502")
	p := new(mockProvider)
	p.On("Generate", mock.Anything, mock.Anything).Return(nil, cause)

	core, logs := observer.New(zapcore.InfoLevel)
	svc := NewService(p, zap.New(core), 1000, 0.7)

	_, err := svc.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, logs.FilterMessage("AI call failed").Len())
}

func TestService_Generate_EmptyContent(t *testing.T) {
	p := new(mockProvider)
	p.On("Generate", mock.Anything, mock.Anything).Return(&provider.Response{Content: "  \n"}, nil)

	_, err := NewService(p, nil, 1000, 0.7).Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestService_Close(t *testing.T) {
	p := new(mockProvider)
	p.On("Close").Return(nil).Once()

	assert.NoError(t, NewService(p, nil, 1000, 0.7).Close())
	p.AssertExpectations(t)
}
