package recipe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// blockingGenerator 等到 context 結束才返回
type blockingGenerator struct{}

func (blockingGenerator) Generate(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

// sleepyGenerator 忽略 ctx，睡滿指定時間後回傳合法食譜
type sleepyGenerator struct {
	delay time.Duration
}

func (g sleepyGenerator) Generate(context.Context, string) (string, error) {
	time.Sleep(g.delay)
	return "Title: Late Stew\nIngredients:\n- 2kg pork\nInstructions:\n1. Cook", nil
}

type panickingGenerator struct{}

func (panickingGenerator) Generate(context.Context, string) (string, error) {
	panic("boom")
}

func newTestService(t *testing.T, gen Generator, opts ...Option) (*RecipeService, *observer.ObservedLogs) {
	t.Helper()
	composer, err := NewPromptComposer("Cook with: {ingredients}", DefaultPlaceholder)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	return NewRecipeService(gen, composer, zap.New(core), opts...), logs
}

func TestGenerateRecipe_Success(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, "Cook with: 2kg pork, 1kg potatoes, 0.5kg onions").
		Return("Title: Pork Stew\nIngredients:\n- 2kg pork\nInstructions:\n1. Cook\nCooking time: 45 minutes", nil).
		Once()

	svc, logs := newTestService(t, gen)
	out := svc.GenerateRecipe(context.Background(), []string{"2kg pork", "1kg potatoes", "0.5kg onions"})

	require.Equal(t, OutcomeSuccess, out.Kind)
	assert.Equal(t, &Recipe{
		Title:        "Pork Stew",
		Ingredients:  []string{"2kg pork"},
		Instructions: []string{"Cook"},
		CookingTime:  "45 minutes",
	}, out.Recipe)
	gen.AssertExpectations(t)

	for _, msg := range []string{
		"Processing recipe request",
		"Ingredients validated",
		"Prompt generated",
		"AI response received",
		"Recipe generated",
	} {
		assert.Equal(t, 1, logs.FilterMessage(msg).Len(), msg)
	}
}

func TestGenerateRecipe_InsufficientData(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).
		Return("need to provide more ingredients because the list is too small", nil)

	svc, logs := newTestService(t, gen)
	out := svc.GenerateRecipe(context.Background(), []string{"1 cup rice"})

	assert.Equal(t, OutcomeInsufficientData, out.Kind)
	assert.Nil(t, out.Recipe)
	assert.Equal(t, 1, logs.FilterMessage("AI reported insufficient ingredients").Len())
}

func TestGenerateRecipe_ValidationSkipsGenerator(t *testing.T) {
	gen := new(mockGenerator)
	svc, logs := newTestService(t, gen)

	out := svc.GenerateRecipe(context.Background(), []string{"pork", "potatoes"})

	require.Equal(t, OutcomeFailure, out.Kind)
	assert.Equal(t, ErrorKindValidation, out.Err.Kind)
	assert.Equal(t, ReasonMissingQuantity, out.Err.Reason)
	assert.Equal(t, ReasonMissingQuantity.Message(), out.Err.Message)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)

	entries := logs.FilterMessage("Ingredient validation failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, string(ReasonMissingQuantity), entries[0].ContextMap()["reason"])
}

func TestGenerateRecipe_EmptyList(t *testing.T) {
	gen := new(mockGenerator)
	svc, _ := newTestService(t, gen)

	out := svc.GenerateRecipe(context.Background(), nil)

	require.Equal(t, OutcomeFailure, out.Kind)
	assert.Equal(t, ReasonEmptyList, out.Err.Reason)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestGenerateRecipe_UpstreamFailure(t *testing.T) {
	upstream := errors.New("connection refused")
	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return("", upstream)

	svc, logs := newTestService(t, gen)
	out := svc.GenerateRecipe(context.Background(), []string{"2kg pork"})

	require.Equal(t, OutcomeFailure, out.Kind)
	assert.Equal(t, ErrorKindUpstreamUnavailable, out.Err.Kind)
	assert.ErrorIs(t, out.Err, upstream)
	assert.NotContains(t, out.Err.Message, "connection refused")
	assert.Equal(t, 1, logs.FilterMessage("AI request failed").Len())
}

func TestGenerateRecipe_Timeout(t *testing.T) {
	svc, logs := newTestService(t, blockingGenerator{}, WithTimeout(20*time.Millisecond))

	start := time.Now()
	out := svc.GenerateRecipe(context.Background(), []string{"2kg pork"})

	assert.Less(t, time.Since(start), 5*time.Second)
	require.Equal(t, OutcomeFailure, out.Kind)
	assert.Equal(t, ErrorKindUpstreamUnavailable, out.Err.Kind)
	assert.ErrorIs(t, out.Err, context.DeadlineExceeded)
	assert.Equal(t, 1, logs.FilterMessage("AI request timeout").Len())
}

func TestGenerateRecipe_TimeoutWithGeneratorIgnoringContext(t *testing.T) {
	svc, logs := newTestService(t, sleepyGenerator{delay: 300 * time.Millisecond}, WithTimeout(20*time.Millisecond))

	start := time.Now()
	out := svc.GenerateRecipe(context.Background(), []string{"2kg pork"})
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 200*time.Millisecond)
	require.Equal(t, OutcomeFailure, out.Kind)
	assert.Nil(t, out.Recipe)
	assert.Equal(t, ErrorKindUpstreamUnavailable, out.Err.Kind)
	assert.Equal(t, genericUnavailableMessage, out.Err.Message)
	assert.ErrorIs(t, out.Err, context.DeadlineExceeded)
	assert.Equal(t, 1, logs.FilterMessage("AI request timeout").Len())
}

func TestGenerateRecipe_Cancelled(t *testing.T) {
	svc, logs := newTestService(t, blockingGenerator{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := svc.GenerateRecipe(ctx, []string{"2kg pork"})

	require.Equal(t, OutcomeFailure, out.Kind)
	assert.Equal(t, ErrorKindUpstreamUnavailable, out.Err.Kind)
	assert.Equal(t, 1, logs.FilterMessage("AI request cancelled").Len())
}

func TestGenerateRecipe_PanicBecomesInternal(t *testing.T) {
	svc, logs := newTestService(t, panickingGenerator{})

	out := svc.GenerateRecipe(context.Background(), []string{"2kg pork"})

	require.Equal(t, OutcomeFailure, out.Kind)
	assert.Equal(t, ErrorKindInternal, out.Err.Kind)
	assert.Equal(t, genericInternalMessage, out.Err.Message)
	assert.Equal(t, 1, logs.FilterMessage("Recipe generation panicked").Len())
	assert.Equal(t, 1, logs.FilterMessage("Recipe generation failed").Len())
}

func TestGenerateRecipe_NotConfigured(t *testing.T) {
	out := NewRecipeService(nil, nil, nil).GenerateRecipe(context.Background(), []string{"2kg pork"})
	require.Equal(t, OutcomeFailure, out.Kind)
	assert.Equal(t, ErrorKindInternal, out.Err.Kind)

	composer, err := NewPromptComposer("{ingredients}", "")
	require.NoError(t, err)
	out = NewRecipeService(nil, composer, nil).GenerateRecipe(context.Background(), []string{"2kg pork"})
	require.Equal(t, OutcomeFailure, out.Kind)
	assert.Equal(t, ErrorKindInternal, out.Err.Kind)
}

func TestWithTimeout_IgnoresNonPositive(t *testing.T) {
	svc := NewRecipeService(nil, nil, nil, WithTimeout(0), WithTimeout(-time.Second))
	assert.Equal(t, DefaultGenerateTimeout, svc.timeout)
}
