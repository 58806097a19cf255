package recipe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultGenerateTimeout AI 生成的逾時時間
const DefaultGenerateTimeout = 30 * time.Second

const (
	genericInternalMessage    = "Internal server error occurred"
	genericUnavailableMessage = "Recipe generation service is temporarily unavailable"
)

// Generator 外部 AI 生成服務
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// RecipeService 食譜生成流程：驗證 → 組合 prompt → 呼叫 AI → 解析
type RecipeService struct {
	validator *IngredientValidator
	composer  *PromptComposer
	generator Generator
	logger    *zap.Logger
	timeout   time.Duration
}

// Option RecipeService 選項
type Option func(*RecipeService)

// WithTimeout 設定 AI 呼叫逾時
func WithTimeout(d time.Duration) Option {
	return func(s *RecipeService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewRecipeService 創建新的食譜生成服務
func NewRecipeService(generator Generator, composer *PromptComposer, logger *zap.Logger, opts ...Option) *RecipeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &RecipeService{
		validator: NewIngredientValidator(),
		composer:  composer,
		generator: generator,
		logger:    logger,
		timeout:   DefaultGenerateTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateRecipe 根據食材生成食譜
func (s *RecipeService) GenerateRecipe(ctx context.Context, ingredients []string) (out Outcome) {
	log := s.logger.With(zap.Int("ingredient_count", len(ingredients)))
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Error("Recipe generation panicked", zap.Any("panic", r))
			out = Failure(ErrorKindInternal, genericInternalMessage, fmt.Errorf("panic: %v", r))
		}
		s.logOutcome(log, out, time.Since(start))
	}()

	log.Info("Processing recipe request")

	// 驗證
	if err := s.validator.Validate(ingredients); err != nil {
		verr, ok := AsValidationError(err)
		if !ok {
			return Failure(ErrorKindInternal, genericInternalMessage, err)
		}
		log.Warn("Ingredient validation failed",
			zap.String("reason", string(verr.Reason)),
			zap.Int("index", verr.Index),
		)
		return ValidationFailure(verr)
	}
	log.Info("Ingredients validated")

	// 組合 prompt
	if s.composer == nil {
		return Failure(ErrorKindInternal, genericInternalMessage, errors.New("prompt composer not configured"))
	}
	prompt, err := s.composer.Compose(ingredients)
	if err != nil {
		log.Error("Failed to compose prompt", zap.Error(err))
		return Failure(ErrorKindInternal, genericInternalMessage, err)
	}
	log.Info("Prompt generated", zap.Int("prompt_length", len(prompt)))

	// 呼叫 AI
	if s.generator == nil {
		return Failure(ErrorKindInternal, genericInternalMessage, errors.New("generator not configured"))
	}
	aiCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	content, err := s.callGenerator(aiCtx, prompt)
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		switch {
		case errors.Is(aiCtx.Err(), context.DeadlineExceeded):
			fields = append(fields, zap.Duration("timeout", s.timeout))
			log.Error("AI request timeout", fields...)
		case errors.Is(ctx.Err(), context.Canceled):
			log.Warn("AI request cancelled", fields...)
		default:
			log.Error("AI request failed", fields...)
		}
		return Failure(ErrorKindUpstreamUnavailable, genericUnavailableMessage, err)
	}
	log.Info("AI response received", zap.Int("content_length", len(content)))

	// 解析
	return ExtractRecipe(content)
}

type generateResult struct {
	content string
	err     error
	panic   interface{}
}

// callGenerator 在 ctx 結束時立即返回，不等待忽略 ctx 的生成器；逾時後才到的結果一律捨棄
func (s *RecipeService) callGenerator(ctx context.Context, prompt string) (string, error) {
	done := make(chan generateResult, 1)
	go func() {
		var res generateResult
		defer func() {
			if r := recover(); r != nil {
				res = generateResult{panic: r}
			}
			done <- res
		}()
		res.content, res.err = s.generator.Generate(ctx, prompt)
	}()

	select {
	case res := <-done:
		if res.panic != nil {
			panic(res.panic)
		}
		if res.err == nil && ctx.Err() != nil {
			return "", ctx.Err()
		}
		return res.content, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *RecipeService) logOutcome(log *zap.Logger, out Outcome, elapsed time.Duration) {
	fields := []zap.Field{
		zap.String("outcome", out.Kind.String()),
		zap.Duration("elapsed", elapsed),
	}
	switch out.Kind {
	case OutcomeSuccess:
		log.Info("Recipe generated", append(fields, zap.String("title", out.Recipe.Title))...)
	case OutcomeInsufficientData:
		log.Info("AI reported insufficient ingredients", fields...)
	case OutcomeFailure:
		log.Warn("Recipe generation failed", append(fields, zap.String("error_kind", string(out.Err.Kind)))...)
	}
}
