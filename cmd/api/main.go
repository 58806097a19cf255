package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipebot/internal/api"
	"recipebot/internal/core/ai/openrouter"
	aiService "recipebot/internal/core/ai/service"
	"recipebot/internal/core/recipe"
	"recipebot/internal/infrastructure/config"
	"recipebot/internal/pkg/common"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 載入 .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	logger, cleanup, err := common.NewLogger(common.LogOptions{
		Level: cfg.LogLevel,
		Mode:  cfg.LogMode,
		Dir:   cfg.LogDir,
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := run(cfg, logger); err != nil {
		logger.Error("服務器異常停止", zap.Error(err))
		cleanup()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("設定載入完成",
		zap.String("openrouter_api_key_masked", config.MaskAPIKey(cfg.OpenRouter.APIKey)),
		zap.String("openrouter_model", cfg.OpenRouter.Model),
		zap.String("template_path", cfg.Prompt.TemplatePath),
	)

	// 載入 prompt 模板
	composer, err := recipe.LoadTemplate(cfg.Prompt.TemplatePath, cfg.Prompt.Placeholder)
	if err != nil {
		return fmt.Errorf("failed to load prompt template: %w", err)
	}

	// 初始化 AI 服務
	client := openrouter.NewClient(cfg.OpenRouter, logger)
	ai := aiService.NewService(client, logger, cfg.OpenRouter.MaxTokens, cfg.OpenRouter.Temperature)
	defer ai.Close()

	recipeSvc := recipe.NewRecipeService(ai, composer, logger, recipe.WithTimeout(client.GetTimeout()))

	// 設置 HTTP 服務器
	srv := api.NewServer(cfg, api.SetupRouter(cfg, logger, recipeSvc))

	// 啟動服務器
	errCh := make(chan error, 1)
	go func() {
		logger.Info("啟動應用",
			zap.String("addr", srv.Addr),
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-quit:
	}

	logger.Warn("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Warn("Server exited")
	return nil
}
