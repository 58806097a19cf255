package api

import (
	"net/http"
	"time"

	"recipebot/internal/api/handlers/health"
	recipeHandler "recipebot/internal/api/handlers/recipe"
	"recipebot/internal/api/middleware"
	"recipebot/internal/infrastructure/config"
	"recipebot/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, logger *zap.Logger, recipeSvc recipeHandler.RecipeGenerator) *gin.Engine {
	logger.Info("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery(logger))
	router.Use(requestid.New()) // 自動生成請求 ID
	router.Use(middleware.Logger(logger))

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(logger, cfg.Server.MaxBodyBytes))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(common.ErrNotFound.Status, common.ErrNotFound.Response())
	})

	// 健康檢查路由
	healthHandler := health.NewHandler(cfg, logger)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	// API 路由組
	api := router.Group("/api")
	if cfg.Server.RequestTimeout > 0 {
		api.Use(middleware.Timeout(logger, cfg.Server.RequestTimeout))
	}
	{
		recipeHandlerInstance := recipeHandler.NewHandler(recipeSvc, logger)
		api.POST("/recipe", recipeHandlerInstance.HandleGenerateRecipe)
	}

	logger.Info("Router setup completed successfully",
		zap.Duration("request_timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router
}

// NewServer 依設定建立 HTTP 服務器
func NewServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
}
