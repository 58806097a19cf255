package recipe

import (
	"context"
	"errors"
	"net/http"

	"recipebot/internal/api/middleware"
	recipeService "recipebot/internal/core/recipe"
	"recipebot/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GenerateRequest 食譜生成請求
type GenerateRequest struct {
	Ingredients []string `json:"ingredients"`
}

// GenerateResponse 食譜生成成功響應
type GenerateResponse struct {
	Status string                `json:"status"`
	Recipe *recipeService.Recipe `json:"recipe"`
}

// RecipeGenerator 食譜生成服務
type RecipeGenerator interface {
	GenerateRecipe(ctx context.Context, ingredients []string) recipeService.Outcome
}

// Handler 食譜處理程序
type Handler struct {
	service RecipeGenerator
	logger  *zap.Logger
}

// NewHandler 創建新的食譜處理程序
func NewHandler(service RecipeGenerator, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// HandleGenerateRecipe 根據食材清單生成食譜
func (h *Handler) HandleGenerateRecipe(c *gin.Context) {
	requestID := middleware.RequestID(c)
	log := h.logger.With(zap.String("request_id", requestID))

	var req GenerateRequest
	if err := common.DecodeJSON(c.Request.Body, &req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			log.Warn("Request body too large", zap.Int64("limit", maxErr.Limit))
			writeError(c, common.ErrRequestTooLarge)
			return
		}
		log.Warn("Invalid request format", zap.Error(err))
		writeError(c, common.ErrInvalidRequest)
		return
	}

	out := h.service.GenerateRecipe(c.Request.Context(), req.Ingredients)
	if out.Kind == recipeService.OutcomeSuccess {
		c.JSON(http.StatusOK, GenerateResponse{Status: common.StatusSuccess, Recipe: out.Recipe})
		return
	}

	cerr := ToCustomError(out)
	if cerr.Status >= http.StatusInternalServerError {
		log.Error("Recipe request failed", zap.String("code", cerr.Code), zap.Error(cerr))
	}
	writeError(c, cerr)
}

// ToCustomError 將非成功結果對應為 HTTP 錯誤
func ToCustomError(out recipeService.Outcome) *common.CustomError {
	switch out.Kind {
	case recipeService.OutcomeInsufficientData:
		return common.ErrInsufficientIngredients
	case recipeService.OutcomeFailure:
		if out.Err == nil {
			return common.ErrInternalError
		}
		switch out.Err.Kind {
		case recipeService.ErrorKindValidation:
			cerr := common.ErrValidation.WithMessage(out.Err.Message).Wrap(out.Err)
			cerr.Code = string(out.Err.Reason)
			return cerr
		case recipeService.ErrorKindUpstreamUnavailable:
			return common.ErrServiceUnavailable.Wrap(out.Err)
		default:
			return common.ErrInternalError.Wrap(out.Err)
		}
	default:
		return common.ErrInternalError
	}
}

func writeError(c *gin.Context, err *common.CustomError) {
	c.AbortWithStatusJSON(err.Status, err.Response())
}
