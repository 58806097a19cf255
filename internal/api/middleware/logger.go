package middleware

import (
	"net/http"
	"time"

	"recipebot/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HeaderRequestID 請求 ID header
const HeaderRequestID = "X-Request-ID"

// RequestID 取得請求 ID，requestid 中間件未設置時改用 header 或新生成
func RequestID(c *gin.Context) string {
	if id := requestid.Get(c); id != "" {
		return id
	}
	if id := c.GetHeader(HeaderRequestID); id != "" {
		return id
	}
	id := common.GenerateUUID()
	c.Header(HeaderRequestID, id)
	return id
}

// Logger 日誌中間件
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 開始時間
		start := time.Now()
		path := c.Request.URL.Path

		// 處理請求
		c.Next()

		status := c.Writer.Status()

		// 構建基本日誌字段
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("ip", c.ClientIP()),
			zap.String("user-agent", c.Request.UserAgent()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", RequestID(c)),
		}

		// 添加錯誤信息（如果有）
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}

		// 根據狀態碼記錄不同級別的日誌
		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("伺服器錯誤", append(fields, zap.String("error_type", "server_error"))...)
		case status >= http.StatusBadRequest:
			logger.Warn("用戶端錯誤", append(fields, zap.String("error_type", "client_error"))...)
		default:
			logger.Info("請求完成", fields...)
		}
	}
}

// Recovery 恢復中間件
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("捕獲 panic",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
				)

				c.AbortWithStatusJSON(common.ErrInternalError.Status, common.ErrInternalError.Response())
			}
		}()

		c.Next()
	}
}
