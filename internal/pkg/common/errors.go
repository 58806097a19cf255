package common

import "net/http"

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Status  string `json:"status"`         // 固定為 "error"
	Message string `json:"message"`        // 錯誤信息
	Code    string `json:"code,omitempty"` // 錯誤代碼
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap 支援 errors.Is / errors.As
func (e *CustomError) Unwrap() error {
	return e.Err
}

// Response 轉為對外的錯誤響應
func (e *CustomError) Response() ErrorResponse {
	return ErrorResponse{Status: StatusError, Message: e.Message, Code: e.Code}
}

// WithMessage 以新的對外訊息複製錯誤
func (e *CustomError) WithMessage(message string) *CustomError {
	c := *e
	c.Message = message
	return &c
}

// Wrap 附上原始錯誤
func (e *CustomError) Wrap(err error) *CustomError {
	c := *e
	c.Err = err
	return &c
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// 響應狀態
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest          = "INVALID_REQUEST"          // 400
	ErrCodeInsufficientIngredients = "INSUFFICIENT_INGREDIENTS" // 400
	ErrCodeNotFound                = "NOT_FOUND"                // 404
	ErrCodeRequestTooLarge         = "REQUEST_TOO_LARGE"        // 413
	ErrCodeValidation              = "VALIDATION_ERROR"         // 422

	// 服務器錯誤 (5xx)
	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 500
	ErrCodeGatewayTimeout     = "GATEWAY_TIMEOUT"     // 504
)

// 預定義錯誤
var (
	// 客戶端錯誤
	ErrInvalidRequest          = NewError(ErrCodeInvalidRequest, "Invalid request format", http.StatusBadRequest, nil)
	ErrInsufficientIngredients = NewError(ErrCodeInsufficientIngredients, "need to provide more ingredients", http.StatusBadRequest, nil)
	ErrNotFound                = NewError(ErrCodeNotFound, "Resource not found", http.StatusNotFound, nil)
	ErrRequestTooLarge         = NewError(ErrCodeRequestTooLarge, "Request body too large", http.StatusRequestEntityTooLarge, nil)
	ErrValidation              = NewError(ErrCodeValidation, "Invalid ingredients", http.StatusUnprocessableEntity, nil)

	// 服務器錯誤
	ErrInternalError      = NewError(ErrCodeInternalError, "Internal server error occurred", http.StatusInternalServerError, nil)
	ErrServiceUnavailable = NewError(ErrCodeServiceUnavailable, "Recipe generation service is temporarily unavailable", http.StatusInternalServerError, nil)
	ErrGatewayTimeout     = NewError(ErrCodeGatewayTimeout, "Request timed out", http.StatusGatewayTimeout, nil)
)
