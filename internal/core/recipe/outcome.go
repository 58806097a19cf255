package recipe

import (
	"fmt"
)

// InsufficientDataMessage AI 判定食材不足時的固定訊息
const InsufficientDataMessage = "need to provide more ingredients"

// Recipe 食譜
type Recipe struct {
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	CookingTime  string   `json:"cooking_time"`
}

// OutcomeKind 處理結果類型
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota + 1
	OutcomeInsufficientData
	OutcomeFailure
)

// String 實現 fmt.Stringer 介面
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeInsufficientData:
		return "insufficient_data"
	case OutcomeFailure:
		return "error"
	default:
		return "unknown"
	}
}

// ErrorKind 錯誤分類
type ErrorKind string

const (
	ErrorKindValidation          ErrorKind = "VALIDATION_ERROR"
	ErrorKindUpstreamUnavailable ErrorKind = "UPSTREAM_UNAVAILABLE"
	ErrorKindInternal            ErrorKind = "INTERNAL_ERROR"
)

// OutcomeError 失敗結果的細節
type OutcomeError struct {
	Kind    ErrorKind
	Message string // 對外顯示的訊息
	Reason  ValidationReason
	Err     error // 原始錯誤，不對外顯示
}

func (e *OutcomeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap 支援 errors.Is / errors.As
func (e *OutcomeError) Unwrap() error {
	return e.Err
}

// Outcome 一次請求的最終結果，只會是 Success、InsufficientData、Error 其中之一。
// Recipe 僅在 Success 時有值，Err 僅在 Error 時有值。
type Outcome struct {
	Kind   OutcomeKind
	Recipe *Recipe
	Err    *OutcomeError
}

// Success 建立成功結果
func Success(r *Recipe) Outcome {
	return Outcome{Kind: OutcomeSuccess, Recipe: r}
}

// InsufficientData 建立食材不足結果
func InsufficientData() Outcome {
	return Outcome{Kind: OutcomeInsufficientData}
}

// Failure 建立錯誤結果
func Failure(kind ErrorKind, message string, err error) Outcome {
	return Outcome{Kind: OutcomeFailure, Err: &OutcomeError{Kind: kind, Message: message, Err: err}}
}

// ValidationFailure 由驗證錯誤建立結果
func ValidationFailure(verr *ValidationError) Outcome {
	return Outcome{
		Kind: OutcomeFailure,
		Err: &OutcomeError{
			Kind:    ErrorKindValidation,
			Message: verr.Reason.Message(),
			Reason:  verr.Reason,
			Err:     verr,
		},
	}
}
