package recipe

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	// MinIngredients 最少食材數量
	MinIngredients = 1
	// MaxIngredients 最多食材數量
	MaxIngredients = 20
)

// ValidationReason 驗證失敗原因
type ValidationReason string

const (
	ReasonEmptyList          ValidationReason = "EMPTY_LIST"
	ReasonTooManyIngredients ValidationReason = "TOO_MANY_INGREDIENTS"
	ReasonEmptyIngredient    ValidationReason = "EMPTY_INGREDIENT"
	ReasonMissingQuantity    ValidationReason = "MISSING_QUANTITY"
	ReasonMissingUnit        ValidationReason = "MISSING_UNIT"
	ReasonUnrecognizedUnit   ValidationReason = "UNRECOGNIZED_UNIT"
	ReasonMissingName        ValidationReason = "MISSING_NAME"
)

var reasonMessages = map[ValidationReason]string{
	ReasonEmptyList:          "ingredients list cannot be empty",
	ReasonTooManyIngredients: fmt.Sprintf("too many ingredients: at most %d are allowed", MaxIngredients),
	ReasonEmptyIngredient:    "each ingredient must be a non-empty string",
	ReasonMissingQuantity:    "each ingredient must start with a quantity and unit, e.g. \"2kg pork\"",
	ReasonMissingUnit:        "each ingredient must include a unit after the quantity, e.g. \"2kg pork\"",
	ReasonUnrecognizedUnit:   "unrecognized measurement unit; use units such as kg, g, lb, oz, l, ml, cup, tbsp or tsp",
	ReasonMissingName:        "each ingredient must include a name after the quantity and unit",
}

// Message 對外顯示的訊息
func (r ValidationReason) Message() string {
	if msg, ok := reasonMessages[r]; ok {
		return msg
	}
	return "invalid ingredients"
}

// ValidationError 食材驗證錯誤
type ValidationError struct {
	Reason ValidationReason
	Index  int    // 出錯食材的位置，清單層級錯誤為 -1
	Item   string // 出錯的食材字串
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return e.Reason.Message()
	}
	return fmt.Sprintf("ingredient %d (%q): %s", e.Index, e.Item, e.Reason.Message())
}

// AsValidationError 取出驗證錯誤
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// ParsedIngredient 拆解後的食材
type ParsedIngredient struct {
	Quantity string
	Unit     Unit
	Name     string
}

// 單位與名稱可跨行，換行視同空白
var quantityPattern = regexp.MustCompile(`(?s)^(\d+(?:\.\d+)?)\s*(.*)$`)

// IngredientValidator 食材格式驗證器
type IngredientValidator struct{}

// NewIngredientValidator 創建食材驗證器
func NewIngredientValidator() *IngredientValidator {
	return &IngredientValidator{}
}

// Validate 驗證整個食材清單，回傳第一個失敗原因
func (v *IngredientValidator) Validate(items []string) error {
	if len(items) < MinIngredients {
		return &ValidationError{Reason: ReasonEmptyList, Index: -1}
	}
	if len(items) > MaxIngredients {
		return &ValidationError{Reason: ReasonTooManyIngredients, Index: -1}
	}

	for i, item := range items {
		if _, reason, ok := ParseIngredient(item); !ok {
			return &ValidationError{Reason: reason, Index: i, Item: item}
		}
	}
	return nil
}

// IsValid 清單是否通過驗證
func (v *IngredientValidator) IsValid(items []string) bool {
	return v.Validate(items) == nil
}

// ParseIngredient 將單一食材拆成數量、單位與名稱
func ParseIngredient(item string) (ParsedIngredient, ValidationReason, bool) {
	trimmed := strings.TrimSpace(item)
	if trimmed == "" {
		return ParsedIngredient{}, ReasonEmptyIngredient, false
	}

	m := quantityPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return ParsedIngredient{}, ReasonMissingQuantity, false
	}

	words := strings.Fields(m[2])
	if len(words) == 0 {
		return ParsedIngredient{}, ReasonMissingUnit, false
	}

	unit, used, ok := MatchUnit(words)
	if !ok {
		return ParsedIngredient{}, ReasonUnrecognizedUnit, false
	}

	name := strings.Join(words[used:], " ")
	if name == "" {
		return ParsedIngredient{}, ReasonMissingName, false
	}

	return ParsedIngredient{Quantity: m[1], Unit: unit, Name: name}, "", true
}
