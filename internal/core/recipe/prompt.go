package recipe

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	// DefaultPlaceholder 模板中的食材占位符
	DefaultPlaceholder = "{ingredients}"
	// ingredientSeparator 食材串接分隔符
	ingredientSeparator = ", "
)

var (
	ErrTemplateEmpty          = errors.New("prompt template is empty")
	ErrPlaceholderMissing     = errors.New("prompt template missing ingredients placeholder")
	ErrNoIngredientsToCompose = errors.New("cannot generate prompt from empty ingredients list")
)

// ComposePrompt 將食材依原順序以 ", " 串接後替換模板中的占位符
func ComposePrompt(template, placeholder string, items []string) (string, error) {
	if placeholder == "" || !strings.Contains(template, placeholder) {
		return "", ErrPlaceholderMissing
	}
	if len(items) == 0 {
		return "", ErrNoIngredientsToCompose
	}
	return strings.ReplaceAll(template, placeholder, strings.Join(items, ingredientSeparator)), nil
}

// PromptComposer 綁定已檢查過的模板
type PromptComposer struct {
	template    string
	placeholder string
}

// NewPromptComposer 創建 prompt 組合器，模板不合法時回傳錯誤
func NewPromptComposer(template, placeholder string) (*PromptComposer, error) {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	if strings.TrimSpace(template) == "" {
		return nil, ErrTemplateEmpty
	}
	if !strings.Contains(template, placeholder) {
		return nil, ErrPlaceholderMissing
	}
	return &PromptComposer{template: template, placeholder: placeholder}, nil
}

// LoadTemplate 從檔案載入模板
func LoadTemplate(path, placeholder string) (*PromptComposer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt template %s: %w", path, err)
	}

	composer, err := NewPromptComposer(strings.TrimSpace(string(data)), placeholder)
	if err != nil {
		return nil, fmt.Errorf("template loading failed: %w", err)
	}
	return composer, nil
}

// Compose 產生 prompt
func (p *PromptComposer) Compose(items []string) (string, error) {
	return ComposePrompt(p.template, p.placeholder, items)
}
