package recipe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposePrompt(t *testing.T) {
	prompt, err := ComposePrompt("Cook with: {ingredients}.", DefaultPlaceholder, []string{"2kg pork", "1kg potatoes", "0.5kg onions"})
	require.NoError(t, err)
	assert.Equal(t, "Cook with: 2kg pork, 1kg potatoes, 0.5kg onions.", prompt)
}

func TestComposePrompt_ReplacesEveryPlaceholder(t *testing.T) {
	prompt, err := ComposePrompt("{ingredients} / {ingredients}", DefaultPlaceholder, []string{"1 cup rice"})
	require.NoError(t, err)
	assert.Equal(t, "1 cup rice / 1 cup rice", prompt)
}

func TestComposePrompt_MissingPlaceholder(t *testing.T) {
	inputs := [][]string{
		{"2kg pork"},
		{"not even valid"},
		{},
	}
	for _, items := range inputs {
		_, err := ComposePrompt("no placeholder here", DefaultPlaceholder, items)
		assert.ErrorIs(t, err, ErrPlaceholderMissing)
	}
}

func TestComposePrompt_EmptyItems(t *testing.T) {
	_, err := ComposePrompt("{ingredients}", DefaultPlaceholder, nil)
	assert.ErrorIs(t, err, ErrNoIngredientsToCompose)
}

func TestPromptComposer_Idempotent(t *testing.T) {
	composer, err := NewPromptComposer("Ingredients: {ingredients}", "")
	require.NoError(t, err)

	items := []string{"2kg pork", "1kg potatoes"}
	first, err := composer.Compose(items)
	require.NoError(t, err)
	second, err := composer.Compose(items)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"2kg pork", "1kg potatoes"}, items, "input must not be reordered")
}

func TestNewPromptComposer_Invalid(t *testing.T) {
	_, err := NewPromptComposer("   ", DefaultPlaceholder)
	assert.ErrorIs(t, err, ErrTemplateEmpty)

	_, err = NewPromptComposer("no placeholder", DefaultPlaceholder)
	assert.ErrorIs(t, err, ErrPlaceholderMissing)
}

func TestLoadTemplate(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.txt")
	require.NoError(t, os.WriteFile(valid, []byte("\n  Make a dish from {ingredients}\n"), 0o644))
	composer, err := LoadTemplate(valid, DefaultPlaceholder)
	require.NoError(t, err)
	prompt, err := composer.Compose([]string{"2kg pork"})
	require.NoError(t, err)
	assert.Equal(t, "Make a dish from 2kg pork", prompt)

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o644))
	_, err = LoadTemplate(empty, DefaultPlaceholder)
	assert.ErrorIs(t, err, ErrTemplateEmpty)

	noPlaceholder := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(noPlaceholder, []byte("Make a dish"), 0o644))
	_, err = LoadTemplate(noPlaceholder, DefaultPlaceholder)
	assert.ErrorIs(t, err, ErrPlaceholderMissing)

	_, err = LoadTemplate(filepath.Join(dir, "missing.txt"), DefaultPlaceholder)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadTemplate_ShippedTemplate(t *testing.T) {
	composer, err := LoadTemplate(filepath.Join("..", "..", "..", "templates", "prompt-template.txt"), DefaultPlaceholder)
	require.NoError(t, err)

	prompt, err := composer.Compose([]string{"2kg pork", "1kg potatoes", "0.5kg onions"})
	require.NoError(t, err)
	assert.Contains(t, prompt, "2kg pork, 1kg potatoes, 0.5kg onions")
	assert.Contains(t, prompt, InsufficientDataMessage)
}
