package recipe

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	DefaultTitle        = "Generated Recipe"
	DefaultIngredient   = "Ingredients not specified"
	DefaultInstruction  = "Instructions not provided"
	DefaultCookingTime  = "30 minutes"
	MaxTitleLength      = 100
	insufficientPrefix  = InsufficientDataMessage
	markdownDecorations = "*_#` \t"
)

var (
	titleLabelPattern = regexp.MustCompile(`(?i)\b(?:title|recipe|name)[*_]*:[ \t]*(.+)`)
	heading1Pattern   = regexp.MustCompile(`(?m)^[ \t]*#[ \t]+(.+)$`)
	heading2Pattern   = regexp.MustCompile(`(?m)^[ \t]*##[ \t]+(.+)$`)

	// 段落標籤必須位於行首，避免前言中的 "ingredients:" 被誤判
	ingredientsLabel  = regexp.MustCompile(`(?im)^[#>*_ \t]*(?:ingredients|materials)[*_]*:`)
	instructionsLabel = regexp.MustCompile(`(?im)^[#>*_ \t]*(?:instructions|steps|method)[*_]*:`)

	// 食材段落遇到步驟標籤即結束
	ingredientsStop = regexp.MustCompile(`(?i)^[#>*_ \t]*(?:instructions|steps|method)\b`)
	// 步驟段落遇到時間或其他段落標籤即結束
	instructionsStop = regexp.MustCompile(`(?i)^[#>*_ \t]*(?:(?:cooking|prep|total)\s+time|ingredients|materials|notes|tips|servings|serves)[*_ \t]*:`)

	// 編號後須接空白或行尾，"1.5 hours" 之類的小數不是編號
	stepMarker = regexp.MustCompile(`^(?:(?i:step)\s*\d+\s*[:.)-]?\s*|\d+\s*[.)](?:\s+|$)|[-•*]\s*)`)

	cookingTimeLabelPattern = regexp.MustCompile(`(?i)\b(?:cooking|prep|total)\s+time[*_]*:[ \t]*(.+)`)
	durationPattern         = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?\s*(?:minutes?|mins?|hours?|hrs?))\b`)
)

// textMatcher 嘗試從 AI 回應擷取一個欄位
type textMatcher func(content string) (string, bool)

// listMatcher 嘗試從 AI 回應擷取一個段落
type listMatcher func(content string) ([]string, bool)

// ExtractRecipe 將 AI 自由格式的回應轉為食譜。
// 無法解析的欄位一律以預設值補上，因此只會回傳 InsufficientData 或 Success。
func ExtractRecipe(content string) Outcome {
	if IsInsufficientResponse(content) {
		return InsufficientData()
	}

	return Success(&Recipe{
		Title:        truncateRunes(firstText(content, DefaultTitle, matchLabeledTitle, matchHeading1, matchHeading2), MaxTitleLength),
		Ingredients:  firstList(content, []string{DefaultIngredient}, matchIngredients),
		Instructions: firstList(content, []string{DefaultInstruction}, matchInstructions),
		CookingTime:  firstText(content, DefaultCookingTime, matchLabeledCookingTime, matchDuration),
	})
}

// IsInsufficientResponse AI 是否回覆食材不足
func IsInsufficientResponse(content string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(content)), insufficientPrefix)
}

func firstText(content, fallback string, matchers ...textMatcher) string {
	for _, match := range matchers {
		if v, ok := match(content); ok {
			return v
		}
	}
	return fallback
}

func firstList(content string, fallback []string, matchers ...listMatcher) []string {
	for _, match := range matchers {
		if v, ok := match(content); ok {
			return v
		}
	}
	return fallback
}

func submatch(re *regexp.Regexp) textMatcher {
	return func(content string) (string, bool) {
		m := re.FindStringSubmatch(content)
		if m == nil {
			return "", false
		}
		v := cleanValue(m[1])
		return v, v != ""
	}
}

var (
	matchLabeledTitle       = submatch(titleLabelPattern)
	matchHeading1           = submatch(heading1Pattern)
	matchHeading2           = submatch(heading2Pattern)
	matchLabeledCookingTime = submatch(cookingTimeLabelPattern)
	matchDuration           = submatch(durationPattern)
)

func matchIngredients(content string) ([]string, bool) {
	lines, ok := section(content, ingredientsLabel, ingredientsStop)
	if !ok {
		return nil, false
	}
	return cleanLines(lines, func(line string) string {
		return strings.TrimLeft(line, "•-* \t")
	})
}

func matchInstructions(content string) ([]string, bool) {
	lines, ok := section(content, instructionsLabel, instructionsStop)
	if !ok {
		return nil, false
	}
	return cleanLines(lines, func(line string) string {
		return stepMarker.ReplaceAllString(line, "")
	})
}

// section 取出標籤後的各行，直到空白行、結束標籤或文字結尾
func section(content string, label, stop *regexp.Regexp) ([]string, bool) {
	loc := label.FindStringIndex(content)
	if loc == nil {
		return nil, false
	}

	rest := strings.TrimLeft(content[loc[1]:], " \t\r\n*_")
	var lines []string
	for _, line := range strings.Split(rest, "\n") {
		if strings.TrimSpace(line) == "" || stop.MatchString(line) {
			break
		}
		lines = append(lines, line)
	}
	return lines, true
}

func cleanLines(lines []string, strip func(string) string) ([]string, bool) {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if v := strings.TrimSpace(strip(strings.TrimSpace(line))); v != "" {
			out = append(out, v)
		}
	}
	return out, len(out) > 0
}

func cleanValue(v string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(v), markdownDecorations))
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:limit]))
}
