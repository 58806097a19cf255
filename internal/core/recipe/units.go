package recipe

import (
	"strings"
)

// UnitCategory 計量單位類別
type UnitCategory int

const (
	UnitMass UnitCategory = iota + 1
	UnitCapacity
)

// String 實現 fmt.Stringer 介面
func (c UnitCategory) String() string {
	switch c {
	case UnitMass:
		return "MASS"
	case UnitCapacity:
		return "CAPACITY"
	default:
		return "UNKNOWN"
	}
}

// Unit 已識別的計量單位
type Unit struct {
	Token    string
	Category UnitCategory
}

// unitTable 單位表，初始化後唯讀
var unitTable = map[string]UnitCategory{
	// 重量
	"kg":        UnitMass,
	"kgs":       UnitMass,
	"kilogram":  UnitMass,
	"kilograms": UnitMass,
	"g":         UnitMass,
	"gram":      UnitMass,
	"grams":     UnitMass,
	"lb":        UnitMass,
	"lbs":       UnitMass,
	"pound":     UnitMass,
	"pounds":    UnitMass,
	"oz":        UnitMass,
	"ounce":     UnitMass,
	"ounces":    UnitMass,

	// 容量
	"l":            UnitCapacity,
	"liter":        UnitCapacity,
	"liters":       UnitCapacity,
	"litre":        UnitCapacity,
	"litres":       UnitCapacity,
	"ml":           UnitCapacity,
	"milliliter":   UnitCapacity,
	"milliliters":  UnitCapacity,
	"millilitre":   UnitCapacity,
	"millilitres":  UnitCapacity,
	"fl oz":        UnitCapacity,
	"fluid ounce":  UnitCapacity,
	"fluid ounces": UnitCapacity,
	"cup":          UnitCapacity,
	"cups":         UnitCapacity,
	"tbsp":         UnitCapacity,
	"tablespoon":   UnitCapacity,
	"tablespoons":  UnitCapacity,
	"tsp":          UnitCapacity,
	"teaspoon":     UnitCapacity,
	"teaspoons":    UnitCapacity,
}

// maxUnitWords 單位表中最長 token 的字數
var maxUnitWords = func() int {
	longest := 1
	for token := range unitTable {
		if n := len(strings.Fields(token)); n > longest {
			longest = n
		}
	}
	return longest
}()

// normalizeUnit 去除前後空白、轉小寫並合併連續空白
func normalizeUnit(token string) string {
	return strings.Join(strings.Fields(strings.ToLower(token)), " ")
}

// LookupUnit 查詢單位類別（不分大小寫）
func LookupUnit(token string) (UnitCategory, bool) {
	category, ok := unitTable[normalizeUnit(token)]
	return category, ok
}

// MatchUnit 從字詞開頭比對單位，較長的候選優先。
// 回傳比對到的單位與其佔用的字數。
func MatchUnit(words []string) (Unit, int, bool) {
	n := maxUnitWords
	if n > len(words) {
		n = len(words)
	}
	for ; n > 0; n-- {
		candidate := normalizeUnit(strings.Join(words[:n], " "))
		candidate = strings.TrimRight(candidate, ".,")
		if category, ok := unitTable[candidate]; ok {
			return Unit{Token: candidate, Category: category}, n, true
		}
	}
	return Unit{}, 0, false
}
