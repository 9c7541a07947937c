package types

import (
	"math"
	"strconv"
	"strings"
)

// RuleValueKind тип значения бизнес-правила после разбора строки
type RuleValueKind string

const (
	RuleValueInt    RuleValueKind = "int"
	RuleValueFloat  RuleValueKind = "float"
	RuleValueString RuleValueKind = "string"
)

// RuleValue типизированное значение бизнес-правила.
// Целые числа становятся Int, дробные Float, всё остальное сохраняется как есть в Str.
type RuleValue struct {
	Kind  RuleValueKind
	Int   int64
	Float float64
	Str   string
}

// ParseRuleValue типизирует сырое строковое значение
func ParseRuleValue(raw string) RuleValue {
	s := strings.TrimSpace(raw)

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return RuleValue{Kind: RuleValueInt, Int: i, Float: float64(i), Str: raw}
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return RuleValue{Kind: RuleValueInt, Int: int64(f), Float: f, Str: raw}
		}
		return RuleValue{Kind: RuleValueFloat, Float: f, Str: raw}
	}

	return RuleValue{Kind: RuleValueString, Str: raw}
}

// IntRuleValue создаёт целое значение
func IntRuleValue(i int64) RuleValue {
	return RuleValue{Kind: RuleValueInt, Int: i, Float: float64(i), Str: strconv.FormatInt(i, 10)}
}

// FloatRuleValue создаёт числовое значение; целые числа получают вид Int
func FloatRuleValue(f float64) RuleValue {
	return ParseRuleValue(strconv.FormatFloat(f, 'f', -1, 64))
}

// StringRuleValue создаёт строковое значение без разбора
func StringRuleValue(s string) RuleValue {
	return RuleValue{Kind: RuleValueString, Str: s}
}

// IsNumeric возвращает true для Int и Float
func (v RuleValue) IsNumeric() bool {
	return v.Kind == RuleValueInt || v.Kind == RuleValueFloat
}

// Number возвращает числовое значение как float64
func (v RuleValue) Number() (float64, bool) {
	switch v.Kind {
	case RuleValueInt, RuleValueFloat:
		return v.Float, true
	default:
		return 0, false
	}
}

// Interface возвращает значение в виде int64, float64 или string (для JSON-ответов)
func (v RuleValue) Interface() interface{} {
	switch v.Kind {
	case RuleValueInt:
		return v.Int
	case RuleValueFloat:
		return v.Float
	default:
		return v.Str
	}
}

// String каноническое текстовое представление, в котором значение хранится в БД
func (v RuleValue) String() string {
	switch v.Kind {
	case RuleValueInt:
		return strconv.FormatInt(v.Int, 10)
	case RuleValueFloat:
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	default:
		return v.Str
	}
}
