package parser

import (
	"strings"
)

// 评分表的韩语字段名。LLM被要求按"字段: 值"的行格式输出。
const (
	FieldRelevance    = "관련성"
	FieldSpecificity  = "구체성"
	FieldPracticality = "실무성"
	FieldValidity     = "유효성"
	FieldTotal        = "총점"
	FieldFeedback     = "피드백"
)

// numericRubricFields 需要按数字解析的字段集合
var numericRubricFields = map[string]struct{}{
	FieldRelevance:    {},
	FieldSpecificity:  {},
	FieldPracticality: {},
	FieldValidity:     {},
	FieldTotal:        {},
}

// RubricFields 评分表解析的低层结果。
// 只记录实际出现过的字段；缺失字段如何兜底由上层决定。
type RubricFields struct {
	// Scores 出现过的数字字段，按韩语字段名索引
	Scores map[string]int
	// Feedback 评语原文（已去首尾空白）
	Feedback string
	// HasFeedback 评语字段是否出现过
	HasFeedback bool
}

// ParseRubric 把LLM的自由文本评估输出解析为评分表字段。
// LLM的输出格式没有逐字符的契约保证，所以解析采取宽容策略：
//   - 逐行扫描，只处理含冒号的行，按第一个冒号切分（值里可以再有冒号）
//   - 数字字段取值中最长的连续数字串；完全没有数字时记为0
//   - 피드백字段按原文保留
//   - 空行、无冒号行、未识别的键一律静默跳过，永不报错
//
// 最坏情况是返回一张不完整的评分表，由调用方决定缺失字段的默认值。
func ParseRubric(raw string) RubricFields {
	result := RubricFields{Scores: make(map[string]int)}

	for _, line := range strings.Split(raw, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if _, numeric := numericRubricFields[key]; numeric {
			result.Scores[key] = longestDigitRun(value)
			continue
		}
		if key == FieldFeedback {
			result.Feedback = value
			result.HasFeedback = true
		}
	}
	return result
}

// longestDigitRun 返回字符串中最长连续ASCII数字串的整数值，没有数字时返回0。
// 多个等长数字串时取最先出现的。只认 0-9：其它Unicode十进制数字
// （如阿拉伯-印度数字）不参与取值。
func longestDigitRun(s string) int {
	best := 0
	current := 0
	bestLen, currentLen := 0, 0

	for _, r := range s {
		if '0' <= r && r <= '9' {
			current = current*10 + int(r-'0')
			currentLen++
			if currentLen > bestLen {
				best = current
				bestLen = currentLen
			}
		} else {
			current = 0
			currentLen = 0
		}
	}
	return best
}
