package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"interview-agent-go/internal/types"
)

// ErrInvalidClassification 表示分类结果的字段值落在允许的枚举之外。
// 与评分表的宽容解析不同，分类校验是硬失败：类型/类别错了不能静默兜底，
// 否则下游会拿着一个看似合法实则错误的问题分类继续工作。
var ErrInvalidClassification = errors.New("问题分类结果非法")

// Classification 单个问题的分类结果
type Classification struct {
	Type            types.QuestionType
	Category        string
	DifficultyLevel int
}

// classificationPayload 严格反序列化用的中间结构。
// difficultyLevel用interface{}接收，是为了区分"JSON里是数字"和
// "JSON里是字符串/缺失"两种情况：后者必须报 ErrInvalidClassification。
type classificationPayload struct {
	Type            string      `json:"type"`
	Category        string      `json:"category"`
	DifficultyLevel interface{} `json:"difficultyLevel"`
}

// ParseClassification 把LLM的分类输出解析为经过校验的 Classification。
// 解析流程：提取首个配平的JSON对象 → 必要时修复字符串内未转义的引号 →
// 严格反序列化 → 枚举校验。JSON本身坏掉属于输出格式错误（普通error），
// 字段值非法返回包裹 ErrInvalidClassification 的错误。
func ParseClassification(raw string) (*Classification, error) {
	processed := strings.TrimPrefix(strings.TrimSpace(raw), "\uFEFF")

	jsonStr := extractJSONObject(processed)
	if jsonStr == "" {
		return nil, fmt.Errorf("未能从分类输出中提取JSON对象: %.200s", processed)
	}
	if !utf8.ValidString(jsonStr) {
		jsonStr = strings.ToValidUTF8(jsonStr, "")
	}

	payload, err := decodeClassification(jsonStr)
	if err != nil {
		// 解析失败时自动修复再试一次
		fixed := sanitizeJSON(jsonStr)
		payload, err = decodeClassification(fixed)
		if err != nil {
			return nil, fmt.Errorf("反序列化分类JSON失败: %w. 原始JSON: %s", err, jsonStr)
		}
	}

	return validateClassification(payload)
}

// decodeClassification 严格解码，数字保留为json.Number以便校验整数性
func decodeClassification(jsonStr string) (*classificationPayload, error) {
	dec := json.NewDecoder(strings.NewReader(jsonStr))
	dec.UseNumber()
	var payload classificationPayload
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// validateClassification 对解码后的字段做枚举校验。
// 空type绝不静默兜底为默认类型。
func validateClassification(payload *classificationPayload) (*Classification, error) {
	qType := types.QuestionType(strings.ToUpper(strings.TrimSpace(payload.Type)))
	if payload.Type == "" {
		return nil, fmt.Errorf("%w: type字段为空", ErrInvalidClassification)
	}
	if !types.ValidQuestionType(qType) {
		return nil, fmt.Errorf("%w: 未知的type %q", ErrInvalidClassification, payload.Type)
	}

	category := strings.TrimSpace(payload.Category)
	if !types.ValidCategory(category) {
		return nil, fmt.Errorf("%w: 未知的category %q", ErrInvalidClassification, payload.Category)
	}

	difficulty, err := difficultyAsInt(payload.DifficultyLevel)
	if err != nil {
		return nil, err
	}

	return &Classification{
		Type:            qType,
		Category:        category,
		DifficultyLevel: difficulty,
	}, nil
}

// difficultyAsInt 要求difficultyLevel是{1,2,3}内的JSON整数，
// 字符串、小数、缺失都算非法分类。
func difficultyAsInt(v interface{}) (int, error) {
	num, ok := v.(json.Number)
	if !ok {
		return 0, fmt.Errorf("%w: difficultyLevel不是整数 (%v)", ErrInvalidClassification, v)
	}
	n, err := num.Int64()
	if err != nil {
		return 0, fmt.Errorf("%w: difficultyLevel不是整数 (%s)", ErrInvalidClassification, num.String())
	}
	if n < 1 || n > 3 {
		return 0, fmt.Errorf("%w: difficultyLevel越界 (%d)", ErrInvalidClassification, n)
	}
	return int(n), nil
}

// extractJSONObject 从文本中提取第一个括号配平的JSON对象字符串
func extractJSONObject(text string) string {
	start := strings.Index(text, "{")
	if start == -1 {
		return ""
	}
	level := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			level++
		case '}':
			level--
			if level == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

// sanitizeJSON 遍历src，把位于字符串字面量内部但并非真正结束的双引号改写为 \"，
// 以保证整个JSON能够正常反序列化。
// 通过检查下一个非空白字符是否为 :, ], }, 或 , 来判断该 " 是否为字符串的结束；
// 反斜杠转义按常规处理 \\ 和 \"。
func sanitizeJSON(src string) string {
	var b strings.Builder
	inStr := false
	escaped := false

	for i := 0; i < len(src); i++ {
		c := src[i]

		switch {
		case c == '"' && !escaped:
			if !inStr {
				inStr = true
				b.WriteByte(c)
			} else {
				j := i + 1
				for j < len(src) && (src[j] == ' ' || src[j] == '\t' || src[j] == '\n' || src[j] == '\r') {
					j++
				}
				if j < len(src) && (src[j] == ':' || src[j] == ',' || src[j] == ']' || src[j] == '}') {
					inStr = false
					b.WriteByte(c)
				} else {
					b.WriteString("\\\"")
				}
			}
			escaped = false

		case c == '\\' && !escaped:
			escaped = true
			b.WriteByte(c)

		default:
			b.WriteByte(c)
			escaped = false
		}
	}

	return b.String()
}
