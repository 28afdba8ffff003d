package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-agent-go/internal/types"
)

func TestParseClassificationValid(t *testing.T) {
	raw := `{"type": "TECHNICAL", "category": "Spring", "difficultyLevel": 2}`

	cls, err := ParseClassification(raw)
	require.NoError(t, err)
	assert.Equal(t, types.QuestionTechnical, cls.Type)
	assert.Equal(t, "Spring", cls.Category)
	assert.Equal(t, 2, cls.DifficultyLevel)
}

func TestParseClassificationSurroundingText(t *testing.T) {
	// LLM在JSON前后加说明文字时仍能提取
	raw := `분류 결과는 다음과 같습니다.
{"type": "personality", "category": "Teamwork", "difficultyLevel": 1}
감사합니다.`

	cls, err := ParseClassification(raw)
	require.NoError(t, err)
	// 类型大小写不敏感，统一成大写枚举
	assert.Equal(t, types.QuestionPersonality, cls.Type)
	assert.Equal(t, "Teamwork", cls.Category)
	assert.Equal(t, 1, cls.DifficultyLevel)
}

func TestParseClassificationLeadingBOM(t *testing.T) {
	// 部分模型的输出带UTF-8 BOM前缀
	raw := "\uFEFF" + `{"type": "TECHNICAL", "category": "Python", "difficultyLevel": 1}`

	cls, err := ParseClassification(raw)
	require.NoError(t, err)
	assert.Equal(t, types.QuestionTechnical, cls.Type)
	assert.Equal(t, "Python", cls.Category)
}

func TestParseClassificationEmptyType(t *testing.T) {
	_, err := ParseClassification(`{"type": "", "category": "Java", "difficultyLevel": 1}`)
	assert.ErrorIs(t, err, ErrInvalidClassification)
}

func TestParseClassificationUnknownType(t *testing.T) {
	_, err := ParseClassification(`{"type": "BEHAVIORAL", "category": "Java", "difficultyLevel": 1}`)
	assert.ErrorIs(t, err, ErrInvalidClassification)
}

func TestParseClassificationUnknownCategory(t *testing.T) {
	_, err := ParseClassification(`{"type": "TECHNICAL", "category": "Haskell", "difficultyLevel": 1}`)
	assert.ErrorIs(t, err, ErrInvalidClassification)
}

func TestParseClassificationCrossTypeCategory(t *testing.T) {
	// 类别校验用全量集合：TECHNICAL配Teamwork虽然语义别扭但不报错
	cls, err := ParseClassification(`{"type": "TECHNICAL", "category": "Teamwork", "difficultyLevel": 3}`)
	require.NoError(t, err)
	assert.Equal(t, "Teamwork", cls.Category)
}

func TestParseClassificationDifficultyViolations(t *testing.T) {
	cases := []string{
		`{"type": "TECHNICAL", "category": "Java", "difficultyLevel": 0}`,
		`{"type": "TECHNICAL", "category": "Java", "difficultyLevel": 4}`,
		`{"type": "TECHNICAL", "category": "Java", "difficultyLevel": 1.5}`,
		`{"type": "TECHNICAL", "category": "Java", "difficultyLevel": "2"}`,
		`{"type": "TECHNICAL", "category": "Java"}`,
	}
	for _, raw := range cases {
		_, err := ParseClassification(raw)
		assert.ErrorIs(t, err, ErrInvalidClassification, "input=%s", raw)
	}
}

func TestParseClassificationNoJSON(t *testing.T) {
	_, err := ParseClassification("JSON이 아닌 일반 텍스트 응답")
	require.Error(t, err)
	// JSON缺失属于输出格式错误，不是分类枚举错误
	assert.NotErrorIs(t, err, ErrInvalidClassification)
}

func TestParseClassificationSanitizeRetry(t *testing.T) {
	// category值里有未转义的引号，第一次解码失败后修复重试
	raw := `{"type": "PROJECT", "category": "Architecture", "difficultyLevel": 3, "note": "이른바 "헥사고날" 구조"}`

	cls, err := ParseClassification(raw)
	require.NoError(t, err)
	assert.Equal(t, types.QuestionProject, cls.Type)
	assert.Equal(t, "Architecture", cls.Category)
	assert.Equal(t, 3, cls.DifficultyLevel)
}

func TestExtractJSONObject(t *testing.T) {
	assert.Equal(t, `{"a": {"b": 1}}`, extractJSONObject(`prefix {"a": {"b": 1}} suffix`))
	assert.Equal(t, "", extractJSONObject("중괄호 없음"))
	assert.Equal(t, "", extractJSONObject(`{"never": "closed"`))
}

func TestSanitizeJSON(t *testing.T) {
	in := `{"k": "val "quoted" end"}`
	out := sanitizeJSON(in)
	assert.Equal(t, `{"k": "val \"quoted\" end"}`, out)

	// 已经合法的JSON不被改动
	legal := `{"k": "plain", "n": 3}`
	assert.Equal(t, legal, sanitizeJSON(legal))
}
