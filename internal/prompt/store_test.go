package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreHasBuiltinTemplates(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)

	assert.True(t, store.Has(TemplateQuestionGeneration))
	assert.True(t, store.Has(TemplateAnswerEvaluation))
	assert.True(t, store.Has(TemplateClassification))
	assert.False(t, store.Has("no_such_template"))
}

func TestRenderSubstitutesFields(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)

	rendered, err := store.Render(TemplateQuestionGeneration, map[string]string{
		"position":       "백엔드 개발자",
		"resume":         "Spring 기반 커머스 서비스 3년 개발",
		"question_count": "5",
	})
	require.NoError(t, err)

	assert.Contains(t, rendered, "백엔드 개발자")
	assert.Contains(t, rendered, "Spring 기반 커머스 서비스 3년 개발")
	assert.Contains(t, rendered, "질문 5개")
	assert.NotContains(t, rendered, "{position}")
	assert.NotContains(t, rendered, "{question_count}")
}

func TestRenderMissingFieldIsHardError(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)

	_, err = store.Render(TemplateAnswerEvaluation, map[string]string{
		"position": "데이터 엔지니어",
		// resume, cover_letter, question, answer 全部缺失
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "resume")
	assert.Contains(t, err.Error(), "answer")
}

func TestRenderUnknownTemplate(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)

	_, err = store.Render("missing", nil)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestRenderExtraFieldsIgnored(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)

	rendered, err := store.Render(TemplateClassification, map[string]string{
		"question": "JPA의 영속성 컨텍스트를 설명해주세요.",
		"unused":   "무시되어야 함",
	})
	require.NoError(t, err)
	assert.Contains(t, rendered, "JPA의 영속성 컨텍스트를 설명해주세요.")
	assert.NotContains(t, rendered, "무시되어야 함")
}

func TestStoreDirOverridesBuiltin(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "prompt-test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	custom := "커스텀 질문 템플릿: {position} / {resume} / {question_count}"
	err = os.WriteFile(filepath.Join(tmpDir, TemplateQuestionGeneration+".tmpl"), []byte(custom), 0644)
	require.NoError(t, err)
	// .tmpl 之外的文件不会被当成模板
	err = os.WriteFile(filepath.Join(tmpDir, "readme.txt"), []byte("규칙 설명"), 0644)
	require.NoError(t, err)

	store, err := NewStore(tmpDir)
	require.NoError(t, err)

	rendered, err := store.Render(TemplateQuestionGeneration, map[string]string{
		"position":       "SRE",
		"resume":         "쿠버네티스 운영 경험",
		"question_count": "3",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rendered, "커스텀 질문 템플릿: SRE"))
	assert.False(t, store.Has("readme"))

	// 未覆盖的内置模板保持可用
	assert.True(t, store.Has(TemplateAnswerEvaluation))
}

func TestStoreBadDirFails(t *testing.T) {
	_, err := NewStore(filepath.Join(os.TempDir(), "definitely-not-a-dir-xyz"))
	assert.Error(t, err)
}
