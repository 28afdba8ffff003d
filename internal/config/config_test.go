package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadConfigWithTaskModels 验证 YAML 中的任务专用模型 map 能被正确加载
func TestLoadConfigWithTaskModels(t *testing.T) {
	yamlContent := `
aliyun:
  api_key: "sk-test"
  model: "qwen-plus"
  task_models:
    question_generation: "qwen-max"
    answer_evaluation: "qwen-plus"
server:
  address: ":9090"
interview:
  max_question_count: 10
`
	tmpDir, err := os.MkdirTemp("", "config-test")
	require.NoError(t, err, "无法创建临时目录")
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "config.yaml")
	err = os.WriteFile(configPath, []byte(yamlContent), 0644)
	require.NoError(t, err, "无法写入临时配置文件")

	config, err := LoadConfig(configPath)
	require.NoError(t, err, "加载语法正确的配置不应返回错误")
	require.NotNil(t, config)

	assert.Equal(t, ":9090", config.Server.Address)
	assert.Equal(t, 10, config.Interview.MaxQuestionCount)

	assert.Equal(t, "qwen-max", config.GetModelForTask("question_generation"))
	assert.Equal(t, "qwen-plus", config.GetModelForTask("answer_evaluation"))
	// 未配置专用模型的任务回退到默认模型
	assert.Equal(t, "qwen-plus", config.GetModelForTask("classification"))
}

// TestLoadConfigDefaults 验证缺失项补默认值
func TestLoadConfigDefaults(t *testing.T) {
	yamlContent := `
aliyun:
  api_key: "sk-test"
`
	tmpDir, err := os.MkdirTemp("", "config-test-defaults")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "config.yaml")
	err = os.WriteFile(configPath, []byte(yamlContent), 0644)
	require.NoError(t, err)

	config, err := LoadConfig(configPath)
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, ":8080", config.Server.Address)
	assert.Equal(t, "text-embedding-v3", config.Aliyun.Embedding.Model)
	assert.Equal(t, 1024, config.Aliyun.Embedding.Dimensions)
	assert.Equal(t, 20, config.Interview.MaxQuestionCount)
	assert.InDelta(t, 0.7, config.Interview.GenerationTemperature, 1e-6)
	assert.InDelta(t, 0.5, config.Interview.EvaluationTemperature, 1e-6)
	assert.Equal(t, 24, config.Redis.VectorCacheTTLHours)
}

// TestLoadConfigEnvOverride 验证环境变量覆盖文件里的值
func TestLoadConfigEnvOverride(t *testing.T) {
	yamlContent := `
aliyun:
  api_key: "from-file"
  model: "qwen-turbo"
`
	tmpDir, err := os.MkdirTemp("", "config-test-env")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "config.yaml")
	err = os.WriteFile(configPath, []byte(yamlContent), 0644)
	require.NoError(t, err)

	t.Setenv("ALIYUN_API_KEY", "from-env")

	config, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, "from-env", config.Aliyun.APIKey)
	assert.Equal(t, "qwen-turbo", config.Aliyun.Model)
}

// TestGetDuration 验证时长解析的回退行为
func TestGetDuration(t *testing.T) {
	assert.Equal(t, 5*time.Second, GetDuration("5s", 0))
	assert.Equal(t, 3*time.Second, GetDuration("", 3*time.Second))
	assert.Equal(t, 3*time.Second, GetDuration("not-a-duration", 3*time.Second))
}
