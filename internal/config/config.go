package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// RedisConfig Redis连接配置，向量缓存使用
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// 连接池设置
	PoolSize     int `yaml:"pool_size"`
	MinIdleConns int `yaml:"min_idle_conns"`
	// 超时设置
	DialTimeoutSeconds  int `yaml:"dial_timeout_seconds"`
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"`
	// 重试设置
	MaxRetries        int `yaml:"max_retries"`
	MinRetryBackoffMS int `yaml:"min_retry_backoff_ms"`
	MaxRetryBackoffMS int `yaml:"max_retry_backoff_ms"`
	// 向量缓存过期时间(小时)
	VectorCacheTTLHours int `yaml:"vector_cache_ttl_hours"`
}

// Config 应用程序配置
type Config struct {
	Aliyun struct {
		APIKey     string            `yaml:"api_key"`
		APIURL     string            `yaml:"api_url"`
		Model      string            `yaml:"model"`
		TaskModels map[string]string `yaml:"task_models"` // 任务专用模型
		Embedding  EmbeddingConfig   `yaml:"embedding"`
	} `yaml:"aliyun"`

	// 服务器配置
	Server ServerConfig `yaml:"server"`

	// Redis配置
	Redis RedisConfig `yaml:"redis"`

	// 提示词模板配置
	Prompt PromptConfig `yaml:"prompt"`

	// 面试流程配置
	Interview InterviewConfig `yaml:"interview"`

	// 日志配置
	Logger LoggerConfig `yaml:"logger"`
}

// EmbeddingConfig 阿里云Embedding配置
type EmbeddingConfig struct {
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	BaseURL    string `yaml:"base_url"`
}

// ServerConfig 定义服务器配置
type ServerConfig struct {
	Address string `yaml:"address"` // 例如 ":8080"
	APIKey  string `yaml:"api_key"` // 为空时关闭接口鉴权
}

// PromptConfig 提示词模板配置
type PromptConfig struct {
	TemplatesDir string `yaml:"templates_dir"` // 为空时只用内置模板
}

// InterviewConfig 面试流程配置
type InterviewConfig struct {
	MaxQuestionCount          int     `yaml:"max_question_count"`
	GenerationTemperature     float32 `yaml:"generation_temperature"`
	EvaluationTemperature     float32 `yaml:"evaluation_temperature"`
	ClassificationTemperature float32 `yaml:"classification_temperature"`
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	Format       string `yaml:"format"`        // json, pretty
	TimeFormat   string `yaml:"time_format"`   // 时间格式
	ReportCaller bool   `yaml:"report_caller"` // 是否报告调用位置
}

// LoadConfig 从文件加载配置
func LoadConfig(configPath string) (*Config, error) {
	// 如果未指定配置文件路径，则尝试在默认位置查找
	if configPath == "" {
		searchPaths := []string{
			"config.yaml",
			"./config.yaml",
			"../config.yaml",
			"../../config.yaml",
			filepath.Join(os.Getenv("HOME"), ".interview-agent", "config.yaml"),
		}

		execPath, err := os.Executable()
		if err == nil {
			execDir := filepath.Dir(execPath)
			searchPaths = append(searchPaths, filepath.Join(execDir, "config.yaml"))
			searchPaths = append(searchPaths, filepath.Join(execDir, "..", "config.yaml"))
		}

		for _, path := range searchPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}

		// 测试环境里找不到配置文件时，直接用默认配置
		if configPath == "" {
			if inTestEnv() {
				return createDefaultConfig(), nil
			}
			configPath = "config.yaml"
		}
	}

	if _, err := os.Stat(configPath); err != nil {
		if inTestEnv() {
			return createDefaultConfig(), nil
		}
		return nil, fmt.Errorf("配置文件不存在: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 从环境变量覆盖配置（如果存在）
	if envKey := os.Getenv("ALIYUN_API_KEY"); envKey != "" {
		config.Aliyun.APIKey = envKey
	}
	if envURL := os.Getenv("ALIYUN_API_URL"); envURL != "" {
		config.Aliyun.APIURL = envURL
	}
	if envModel := os.Getenv("ALIYUN_MODEL"); envModel != "" {
		config.Aliyun.Model = envModel
	}
	if envKey := os.Getenv("SERVER_API_KEY"); envKey != "" {
		config.Server.APIKey = envKey
	}
	if envAddr := os.Getenv("REDIS_ADDRESS"); envAddr != "" {
		config.Redis.Address = envAddr
	}

	applyDefaults(&config)
	return &config, nil
}

// inTestEnv 粗略判断是否在 go test 里运行
func inTestEnv() bool {
	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			return true
		}
	}
	return false
}

// applyDefaults 为缺失的配置项补默认值
func applyDefaults(config *Config) {
	if config.Server.Address == "" {
		config.Server.Address = ":8080"
	}
	if config.Aliyun.Embedding.Model == "" {
		config.Aliyun.Embedding.Model = "text-embedding-v3"
	}
	if config.Aliyun.Embedding.Dimensions == 0 {
		config.Aliyun.Embedding.Dimensions = 1024
	}
	if config.Aliyun.Embedding.BaseURL == "" {
		config.Aliyun.Embedding.BaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1/embeddings"
	}
	if config.Interview.MaxQuestionCount == 0 {
		config.Interview.MaxQuestionCount = 20
	}
	if config.Interview.GenerationTemperature == 0 {
		config.Interview.GenerationTemperature = 0.7
	}
	if config.Interview.EvaluationTemperature == 0 {
		config.Interview.EvaluationTemperature = 0.5
	}
	if config.Interview.ClassificationTemperature == 0 {
		config.Interview.ClassificationTemperature = 0.2
	}
	if config.Redis.VectorCacheTTLHours == 0 {
		config.Redis.VectorCacheTTLHours = 24
	}
}

// 创建一个默认配置，用于测试环境
func createDefaultConfig() *Config {
	config := &Config{}
	config.Aliyun.APIURL = "https://dashscope.aliyuncs.com/compatible-mode/v1/chat/completions"
	config.Aliyun.Model = "qwen-plus"

	// Redis默认配置
	config.Redis.Address = "localhost:6379"
	config.Redis.Password = ""
	config.Redis.DB = 0
	config.Redis.PoolSize = 10
	config.Redis.MinIdleConns = 2
	config.Redis.DialTimeoutSeconds = 5
	config.Redis.ReadTimeoutSeconds = 3
	config.Redis.WriteTimeoutSeconds = 3
	config.Redis.MaxRetries = 3
	config.Redis.MinRetryBackoffMS = 8
	config.Redis.MaxRetryBackoffMS = 512

	// 日志默认配置
	config.Logger.Level = "info"
	config.Logger.Format = "pretty"
	config.Logger.TimeFormat = "2006-01-02 15:04:05"
	config.Logger.ReportCaller = true

	if envKey := os.Getenv("ALIYUN_API_KEY"); envKey != "" {
		config.Aliyun.APIKey = envKey
	} else {
		config.Aliyun.APIKey = "test_api_key"
	}

	applyDefaults(config)
	return config
}

// GetModelForTask 根据任务名称获取合适的模型
// 如果任务专用模型存在则返回专用模型，否则返回默认模型
func (c *Config) GetModelForTask(taskName string) string {
	if c.Aliyun.TaskModels != nil {
		if model, ok := c.Aliyun.TaskModels[taskName]; ok && model != "" {
			return model
		}
	}
	return c.Aliyun.Model
}

// GetDuration 解析配置中的时长字符串，非法时返回默认值
func GetDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	if durationStr == "" {
		return defaultDuration
	}
	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return defaultDuration
	}
	return d
}
