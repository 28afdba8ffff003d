package constants

import "time"

const (
	// Application-level constants
	ServiceName    = "interview-agent-go"
	ServiceVersion = "1.0.0"

	// 单次请求允许生成的问题数量上限
	MaxQuestionCount = 20

	// 嵌入向量缓存相关常量
	EmbeddingCachePrefix   = "embedding:"
	EmbeddingCacheDuration = 24 * time.Hour
)
