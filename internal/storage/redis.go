package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"interview-agent-go/internal/config"
	"interview-agent-go/internal/constants"
	"interview-agent-go/internal/logger"
)

// ErrNotFound 键不存在，包装 redis.Nil 以便上层不直接依赖驱动
var ErrNotFound = redis.Nil

// Redis 封装Redis客户端连接
type Redis struct {
	Client *redis.Client
	config *config.RedisConfig
}

// NewRedisAdapter 按配置建立Redis连接
func NewRedisAdapter(cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config cannot be nil")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	opt := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,

		// 连接池设置
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,

		// 超时设置
		DialTimeout:  time.Duration(cfg.DialTimeoutSeconds) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,

		// 重试设置
		MaxRetries:      cfg.MaxRetries,
		MinRetryBackoff: time.Duration(cfg.MinRetryBackoffMS) * time.Millisecond,
		MaxRetryBackoff: time.Duration(cfg.MaxRetryBackoffMS) * time.Millisecond,
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}

	return &Redis{
		Client: client,
		config: cfg,
	}, nil
}

// Close 关闭Redis连接
func (r *Redis) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

// Ping 检查Redis连接
func (r *Redis) Ping(ctx context.Context) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	return r.Client.Ping(ctx).Err()
}

// GetVectorCacheTTL 返回配置的向量缓存过期时间
func (r *Redis) GetVectorCacheTTL() time.Duration {
	hours := r.config.VectorCacheTTLHours
	if hours <= 0 {
		return constants.EmbeddingCacheDuration
	}
	return time.Duration(hours) * time.Hour
}

// VectorCache 把文本的句向量读写缓存到Redis。
// 键按 sha256(模型名+文本) 取哈希，避免不同Embedding模型的向量互相串台。
// 缓存故障只记日志不冒泡，Embedding调用方会照常走远端接口。
type VectorCache struct {
	redis *Redis
	model string
	ttl   time.Duration
}

// NewVectorCache 创建面向指定Embedding模型的向量缓存
func NewVectorCache(r *Redis, embeddingModel string) *VectorCache {
	return &VectorCache{
		redis: r,
		model: embeddingModel,
		ttl:   r.GetVectorCacheTTL(),
	}
}

func (vc *VectorCache) cacheKey(text string) string {
	sum := sha256.Sum256([]byte(vc.model + "\x00" + text))
	return constants.EmbeddingCachePrefix + hex.EncodeToString(sum[:])
}

// GetVector 查询文本对应的缓存向量，未命中或出错时返回 false
func (vc *VectorCache) GetVector(ctx context.Context, text string) ([]float64, bool) {
	if vc.redis == nil || vc.redis.Client == nil {
		return nil, false
	}

	key := vc.cacheKey(text)
	val, err := vc.redis.Client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("读取向量缓存失败")
		}
		return nil, false
	}

	var vector []float64
	if err := json.Unmarshal([]byte(val), &vector); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("向量缓存内容损坏，忽略")
		return nil, false
	}
	if len(vector) == 0 {
		return nil, false
	}
	return vector, true
}

// PutVector 把文本的向量写入缓存，写入失败只记日志
func (vc *VectorCache) PutVector(ctx context.Context, text string, vector []float64) {
	if vc.redis == nil || vc.redis.Client == nil || len(vector) == 0 {
		return
	}

	data, err := json.Marshal(vector)
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("序列化向量失败，跳过缓存")
		return
	}

	key := vc.cacheKey(text)
	if err := vc.redis.Client.Set(ctx, key, data, vc.ttl).Err(); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("写入向量缓存失败")
	}
}
