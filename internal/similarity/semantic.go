package similarity

import (
	"context"
	"fmt"
	"math"

	"github.com/cloudwego/eino/components/embedding"
)

// VectorCache 嵌入向量的读穿缓存。
// 缓存失效或不可用时退化为直接编码，不影响调用结果。
type VectorCache interface {
	// GetVector 按文本查缓存，未命中返回 false
	GetVector(ctx context.Context, text string) ([]float64, bool)
	// PutVector 写入缓存，失败由实现方自行吞掉
	PutVector(ctx context.Context, text string, vector []float64)
}

// SemanticScorer 语义相似度计算器。
// 通过句向量模型把两段文本编码为定长稠密向量后计算余弦相似度，
// 刻意不依赖词面重合，与词法相似度是两条独立路径。
// 嵌入器在进程启动时构建一次，之后只读，可被并发调用共享。
type SemanticScorer struct {
	embedder embedding.Embedder
	cache    VectorCache
}

// SemanticOption SemanticScorer 的配置选项
type SemanticOption func(*SemanticScorer)

// WithVectorCache 启用嵌入向量缓存
func WithVectorCache(cache VectorCache) SemanticOption {
	return func(s *SemanticScorer) {
		s.cache = cache
	}
}

// NewSemanticScorer 创建语义相似度计算器
func NewSemanticScorer(embedder embedding.Embedder, options ...SemanticOption) (*SemanticScorer, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder不能为空")
	}
	s := &SemanticScorer{embedder: embedder}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Score 计算两段文本的语义相似度，结果保留4位小数。
// 余弦相似度数学上落在[-1,1]，对相关的自然语言文本通常为正。
func (s *SemanticScorer) Score(ctx context.Context, textA, textB string) (float64, error) {
	vecA, vecB, err := s.vectors(ctx, textA, textB)
	if err != nil {
		return 0, err
	}
	return round4(cosine(vecA, vecB)), nil
}

// vectors 取得两段文本的向量，优先走缓存，未命中的部分一次批量编码
func (s *SemanticScorer) vectors(ctx context.Context, textA, textB string) ([]float64, []float64, error) {
	var vecA, vecB []float64
	if s.cache != nil {
		if v, ok := s.cache.GetVector(ctx, textA); ok {
			vecA = v
		}
		if v, ok := s.cache.GetVector(ctx, textB); ok {
			vecB = v
		}
	}

	var missing []string
	if vecA == nil {
		missing = append(missing, textA)
	}
	if vecB == nil {
		missing = append(missing, textB)
	}

	if len(missing) > 0 {
		embedded, err := s.embedder.EmbedStrings(ctx, missing)
		if err != nil {
			return nil, nil, fmt.Errorf("编码文本失败: %w", err)
		}
		if len(embedded) != len(missing) {
			return nil, nil, fmt.Errorf("嵌入结果数量不符: 期望%d个, 得到%d个", len(missing), len(embedded))
		}
		for i, text := range missing {
			if s.cache != nil {
				s.cache.PutVector(ctx, text, embedded[i])
			}
			if vecA == nil && text == textA {
				vecA = embedded[i]
				continue
			}
			vecB = embedded[i]
		}
	}

	if len(vecA) == 0 || len(vecB) == 0 || len(vecA) != len(vecB) {
		return nil, nil, fmt.Errorf("嵌入向量维度非法: %d vs %d", len(vecA), len(vecB))
	}
	return vecA, vecB, nil
}

// cosine 稠密向量余弦相似度
func cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
