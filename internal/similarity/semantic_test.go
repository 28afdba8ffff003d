package similarity

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbedder 按预置词表返回固定向量的测试嵌入器
type fakeEmbedder struct {
	vectors map[string][]float64
	err     error
	calls   int
}

func (f *fakeEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float64, 0, len(texts))
	for _, text := range texts {
		vec, ok := f.vectors[text]
		if !ok {
			return nil, errors.New("unexpected text: " + text)
		}
		out = append(out, vec)
	}
	return out, nil
}

// mapVectorCache 内存实现的向量缓存
type mapVectorCache struct {
	data map[string][]float64
	hits int
	puts int
}

func newMapVectorCache() *mapVectorCache {
	return &mapVectorCache{data: make(map[string][]float64)}
}

func (c *mapVectorCache) GetVector(ctx context.Context, text string) ([]float64, bool) {
	v, ok := c.data[text]
	if ok {
		c.hits++
	}
	return v, ok
}

func (c *mapVectorCache) PutVector(ctx context.Context, text string, vector []float64) {
	c.puts++
	c.data[text] = vector
}

func TestNewSemanticScorerRequiresEmbedder(t *testing.T) {
	_, err := NewSemanticScorer(nil)
	assert.Error(t, err)
}

func TestSemanticScoreIdenticalVectors(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float64{
		"문서": {1, 2, 3},
		"질문": {1, 2, 3},
	}}
	s, err := NewSemanticScorer(emb)
	require.NoError(t, err)

	score, err := s.Score(context.Background(), "문서", "질문")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestSemanticScoreOrthogonalVectors(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float64{
		"a": {1, 0},
		"b": {0, 1},
	}}
	s, err := NewSemanticScorer(emb)
	require.NoError(t, err)

	score, err := s.Score(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestSemanticScoreSymmetric(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float64{
		"이력서 본문": {0.3, 0.8, 0.1},
		"면접 질문":  {0.5, 0.2, 0.9},
	}}
	s, err := NewSemanticScorer(emb)
	require.NoError(t, err)

	ab, err := s.Score(context.Background(), "이력서 본문", "면접 질문")
	require.NoError(t, err)
	ba, err := s.Score(context.Background(), "면접 질문", "이력서 본문")
	require.NoError(t, err)
	assert.Equal(t, ab, ba)
}

func TestSemanticScoreRounded(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float64{
		"x": {1, 1, 0},
		"y": {1, 0, 1},
	}}
	s, err := NewSemanticScorer(emb)
	require.NoError(t, err)

	score, err := s.Score(context.Background(), "x", "y")
	require.NoError(t, err)
	// cos = 0.5，确认结果确实是4位小数粒度
	assert.Equal(t, 0.5, score)
	assert.Equal(t, round4(score), score)
}

func TestSemanticScoreEmbedderFailure(t *testing.T) {
	emb := &fakeEmbedder{err: errors.New("dial timeout")}
	s, err := NewSemanticScorer(emb)
	require.NoError(t, err)

	_, err = s.Score(context.Background(), "a", "b")
	assert.Error(t, err)
}

func TestSemanticScoreDimensionMismatch(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float64{
		"a": {1, 2, 3},
		"b": {1, 2},
	}}
	s, err := NewSemanticScorer(emb)
	require.NoError(t, err)

	_, err = s.Score(context.Background(), "a", "b")
	assert.Error(t, err)
}

func TestSemanticScoreUsesCache(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float64{
		"문서": {1, 0, 1},
		"질문": {0, 1, 1},
	}}
	cache := newMapVectorCache()
	s, err := NewSemanticScorer(emb, WithVectorCache(cache))
	require.NoError(t, err)

	_, err = s.Score(context.Background(), "문서", "질문")
	require.NoError(t, err)
	assert.Equal(t, 1, emb.calls)
	assert.Equal(t, 2, cache.puts)

	// 第二次调用全部命中缓存，不再走嵌入器
	_, err = s.Score(context.Background(), "문서", "질문")
	require.NoError(t, err)
	assert.Equal(t, 1, emb.calls)
	assert.Equal(t, 2, cache.hits)
}

func TestSemanticScorePartialCacheHit(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float64{
		"새 질문": {0, 1},
	}}
	cache := newMapVectorCache()
	cache.data["문서"] = []float64{1, 0}

	s, err := NewSemanticScorer(emb, WithVectorCache(cache))
	require.NoError(t, err)

	score, err := s.Score(context.Background(), "문서", "새 질문")
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
	// 只有未命中的那段去编码
	assert.Equal(t, 1, emb.calls)
	assert.Equal(t, 1, cache.puts)
}
