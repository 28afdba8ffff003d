package similarity

import (
	"math"
	"sort"

	"interview-agent-go/internal/keyword"
	"interview-agent-go/internal/types"
)

// LexicalScorer 词法相似度计算器。
// 以两段文本构成一个两文档语料，基于TF-IDF向量的余弦相似度打分，
// 并返回双方关键词集合的交集作为匹配证据。
// 分数不只取决于交集大小：同样的匹配集合在不同词频分布下得分不同。
type LexicalScorer struct {
	extractor *keyword.Extractor
}

// NewLexicalScorer 创建词法相似度计算器
func NewLexicalScorer(extractor *keyword.Extractor) *LexicalScorer {
	return &LexicalScorer{extractor: extractor}
}

// Score 计算两段文本的词法相似度。
// 任一文本正规化后没有词元时，向量化退化，分数定义为0.0，匹配集合为空。
func (s *LexicalScorer) Score(textA, textB string) types.SimilarityResult {
	tokensA := s.extractor.Tokens(textA)
	tokensB := s.extractor.Tokens(textB)

	if len(tokensA) == 0 || len(tokensB) == 0 {
		return types.SimilarityResult{Score: 0.0, MatchedKeywords: []string{}}
	}

	matched := intersect(s.extractor.Keywords(textA), s.extractor.Keywords(textB))
	score := tfidfCosine(tokensA, tokensB)

	return types.SimilarityResult{
		Score:           round4(score),
		MatchedKeywords: matched,
	}
}

// Inclusion 计算候选文本对参照文本的核心关键词覆盖情况（召回/精确/F1）。
// 用于离线评估生成的问题集是否覆盖了用户材料中的核心信息。
func (s *LexicalScorer) Inclusion(reference, candidate string) types.InclusionReport {
	refKeywords := s.extractor.Keywords(reference)
	candKeywords := s.extractor.Keywords(candidate)

	common := 0
	for k := range refKeywords {
		if _, ok := candKeywords[k]; ok {
			common++
		}
	}

	report := types.InclusionReport{
		ReferenceKeywords: len(refKeywords),
		CandidateKeywords: len(candKeywords),
		CommonKeywords:    common,
	}
	if len(refKeywords) > 0 {
		report.Recall = round4(float64(common) / float64(len(refKeywords)))
	}
	if len(candKeywords) > 0 {
		report.Precision = round4(float64(common) / float64(len(candKeywords)))
	}
	if report.Recall+report.Precision > 0 {
		report.F1Score = round4(2 * report.Recall * report.Precision / (report.Recall + report.Precision))
	}
	return report
}

// tfidfCosine 把两个词元流当作两文档语料做TF-IDF向量化后计算余弦相似度。
// IDF使用平滑公式 ln((1+n)/(1+df))+1（n=2），向量做L2归一化。
func tfidfCosine(tokensA, tokensB []string) float64 {
	tfA := termFreq(tokensA)
	tfB := termFreq(tokensB)

	vocab := make(map[string]struct{}, len(tfA)+len(tfB))
	for t := range tfA {
		vocab[t] = struct{}{}
	}
	for t := range tfB {
		vocab[t] = struct{}{}
	}

	const docs = 2.0
	var dot, normA, normB float64
	for term := range vocab {
		df := 0.0
		if tfA[term] > 0 {
			df++
		}
		if tfB[term] > 0 {
			df++
		}
		idf := math.Log((1+docs)/(1+df)) + 1

		wa := float64(tfA[term]) * idf
		wb := float64(tfB[term]) * idf
		dot += wa * wb
		normA += wa * wa
		normB += wb * wb
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func termFreq(tokens []string) map[string]int {
	tf := make(map[string]int, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}
	return tf
}

// intersect 返回两个集合的交集，排序只为输出稳定
func intersect(a, b map[string]struct{}) []string {
	matched := make([]string, 0)
	for k := range a {
		if _, ok := b[k]; ok {
			matched = append(matched, k)
		}
	}
	sort.Strings(matched)
	return matched
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
