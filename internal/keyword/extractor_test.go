package keyword

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordsEmptyInput(t *testing.T) {
	e := NewExtractor()
	assert.Empty(t, e.Keywords(""))
	assert.Empty(t, e.Keywords("   \n\t"))
	assert.Nil(t, e.Tokens(""))
}

func TestKeywordsKoreanParticleStripping(t *testing.T) {
	e := NewExtractor()
	keywords := e.Keywords("데이터베이스에서 트랜잭션을 관리했습니다")

	assert.Contains(t, keywords, "데이터베이스")
	assert.Contains(t, keywords, "트랜잭션")
}

func TestKoreanSingleSyllableDropped(t *testing.T) {
	e := NewExtractor()
	// 单音节词元被当作噪声丢弃
	tokens := e.koreanNouns("집 안 밖")
	assert.Empty(t, tokens)
}

func TestStripParticleKeepsShortWords(t *testing.T) {
	assert.Equal(t, "개발", stripParticle("개발을"))
	// 剥离后不足两个音节时不剥离
	assert.Equal(t, "이는", stripParticle("이는"))
	// 助词从长到短匹配，优先剥长后缀
	assert.Equal(t, "서버", stripParticle("서버에서의"))
}

func TestLatinTokensStopwordsAndLength(t *testing.T) {
	e := NewExtractor()
	tokens := e.latinTokens("The team was building scalable services in go")

	assert.Contains(t, tokens, "team")
	assert.Contains(t, tokens, "build")    // building → build
	assert.Contains(t, tokens, "scalable")
	assert.Contains(t, tokens, "servic") // services → servic (es 后缀剥离)
	assert.NotContains(t, tokens, "the")   // 停用词
	assert.NotContains(t, tokens, "was")
	assert.NotContains(t, tokens, "in")
	assert.NotContains(t, tokens, "go") // 长度不超过2
}

func TestLemmatize(t *testing.T) {
	cases := map[string]string{
		"building":  "build",
		"deployed":  "deploy",
		"caches":    "cach",
		"systems":   "system",
		"class":     "class", // ss 结尾不剥
		"sing":      "sing",  // 太短不剥 ing
		"red":       "red",   // 太短不剥 ed
		"developer": "developer",
	}
	for in, want := range cases {
		assert.Equal(t, want, lemmatize(in), "input=%q", in)
	}
}

func TestDomainTermsCasePreserved(t *testing.T) {
	e := NewExtractor()
	keywords := e.Keywords("spring boot와 redis를 이용한 RESTFUL API 서버 개발")

	// 检索大小写不敏感，结果保留词表里的原始写法
	assert.Contains(t, keywords, "Spring Boot")
	assert.Contains(t, keywords, "Spring")
	assert.Contains(t, keywords, "Redis")
	assert.Contains(t, keywords, "RESTful API")
	assert.Contains(t, keywords, "API")
	assert.NotContains(t, keywords, "spring boot")
}

func TestKeywordsMixedLanguage(t *testing.T) {
	e := NewExtractor()
	keywords := e.Keywords("Docker 컨테이너를 Kubernetes 클러스터에 배포했습니다")

	assert.Contains(t, keywords, "Docker")
	assert.Contains(t, keywords, "Kubernetes")
	assert.Contains(t, keywords, "컨테이너")
	assert.Contains(t, keywords, "클러스터")
}

func TestTokensPreserveDuplicates(t *testing.T) {
	e := NewExtractor()
	tokens := e.Tokens("caching caching caching")
	assert.Len(t, tokens, 3)
}

func TestTokensIncludeDomainTerms(t *testing.T) {
	e := NewExtractor()
	// 领域术语按出现次数进入词元流，写法取词表里的原形
	tokens := e.Tokens("redis 장애 후 Redis 재구축")

	count := 0
	for _, tok := range tokens {
		if tok == "Redis" {
			count++
		}
	}
	assert.Equal(t, 2, count)

	// 只由术语组成的文本也要产出词元
	assert.NotEmpty(t, e.Tokens("S3 CI/CD"))
}

func TestWithDomainTermsOverride(t *testing.T) {
	e := NewExtractor(WithDomainTerms([]string{"GraphQL"}))
	keywords := e.Keywords("graphql과 Redis 경험")

	assert.Contains(t, keywords, "GraphQL")
	// 默认词表被整体替换
	assert.NotContains(t, keywords, "Redis")
}

func TestWithExtraStopWords(t *testing.T) {
	e := NewExtractor(WithExtraStopWords([]string{"experience"}))
	tokens := e.latinTokens("experience with redis")
	assert.NotContains(t, tokens, "experience")
}
