package keyword

import (
	"strings"
	"unicode"
)

// defaultStopWords 英文基础停用词表
var defaultStopWords = []string{
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you", "your", "yours",
	"yourself", "yourselves", "he", "him", "his", "himself", "she", "her", "hers",
	"herself", "it", "its", "itself", "they", "them", "their", "theirs", "themselves",
	"what", "which", "who", "whom", "this", "that", "these", "those", "am", "is", "are",
	"was", "were", "be", "been", "being", "have", "has", "had", "having", "do", "does",
	"did", "doing", "a", "an", "the", "and", "but", "if", "or", "because", "as", "until",
	"while", "of", "at", "by", "for", "with", "about", "against", "between", "into", "through",
	"during", "before", "after", "above", "below", "to", "from", "up", "down", "in", "out",
	"on", "off", "over", "under", "again", "further", "then", "once", "here", "there", "when",
	"where", "why", "how", "all", "any", "both", "each", "few", "more", "most", "other",
	"some", "such", "no", "nor", "not", "only", "own", "same", "so", "than", "too", "very",
	"s", "t", "can", "will", "just", "don", "should", "now",
}

// defaultDomainTerms 固定领域词表。
// 这些多词/大小写敏感的技术术语在常规分词中会丢失，所以按原样从文本中检索，
// 保留原始大小写，不做最小长度过滤。
var defaultDomainTerms = []string{
	"RESTful API", "API", "HTTP", "JSON", "XML",
	"Java", "Spring", "Spring Boot", "Boot", "Django", "Python", "MySQL",
	"PostgreSQL", "AWS", "EC2", "S3", "RDS", "NoSQL",
	"Git", "GitHub", "Docker", "Kubernetes", "DevOps", "CI/CD",
	"React", "Redis", "Kafka", "JPA", "JWT",
}

// koreanParticles 常见的韩语助词/词尾后缀，从长到短匹配。
// 形态素切分是启发式的：只要剥离后还剩至少两个音节就剥离一次。
var koreanParticles = []string{
	"에서의", "으로서", "으로써", "에게서",
	"에서", "에게", "한테", "부터", "까지", "처럼", "보다", "으로", "이나", "라는",
	"하는", "했던", "들을", "들이", "들은",
	"은", "는", "이", "가", "을", "를", "에", "의", "도", "만", "와", "과", "로", "나",
}

// Extractor 从混合文字（韩文 + 拉丁文）文本中提取关键词。
// 三条提取通道彼此独立：韩文名词、英文词元、领域术语，
// 任一通道无结果都不影响其它通道。无状态，可并发使用。
type Extractor struct {
	stopWords   map[string]struct{}
	domainTerms []string
}

// Option Extractor 的配置选项
type Option func(*Extractor)

// WithDomainTerms 覆盖默认领域词表
func WithDomainTerms(terms []string) Option {
	return func(e *Extractor) {
		e.domainTerms = terms
	}
}

// WithExtraStopWords 追加英文停用词
func WithExtraStopWords(words []string) Option {
	return func(e *Extractor) {
		for _, w := range words {
			e.stopWords[strings.ToLower(w)] = struct{}{}
		}
	}
}

// NewExtractor 创建关键词提取器
func NewExtractor(options ...Option) *Extractor {
	e := &Extractor{
		stopWords:   make(map[string]struct{}, len(defaultStopWords)),
		domainTerms: defaultDomainTerms,
	}
	for _, w := range defaultStopWords {
		e.stopWords[w] = struct{}{}
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

// Keywords 返回文本的关键词集合（三条通道的并集）。
// 空文本返回空集合，不报错。
func (e *Extractor) Keywords(text string) map[string]struct{} {
	result := make(map[string]struct{})
	for _, tok := range e.Tokens(text) {
		result[tok] = struct{}{}
	}
	return result
}

// Tokens 返回保留重复的词元流（韩文 + 英文 + 领域术语三条通道），供词频统计使用。
// 领域术语也计入词频：只由术语组成的文本同样要能参与TF-IDF向量化。
func (e *Extractor) Tokens(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	tokens := e.koreanNouns(text)
	tokens = append(tokens, e.latinTokens(text)...)
	tokens = append(tokens, e.domainTokens(text)...)
	return tokens
}

// domainTokens 领域术语通道：大小写不敏感检索，命中几次记几次，
// 词元保留词表里的原始写法。
func (e *Extractor) domainTokens(text string) []string {
	lower := strings.ToLower(text)
	var tokens []string
	for _, term := range e.domainTerms {
		for n := strings.Count(lower, strings.ToLower(term)); n > 0; n-- {
			tokens = append(tokens, term)
		}
	}
	return tokens
}

// koreanNouns 韩文名词通道：收集谚文音节串，剥离常见助词，
// 丢弃长度不超过1个音节的词元以抑制噪声。
func (e *Extractor) koreanNouns(text string) []string {
	var tokens []string
	var run []rune
	flush := func() {
		if len(run) > 0 {
			if noun := stripParticle(string(run)); len([]rune(noun)) > 1 {
				tokens = append(tokens, noun)
			}
			run = run[:0]
		}
	}
	for _, r := range text {
		if unicode.Is(unicode.Hangul, r) {
			run = append(run, r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// stripParticle 尝试剥离一个尾部助词。只有剥离后至少还剩两个音节才生效。
func stripParticle(word string) string {
	runes := []rune(word)
	for _, p := range koreanParticles {
		pr := []rune(p)
		if len(runes)-len(pr) >= 2 && strings.HasSuffix(word, p) {
			return string(runes[:len(runes)-len(pr)])
		}
	}
	return word
}

// latinTokens 英文通道：小写化、去停用词、简单词干化，保留长度大于2的词元。
func (e *Extractor) latinTokens(text string) []string {
	var tokens []string
	var run []rune
	flush := func() {
		if len(run) > 0 {
			word := strings.ToLower(string(run))
			run = run[:0]
			if len(word) <= 2 {
				return
			}
			if _, stopped := e.stopWords[word]; stopped {
				return
			}
			tokens = append(tokens, lemmatize(word))
		}
	}
	for _, r := range text {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			run = append(run, r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// lemmatize 极简词形还原：仅剥离常见的 ing/ed/es/s 后缀
func lemmatize(word string) string {
	switch {
	case strings.HasSuffix(word, "ing") && len(word) > 5:
		return word[:len(word)-3]
	case strings.HasSuffix(word, "ed") && len(word) > 4:
		return word[:len(word)-2]
	case strings.HasSuffix(word, "es") && len(word) > 4:
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss"):
		return word[:len(word)-1]
	}
	return word
}
