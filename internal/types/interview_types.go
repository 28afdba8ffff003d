package types

// QuestionType 表示面试问题类型
type QuestionType string

const (
	// QuestionTechnical 技术问题
	QuestionTechnical QuestionType = "TECHNICAL"
	// QuestionPersonality 人格特质问题
	QuestionPersonality QuestionType = "PERSONALITY"
	// QuestionProject 项目经历问题
	QuestionProject QuestionType = "PROJECT"
	// QuestionSituation 情景应对问题
	QuestionSituation QuestionType = "SITUATION"
)

// QuestionCategories 每种问题类型允许的类别集合。
// 校验时使用全量类别集合（见 AllCategories），而不是按类型划分的子集。
var QuestionCategories = map[QuestionType][]string{
	QuestionTechnical:   {"Java", "Spring", "SQL", "React", "Python"},
	QuestionPersonality: {"Teamwork", "Communication", "Leadership", "Values"},
	QuestionProject:     {"Architecture", "Troubleshooting", "Collaboration", "Performance"},
	QuestionSituation:   {"Conflict", "Deadline", "Failure", "Decision"},
}

// AllQuestionTypes 全部合法的问题类型
var AllQuestionTypes = []QuestionType{
	QuestionTechnical,
	QuestionPersonality,
	QuestionProject,
	QuestionSituation,
}

// ValidQuestionType 判断给定类型是否在允许的枚举内
func ValidQuestionType(t QuestionType) bool {
	for _, qt := range AllQuestionTypes {
		if qt == t {
			return true
		}
	}
	return false
}

// ValidCategory 判断类别是否在全量类别集合内
func ValidCategory(category string) bool {
	for _, cats := range QuestionCategories {
		for _, c := range cats {
			if c == category {
				return true
			}
		}
	}
	return false
}

// InterviewQuestion 生成的单个面试问题
type InterviewQuestion struct {
	// 问题正文，非空
	Content string `json:"content"`
	// 问题类型，必须属于 AllQuestionTypes
	Type QuestionType `json:"type"`
	// 问题类别，必须属于全量类别集合
	Category string `json:"category"`
	// 难度等级 (1~3)
	DifficultyLevel int `json:"difficultyLevel"`
	// 在一次生成请求中的序号，从1开始
	Sequence int `json:"sequence"`
}

// EvaluationRubric 答案评估的固定评分表。
// 四个维度各10分，总分由LLM报告（不重新计算），评语为1~2句文本。
// 解析阶段缺失或无法识别的数字维度会被置为0，而不是让整个评估失败。
type EvaluationRubric struct {
	// 相关性 (관련성)
	Relevance int `json:"relevance"`
	// 具体性 (구체성)
	Specificity int `json:"specificity"`
	// 实务性 (실무성)
	Practicality int `json:"practicality"`
	// 有效性 (유효성)
	Validity int `json:"validity"`
	// 总分 (총점)，按LLM报告值原样记录
	Total int `json:"total"`
	// 评语 (피드백)
	Feedback string `json:"feedback"`
}

// SimilarityResult 词法相似度计算结果
type SimilarityResult struct {
	// 相似度分数 [0,1]，保留4位小数
	Score float64 `json:"score"`
	// 双方关键词集合的交集，顺序不保证
	MatchedKeywords []string `json:"matched_keywords"`
}

// SimilarityReport 一次相似度请求的完整结果（词法 + 语义两条独立路径）
type SimilarityReport struct {
	Lexical  SimilarityResult `json:"lexical"`
	Semantic float64          `json:"semantic"`
}

// InclusionReport 关键词包含度评估结果（候选文本对参照文本的核心关键词覆盖情况）
type InclusionReport struct {
	ReferenceKeywords int     `json:"reference_keywords"`
	CandidateKeywords int     `json:"candidate_keywords"`
	CommonKeywords    int     `json:"common_keywords"`
	Recall            float64 `json:"recall"`
	Precision         float64 `json:"precision"`
	F1Score           float64 `json:"f1_score"`
}

// SimulationResult 模拟面试一轮的结果
type SimulationResult struct {
	GeneratedQuestions []InterviewQuestion `json:"generated_questions"`
	SelectedQuestion   string              `json:"selected_question"`
	UserAnswer         string              `json:"user_answer"`
	Evaluation         EvaluationRubric    `json:"evaluation_result"`
}
