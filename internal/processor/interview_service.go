package processor

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"

	"interview-agent-go/internal/config"
	"interview-agent-go/internal/constants"
	"interview-agent-go/internal/logger"
	"interview-agent-go/internal/parser"
	"interview-agent-go/internal/prompt"
	"interview-agent-go/internal/similarity"
	"interview-agent-go/internal/types"
)

// 面试流程使用的系统提示词。
// 评估与生成用不同的角色设定，正文是韩语，与用户消息模板保持一致。
const (
	// 答案评估: HR面试官角色，四个维度各10分
	evaluationSystemPrompt = `당신은 경력 10년차 IT기업 인사담당자입니다.
지원자의 면접 답변을 아래 네 가지 기준으로 각각 10점 만점으로 평가합니다.
- 관련성: 답변이 질문의 핵심을 다루는가
- 구체성: 실제 경험과 구체적인 사례가 담겨 있는가
- 실무성: 실무에 적용 가능한 이해를 보여주는가
- 유효성: 논리적이고 설득력 있는 답변인가
총점은 네 항목의 합계(40점 만점)입니다. 정해진 평가 양식 외의 텍스트는 출력하지 마세요.`

	// 问题生成: 技术面试官角色
	questionSystemPrompt = `당신은 IT기업의 기술 면접관입니다.
지원자의 이력서와 지원 직무를 바탕으로 실제 면접에서 사용할 수 있는 구체적이고 날카로운 질문을 만듭니다.
요청된 출력 형식을 정확히 지키세요.`

	// 问题分类: 只输出JSON
	classificationSystemPrompt = `당신은 면접 질문을 분류하는 시스템입니다. 지정된 JSON 형식으로만 응답합니다.`
)

// 任务名，用于按任务挑选专用模型
const (
	TaskQuestionGeneration = "question_generation"
	TaskAnswerEvaluation   = "answer_evaluation"
	TaskClassification     = "classification"
)

// InterviewService 面试问题生成与答案评估的编排器。
// LLM客户端、模板仓库、相似度计算器全部在构造时注入，
// 服务本身不持有请求间状态，可被并发使用。
type InterviewService struct {
	chatModel  model.ToolCallingChatModel
	prompts    *prompt.Store
	lexical    *similarity.LexicalScorer
	semantic   *similarity.SemanticScorer
	cfg        config.InterviewConfig
	taskModels map[string]string
	logger     zerolog.Logger
}

// ServiceOption InterviewService 的配置选项
type ServiceOption func(*InterviewService)

// WithTaskModels 按任务名指定专用模型。没有条目（或条目为空）的任务
// 沿用聊天客户端的默认模型。
func WithTaskModels(models map[string]string) ServiceOption {
	return func(s *InterviewService) {
		s.taskModels = models
	}
}

// NewInterviewService 创建编排器。chatModel、prompts、lexical为必需依赖；
// semantic可为nil，此时语义相似度操作返回 ErrEmbedderUnavailable。
func NewInterviewService(
	chatModel model.ToolCallingChatModel,
	prompts *prompt.Store,
	lexical *similarity.LexicalScorer,
	semantic *similarity.SemanticScorer,
	cfg config.InterviewConfig,
	options ...ServiceOption,
) *InterviewService {
	if cfg.MaxQuestionCount <= 0 {
		cfg.MaxQuestionCount = constants.MaxQuestionCount
	}
	s := &InterviewService{
		chatModel: chatModel,
		prompts:   prompts,
		lexical:   lexical,
		semantic:  semantic,
		cfg:       cfg,
		logger:    logger.Logger.With().Str("component", "interview_service").Logger(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// GenerateQuestions 根据简历和职位生成count个面试问题，并逐个分类。
// count必须在 [1, MaxQuestionCount] 内；LLM多给的问题会被截断到count个。
func (s *InterviewService) GenerateQuestions(ctx context.Context, resume, position string, count int) ([]types.InterviewQuestion, error) {
	const op = "GenerateQuestions"

	if strings.TrimSpace(resume) == "" {
		return nil, NewInvalidInputError(op, "简历内容不能为空")
	}
	if strings.TrimSpace(position) == "" {
		return nil, NewInvalidInputError(op, "职位信息不能为空")
	}
	if count < 1 || count > s.cfg.MaxQuestionCount {
		return nil, NewInvalidInputError(op, "问题数量必须在1到20之间")
	}

	userPrompt, err := s.prompts.Render(prompt.TemplateQuestionGeneration, map[string]string{
		"position":       position,
		"resume":         resume,
		"question_count": strconv.Itoa(count),
	})
	if err != nil {
		return nil, &InterviewError{Op: op, BaseErr: err}
	}

	raw, err := s.generate(ctx, TaskQuestionGeneration, questionSystemPrompt, userPrompt, s.cfg.GenerationTemperature)
	if err != nil {
		return nil, NewLLMUnavailableError(op, err)
	}

	contents, err := parser.ParseNumberedList(raw)
	if err != nil {
		s.logger.Warn().Str("op", op).Str("raw", truncateForLog(raw)).Msg("LLM输出中没有编号问题")
		return nil, &InterviewError{Op: op, BaseErr: err}
	}
	if len(contents) > count {
		contents = contents[:count]
	}

	questions := make([]types.InterviewQuestion, 0, len(contents))
	for i, content := range contents {
		cls, err := s.classify(ctx, content)
		if err != nil {
			return nil, err
		}
		questions = append(questions, types.InterviewQuestion{
			Content:         content,
			Type:            cls.Type,
			Category:        cls.Category,
			DifficultyLevel: cls.DifficultyLevel,
			Sequence:        i + 1,
		})
	}

	s.logger.Info().Int("requested", count).Int("generated", len(questions)).Msg("面试问题生成完成")
	return questions, nil
}

// classify 调用LLM给单个问题打类型/类别/难度标签。
// 分类校验是严格的：非法类型、类别或难度直接报错，不做兜底。
func (s *InterviewService) classify(ctx context.Context, question string) (*parser.Classification, error) {
	const op = "ClassifyQuestion"

	userPrompt, err := s.prompts.Render(prompt.TemplateClassification, map[string]string{
		"question": question,
	})
	if err != nil {
		return nil, &InterviewError{Op: op, BaseErr: err}
	}

	raw, err := s.generate(ctx, TaskClassification, classificationSystemPrompt, userPrompt, s.cfg.ClassificationTemperature)
	if err != nil {
		return nil, NewLLMUnavailableError(op, err)
	}

	cls, err := parser.ParseClassification(raw)
	if err != nil {
		s.logger.Warn().Str("op", op).Str("raw", truncateForLog(raw)).Err(err).Msg("问题分类结果解析失败")
		// 枚举越界与JSON本身解析不出来是两类错误：
		// 前者保留专用哨兵，后者归为输出格式错误
		if errors.Is(err, parser.ErrInvalidClassification) {
			return nil, &InterviewError{Op: op, BaseErr: err}
		}
		return nil, NewMalformedOutputError(op, err.Error())
	}
	return cls, nil
}

// EvaluateAnswer 按固定评分表评估一次面试回答。
// 解析是宽容的：缺失或无法识别的数字维度记0，总分按LLM报告值原样记录。
func (s *InterviewService) EvaluateAnswer(ctx context.Context, question, answer, resume, coverLetter, position string) (types.EvaluationRubric, error) {
	const op = "EvaluateAnswer"

	var zero types.EvaluationRubric
	if strings.TrimSpace(question) == "" {
		return zero, NewInvalidInputError(op, "面试问题不能为空")
	}
	if strings.TrimSpace(answer) == "" {
		return zero, NewInvalidInputError(op, "回答内容不能为空")
	}

	userPrompt, err := s.prompts.Render(prompt.TemplateAnswerEvaluation, map[string]string{
		"position":     position,
		"resume":       resume,
		"cover_letter": coverLetter,
		"question":     question,
		"answer":       answer,
	})
	if err != nil {
		return zero, &InterviewError{Op: op, BaseErr: err}
	}

	raw, err := s.generate(ctx, TaskAnswerEvaluation, evaluationSystemPrompt, userPrompt, s.cfg.EvaluationTemperature)
	if err != nil {
		return zero, NewLLMUnavailableError(op, err)
	}

	fields := parser.ParseRubric(raw)
	if len(fields.Scores) == 0 && !fields.HasFeedback {
		s.logger.Warn().Str("op", op).Str("raw", truncateForLog(raw)).Msg("评估输出中没有任何可识别字段，评分表按全0处理")
	}

	rubric := types.EvaluationRubric{
		Relevance:    fields.Scores[parser.FieldRelevance],
		Specificity:  fields.Scores[parser.FieldSpecificity],
		Practicality: fields.Scores[parser.FieldPracticality],
		Validity:     fields.Scores[parser.FieldValidity],
		Total:        fields.Scores[parser.FieldTotal],
		Feedback:     fields.Feedback,
	}
	return rubric, nil
}

// Feedback 只取评语的轻量评估，供只关心文字反馈的调用方使用
func (s *InterviewService) Feedback(ctx context.Context, question, answer, position string) (string, error) {
	rubric, err := s.EvaluateAnswer(ctx, question, answer, "", "", position)
	if err != nil {
		return "", err
	}
	return rubric.Feedback, nil
}

// KeywordSimilarity 计算申请材料（简历+自我介绍）与问题的词法相似度
func (s *InterviewService) KeywordSimilarity(resume, coverLetter, question string) (types.SimilarityResult, error) {
	const op = "KeywordSimilarity"

	if strings.TrimSpace(question) == "" {
		return types.SimilarityResult{}, NewInvalidInputError(op, "面试问题不能为空")
	}
	doc := applicationDocument(resume, coverLetter)
	if strings.TrimSpace(doc) == "" {
		return types.SimilarityResult{}, NewInvalidInputError(op, "申请材料不能为空")
	}
	return s.lexical.Score(doc, question), nil
}

// SemanticSimilarity 计算申请材料与问题的语义相似度
func (s *InterviewService) SemanticSimilarity(ctx context.Context, resume, coverLetter, question string) (float64, error) {
	const op = "SemanticSimilarity"

	if strings.TrimSpace(question) == "" {
		return 0, NewInvalidInputError(op, "面试问题不能为空")
	}
	doc := applicationDocument(resume, coverLetter)
	if strings.TrimSpace(doc) == "" {
		return 0, NewInvalidInputError(op, "申请材料不能为空")
	}
	if s.semantic == nil {
		return 0, NewEmbedderUnavailableError(op, nil)
	}

	score, err := s.semantic.Score(ctx, doc, question)
	if err != nil {
		return 0, NewEmbedderUnavailableError(op, err)
	}
	return score, nil
}

// Similarity 一次请求内同时计算词法与语义相似度
func (s *InterviewService) Similarity(ctx context.Context, resume, coverLetter, question string) (types.SimilarityReport, error) {
	lexical, err := s.KeywordSimilarity(resume, coverLetter, question)
	if err != nil {
		return types.SimilarityReport{}, err
	}
	semantic, err := s.SemanticSimilarity(ctx, resume, coverLetter, question)
	if err != nil {
		return types.SimilarityReport{}, err
	}
	return types.SimilarityReport{Lexical: lexical, Semantic: semantic}, nil
}

// KeywordInclusion 评估候选文本对参照文本核心关键词的覆盖情况
func (s *InterviewService) KeywordInclusion(reference, candidate string) (types.InclusionReport, error) {
	const op = "KeywordInclusion"

	if strings.TrimSpace(reference) == "" {
		return types.InclusionReport{}, NewInvalidInputError(op, "参照文本不能为空")
	}
	if strings.TrimSpace(candidate) == "" {
		return types.InclusionReport{}, NewInvalidInputError(op, "候选文本不能为空")
	}
	return s.lexical.Inclusion(reference, candidate), nil
}

// Simulate 模拟一轮面试：生成问题，取第一个提问，评估给定的回答。
// jobDescription充当职位上下文，简历与自我介绍拼接后作为申请材料。
func (s *InterviewService) Simulate(ctx context.Context, resume, coverLetter, jobDescription, answer string, count int) (*types.SimulationResult, error) {
	const op = "Simulate"

	if strings.TrimSpace(answer) == "" {
		return nil, NewInvalidInputError(op, "回答内容不能为空")
	}

	material := applicationDocument(resume, coverLetter)
	questions, err := s.GenerateQuestions(ctx, material, jobDescription, count)
	if err != nil {
		return nil, err
	}

	selected := questions[0].Content
	rubric, err := s.EvaluateAnswer(ctx, selected, answer, resume, coverLetter, jobDescription)
	if err != nil {
		return nil, err
	}

	return &types.SimulationResult{
		GeneratedQuestions: questions,
		SelectedQuestion:   selected,
		UserAnswer:         answer,
		Evaluation:         rubric,
	}, nil
}

// generate 统一的LLM调用入口。temperature按场景传入，
// 配置了任务专用模型时一并下发。
func (s *InterviewService) generate(ctx context.Context, task, systemPrompt, userPrompt string, temperature float32) (string, error) {
	messages := []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(userPrompt),
	}
	opts := []model.Option{model.WithTemperature(temperature)}
	if m := s.taskModels[task]; m != "" {
		opts = append(opts, model.WithModel(m))
	}
	resp, err := s.chatModel.Generate(ctx, messages, opts...)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// applicationDocument 把简历和自我介绍拼成一份申请材料
func applicationDocument(resume, coverLetter string) string {
	if strings.TrimSpace(coverLetter) == "" {
		return resume
	}
	if strings.TrimSpace(resume) == "" {
		return coverLetter
	}
	return resume + "\n" + coverLetter
}

// truncateForLog 日志里只保留输出前若干字符
func truncateForLog(s string) string {
	const max = 200
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
