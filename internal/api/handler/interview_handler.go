package handler

import (
	"context"
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"interview-agent-go/internal/logger"
	"interview-agent-go/internal/parser"
	"interview-agent-go/internal/processor"
)

// InterviewHandler 面试接口层，把HTTP请求映射到编排器操作。
// 接口层只做参数绑定和错误码映射，不包含业务规则。
type InterviewHandler struct {
	service *processor.InterviewService
}

// NewInterviewHandler 创建面试接口处理器
func NewInterviewHandler(service *processor.InterviewService) *InterviewHandler {
	return &InterviewHandler{service: service}
}

// GenerateQuestionsRequest 问题生成请求
type GenerateQuestionsRequest struct {
	Resume        string `json:"resume"`
	Position      string `json:"position"`
	QuestionCount int    `json:"question_count"`
}

// EvaluateRequest 答案评估请求
type EvaluateRequest struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	Resume      string `json:"resume"`
	CoverLetter string `json:"cover_letter"`
	Position    string `json:"position"`
}

// FeedbackRequest 评语请求
type FeedbackRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Position string `json:"position"`
}

// SimilarityRequest 相似度请求（词法与语义共用）
type SimilarityRequest struct {
	Resume      string `json:"resume"`
	CoverLetter string `json:"cover_letter"`
	Question    string `json:"question"`
}

// InclusionRequest 关键词包含度请求
type InclusionRequest struct {
	Reference string `json:"reference"`
	Candidate string `json:"candidate"`
}

// SimulateRequest 模拟面试请求
type SimulateRequest struct {
	Resume         string `json:"resume"`
	CoverLetter    string `json:"cover_letter"`
	JobDescription string `json:"job_description"`
	Answer         string `json:"answer"`
	QuestionCount  int    `json:"question_count"`
}

// HandleGenerateQuestions POST /interview/questions
func (h *InterviewHandler) HandleGenerateQuestions(c context.Context, ctx *app.RequestContext) {
	var req GenerateQuestionsRequest
	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体格式错误"})
		return
	}

	questions, err := h.service.GenerateQuestions(c, req.Resume, req.Position, req.QuestionCount)
	if err != nil {
		h.writeError(ctx, "生成面试问题", err)
		return
	}

	ctx.JSON(consts.StatusOK, utils.H{"questions": questions})
}

// HandleEvaluate POST /evaluate
func (h *InterviewHandler) HandleEvaluate(c context.Context, ctx *app.RequestContext) {
	var req EvaluateRequest
	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体格式错误"})
		return
	}

	rubric, err := h.service.EvaluateAnswer(c, req.Question, req.Answer, req.Resume, req.CoverLetter, req.Position)
	if err != nil {
		h.writeError(ctx, "评估回答", err)
		return
	}

	ctx.JSON(consts.StatusOK, rubric)
}

// HandleFeedback POST /interview/feedback
func (h *InterviewHandler) HandleFeedback(c context.Context, ctx *app.RequestContext) {
	var req FeedbackRequest
	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体格式错误"})
		return
	}

	feedback, err := h.service.Feedback(c, req.Question, req.Answer, req.Position)
	if err != nil {
		h.writeError(ctx, "生成评语", err)
		return
	}

	ctx.JSON(consts.StatusOK, utils.H{"feedback": feedback})
}

// HandleKeywordSimilarity POST /similarity/keyword
func (h *InterviewHandler) HandleKeywordSimilarity(c context.Context, ctx *app.RequestContext) {
	var req SimilarityRequest
	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体格式错误"})
		return
	}

	result, err := h.service.KeywordSimilarity(req.Resume, req.CoverLetter, req.Question)
	if err != nil {
		h.writeError(ctx, "计算词法相似度", err)
		return
	}

	ctx.JSON(consts.StatusOK, result)
}

// HandleSemanticSimilarity POST /similarity/semantic
func (h *InterviewHandler) HandleSemanticSimilarity(c context.Context, ctx *app.RequestContext) {
	var req SimilarityRequest
	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体格式错误"})
		return
	}

	score, err := h.service.SemanticSimilarity(c, req.Resume, req.CoverLetter, req.Question)
	if err != nil {
		h.writeError(ctx, "计算语义相似度", err)
		return
	}

	ctx.JSON(consts.StatusOK, utils.H{"score": score})
}

// HandleInclusion POST /similarity/inclusion
func (h *InterviewHandler) HandleInclusion(c context.Context, ctx *app.RequestContext) {
	var req InclusionRequest
	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体格式错误"})
		return
	}

	report, err := h.service.KeywordInclusion(req.Reference, req.Candidate)
	if err != nil {
		h.writeError(ctx, "计算关键词包含度", err)
		return
	}

	ctx.JSON(consts.StatusOK, report)
}

// HandleSimulate POST /simulate
func (h *InterviewHandler) HandleSimulate(c context.Context, ctx *app.RequestContext) {
	var req SimulateRequest
	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体格式错误"})
		return
	}

	result, err := h.service.Simulate(c, req.Resume, req.CoverLetter, req.JobDescription, req.Answer, req.QuestionCount)
	if err != nil {
		h.writeError(ctx, "模拟面试", err)
		return
	}

	ctx.JSON(consts.StatusOK, result)
}

// writeError 把编排器错误映射为HTTP状态码。
// 输入问题归400；上游模型/嵌入服务故障与不合约定的模型输出归502，
// 两类502的提示信息保持区分，方便客户端与排障时判断该重试还是该改提示词。
func (h *InterviewHandler) writeError(ctx *app.RequestContext, op string, err error) {
	switch {
	case errors.Is(err, processor.ErrInvalidInput):
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": err.Error()})
	case errors.Is(err, processor.ErrLLMUnavailable):
		logger.Error().Err(err).Str("op", op).Msg("LLM服务调用失败")
		ctx.JSON(consts.StatusBadGateway, utils.H{"error": "LLM服务暂时不可用，请稍后重试"})
	case errors.Is(err, processor.ErrEmbedderUnavailable):
		logger.Error().Err(err).Str("op", op).Msg("嵌入服务调用失败")
		ctx.JSON(consts.StatusBadGateway, utils.H{"error": "嵌入服务暂时不可用，请稍后重试"})
	case errors.Is(err, parser.ErrNoQuestionsExtracted),
		errors.Is(err, parser.ErrInvalidClassification),
		errors.Is(err, processor.ErrMalformedLLMOutput):
		logger.Error().Err(err).Str("op", op).Msg("LLM输出不符合约定")
		ctx.JSON(consts.StatusBadGateway, utils.H{"error": "LLM返回了无法解析的结果"})
	default:
		logger.Error().Err(err).Str("op", op).Msg("请求处理失败")
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "内部错误"})
	}
}
