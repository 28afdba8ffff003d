package router

import (
	"context"
	"crypto/subtle"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/keyauth"

	"interview-agent-go/internal/api/handler"
	"interview-agent-go/internal/constants"
)

// RegisterRoutes 注册 API 路由。
// apiKey非空时，面试相关接口要求 Authorization: Bearer <key>；
// 健康检查始终不鉴权。
func RegisterRoutes(h *server.Hertz, interviewHandler *handler.InterviewHandler, apiKey string) {
	h.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{
			"status":  "ok",
			"service": constants.ServiceName,
			"version": constants.ServiceVersion,
		})
	})

	api := h.Group("/")
	if apiKey != "" {
		api.Use(keyauth.New(
			keyauth.WithKeyLookUp("header:Authorization", "Bearer"),
			keyauth.WithValidator(func(c context.Context, ctx *app.RequestContext, key string) (bool, error) {
				return subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) == 1, nil
			}),
			keyauth.WithErrorHandler(func(c context.Context, ctx *app.RequestContext, err error) {
				ctx.JSON(consts.StatusUnauthorized, utils.H{"error": "无效的API密钥"})
				ctx.Abort()
			}),
		))
	}

	api.POST("/interview/questions", interviewHandler.HandleGenerateQuestions)
	api.POST("/interview/feedback", interviewHandler.HandleFeedback)
	api.POST("/evaluate", interviewHandler.HandleEvaluate)
	api.POST("/similarity/keyword", interviewHandler.HandleKeywordSimilarity)
	api.POST("/similarity/semantic", interviewHandler.HandleSemanticSimilarity)
	api.POST("/similarity/inclusion", interviewHandler.HandleInclusion)
	api.POST("/simulate", interviewHandler.HandleSimulate)
}
