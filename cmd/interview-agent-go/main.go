package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	"github.com/spf13/pflag"

	"interview-agent-go/internal/agent"
	"interview-agent-go/internal/api/handler"
	"interview-agent-go/internal/api/router"
	"interview-agent-go/internal/config"
	"interview-agent-go/internal/keyword"
	"interview-agent-go/internal/logger"
	"interview-agent-go/internal/parser"
	"interview-agent-go/internal/processor"
	"interview-agent-go/internal/prompt"
	"interview-agent-go/internal/similarity"
	"interview-agent-go/internal/storage"
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "internal/config/config.yaml", "Path to config file")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("加载配置失败")
	}

	logger.Init(logger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})
	glog.SetLogger(hertzadapter.From(logger.Logger))
	logger.Info().Msg("配置加载成功")

	chatModel, err := agent.NewAliyunQwenChatModel(cfg.Aliyun.APIKey, cfg.Aliyun.Model, cfg.Aliyun.APIURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化通义千问客户端失败")
	}

	embedder, err := parser.NewAliyunEmbedder(cfg.Aliyun.APIKey, cfg.Aliyun.Embedding)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化Embedder失败")
	}

	// Redis向量缓存是可选的：连不上只降级为每次直连Embedding接口
	semanticOpts := []similarity.SemanticOption{}
	var redisStore *storage.Redis
	if cfg.Redis.Address != "" {
		redisStore, err = storage.NewRedisAdapter(&cfg.Redis)
		if err != nil {
			logger.Warn().Err(err).Str("address", cfg.Redis.Address).Msg("Redis连接失败，向量缓存关闭")
		} else {
			defer redisStore.Close()
			semanticOpts = append(semanticOpts,
				similarity.WithVectorCache(storage.NewVectorCache(redisStore, cfg.Aliyun.Embedding.Model)))
			logger.Info().Msg("Redis向量缓存已启用")
		}
	}

	semanticScorer, err := similarity.NewSemanticScorer(embedder, semanticOpts...)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化语义相似度计算器失败")
	}

	promptStore, err := prompt.NewStore(cfg.Prompt.TemplatesDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("加载提示词模板失败")
	}

	extractor := keyword.NewExtractor()
	lexicalScorer := similarity.NewLexicalScorer(extractor)

	service := processor.NewInterviewService(chatModel, promptStore, lexicalScorer, semanticScorer, cfg.Interview,
		processor.WithTaskModels(map[string]string{
			processor.TaskQuestionGeneration: cfg.GetModelForTask(processor.TaskQuestionGeneration),
			processor.TaskAnswerEvaluation:   cfg.GetModelForTask(processor.TaskAnswerEvaluation),
			processor.TaskClassification:     cfg.GetModelForTask(processor.TaskClassification),
		}))
	interviewHandler := handler.NewInterviewHandler(service)

	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		glog.CtxInfof(c, "Request: %s %s", string(ctx.Method()), string(ctx.Path()))
		ctx.Next(c)
		glog.CtxInfof(c, "Response: status %d", ctx.Response.StatusCode())
	})

	router.RegisterRoutes(h, interviewHandler, cfg.Server.APIKey)
	logger.Info().Str("address", cfg.Server.Address).Msg("HTTP服务器启动中")

	go func() {
		if err := h.Run(); err != nil {
			logger.Fatal().Err(err).Msg("启动HTTP服务器失败")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("接收到终止信号，正在优雅退出...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("服务器关闭失败")
	}
	logger.Info().Msg("优雅退出完成")
}
