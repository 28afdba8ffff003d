package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/rs/zerolog"

	"interview-agent-go/internal/config"
	"interview-agent-go/internal/logger"
)

// AliyunEmbedder 通过阿里云DashScope的OpenAI兼容接口实现 embedding.Embedder。
// 句向量模型在服务端加载，进程内只建一个Embedder实例并在启动时注入，
// 初始化后只读，可被并发请求安全共享。
type AliyunEmbedder struct {
	apiKey     string
	model      string
	dimensions int
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewAliyunEmbedder 创建阿里云Embedder
func NewAliyunEmbedder(apiKey string, embeddingCfg config.EmbeddingConfig) (*AliyunEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API密钥不能为空")
	}

	model := embeddingCfg.Model
	if model == "" {
		model = "text-embedding-v3"
	}
	baseURL := embeddingCfg.BaseURL
	if baseURL == "" {
		baseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1/embeddings"
	}

	return &AliyunEmbedder{
		apiKey:     apiKey,
		model:      model,
		dimensions: embeddingCfg.Dimensions,
		baseURL:    baseURL,
		httpClient: &http.Client{},
		logger:     logger.Logger.With().Str("component", "aliyun_embedder").Logger(),
	}, nil
}

// GetDimensions 返回嵌入器配置的向量维度
func (a *AliyunEmbedder) GetDimensions() int {
	return a.dimensions
}

// aliyunEmbeddingRequest OpenAI兼容的Embedding请求结构
type aliyunEmbeddingRequest struct {
	Input          interface{} `json:"input"` // string 或 []string
	Model          string      `json:"model"`
	Dimensions     int         `json:"dimensions,omitempty"`
	EncodingFormat string      `json:"encoding_format,omitempty"`
}

// aliyunEmbeddingResponse OpenAI兼容的Embedding响应结构
type aliyunEmbeddingResponse struct {
	Object string                `json:"object"`
	Data   []aliyunEmbeddingData `json:"data"`
	Model  string                `json:"model"`
	Usage  aliyunEmbeddingUsage  `json:"usage"`
	Error  *aliyunAPIError       `json:"error,omitempty"`
}

type aliyunEmbeddingData struct {
	Object    string    `json:"object"`
	Embedding []float64 `json:"embedding"`
	Index     int       `json:"index"`
}

type aliyunEmbeddingUsage struct {
	PromptTokens int `json:"prompt_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// aliyunAPIError API层面的错误（可能随200响应一起返回）
type aliyunAPIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param"`
	Code    string `json:"code"`
}

// EmbedStrings 将文本批量转换为向量，实现 cloudwego/eino 的 embedding.Embedder 接口
func (a *AliyunEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	options := &embedding.Options{}
	embedding.GetCommonOptions(options, opts...)

	effectiveModel := a.model
	if options.Model != nil && *options.Model != "" {
		effectiveModel = *options.Model
	}

	var inputBody interface{}
	if len(texts) == 1 {
		inputBody = texts[0]
	} else {
		inputBody = texts
	}

	reqBody := aliyunEmbeddingRequest{
		Input: inputBody,
		Model: effectiveModel,
	}
	if a.dimensions > 0 {
		reqBody.Dimensions = a.dimensions
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("序列化请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	a.logger.Debug().
		Int("texts", len(texts)).
		Str("model", effectiveModel).
		Int("dimensions", a.dimensions).
		Msg("发送Embedding请求")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("发送HTTP请求失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应体失败: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiError aliyunAPIError
		if json.Unmarshal(body, &apiError) == nil && apiError.Message != "" {
			return nil, fmt.Errorf("API调用失败, 状态码: %d, 类型: %s, 错误: %s, Code: %s",
				resp.StatusCode, apiError.Type, apiError.Message, apiError.Code)
		}
		return nil, fmt.Errorf("API调用失败, 状态码: %d, 响应: %s", resp.StatusCode, string(body))
	}

	var parsed aliyunEmbeddingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("解析响应JSON失败: %w. Body: %s", err, string(body))
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return nil, fmt.Errorf("API返回错误: 类型=%s, 消息='%s', Code=%s",
			parsed.Error.Type, parsed.Error.Message, parsed.Error.Code)
	}

	// 按Index归位，响应顺序没有契约保证
	outputEmbeddings := make([][]float64, len(texts))
	for _, entry := range parsed.Data {
		if entry.Index < 0 || entry.Index >= len(texts) {
			return nil, fmt.Errorf("响应中的向量索引越界: %d", entry.Index)
		}
		outputEmbeddings[entry.Index] = entry.Embedding
	}
	for i, vec := range outputEmbeddings {
		if vec == nil {
			return nil, fmt.Errorf("响应中缺少第%d个文本的向量", i)
		}
	}

	a.logger.Debug().
		Int("embeddings", len(outputEmbeddings)).
		Int("prompt_tokens", parsed.Usage.PromptTokens).
		Msg("Embedding请求完成")

	return outputEmbeddings, nil
}

var _ embedding.Embedder = (*AliyunEmbedder)(nil)
