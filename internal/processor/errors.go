package processor

import (
	"errors"
	"fmt"
)

// 定义基础错误类型。
// ErrLLMUnavailable 与 ErrMalformedLLMOutput 必须保持区分：
// 前者表示上游模型调用失败（网络/鉴权/超时），后者表示模型返回了
// 不符合结构约定的文本。两者要求调用方采取不同的补救措施。
// 问题列表与分类的专用错误 (ErrNoQuestionsExtracted, ErrInvalidClassification)
// 定义在 internal/parser 包，靠近产生它们的解析逻辑。
var (
	ErrInvalidInput        = errors.New("输入校验失败")
	ErrLLMUnavailable      = errors.New("LLM服务不可用")
	ErrEmbedderUnavailable = errors.New("嵌入服务不可用")
	ErrMalformedLLMOutput  = errors.New("LLM输出格式不符合约定")
)

// InterviewError 包含详细错误信息的自定义错误
type InterviewError struct {
	Op      string
	BaseErr error
	Detail  string
}

func (e *InterviewError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s): %s", e.BaseErr, e.Op, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s)", e.BaseErr, e.Op)
}

func (e *InterviewError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *InterviewError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func NewInvalidInputError(op, detail string) error {
	return &InterviewError{Op: op, BaseErr: ErrInvalidInput, Detail: detail}
}

func NewLLMUnavailableError(op string, cause error) error {
	detail := ""
	if cause != nil {
		detail = cause.Error()
	}
	return &InterviewError{Op: op, BaseErr: ErrLLMUnavailable, Detail: detail}
}

func NewEmbedderUnavailableError(op string, cause error) error {
	detail := ""
	if cause != nil {
		detail = cause.Error()
	}
	return &InterviewError{Op: op, BaseErr: ErrEmbedderUnavailable, Detail: detail}
}

func NewMalformedOutputError(op, detail string) error {
	return &InterviewError{Op: op, BaseErr: ErrMalformedLLMOutput, Detail: detail}
}
