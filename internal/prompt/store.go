package prompt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// 模板渲染相关的基础错误。
// 占位符缺失是硬错误：残缺的提示词会以难以察觉的方式拉低LLM输出质量，
// 绝不能静默丢弃。
var (
	ErrTemplateNotFound = errors.New("提示词模板不存在")
	ErrMissingField     = errors.New("提示词模板字段缺失")
)

// placeholderPattern 形如 {field_name} 的命名占位符
var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Store 按名字管理提示词模板。
// 内置默认模板，可用模板目录中的 .tmpl 文件覆盖（文件名去掉扩展名即模板名）。
// 加载完成后只读，可并发使用。
type Store struct {
	templates map[string]string
}

// NewStore 创建模板仓库。dir为空时只使用内置模板；
// dir非空但不可读时返回加载错误（与渲染期的替换错误是两类错误）。
func NewStore(dir string) (*Store, error) {
	s := &Store{templates: make(map[string]string, len(defaultTemplates))}
	for name, tmpl := range defaultTemplates {
		s.templates[name] = tmpl
	}

	if dir != "" {
		if err := s.loadDir(dir); err != nil {
			return nil, fmt.Errorf("加载模板目录失败: %w", err)
		}
	}
	return s, nil
}

// loadDir 读取目录下的全部 .tmpl 文件并覆盖同名内置模板
func (s *Store) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".tmpl") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(entry.Name(), ".tmpl")
		s.templates[name] = string(data)
	}
	return nil
}

// Has 判断模板是否存在
func (s *Store) Has(name string) bool {
	_, ok := s.templates[name]
	return ok
}

// Render 渲染命名模板，把 {field} 占位符替换为 fields 中的同名值。
// 模板不存在返回 ErrTemplateNotFound；
// 模板引用了 fields 中不存在的字段返回 ErrMissingField。
func (s *Store) Render(name string, fields map[string]string) (string, error) {
	tmpl, ok := s.templates[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	var missing []string
	rendered := placeholderPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		field := match[1 : len(match)-1]
		value, present := fields[field]
		if !present {
			missing = append(missing, field)
			return match
		}
		return value
	})

	if len(missing) > 0 {
		return "", fmt.Errorf("%w: 模板%s缺少字段 %s", ErrMissingField, name, strings.Join(missing, ", "))
	}
	return rendered, nil
}
