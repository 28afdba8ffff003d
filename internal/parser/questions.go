package parser

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoQuestionsExtracted 表示LLM输出里没有任何一行符合编号列表约定。
// 这是硬错误：说明模型忽略了明确的格式指令，静默返回空列表会掩盖
// 提示词工程或模型回归的问题。
var ErrNoQuestionsExtracted = errors.New("未能从LLM输出中提取任何问题")

// numberedLinePattern 编号行前缀：可选空白、一个以上数字、点号或右括号、空白
var numberedLinePattern = regexp.MustCompile(`^\s*\d+[.)]\s+`)

// ParseNumberedList 从LLM的自由文本中解析编号问题列表。
// 只保留符合编号前缀约定的行，剥掉前缀后的剩余内容（去首尾空白）即问题正文，
// 顺序按出现顺序保留。没有任何行匹配时返回 ErrNoQuestionsExtracted。
func ParseNumberedList(raw string) ([]string, error) {
	var questions []string
	for _, line := range strings.Split(raw, "\n") {
		prefix := numberedLinePattern.FindString(line)
		if prefix == "" {
			continue
		}
		content := strings.TrimSpace(line[len(prefix):])
		if content == "" {
			continue
		}
		questions = append(questions, content)
	}

	if len(questions) == 0 {
		return nil, ErrNoQuestionsExtracted
	}
	return questions, nil
}
