package prompt

// 模板名常量
const (
	TemplateQuestionGeneration = "question_prompt"
	TemplateAnswerEvaluation   = "evaluation_prompt"
	TemplateClassification     = "classification_prompt"
)

// defaultTemplates 内置提示词模板。
// 正文是韩语：目标用户的简历/自我介绍材料以及期望的LLM输出都是韩语。
var defaultTemplates = map[string]string{
	// 问题生成的用户消息模板
	TemplateQuestionGeneration: `[지원 직무]
{position}

[이력서]
{resume}

위 정보를 바탕으로 실제 개발자 면접에서 나올 법한 구체적인 질문 {question_count}개를 만들어주세요.
각 질문은 지원자의 경험, 기술 역량, 프로젝트 기반 실무성에 초점을 맞춰야 합니다.

반드시 아래 형식으로만 출력하세요:
1. 첫 번째 질문
2. 두 번째 질문
...

번호와 질문 외에 다른 설명은 출력하지 마세요.`,

	// 答案评估的用户消息模板，评分表格式与解析器约定一致
	TemplateAnswerEvaluation: `[지원 직무]
{position}

[이력서]
{resume}

[자기소개서]
{cover_letter}

[면접 질문]
{question}

[지원자 답변]
{answer}

[평가 양식]
관련성: (1~10점)
구체성: (1~10점)
실무성: (1~10점)
유효성: (1~10점)
총점: (합계)
피드백: (문장 1~2개로 요약)`,

	// 问题分类的用户消息模板，要求严格的JSON输出
	TemplateClassification: `다음 면접 질문을 분류해주세요.

[면접 질문]
{question}

아래 JSON 형식으로만 응답하세요. JSON 외의 텍스트는 출력하지 마세요.
{"type": "TECHNICAL | PERSONALITY | PROJECT | SITUATION 중 하나", "category": "Java, Spring, SQL, React, Python, Teamwork, Communication, Leadership, Values, Architecture, Troubleshooting, Collaboration, Performance, Conflict, Deadline, Failure, Decision 중 하나", "difficultyLevel": 1}

difficultyLevel은 1(쉬움), 2(보통), 3(어려움) 중 하나의 정수여야 합니다.`,
}
