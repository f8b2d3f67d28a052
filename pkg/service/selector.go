package service

import (
	"strings"

	"qna-discussion-import/pkg/model"
)

// FilterQuestions 保留 Source 与 Type 分别等于 role、kind（大小写不敏感）的记录，保持原有顺序
func FilterQuestions(records []model.Record, role, kind string) []model.Question {
	questions := make([]model.Question, 0)
	for i, record := range records {
		if strings.EqualFold(record.Source(), role) && strings.EqualFold(record.Type(), kind) {
			questions = append(questions, model.Question{RowNumber: i + 1, Record: record})
		}
	}
	return questions
}
