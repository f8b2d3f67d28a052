package service

import (
	"qna-discussion-import/config"
	"qna-discussion-import/pkg/model"

	"github.com/spf13/cast"
)

// ContentProcessor 将一条提问处理成待发布的讨论：脱敏正文并生成标题
type ContentProcessor struct {
	sanitizer *Sanitizer
	titles    *TitleGenerator
}

func NewContentProcessor(sanitize *config.SanitizeConfig, title *config.TitleConfig) *ContentProcessor {
	return &ContentProcessor{
		sanitizer: NewSanitizer(sanitize.StripHTML),
		titles:    NewTitleGenerator(title.MaxLength, title.WordBoundaryThreshold),
	}
}

// NewDefaultContentProcessor 不去除 HTML，标题使用默认长度与阈值
func NewDefaultContentProcessor() *ContentProcessor {
	return &ContentProcessor{
		sanitizer: NewSanitizer(false),
		titles:    NewTitleGenerator(DefaultTitleMaxLength, DefaultWordBoundaryThreshold),
	}
}

// ProcessQuestion 处理不会失败，任何内容（包括空内容）都有确定的输出
func (p *ContentProcessor) ProcessQuestion(question model.Question) *model.Discussion {
	original := question.Record.Content()
	body, report := p.sanitizer.Sanitize(original)

	return &model.Discussion{
		RowNumber:       question.RowNumber,
		Title:           p.titles.Generate(body),
		Body:            body,
		OriginalContent: original,
		Reactions:       cast.ToInt(question.Record.Reactions()),
		EmailsRedacted:  report.EmailsRedacted,
		SignatureCut:    report.SignatureRemoved,
	}
}
