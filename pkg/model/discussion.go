package model

// Discussion 表示处理后待发布的讨论
type Discussion struct {
	RowNumber       int    `json:"row" yaml:"row"`
	Title           string `json:"title" yaml:"title"`
	Body            string `json:"body" yaml:"body"`
	OriginalContent string `json:"-" yaml:"-"`
	Reactions       int    `json:"reactions" yaml:"reactions"`
	EmailsRedacted  int    `json:"emailsRedacted" yaml:"emailsRedacted"`
	SignatureCut    bool   `json:"signatureRemoved" yaml:"signatureRemoved"`
}

// PrivacyApplied 内容是否因脱敏规则发生了变化
func (d *Discussion) PrivacyApplied() bool {
	return d.OriginalContent != d.Body
}

// ImportSummary 一次运行的统计
type ImportSummary struct {
	RunID     string `json:"runId" yaml:"runId"`
	TotalRows int    `json:"totalRows" yaml:"totalRows"`
	Selected  int    `json:"selected" yaml:"selected"`
	Created   int    `json:"created" yaml:"created"`
	Failed    int    `json:"failed" yaml:"failed"`
}
