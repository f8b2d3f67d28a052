package config

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	SourceTypeCSV   = "csv"
	SourceTypeMySQL = "mysql"
)

type SourceConfig struct {
	Type string     `json:"type" yaml:"type"` // csv 或 mysql
	CSV  *CSVConfig `json:"csv" yaml:"csv"`
}

type CSVConfig struct {
	Path string `json:"path" yaml:"path"` // Q&A 导出文件路径
}

func (s *SourceConfig) Validate() []error {
	var errs = make([]error, 0)
	switch strings.ToLower(s.Type) {
	case SourceTypeCSV:
		if s.CSV == nil || s.CSV.Path == "" {
			errs = append(errs, errors.New("CSV 文件路径不能为空 (CSV_FILE)"))
		}
	case SourceTypeMySQL:
	default:
		errs = append(errs, errors.Errorf("不支持的数据源类型: %q", s.Type))
	}
	return errs
}

func NewDefaultSourceConfig() *SourceConfig {
	return &SourceConfig{
		Type: SourceTypeCSV,
		CSV:  &CSVConfig{Path: "data/Q&A ReportClean.csv"},
	}
}

// SelectorConfig 筛选条件，按大小写不敏感比较
type SelectorConfig struct {
	Role string `json:"role" yaml:"role"` // Source 列取值
	Kind string `json:"kind" yaml:"kind"` // Type 列取值
}

func (s *SelectorConfig) Validate() []error {
	var errs = make([]error, 0)
	if s.Role == "" || s.Kind == "" {
		errs = append(errs, errors.New("筛选条件 role/kind 不能为空"))
	}
	return errs
}

func NewDefaultSelectorConfig() *SelectorConfig {
	return &SelectorConfig{
		Role: "ATTENDEE",
		Kind: "QUESTION",
	}
}

type TitleConfig struct {
	MaxLength             int     `json:"maxLength" yaml:"maxLength"`
	WordBoundaryThreshold float64 `json:"wordBoundaryThreshold" yaml:"wordBoundaryThreshold"`
}

func (t *TitleConfig) Validate() []error {
	var errs = make([]error, 0)
	if t.WordBoundaryThreshold < 0 || t.WordBoundaryThreshold > 1 {
		errs = append(errs, errors.Errorf("标题截断阈值必须在 0 到 1 之间，当前为 %v", t.WordBoundaryThreshold))
	}
	return errs
}

func NewDefaultTitleConfig() *TitleConfig {
	return &TitleConfig{
		MaxLength:             60,
		WordBoundaryThreshold: 0.7,
	}
}

type SanitizeConfig struct {
	StripHTML bool `json:"stripHTML" yaml:"stripHTML"` // 脱敏前先去除 HTML 标签
}
