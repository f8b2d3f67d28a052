package config

import (
	"strings"

	"github.com/pkg/errors"
)

type MetricsConfig struct {
	PushgatewayURL string `json:"pushgatewayURL" yaml:"pushgatewayURL"` // 为空时不推送
	Job            string `json:"job" yaml:"job"`
}

func NewDefaultMetricsConfig() *MetricsConfig {
	return &MetricsConfig{
		Job: "qna_discussion_import",
	}
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug/info/warn/error
	Format string `json:"format" yaml:"format"` // console 或 json
}

func (l *LogConfig) Validate() []error {
	var errs = make([]error, 0)
	switch strings.ToLower(l.Format) {
	case "console", "json":
	default:
		errs = append(errs, errors.Errorf("不支持的日志格式: %q", l.Format))
	}
	return errs
}

func NewDefaultLogConfig() *LogConfig {
	return &LogConfig{
		Level:  "info",
		Format: "console",
	}
}
