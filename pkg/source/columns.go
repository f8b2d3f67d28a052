package source

import (
	"fmt"
	"strings"

	"qna-discussion-import/pkg/model"
)

// MissingColumnsError 数据源表头缺少必需列
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: 缺少必需列 %s（必需列: %s）",
		ErrMalformedSource.Error(),
		strings.Join(e.Missing, ", "),
		strings.Join(model.RequiredFields, ", "))
}

func (e *MissingColumnsError) Unwrap() error {
	return ErrMalformedSource
}

// ValidateColumns 检查表头是否包含全部必需列，列名区分大小写
func ValidateColumns(header []string) error {
	present := make(map[string]struct{}, len(header))
	for _, column := range header {
		present[column] = struct{}{}
	}

	var missing []string
	for _, field := range model.RequiredFields {
		if _, ok := present[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Missing: missing}
	}
	return nil
}
