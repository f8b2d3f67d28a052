package source

import (
	"context"
	"strings"

	"qna-discussion-import/config"
	"qna-discussion-import/pkg/model"

	"github.com/pkg/errors"
)

var (
	ErrSourceNotFound  = errors.New("数据源不存在")
	ErrMalformedSource = errors.New("数据源格式错误")
)

// Loader 读取全部记录。表头校验在读取任何一行之前完成
type Loader interface {
	Load(ctx context.Context) ([]model.Record, error)
	// Describe 用于日志展示数据源位置
	Describe() string
}

// NewLoader 按配置创建数据源
func NewLoader(cfg *config.GlobalConfig) (Loader, error) {
	switch strings.ToLower(cfg.Source.Type) {
	case config.SourceTypeCSV:
		return NewCSVLoader(cfg.Source.CSV.Path), nil
	case config.SourceTypeMySQL:
		return NewMySQLLoader(cfg.MySQLConfig), nil
	default:
		return nil, errors.Errorf("不支持的数据源类型: %q", cfg.Source.Type)
	}
}
