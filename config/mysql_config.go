package config

import (
	"github.com/pkg/errors"
)

// MySQLConfig 以数据表作为记录来源时使用，Replicas 为只读副本
type MySQLConfig struct {
	DSN      string   `json:"dsn" yaml:"dsn"`
	Replicas []string `json:"replicas" yaml:"replicas"`
	Table    string   `json:"table" yaml:"table"`
}

func (m *MySQLConfig) Validate() []error {
	var errs = make([]error, 0)
	if m.DSN == "" {
		errs = append(errs, errors.New("MySQL DSN 不能为空 (MYSQL_DSN)"))
	}
	if m.Table == "" {
		errs = append(errs, errors.New("MySQL 数据表名不能为空"))
	}
	return errs
}

func NewDefaultMySQLConfig() *MySQLConfig {
	return &MySQLConfig{
		Table: "qna_report",
	}
}
