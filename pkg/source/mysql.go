package source

import (
	"context"
	"database/sql"

	"qna-discussion-import/config"
	"qna-discussion-import/pkg/db"
	"qna-discussion-import/pkg/model"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
)

// mysqlErrNoSuchTable ER_NO_SUCH_TABLE
const mysqlErrNoSuchTable = 1146

// MySQLLoader 从数据表读取导出记录，列名即字段名
type MySQLLoader struct {
	cfg *config.MySQLConfig
}

func NewMySQLLoader(cfg *config.MySQLConfig) *MySQLLoader {
	return &MySQLLoader{cfg: cfg}
}

func (l *MySQLLoader) Describe() string {
	return "mysql:" + l.cfg.Table
}

func (l *MySQLLoader) Load(ctx context.Context) ([]model.Record, error) {
	if err := db.InitMySQL(l.cfg); err != nil {
		return nil, err
	}

	rows, err := db.GetMySQL().WithContext(ctx).Table(l.cfg.Table).Rows()
	if err != nil {
		var mysqlErr *mysqldriver.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrNoSuchTable {
			return nil, errors.Wrapf(ErrSourceNotFound, "数据表 %s", l.cfg.Table)
		}
		return nil, errors.Wrapf(err, "查询数据表 %s 失败", l.cfg.Table)
	}
	defer rows.Close()

	return scanRecords(rows)
}

type rowScanner interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// scanRecords 先校验列名再逐行读取，NULL 视为空字符串
func scanRecords(rows rowScanner) ([]model.Record, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "读取列名失败")
	}
	if err := ValidateColumns(columns); err != nil {
		return nil, err
	}

	records := make([]model.Record, 0)
	values := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Wrapf(err, "第 %d 行读取失败", len(records)+1)
		}
		record := make(model.Record, len(columns))
		for i, column := range columns {
			record[column] = values[i].String
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "遍历数据表失败")
	}
	return records, nil
}
