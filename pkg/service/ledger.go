package service

import (
	"context"
	"database/sql"
	"fmt"

	"qna-discussion-import/pkg/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// AttemptRecorder 记录每次发布尝试
type AttemptRecorder interface {
	RecordAttempt(ctx context.Context, attempt *model.PublishAttempt) error
}

// PublishLedger 把发布尝试写入 DuckDB，仅供审计，重复运行不会据此跳过
type PublishLedger struct {
	db *sql.DB
}

func NewPublishLedger(db *sql.DB) *PublishLedger {
	return &PublishLedger{db: db}
}

// EnsureTable 创建台账表，已存在时保留历史数据
func (l *PublishLedger) EnsureTable(ctx context.Context) error {
	if l.db == nil {
		return fmt.Errorf("DuckDB 连接未初始化")
	}

	createTableSQL := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			run_id TEXT,
			row_no INTEGER,
			title TEXT,
			url TEXT,
			status TEXT,
			error_reason TEXT,
			reactions INTEGER,
			created_at TIMESTAMP
		)
	`, model.PublishAttempt{}.TableName())

	if _, err := l.db.ExecContext(ctx, createTableSQL); err != nil {
		return errors.Wrap(err, "创建台账表失败")
	}

	zap.S().Debug("DuckDB 台账表已就绪")
	return nil
}

// RecordAttempt 插入一条发布记录，ID 为空时生成 UUID
func (l *PublishLedger) RecordAttempt(ctx context.Context, attempt *model.PublishAttempt) error {
	if l.db == nil {
		return fmt.Errorf("DuckDB 连接未初始化")
	}
	if attempt.ID == "" {
		attempt.ID = uuid.NewString()
	}

	insertSQL := fmt.Sprintf(`
		INSERT INTO %s (id, run_id, row_no, title, url, status, error_reason, reactions, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, attempt.TableName())

	_, err := l.db.ExecContext(ctx, insertSQL,
		attempt.ID,
		attempt.RunID,
		attempt.RowNumber,
		attempt.Title,
		attempt.URL,
		attempt.Status,
		attempt.Error,
		attempt.Reactions,
		attempt.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "插入台账记录失败")
	}
	return nil
}

// CountByStatus 统计某次运行中各状态的记录数，runID 为空时统计全部
func (l *PublishLedger) CountByStatus(ctx context.Context, runID string) (map[string]int64, error) {
	if l.db == nil {
		return nil, fmt.Errorf("DuckDB 连接未初始化")
	}

	query := fmt.Sprintf("SELECT status, COUNT(*) FROM %s", model.PublishAttempt{}.TableName())
	args := make([]any, 0, 1)
	if runID != "" {
		query += " WHERE run_id = ?"
		args = append(args, runID)
	}
	rows, err := l.db.QueryContext(ctx, query+" GROUP BY status", args...)
	if err != nil {
		return nil, errors.Wrap(err, "查询台账失败")
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, errors.Wrap(err, "扫描台账记录失败")
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
