package model

import "time"

const (
	PublishStatusCreated = "created"
	PublishStatusFailed  = "failed"
)

// PublishAttempt 发布台账中的一条记录，存储到 DuckDB
type PublishAttempt struct {
	ID        string    `json:"id"`
	RunID     string    `json:"run_id"`
	RowNumber int       `json:"row_number"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Status    string    `json:"status"`
	Error     string    `json:"error"`
	Reactions int       `json:"reactions"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定表名
func (PublishAttempt) TableName() string {
	return "publish_attempt"
}
