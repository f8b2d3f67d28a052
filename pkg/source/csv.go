package source

import (
	"context"
	"encoding/csv"
	"io"
	"io/fs"
	"os"
	"strings"

	"qna-discussion-import/pkg/model"

	"github.com/pkg/errors"
)

const utf8BOM = "\ufeff"

type CSVLoader struct {
	path string
}

func NewCSVLoader(path string) *CSVLoader {
	return &CSVLoader{path: path}
}

func (l *CSVLoader) Describe() string {
	return l.path
}

func (l *CSVLoader) Load(ctx context.Context) ([]model.Record, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrSourceNotFound, "CSV 文件 %s", l.path)
		}
		return nil, errors.Wrapf(err, "打开 CSV 文件 %s", l.path)
	}
	defer f.Close()

	return ReadCSV(ctx, f)
}

// ReadCSV 读取带表头的 CSV。行的字段数可以与表头不一致，缺失字段视为空
func ReadCSV(ctx context.Context, r io.Reader) ([]model.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.Wrap(ErrMalformedSource, "CSV 文件为空，缺少表头")
		}
		return nil, errors.Wrapf(ErrMalformedSource, "读取表头失败: %v", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	if err := ValidateColumns(header); err != nil {
		return nil, err
	}

	records := make([]model.Record, 0)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedSource, "第 %d 行解析失败: %v", len(records)+1, err)
		}

		record := make(model.Record, len(header))
		for i, column := range header {
			if i < len(row) {
				record[column] = row[i]
			}
		}
		records = append(records, record)
	}
	return records, nil
}
