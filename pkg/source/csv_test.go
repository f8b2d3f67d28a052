package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestReadCSV(t *testing.T) {
	input := "Time,Source,Type,Content,Reactions\n" +
		"09:00,ATTENDEE,QUESTION,\"Multi-line\nquestion, with comma\",2\n" +
		"09:01,PRESENTER,ANSWER,Sure,0\n" +
		"09:02,ATTENDEE,QUESTION\n"

	records, err := ReadCSV(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("ReadCSV() returned %d records, want 3", len(records))
	}

	if got := records[0].Content(); got != "Multi-line\nquestion, with comma" {
		t.Errorf("records[0].Content() = %q", got)
	}
	if got := records[0].Reactions(); got != "2" {
		t.Errorf("records[0].Reactions() = %q", got)
	}
	if got := records[1].Source(); got != "PRESENTER" {
		t.Errorf("records[1].Source() = %q", got)
	}
	// 字段不足的行，缺失字段为空
	if got := records[2].Content(); got != "" {
		t.Errorf("records[2].Content() = %q, want empty", got)
	}
	if got := records[2].Type(); got != "QUESTION" {
		t.Errorf("records[2].Type() = %q", got)
	}
}

func TestReadCSV_BOMHeader(t *testing.T) {
	input := "\ufeffSource,Type,Content,Reactions\nATTENDEE,QUESTION,hi,0\n"

	records, err := ReadCSV(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if got := records[0].Source(); got != "ATTENDEE" {
		t.Errorf("Source() = %q, want ATTENDEE", got)
	}
}

func TestReadCSV_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty file", ""},
		{"missing columns", "Source,Type,Body\nATTENDEE,QUESTION,hi\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(context.Background(), strings.NewReader(tt.input))
			if !errors.Is(err, ErrMalformedSource) {
				t.Errorf("ReadCSV() error = %v, want ErrMalformedSource", err)
			}
		})
	}
}

func TestCSVLoader_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Q&A Report.csv")
	content := "Source,Type,Content,Reactions\nATTENDEE,QUESTION,How?,1\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	loader := NewCSVLoader(path)
	if loader.Describe() != path {
		t.Errorf("Describe() = %q", loader.Describe())
	}
	records, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(records) != 1 || records[0].Content() != "How?" {
		t.Errorf("records = %v", records)
	}
}

func TestCSVLoader_NotFound(t *testing.T) {
	loader := NewCSVLoader(filepath.Join(t.TempDir(), "missing.csv"))
	_, err := loader.Load(context.Background())
	if !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("Load() error = %v, want ErrSourceNotFound", err)
	}
}
