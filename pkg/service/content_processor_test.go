package service

import (
	"testing"

	"qna-discussion-import/config"
	"qna-discussion-import/pkg/model"
)

func TestContentProcessor_ProcessQuestion(t *testing.T) {
	p := NewDefaultContentProcessor()

	d := p.ProcessQuestion(model.Question{
		RowNumber: 7,
		Record: model.Record{
			"Source":    "ATTENDEE",
			"Type":      "QUESTION",
			"Content":   "Contact me at jane.doe@example.com for details.\nBest,\nJane",
			"Reactions": "3",
		},
	})

	if d.RowNumber != 7 {
		t.Errorf("RowNumber = %d, want 7", d.RowNumber)
	}
	if d.Body != "Contact me at [redacted-email] for details." {
		t.Errorf("Body = %q", d.Body)
	}
	if d.Title != "Q&A: Contact me at [redacted-email] for details." {
		t.Errorf("Title = %q", d.Title)
	}
	if d.Reactions != 3 {
		t.Errorf("Reactions = %d, want 3", d.Reactions)
	}
	if d.EmailsRedacted != 1 || !d.SignatureCut || !d.PrivacyApplied() {
		t.Errorf("privacy flags = %d/%v/%v", d.EmailsRedacted, d.SignatureCut, d.PrivacyApplied())
	}
}

func TestContentProcessor_TotalOverOddInput(t *testing.T) {
	p := NewContentProcessor(&config.SanitizeConfig{}, &config.TitleConfig{MaxLength: 20, WordBoundaryThreshold: 0.5})

	tests := []struct {
		name      string
		record    model.Record
		wantTitle string
		wantBody  string
	}{
		{"missing content", model.Record{}, "Q&A: ", ""},
		{"non numeric reactions", model.Record{"Content": "ok", "Reactions": "lots"}, "Q&A: ok.", "ok."},
		{"long content", model.Record{"Content": "Where can I find the recording of today"}, "Q&A: Where can I find...", "Where can I find the recording of today."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := p.ProcessQuestion(model.Question{RowNumber: 1, Record: tt.record})
			if d.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", d.Title, tt.wantTitle)
			}
			if d.Body != tt.wantBody {
				t.Errorf("Body = %q, want %q", d.Body, tt.wantBody)
			}
			if d.Reactions != 0 {
				t.Errorf("Reactions = %d, want 0", d.Reactions)
			}
		})
	}
}
