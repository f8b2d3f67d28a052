package service

import (
	"context"
	"testing"

	"qna-discussion-import/config"
	"qna-discussion-import/pkg/metrics"
	"qna-discussion-import/pkg/model"
	"qna-discussion-import/pkg/source"

	"github.com/pkg/errors"
)

type fakeLoader struct {
	records []model.Record
	err     error
}

func (f *fakeLoader) Load(ctx context.Context) ([]model.Record, error) {
	return f.records, f.err
}

func (f *fakeLoader) Describe() string { return "fake" }

type createCall struct {
	repoID, categoryID, title, body string
}

type fakePublisher struct {
	repoErr     error
	categoryErr error
	failTitles  map[string]bool

	lookups int
	calls   []createCall
}

func (f *fakePublisher) RepositoryID(ctx context.Context, owner, repo string) (string, error) {
	f.lookups++
	if f.repoErr != nil {
		return "", f.repoErr
	}
	return "R_" + owner + "/" + repo, nil
}

func (f *fakePublisher) CategoryID(ctx context.Context, owner, repo, category string) (string, error) {
	f.lookups++
	if f.categoryErr != nil {
		return "", f.categoryErr
	}
	return "C_" + category, nil
}

func (f *fakePublisher) CreateDiscussion(ctx context.Context, repositoryID, categoryID, title, body string) (string, error) {
	f.calls = append(f.calls, createCall{repositoryID, categoryID, title, body})
	if f.failTitles[title] {
		return "", errors.New("rejected")
	}
	return "https://github.com/octo/qna/discussions/" + title, nil
}

type fakeLedger struct {
	attempts []model.PublishAttempt
}

func (f *fakeLedger) RecordAttempt(ctx context.Context, attempt *model.PublishAttempt) error {
	f.attempts = append(f.attempts, *attempt)
	return nil
}

func sampleRecords() []model.Record {
	return []model.Record{
		{"Source": "ATTENDEE", "Type": "QUESTION", "Content": "How do I enable the feature? Thanks, John Smith", "Reactions": "2"},
		{"Source": "PRESENTER", "Type": "ANSWER", "Content": "Use the settings page."},
		{"Source": "attendee", "Type": "question", "Content": "Is there a roadmap"},
		{"Source": "Attendee", "Type": "Question", "Content": "Mail me at a@b.com\nRegards,\nA"},
	}
}

func newTestService(loader source.Loader, pub Publisher) *ImportService {
	target := &config.GitHubConfig{Owner: "octo", Repository: "qna", Category: "Session Questions"}
	return NewImportService(loader, NewDefaultContentProcessor(), config.NewDefaultSelectorConfig()).
		WithPublisher(pub, target)
}

func TestImportService_Run(t *testing.T) {
	pub := &fakePublisher{}
	ledger := &fakeLedger{}
	svc := newTestService(&fakeLoader{records: sampleRecords()}, pub).
		WithLedger(ledger).
		WithMetrics(metrics.NewRecorder())

	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.TotalRows != 4 || summary.Selected != 3 || summary.Created != 3 || summary.Failed != 0 {
		t.Errorf("summary = %+v", *summary)
	}
	if summary.RunID != svc.RunID() {
		t.Errorf("summary.RunID = %q, want %q", summary.RunID, svc.RunID())
	}

	wantTitles := []string{
		"Q&A: How do I enable the feature?",
		"Q&A: Is there a roadmap.",
		"Q&A: Mail me at [redacted-email].",
	}
	if len(pub.calls) != len(wantTitles) {
		t.Fatalf("CreateDiscussion called %d times, want %d", len(pub.calls), len(wantTitles))
	}
	for i, want := range wantTitles {
		call := pub.calls[i]
		if call.title != want {
			t.Errorf("call %d title = %q, want %q", i, call.title, want)
		}
		if call.repoID != "R_octo/qna" || call.categoryID != "C_Session Questions" {
			t.Errorf("call %d target = %s/%s", i, call.repoID, call.categoryID)
		}
	}
	if pub.calls[2].body != "Mail me at [redacted-email]." {
		t.Errorf("body = %q", pub.calls[2].body)
	}
	if pub.lookups != 2 {
		t.Errorf("lookups = %d, want 2 (resolved once per run)", pub.lookups)
	}

	if len(ledger.attempts) != 3 {
		t.Fatalf("ledger has %d attempts, want 3", len(ledger.attempts))
	}
	first := ledger.attempts[0]
	if first.RowNumber != 1 || first.Status != model.PublishStatusCreated || first.URL == "" || first.Reactions != 2 {
		t.Errorf("first attempt = %+v", first)
	}
	if ledger.attempts[1].RowNumber != 3 || ledger.attempts[2].RowNumber != 4 {
		t.Errorf("row numbers = %d, %d", ledger.attempts[1].RowNumber, ledger.attempts[2].RowNumber)
	}
}

func TestImportService_FailureDoesNotHaltBatch(t *testing.T) {
	pub := &fakePublisher{failTitles: map[string]bool{"Q&A: Is there a roadmap.": true}}
	ledger := &fakeLedger{}
	svc := newTestService(&fakeLoader{records: sampleRecords()}, pub).WithLedger(ledger)

	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Created != 2 || summary.Failed != 1 {
		t.Errorf("created/failed = %d/%d, want 2/1", summary.Created, summary.Failed)
	}
	if len(pub.calls) != 3 {
		t.Errorf("CreateDiscussion called %d times, want 3", len(pub.calls))
	}
	failed := ledger.attempts[1]
	if failed.Status != model.PublishStatusFailed || failed.Error != "rejected" || failed.URL != "" {
		t.Errorf("failed attempt = %+v", failed)
	}
}

func TestImportService_ResolveFailures(t *testing.T) {
	tests := []struct {
		name        string
		pub         *fakePublisher
		wantLookups int
	}{
		{"repository", &fakePublisher{repoErr: errors.New("not found")}, 1},
		{"category", &fakePublisher{categoryErr: errors.New("no such category")}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&fakeLoader{records: sampleRecords()}, tt.pub)

			_, err := svc.Run(context.Background())
			if !errors.Is(err, ErrResolveTarget) {
				t.Fatalf("Run() error = %v, want ErrResolveTarget", err)
			}
			if tt.pub.lookups != tt.wantLookups {
				t.Errorf("lookups = %d, want %d", tt.pub.lookups, tt.wantLookups)
			}
			if len(tt.pub.calls) != 0 {
				t.Errorf("CreateDiscussion called %d times, want 0", len(tt.pub.calls))
			}
		})
	}
}

func TestImportService_NoQuestionsSkipsLookups(t *testing.T) {
	pub := &fakePublisher{}
	records := []model.Record{{"Source": "PRESENTER", "Type": "ANSWER", "Content": "x"}}
	svc := newTestService(&fakeLoader{records: records}, pub)

	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Selected != 0 || pub.lookups != 0 {
		t.Errorf("selected=%d lookups=%d, want 0/0", summary.Selected, pub.lookups)
	}
}

func TestImportService_LoaderError(t *testing.T) {
	pub := &fakePublisher{}
	loadErr := errors.Wrap(source.ErrSourceNotFound, "CSV 文件 missing.csv")
	svc := newTestService(&fakeLoader{err: loadErr}, pub)

	if _, err := svc.Run(context.Background()); !errors.Is(err, source.ErrSourceNotFound) {
		t.Errorf("Run() error = %v, want ErrSourceNotFound", err)
	}
	if pub.lookups != 0 {
		t.Errorf("lookups = %d, want 0", pub.lookups)
	}
}

func TestImportService_Cancelled(t *testing.T) {
	pub := &fakePublisher{}
	svc := newTestService(&fakeLoader{records: sampleRecords()}, pub)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := svc.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if summary.Created != 0 || len(pub.calls) != 0 {
		t.Errorf("created=%d calls=%d, want 0/0", summary.Created, len(pub.calls))
	}
}

func TestImportService_RunWithoutPublisher(t *testing.T) {
	svc := NewImportService(&fakeLoader{}, NewDefaultContentProcessor(), config.NewDefaultSelectorConfig())
	if _, err := svc.Run(context.Background()); err == nil {
		t.Error("Run() without publisher should fail")
	}
}

func TestImportService_Prepare(t *testing.T) {
	svc := NewImportService(&fakeLoader{records: sampleRecords()}, NewDefaultContentProcessor(), config.NewDefaultSelectorConfig())

	discussions, summary, err := svc.Prepare(context.Background())
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if len(discussions) != 3 || summary.Selected != 3 || summary.Created != 0 {
		t.Errorf("discussions=%d summary=%+v", len(discussions), *summary)
	}
	if discussions[0].Body != "How do I enable the feature?" {
		t.Errorf("first body = %q", discussions[0].Body)
	}
}
