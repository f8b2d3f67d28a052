package service

import (
	"context"
	"time"

	"qna-discussion-import/config"
	"qna-discussion-import/pkg/metrics"
	"qna-discussion-import/pkg/model"
	"qna-discussion-import/pkg/source"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Publisher 发布目标：按名称查找仓库与分类，以标题和正文创建讨论
type Publisher interface {
	RepositoryID(ctx context.Context, owner, repo string) (string, error)
	CategoryID(ctx context.Context, owner, repo, category string) (string, error)
	CreateDiscussion(ctx context.Context, repositoryID, categoryID, title, body string) (string, error)
}

// ErrResolveTarget 仓库或讨论分类无法解析
var ErrResolveTarget = errors.New("无法解析发布目标")

type ImportService struct {
	loader    source.Loader
	processor *ContentProcessor
	selector  *config.SelectorConfig

	publisher Publisher
	target    *config.GitHubConfig
	ledger    AttemptRecorder
	metrics   *metrics.Recorder

	runID string
	now   func() time.Time
}

func NewImportService(loader source.Loader, processor *ContentProcessor, selector *config.SelectorConfig) *ImportService {
	return &ImportService{
		loader:    loader,
		processor: processor,
		selector:  selector,
		runID:     uuid.NewString(),
		now:       time.Now,
	}
}

func (s *ImportService) WithPublisher(p Publisher, target *config.GitHubConfig) *ImportService {
	s.publisher = p
	s.target = target
	return s
}

// WithLedger 设置发布台账，nil 表示不记录
func (s *ImportService) WithLedger(l AttemptRecorder) *ImportService {
	s.ledger = l
	return s
}

func (s *ImportService) WithMetrics(m *metrics.Recorder) *ImportService {
	s.metrics = m
	return s
}

func (s *ImportService) RunID() string {
	return s.runID
}

// Prepare 读取数据源、筛选提问并逐条脱敏生成标题，不做任何发布
func (s *ImportService) Prepare(ctx context.Context) ([]*model.Discussion, *model.ImportSummary, error) {
	summary := &model.ImportSummary{RunID: s.runID}

	zap.S().Infof("读取数据源: %s", s.loader.Describe())
	records, err := s.loader.Load(ctx)
	if err != nil {
		return nil, summary, err
	}
	summary.TotalRows = len(records)
	zap.S().Infof("共读取 %d 行", len(records))

	questions := FilterQuestions(records, s.selector.Role, s.selector.Kind)
	summary.Selected = len(questions)
	zap.S().Infof("筛选出 %d 条 %s/%s 记录", len(questions), s.selector.Role, s.selector.Kind)

	if s.metrics != nil {
		s.metrics.SetRows(summary.TotalRows, summary.Selected)
	}

	discussions := make([]*model.Discussion, 0, len(questions))
	for _, q := range questions {
		discussions = append(discussions, s.processor.ProcessQuestion(q))
	}
	return discussions, summary, nil
}

// Run 逐条同步发布。单条失败只计数不中断，仓库或分类解析失败直接返回错误
func (s *ImportService) Run(ctx context.Context) (*model.ImportSummary, error) {
	if s.publisher == nil {
		return nil, errors.New("未配置发布目标")
	}

	discussions, summary, err := s.Prepare(ctx)
	if err != nil {
		return summary, err
	}
	if len(discussions) == 0 {
		zap.S().Info("没有需要导入的提问")
		return summary, nil
	}

	zap.S().Infof("查询仓库 %s/%s ...", s.target.Owner, s.target.Repository)
	repoID, err := s.publisher.RepositoryID(ctx, s.target.Owner, s.target.Repository)
	if err != nil {
		return summary, errors.Wrapf(ErrResolveTarget, "仓库 %s/%s: %v", s.target.Owner, s.target.Repository, err)
	}
	zap.S().Debugf("仓库 ID: %s", repoID)

	zap.S().Infof("查询讨论分类 %q ...", s.target.Category)
	categoryID, err := s.publisher.CategoryID(ctx, s.target.Owner, s.target.Repository, s.target.Category)
	if err != nil {
		return summary, errors.Wrapf(ErrResolveTarget, "分类 %q（请先在仓库的 Discussions 设置中创建）: %v", s.target.Category, err)
	}
	zap.S().Debugf("分类 ID: %s", categoryID)

	for i, d := range discussions {
		if err := ctx.Err(); err != nil {
			zap.S().Warnf("已取消，剩余 %d 条未处理", len(discussions)-i)
			return summary, err
		}

		zap.S().Infof("[%d/%d] 创建讨论: %s", i+1, len(discussions), d.Title)
		start := s.now()
		url, err := s.publisher.CreateDiscussion(ctx, repoID, categoryID, d.Title, d.Body)
		took := s.now().Sub(start)

		attempt := &model.PublishAttempt{
			RunID:     s.runID,
			RowNumber: d.RowNumber,
			Title:     d.Title,
			Reactions: d.Reactions,
			CreatedAt: start,
		}
		if err != nil {
			summary.Failed++
			attempt.Status = model.PublishStatusFailed
			attempt.Error = err.Error()
			zap.S().Warnf("第 %d 行创建讨论失败: %v", d.RowNumber, err)
		} else {
			summary.Created++
			attempt.Status = model.PublishStatusCreated
			attempt.URL = url
			zap.S().Infof("已创建: %s", url)
		}

		if s.metrics != nil {
			s.metrics.ObservePublish(err == nil, took)
		}
		if s.ledger != nil {
			if lerr := s.ledger.RecordAttempt(ctx, attempt); lerr != nil {
				zap.S().Warnf("写入台账失败: %v", lerr)
			}
		}
	}

	zap.S().Infof("处理完成: 成功 %d 条, 失败 %d 条", summary.Created, summary.Failed)
	return summary, nil
}
