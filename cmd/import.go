package cmd

import (
	"errors"

	"qna-discussion-import/pkg/db"
	"qna-discussion-import/pkg/github"
	"qna-discussion-import/pkg/metrics"
	"qna-discussion-import/pkg/service"
	"qna-discussion-import/pkg/signals"
	"qna-discussion-import/pkg/source"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "创建 GitHub Discussions",
		Long:  "读取 Q&A 导出，筛选参会者提问，脱敏邮箱与签名后逐条创建讨论。重复运行会重复创建",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return pkgerrors.Wrap(err, "配置错误")
			}
			if errs := cfg.GitHub.Validate(); len(errs) > 0 {
				return pkgerrors.Wrap(errors.Join(errs...), "配置错误")
			}

			zap.S().Infof("仓库: %s/%s", cfg.GitHub.Owner, cfg.GitHub.Repository)
			zap.S().Infof("讨论分类: %s", cfg.GitHub.Category)

			ctx := signals.SetupSignalHandler()

			loader, err := source.NewLoader(cfg)
			if err != nil {
				return err
			}

			recorder := metrics.NewRecorder()
			importService := service.NewImportService(
				loader,
				service.NewContentProcessor(cfg.Sanitize, cfg.Title),
				cfg.Selector,
			).
				WithPublisher(github.NewClient(cfg.GitHub), cfg.GitHub).
				WithMetrics(recorder)

			var ledger *service.PublishLedger
			if cfg.DuckDBConfig.Enabled {
				if err := db.InitDuckDB(cfg.DuckDBConfig); err != nil {
					return pkgerrors.Wrap(err, "DuckDB 连接错误")
				}
				defer db.CloseDuckDB()

				ledger = service.NewPublishLedger(db.GetDuckDBWithContext(ctx))
				if err := ledger.EnsureTable(ctx); err != nil {
					return err
				}
				importService.WithLedger(ledger)
			}

			summary, err := importService.Run(ctx)
			if perr := recorder.Push(cfg.Metrics.PushgatewayURL, cfg.Metrics.Job); perr != nil {
				zap.S().Warn(perr.Error())
			}
			if err != nil {
				return err
			}

			zap.S().Infof("汇总: 共 %d 行, 提问 %d 条, 成功 %d 条, 失败 %d 条",
				summary.TotalRows, summary.Selected, summary.Created, summary.Failed)

			if ledger != nil {
				counts, err := ledger.CountByStatus(ctx, importService.RunID())
				if err != nil {
					zap.S().Warnf("获取台账统计失败: %s", err.Error())
				} else {
					zap.S().Infof("台账 run_id=%s: %v", importService.RunID(), counts)
				}
			}

			if summary.Failed > 0 {
				return pkgerrors.Errorf("%d 条讨论创建失败", summary.Failed)
			}
			return nil
		},
	}
	return cmd
}
