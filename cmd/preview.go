package cmd

import (
	"fmt"
	"io"
	"strings"

	"qna-discussion-import/pkg/model"
	"qna-discussion-import/pkg/service"
	"qna-discussion-import/pkg/signals"
	"qna-discussion-import/pkg/source"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func NewPreviewCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "预览将要创建的讨论，不调用 GitHub",
		Long:  "按 import 相同的规则读取、筛选并脱敏，只输出结果，不需要 GITHUB_TOKEN",
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "text" && output != "yaml" {
				return errors.Errorf("不支持的输出格式: %q", output)
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return errors.Wrap(err, "配置错误")
			}

			ctx := signals.SetupSignalHandler()

			loader, err := source.NewLoader(cfg)
			if err != nil {
				return err
			}
			importService := service.NewImportService(
				loader,
				service.NewContentProcessor(cfg.Sanitize, cfg.Title),
				cfg.Selector,
			)
			discussions, summary, err := importService.Prepare(ctx)
			if err != nil {
				return err
			}

			if output == "yaml" {
				return writePreviewYAML(cmd.OutOrStdout(), cfg.GitHub.Category, discussions, summary)
			}
			writePreviewText(cmd.OutOrStdout(), cfg.GitHub.Category, discussions)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "输出格式: text 或 yaml")
	return cmd
}

type previewDocument struct {
	Category    string               `yaml:"category"`
	Summary     *model.ImportSummary `yaml:"summary"`
	Discussions []*model.Discussion  `yaml:"discussions"`
}

func writePreviewYAML(w io.Writer, category string, discussions []*model.Discussion, summary *model.ImportSummary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(previewDocument{Category: category, Summary: summary, Discussions: discussions}); err != nil {
		return errors.Wrap(err, "输出 yaml 失败")
	}
	return enc.Close()
}

func writePreviewText(w io.Writer, category string, discussions []*model.Discussion) {
	rule := strings.Repeat("=", 80)
	thin := strings.Repeat("─", 80)

	if len(discussions) == 0 {
		fmt.Fprintln(w, "没有需要导入的提问")
		return
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "将要创建的讨论:")
	fmt.Fprintln(w, rule)
	for i, d := range discussions {
		fmt.Fprintf(w, "\n%s\n讨论 #%d（第 %d 行）\n%s\n", thin, i+1, d.RowNumber, thin)
		fmt.Fprintf(w, "标题:     %s\n", d.Title)
		fmt.Fprintf(w, "分类:     %s\n", category)
		fmt.Fprintf(w, "点赞:     %d\n", d.Reactions)
		fmt.Fprintf(w, "\n正文:\n%s\n", d.Body)

		if d.PrivacyApplied() {
			fmt.Fprintln(w, "\n[已脱敏]")
			if d.EmailsRedacted > 0 {
				fmt.Fprintf(w, "  - 邮箱地址 %d 处\n", d.EmailsRedacted)
			}
			if d.SignatureCut {
				fmt.Fprintln(w, "  - 签名已移除")
			}
		}
	}
	fmt.Fprintf(w, "\n%s\n汇总: 将创建 %d 条讨论\n%s\n", rule, len(discussions), rule)
}
