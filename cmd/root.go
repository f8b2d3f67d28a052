package cmd

import (
	"qna-discussion-import/pkg/util"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "qna-discussion-import",
		Short:         "将 Q&A 导出中的参会者提问脱敏后发布为 GitHub Discussions",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableNoDescFlag:   true,
			DisableDescriptions: true,
			HiddenDefaultCmd:    true,
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", "./etc/config.yaml", "配置文件路径，不存在时只使用环境变量")

	rootCmd.AddCommand(NewImportCommand())
	rootCmd.AddCommand(NewPreviewCommand())
	rootCmd.AddCommand(NewVersionCommand())

	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		zap.S().Info("使用 'import' 子命令导入提问，或 'preview' 预览将要创建的讨论")
		cmd.Help()
	}
	rootCmd.Version = util.GetVersion().Version
	return rootCmd
}
