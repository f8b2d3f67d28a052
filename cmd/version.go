package cmd

import (
	"fmt"

	"qna-discussion-import/pkg/util"

	"github.com/spf13/cobra"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示版本信息",
		Run: func(cmd *cobra.Command, args []string) {
			v := util.GetVersion()
			fmt.Fprintf(cmd.OutOrStdout(), "version: %s\ncommit: %s\nbuilt: %s\ngo: %s\n",
				v.Version, v.GitCommit, v.BuildDate, v.GoVersion)
		},
	}
}
