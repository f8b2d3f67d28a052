package main

import (
	"fmt"
	"os"

	"qna-discussion-import/cmd"

	"go.uber.org/zap"
)

func main() {
	err := cmd.NewRootCommand().Execute()
	_ = zap.S().Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}
