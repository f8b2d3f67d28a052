package cmd

import (
	"errors"

	"qna-discussion-import/config"
	"qna-discussion-import/pkg/logger"

	"github.com/spf13/cobra"
)

// loadConfig 读取并校验配置，同时按配置初始化日志
func loadConfig(cmd *cobra.Command) (*config.GlobalConfig, error) {
	configFilePath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFilePath)
	if err != nil {
		return nil, err
	}
	if err := logger.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}
