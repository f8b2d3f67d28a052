package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type IConfig interface {
	Validate() []error
}

type GlobalConfig struct {
	GitHub       *GitHubConfig   `json:"github" yaml:"github"`
	Source       *SourceConfig   `json:"source" yaml:"source"`
	Selector     *SelectorConfig `json:"selector" yaml:"selector"`
	Title        *TitleConfig    `json:"title" yaml:"title"`
	Sanitize     *SanitizeConfig `json:"sanitize" yaml:"sanitize"`
	DuckDBConfig *DuckDBConfig   `json:"duckdb" yaml:"duckdb"`
	MySQLConfig  *MySQLConfig    `json:"mysql" yaml:"mysql"`
	Metrics      *MetricsConfig  `json:"metrics" yaml:"metrics"`
	Log          *LogConfig      `json:"log" yaml:"log"`
}

// Validate 校验除发布凭据外的全部配置，发布凭据只有 import 子命令需要，见 GitHubConfig.Validate
func (g *GlobalConfig) Validate() []error {
	var errs = make([]error, 0)
	for _, c := range []IConfig{g.Source, g.Selector, g.Title, g.Log} {
		if es := c.Validate(); len(es) > 0 {
			errs = append(errs, es...)
		}
	}
	if strings.EqualFold(g.Source.Type, SourceTypeMySQL) {
		if es := g.MySQLConfig.Validate(); len(es) > 0 {
			errs = append(errs, es...)
		}
	}
	if g.DuckDBConfig != nil && g.DuckDBConfig.Enabled {
		if es := g.DuckDBConfig.Validate(); len(es) > 0 {
			errs = append(errs, es...)
		}
	}
	return errs
}

func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		GitHub:       NewDefaultGitHubConfig(),
		Source:       NewDefaultSourceConfig(),
		Selector:     NewDefaultSelectorConfig(),
		Title:        NewDefaultTitleConfig(),
		Sanitize:     &SanitizeConfig{},
		DuckDBConfig: NewDefaultDuckDBConfig(),
		MySQLConfig:  NewDefaultMySQLConfig(),
		Metrics:      NewDefaultMetricsConfig(),
		Log:          NewDefaultLogConfig(),
	}
}

// envBindings 配置项与环境变量的对应关系
var envBindings = map[string]string{
	"github.token":           "GITHUB_TOKEN",
	"github.owner":           "GITHUB_REPOSITORY_OWNER",
	"github.repository":      "GITHUB_REPOSITORY_NAME",
	"github.category":        "DISCUSSION_CATEGORY",
	"github.endpoint":        "GITHUB_GRAPHQL_URL",
	"github.timeout":         "GITHUB_TIMEOUT",
	"source.type":            "SOURCE_TYPE",
	"source.csv.path":        "CSV_FILE",
	"selector.role":          "SELECTOR_ROLE",
	"selector.kind":          "SELECTOR_KIND",
	"sanitize.stripHTML":     "SANITIZE_STRIP_HTML",
	"duckdb.enabled":         "LEDGER_ENABLED",
	"duckdb.dbPath":          "LEDGER_DB_PATH",
	"mysql.dsn":              "MYSQL_DSN",
	"mysql.replicas":         "MYSQL_REPLICAS",
	"mysql.table":            "MYSQL_TABLE",
	"metrics.pushgatewayURL": "PUSHGATEWAY_URL",
	"metrics.job":            "PUSHGATEWAY_JOB",
	"log.level":              "LOG_LEVEL",
	"log.format":             "LOG_FORMAT",
}

// Load 依次合并默认值、可选的配置文件、工作目录下的 .env 文件以及进程环境变量，后者优先
func Load(configFilePath string) (*GlobalConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Errorf("读取 .env 文件错误:%s", err.Error())
	}

	v := viper.New()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, errors.Wrapf(err, "绑定环境变量 %s", env)
		}
	}

	if configFilePath != "" {
		if _, err := os.Stat(configFilePath); err == nil {
			if err := readConfigFile(v, configFilePath); err != nil {
				return nil, err
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := NewDefaultGlobalConfig()
	if err := v.Unmarshal(cfg, func(config *mapstructure.DecoderConfig) {
		config.TagName = "yaml"
	}); err != nil {
		return nil, errors.Wrap(err, "解析配置错误")
	}
	return cfg, nil
}

func readConfigFile(v *viper.Viper, configFilePath string) error {
	dir, file := filepath.Split(configFilePath)
	fileType := filepath.Ext(file)
	v.AddConfigPath(dir)
	v.SetConfigName(strings.TrimSuffix(file, fileType))
	v.SetConfigType(strings.TrimPrefix(fileType, "."))
	if err := v.ReadInConfig(); err != nil {
		if errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return err
		}
		return errors.Errorf("解析配置文件错误:%s", err.Error())
	}
	return nil
}
