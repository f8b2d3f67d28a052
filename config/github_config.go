package config

import (
	"time"

	"github.com/pkg/errors"
)

const DefaultGraphQLEndpoint = "https://api.github.com/graphql"

// GitHubConfig 发布目标：仓库、讨论分类以及访问凭据
type GitHubConfig struct {
	Token      string        `json:"token" yaml:"token"`           // 需要 repo 与 write:discussion 权限
	Owner      string        `json:"owner" yaml:"owner"`           // 仓库所有者
	Repository string        `json:"repository" yaml:"repository"` // 仓库名
	Category   string        `json:"category" yaml:"category"`     // 讨论分类名称
	Endpoint   string        `json:"endpoint" yaml:"endpoint"`     // GraphQL 接口地址
	Timeout    time.Duration `json:"timeout" yaml:"timeout"`       // 单次请求超时
}

func (g *GitHubConfig) Validate() []error {
	var errs = make([]error, 0)
	if g.Token == "" {
		errs = append(errs, errors.New("GITHUB_TOKEN 未设置，需要具备 repo 与 write:discussion 权限的令牌"))
	}
	if g.Owner == "" {
		errs = append(errs, errors.New("仓库所有者不能为空 (GITHUB_REPOSITORY_OWNER)"))
	}
	if g.Repository == "" {
		errs = append(errs, errors.New("仓库名不能为空 (GITHUB_REPOSITORY_NAME)"))
	}
	if g.Category == "" {
		errs = append(errs, errors.New("讨论分类不能为空 (DISCUSSION_CATEGORY)"))
	}
	if g.Endpoint == "" {
		errs = append(errs, errors.New("GraphQL 接口地址不能为空"))
	}
	if g.Timeout <= 0 {
		errs = append(errs, errors.Errorf("请求超时必须大于 0，当前为 %s", g.Timeout))
	}
	return errs
}

func NewDefaultGitHubConfig() *GitHubConfig {
	return &GitHubConfig{
		Category: "Session Questions",
		Endpoint: DefaultGraphQLEndpoint,
		Timeout:  30 * time.Second,
	}
}
