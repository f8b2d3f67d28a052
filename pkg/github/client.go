package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"qna-discussion-import/config"
	"qna-discussion-import/pkg/util"

	"github.com/pkg/errors"
)

const (
	repositoryQuery = `
query($owner: String!, $repo: String!) {
  repository(owner: $owner, name: $repo) {
    id
  }
}`

	categoriesQuery = `
query($owner: String!, $repo: String!) {
  repository(owner: $owner, name: $repo) {
    discussionCategories(first: 25) {
      nodes {
        id
        name
      }
    }
  }
}`

	createDiscussionMutation = `
mutation($repositoryId: ID!, $categoryId: ID!, $title: String!, $body: String!) {
  createDiscussion(input: {repositoryId: $repositoryId, categoryId: $categoryId, title: $title, body: $body}) {
    discussion {
      id
      url
    }
  }
}`
)

var (
	ErrRepositoryNotFound = errors.New("仓库不存在或无访问权限")
	ErrCategoryNotFound   = errors.New("讨论分类不存在")
)

// APIError 接口返回非 200 或 GraphQL errors
type APIError struct {
	StatusCode int
	Messages   []string
	Body       string
}

func (e *APIError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("GraphQL 错误: %s", strings.Join(e.Messages, "; "))
	}
	return fmt.Sprintf("GitHub 接口返回 %d: %s", e.StatusCode, e.Body)
}

// Client GitHub GraphQL 客户端，不做重试
type Client struct {
	endpoint string
	token    string
	http     *http.Client
}

func NewClient(cfg *config.GitHubConfig) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		token:    cfg.Token,
		http:     util.NewHTTPClient(cfg.Timeout),
	}
}

func (c *Client) WithHTTPClient(h *http.Client) *Client {
	if h != nil {
		c.http = h
	}
	return c
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// do 发送请求并将 data 解析到 out
func (c *Client) do(ctx context.Context, query string, variables map[string]any, out any) error {
	buf, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return errors.Wrap(err, "序列化请求失败")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(buf))
	if err != nil {
		return errors.Wrap(err, "构造请求失败")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "请求 GitHub 失败")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "读取响应失败")
	}
	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var gr graphQLResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return errors.Wrap(err, "解析响应失败")
	}
	if len(gr.Errors) > 0 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(body)}
		for _, e := range gr.Errors {
			apiErr.Messages = append(apiErr.Messages, e.Message)
		}
		return apiErr
	}
	if out == nil || len(gr.Data) == 0 {
		return nil
	}
	return errors.Wrap(json.Unmarshal(gr.Data, out), "解析 data 失败")
}

// RepositoryID 查询仓库的 node id
func (c *Client) RepositoryID(ctx context.Context, owner, repo string) (string, error) {
	var data struct {
		Repository *struct {
			ID string `json:"id"`
		} `json:"repository"`
	}
	vars := map[string]any{"owner": owner, "repo": repo}
	if err := c.do(ctx, repositoryQuery, vars, &data); err != nil {
		return "", err
	}
	if data.Repository == nil || data.Repository.ID == "" {
		return "", errors.Wrapf(ErrRepositoryNotFound, "%s/%s", owner, repo)
	}
	return data.Repository.ID, nil
}

// CategoryID 按名称精确匹配讨论分类
func (c *Client) CategoryID(ctx context.Context, owner, repo, category string) (string, error) {
	var data struct {
		Repository *struct {
			DiscussionCategories struct {
				Nodes []struct {
					ID   string `json:"id"`
					Name string `json:"name"`
				} `json:"nodes"`
			} `json:"discussionCategories"`
		} `json:"repository"`
	}
	vars := map[string]any{"owner": owner, "repo": repo}
	if err := c.do(ctx, categoriesQuery, vars, &data); err != nil {
		return "", err
	}
	if data.Repository == nil {
		return "", errors.Wrapf(ErrRepositoryNotFound, "%s/%s", owner, repo)
	}
	for _, node := range data.Repository.DiscussionCategories.Nodes {
		if node.Name == category {
			return node.ID, nil
		}
	}
	return "", errors.Wrapf(ErrCategoryNotFound, "%q", category)
}

// CreateDiscussion 创建讨论并返回其 URL
func (c *Client) CreateDiscussion(ctx context.Context, repositoryID, categoryID, title, body string) (string, error) {
	var data struct {
		CreateDiscussion *struct {
			Discussion *struct {
				ID  string `json:"id"`
				URL string `json:"url"`
			} `json:"discussion"`
		} `json:"createDiscussion"`
	}
	vars := map[string]any{
		"repositoryId": repositoryID,
		"categoryId":   categoryID,
		"title":        title,
		"body":         body,
	}
	if err := c.do(ctx, createDiscussionMutation, vars, &data); err != nil {
		return "", err
	}
	if data.CreateDiscussion == nil || data.CreateDiscussion.Discussion == nil || data.CreateDiscussion.Discussion.URL == "" {
		return "", errors.New("响应中没有讨论 URL")
	}
	return data.CreateDiscussion.Discussion.URL, nil
}
