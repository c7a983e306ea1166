package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/smy-101/skillstudio/internal/skillerr"
)

const defaultAPIURL = "https://api.github.com"

// RepoChecker confirms a repository exists before it is cloned, so that a
// missing repository surfaces as NotFound instead of a clone failure.
type RepoChecker interface {
	CheckRepository(ctx context.Context, owner, repo string) error
}

// GitHubClient GitHub API 客户端
type GitHubClient struct {
	restyClient *resty.Client
	token       string
	baseURL     string
}

// NewGitHubClient 创建客户端
func NewGitHubClient(token string) *GitHubClient {
	client := resty.New()

	// 单次尝试，不重试
	client.SetTimeout(30 * time.Second)
	client.SetRetryCount(0)

	if token != "" {
		client.SetHeader("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	client.SetHeader("Accept", "application/vnd.github+json")
	client.SetHeader("User-Agent", "skillstudio-cli/1.0")

	return &GitHubClient{
		restyClient: client,
		token:       token,
		baseURL:     defaultAPIURL,
	}
}

// SetBaseURL points the client at another API endpoint.
func (c *GitHubClient) SetBaseURL(url string) {
	if url != "" {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// SetProxy routes API requests through proxyURL.
func (c *GitHubClient) SetProxy(proxyURL string) {
	if proxyURL != "" {
		c.restyClient.SetProxy(proxyURL)
	}
}

// CheckRepository returns nil when GET /repos/{owner}/{repo} succeeds.
func (c *GitHubClient) CheckRepository(ctx context.Context, owner, repo string) error {
	url := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, repo)

	resp, err := c.restyClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return skillerr.IO("GitHub API request failed", err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return skillerr.NotFound(fmt.Sprintf("repository %s/%s not found on GitHub", owner, repo), nil)
	case http.StatusForbidden, http.StatusTooManyRequests:
		if strings.Contains(resp.String(), "rate limit") {
			return skillerr.IO("GitHub API rate limit exceeded; set github_token in the config file", nil)
		}
	}

	return skillerr.IO(fmt.Sprintf("GitHub API returned %d for %s/%s", resp.StatusCode(), owner, repo), nil)
}
