package backend

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/standup-sydney/mcp-gateway/pkg/logger"
)

// GitHubClient is the source-control capability, covering deployment tracking
// and version-control operations against the GitHub API.
type GitHubClient struct {
	token      string
	httpClient *http.Client
	log        *logger.Logger
}

var _ Capability = (*GitHubClient)(nil)

// NewGitHubClient creates the source-control adapter.
func NewGitHubClient(token string) *GitHubClient {
	return &GitHubClient{
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logger.Get().With("backend", "github"),
	}
}

// Execute acknowledges a source-control operation for a repository.
func (c *GitHubClient) Execute(ctx context.Context, operation string, params map[string]any) (map[string]any, error) {
	if c.token == "" {
		return nil, ErrUnavailable
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo, _ := params["repo"].(string)
	c.log.Infow("GitHub operation", "operation", operation, "repo", repo)

	return stubResult(fmt.Sprintf("gateway ready to run %s for %s", operation, repo)), nil
}
