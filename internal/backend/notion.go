package backend

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/standup-sydney/mcp-gateway/pkg/logger"
)

// NotionClient is the document/workspace capability used for project logging,
// tasks, and onboarding records.
type NotionClient struct {
	token      string
	httpClient *http.Client
	log        *logger.Logger
}

var _ Capability = (*NotionClient)(nil)

// NewNotionClient creates the workspace adapter.
func NewNotionClient(token string) *NotionClient {
	return &NotionClient{
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logger.Get().With("backend", "notion"),
	}
}

// Execute acknowledges a workspace operation on a page type.
func (c *NotionClient) Execute(ctx context.Context, operation string, params map[string]any) (map[string]any, error) {
	if c.token == "" {
		return nil, ErrUnavailable
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pageType, _ := params["page_type"].(string)
	c.log.Infow("Notion operation", "operation", operation, "page_type", pageType)

	return stubResult(fmt.Sprintf("gateway ready to %s %s in the workspace", operation, pageType)), nil
}
