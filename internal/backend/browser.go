package backend

import (
	"context"
	"fmt"

	"github.com/standup-sydney/mcp-gateway/pkg/logger"
)

// BrowserDriver is the browser-automation capability. It is pure-local, so it
// needs no credentials and is always available.
type BrowserDriver struct {
	log *logger.Logger
}

var _ Capability = (*BrowserDriver)(nil)

// NewBrowserDriver creates the browser-automation adapter.
func NewBrowserDriver() *BrowserDriver {
	return &BrowserDriver{log: logger.Get().With("backend", "browser")}
}

// Execute acknowledges a browser-automation action (navigate, screenshot,
// form test, and so on).
func (d *BrowserDriver) Execute(ctx context.Context, operation string, params map[string]any) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	url, _ := params["url"].(string)
	d.log.Infow("Browser action", "action", operation, "url", url)

	return stubResult(fmt.Sprintf("gateway ready to run browser %s", operation)), nil
}
