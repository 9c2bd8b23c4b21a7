package backend

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/standup-sydney/mcp-gateway/pkg/logger"
)

// MetricoolClient is the social-promotion capability used for event and
// comedian promotion campaigns.
type MetricoolClient struct {
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

var _ Capability = (*MetricoolClient)(nil)

// NewMetricoolClient creates the promotion adapter.
func NewMetricoolClient(apiKey string) *MetricoolClient {
	return &MetricoolClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logger.Get().With("backend", "metricool"),
	}
}

// Execute acknowledges a promotion operation.
func (c *MetricoolClient) Execute(ctx context.Context, operation string, params map[string]any) (map[string]any, error) {
	if c.apiKey == "" {
		return nil, ErrUnavailable
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.log.Infow("Metricool operation", "operation", operation)

	return stubResult(fmt.Sprintf("gateway ready to create %s promotion", operation)), nil
}
