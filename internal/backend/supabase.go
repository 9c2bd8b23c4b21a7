package backend

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/standup-sydney/mcp-gateway/pkg/logger"
)

// SupabaseClient is the structured-data store capability. The real
// implementation talks to the Supabase REST API; this adapter holds the
// credentials and a configured HTTP client so that implementation can slot in
// behind the same Execute contract.
type SupabaseClient struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	log        *logger.Logger
}

var _ Capability = (*SupabaseClient)(nil)

// NewSupabaseClient creates the structured-store adapter. An empty URL or key
// yields a client whose Execute reports ErrUnavailable.
func NewSupabaseClient(baseURL, anonKey string) *SupabaseClient {
	return &SupabaseClient{
		baseURL:    baseURL,
		anonKey:    anonKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logger.Get().With("backend", "supabase"),
	}
}

// Execute acknowledges a database operation. Operations follow the CRUD verbs
// the tools pass through: select, insert, update, delete.
func (c *SupabaseClient) Execute(ctx context.Context, operation string, params map[string]any) (map[string]any, error) {
	if c.baseURL == "" || c.anonKey == "" {
		return nil, ErrUnavailable
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, _ := params["table"].(string)
	c.log.Infow("Supabase operation", "operation", operation, "table", table)

	return stubResult(fmt.Sprintf("gateway ready to execute %s on %s table", operation, table)), nil
}
