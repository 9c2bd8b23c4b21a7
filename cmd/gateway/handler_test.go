package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standup-sydney/mcp-gateway/internal/config"
	"github.com/standup-sydney/mcp-gateway/internal/tools"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	snapshot := config.Build(func(key string) string { return "" })
	registry := tools.NewRegistry()

	info := tools.ServerInfo{
		Name:      "Stand Up Sydney MCP Gateway",
		Version:   "test",
		Platform:  "comedy_booking_automation",
		StartedAt: time.Now().UTC(),
	}
	reporter := tools.NewReporter(snapshot, registry, info)
	require.NoError(t, reporter.RegisterTools(registry))

	require.NoError(t, registry.Register(tools.Descriptor{
		Name:        "echo",
		Description: "Echo the message back.",
		Params: []tools.Param{
			{Name: "message", Type: tools.TypeString, Required: true},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return map[string]any{"message": args["message"]}, nil
		},
	}))
	require.NoError(t, registry.Register(tools.Descriptor{
		Name:        "structured_store_query",
		Integration: config.IntegrationStructuredStore,
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return map[string]any{}, nil
		},
	}))
	registry.Seal()

	invoker := tools.NewInvoker(registry, snapshot)
	handler := NewGatewayHandler(invoker, reporter, registry, info)

	engine := gin.New()
	engine.GET("/health", handler.HandleHealth)
	engine.POST("/mcp", handler.HandleMCP)
	v1 := engine.Group("/api/v1")
	{
		v1.GET("/tools", handler.HandleListTools)
		v1.POST("/tools/:name", handler.HandleInvoke)
	}
	return engine
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.NotNil(t, body["tools_enabled"])
}

func TestListToolsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodGet, "/api/v1/tools", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 5, body["total_tools"])

	listing, ok := body["tools"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, listing, "echo")
	assert.Contains(t, listing, "health_check")
}

func TestInvokeEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/api/v1/tools/echo", `{"message":"hello"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, string(tools.StatusOK), body["status"])
	assert.Equal(t, "echo", body["tool"])
	assert.NotEmpty(t, body["invocation_id"])

	payload, ok := body["payload"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "hello", payload["message"])
}

func TestInvokeEndpointEmptyBody(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/api/v1/tools/health_check", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, string(tools.StatusOK), body["status"])
}

func TestInvokeEndpointMalformedBody(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/api/v1/tools/echo", `{"message":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "invalid request body")
}

func TestInvokeEndpointFailureIsStillHTTP200(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/api/v1/tools/structured_store_query", `{}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, string(tools.StatusBackendDisabled), body["status"])
	assert.Contains(t, body["error_detail"], "SUPABASE_URL/SUPABASE_ANON_KEY")

	rec, body = doJSON(t, router, http.MethodPost, "/api/v1/tools/no_such_tool", `{}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, string(tools.StatusError), body["status"])
}

func TestMCPInitialize(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/mcp",
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2.0", body["jsonrpc"])
	assert.EqualValues(t, 1, body["id"])

	result, ok := body["result"].(map[string]any)
	require.True(t, ok)
	server, ok := result["server"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Stand Up Sydney MCP Gateway", server["name"])
}

func TestMCPToolsList(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/mcp",
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	result := body["result"].(map[string]any)
	listings, ok := result["tools"].([]any)
	require.True(t, ok)
	require.Len(t, listings, 5)

	names := make([]string, 0, len(listings))
	for _, raw := range listings {
		entry := raw.(map[string]any)
		names = append(names, entry["name"].(string))
		assert.Contains(t, entry, "inputSchema")
	}
	assert.Contains(t, names, "echo")
	assert.Contains(t, names, "health_check")
}

func TestMCPToolsCall(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/mcp",
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"echo","arguments":{"message":"hi"}}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, body["error"])

	result := body["result"].(map[string]any)
	assert.Equal(t, string(tools.StatusOK), result["status"])
}

func TestMCPToolsCallFailureIsAResultNotAnError(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/mcp",
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"echo","arguments":{}}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, body["error"], "a failed invocation is a result, not a protocol error")

	result := body["result"].(map[string]any)
	assert.Equal(t, string(tools.StatusError), result["status"])
	assert.Contains(t, result["error_detail"], `missing required parameter "message"`)
}

func TestMCPProtocolErrors(t *testing.T) {
	router := newTestRouter(t)

	_, body := doJSON(t, router, http.MethodPost, "/mcp", `{not json`)
	rpcErr := body["error"].(map[string]any)
	assert.EqualValues(t, -32700, rpcErr["code"])

	_, body = doJSON(t, router, http.MethodPost, "/mcp",
		`{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{}}`)
	rpcErr = body["error"].(map[string]any)
	assert.EqualValues(t, -32602, rpcErr["code"])

	_, body = doJSON(t, router, http.MethodPost, "/mcp",
		`{"jsonrpc":"2.0","id":6,"method":"resources/list"}`)
	rpcErr = body["error"].(map[string]any)
	assert.EqualValues(t, -32601, rpcErr["code"])
}
