package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/standup-sydney/mcp-gateway/internal/tools"
	"github.com/standup-sydney/mcp-gateway/pkg/logger"
)

// GatewayHandler serves the tool-dispatch surface: the REST routes and the
// JSON-RPC /mcp endpoint. Every tool invocation, successful or not, produces
// a well-formed result body; only a malformed request yields a transport
// error.
type GatewayHandler struct {
	invoker  *tools.Invoker
	reporter *tools.Reporter
	registry *tools.Registry
	info     tools.ServerInfo
	log      *logger.Logger
}

// NewGatewayHandler creates the handler over the sealed registry.
func NewGatewayHandler(invoker *tools.Invoker, reporter *tools.Reporter, registry *tools.Registry, info tools.ServerInfo) *GatewayHandler {
	return &GatewayHandler{
		invoker:  invoker,
		reporter: reporter,
		registry: registry,
		info:     info,
		log:      logger.Get().With("component", "http"),
	}
}

// HandleHealth serves GET /health from the introspection reporter.
func (h *GatewayHandler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, h.reporter.Health())
}

// HandleListTools serves GET /api/v1/tools.
func (h *GatewayHandler) HandleListTools(c *gin.Context) {
	c.JSON(http.StatusOK, h.reporter.ListTools())
}

// HandleInvoke serves POST /api/v1/tools/:name. The body is the flat
// argument object; an empty body invokes the tool without arguments.
func (h *GatewayHandler) HandleInvoke(c *gin.Context) {
	name := c.Param("name")

	args := map[string]any{}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&args); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}
	}

	result := h.invoker.Invoke(c.Request.Context(), name, args)
	c.JSON(http.StatusOK, result)
}

// --- JSON-RPC 2.0 endpoint ---
//
// Minimal MCP-shaped handler supporting initialize, tools/list, and
// tools/call. A failed tool invocation is still a JSON-RPC *result* carrying
// status/error_detail; protocol errors are reserved for malformed requests.

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *rpcError `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type toolListing struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	InputSchema tools.JSONSchema `json:"inputSchema"`
}

// HandleMCP serves POST /mcp.
func (h *GatewayHandler) HandleMCP(c *gin.Context) {
	var req rpcRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		c.JSON(http.StatusOK, rpcResponse{JSONRPC: "2.0", Error: &rpcError{Code: -32700, Message: "invalid JSON"}})
		return
	}

	switch req.Method {
	case "initialize":
		c.JSON(http.StatusOK, rpcResponse{JSONRPC: "2.0", ID: req.ID, Result: map[string]any{
			"server":       h.info,
			"capabilities": map[string]any{"tools": true},
			"time":         time.Now().UTC().Format(time.RFC3339),
		}})

	case "tools/list":
		listings := make([]toolListing, 0, h.registry.Len())
		for _, d := range h.registry.Descriptors() {
			listings = append(listings, toolListing{
				Name:        d.Name,
				Description: d.Description,
				InputSchema: d.InputSchema(),
			})
		}
		c.JSON(http.StatusOK, rpcResponse{JSONRPC: "2.0", ID: req.ID, Result: map[string]any{"tools": listings}})

	case "tools/call":
		var params struct {
			Name      string         `json:"name"`
			Arguments map[string]any `json:"arguments"`
		}
		if err := json.Unmarshal(req.Params, &params); err != nil || params.Name == "" {
			c.JSON(http.StatusOK, rpcResponse{JSONRPC: "2.0", ID: req.ID, Error: &rpcError{Code: -32602, Message: "invalid params"}})
			return
		}
		if params.Arguments == nil {
			params.Arguments = map[string]any{}
		}
		result := h.invoker.Invoke(c.Request.Context(), params.Name, params.Arguments)
		c.JSON(http.StatusOK, rpcResponse{JSONRPC: "2.0", ID: req.ID, Result: result})

	default:
		c.JSON(http.StatusOK, rpcResponse{JSONRPC: "2.0", ID: req.ID, Error: &rpcError{Code: -32601, Message: "method not found"}})
	}
}
