package github

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates a new GitHub Projects MCP server with tool capabilities.
// Tools are registered separately through a toolset group.
func NewServer(version string, opts ...server.ServerOption) *server.MCPServer {
	// Add default options
	defaultOpts := []server.ServerOption{
		server.WithToolCapabilities(true),
		server.WithLogging(),
		server.WithRecovery(),
	}
	opts = append(defaultOpts, opts...)

	// Create a new MCP server
	return server.NewMCPServer(
		"projects-mcp-server",
		version,
		opts...,
	)
}

// RequiredParam is a helper function that can be used to fetch a requested parameter from the request.
// It does the following checks:
// 1. Checks if the parameter is present in the request.
// 2. Checks if the parameter is of the expected type.
// 3. Checks if the parameter is not empty, i.e: non-zero value
func RequiredParam[T comparable](r mcp.CallToolRequest, p string) (T, error) {
	var zero T
	args := r.GetArguments()

	// Check if the parameter is present in the request
	if _, ok := args[p]; !ok {
		return zero, fmt.Errorf("missing required parameter: %s", p)
	}

	// Check if the parameter is of the expected type
	v, ok := args[p].(T)
	if !ok {
		return zero, fmt.Errorf("parameter %s is not of type %T", p, zero)
	}

	if v == zero {
		return zero, fmt.Errorf("missing required parameter: %s", p)
	}

	return v, nil
}

// OptionalParam is a helper function that can be used to fetch a requested parameter from the request.
// It does the following checks:
// 1. Checks if the parameter is present in the request, if not, it returns its zero-value
// 2. If it is present, it checks if the parameter is of the expected type and returns it
func OptionalParam[T any](r mcp.CallToolRequest, p string) (T, error) {
	var zero T
	args := r.GetArguments()

	// Check if the parameter is present in the request
	if _, ok := args[p]; !ok {
		return zero, nil
	}

	// Check if the parameter is of the expected type
	v, ok := args[p].(T)
	if !ok {
		return zero, fmt.Errorf("parameter %s is not of type %T, is %T", p, zero, args[p])
	}

	return v, nil
}

// OptionalStringParamWithDefault returns the string parameter p, or d when it
// is absent or empty.
func OptionalStringParamWithDefault(r mcp.CallToolRequest, p string, d string) (string, error) {
	v, err := OptionalParam[string](r, p)
	if err != nil {
		return "", err
	}
	if v == "" {
		return d, nil
	}
	return v, nil
}

func MarshalledTextResult(v any) *mcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal text result to json: %s", err))
	}

	return mcp.NewToolResultText(string(data))
}

func ToBoolPtr(b bool) *bool {
	return &b
}
