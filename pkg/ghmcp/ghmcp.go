// Package ghmcp exposes the server constructors of the GitHub Projects MCP
// server for use by other Go modules.
//
// Usage example with static settings:
//
//	config := ghmcp.StdioServerConfig{
//	    Version: "1.0.0",
//	    Token:   os.Getenv("GITHUB_PAT"),
//	    Owner:   "octo-org",
//	    Repo:    "roadmap",
//	}
//
//	if err := ghmcp.RunStdioServer(config); err != nil {
//	    log.Fatal(err)
//	}
//
// Usage example with settings read on every call:
//
//	config := ghmcp.StdioServerConfig{
//	    Version: "1.0.0",
//	    ConfigProvider: func(ctx context.Context) projects.Config {
//	        return loadProjectConfig(ctx)
//	    },
//	}
package ghmcp

import (
	"context"

	"github.com/github/projects-mcp-server/internal/ghmcp"
	"github.com/mark3labs/mcp-go/server"
)

// TokenProvider is a function that returns the current GitHub token.
// It is called on each tool call, which allows the token to be rotated
// without restarting the server.
type TokenProvider = ghmcp.TokenProvider

// ConfigProvider returns the token, owner and repository for one tool call.
type ConfigProvider = ghmcp.ConfigProvider

// StdioServerConfig contains configuration for running the server in stdio mode.
type StdioServerConfig = ghmcp.StdioServerConfig

// MCPServerConfig contains configuration for creating a new MCP Server instance.
type MCPServerConfig = ghmcp.MCPServerConfig

// RunStdioServer runs the server using stdio for communication.
// It is not concurrent safe.
func RunStdioServer(cfg StdioServerConfig) error {
	return ghmcp.RunStdioServer(cfg)
}

// NewMCPServer creates a new MCP Server instance with the given configuration.
func NewMCPServer(cfg MCPServerConfig) (*server.MCPServer, error) {
	return ghmcp.NewMCPServer(cfg)
}

// ContextWithToken returns a context whose tool calls authenticate with token.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return ghmcp.ContextWithToken(ctx, token)
}
