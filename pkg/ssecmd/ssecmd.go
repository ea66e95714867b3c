// Package ssecmd creates and runs the projects MCP server over SSE without
// depending on any CLI or configuration system.
//
// Every SSE session may authenticate with its own token by sending an
// Authorization header; Config.Token is used for sessions that send none.
package ssecmd

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/github/projects-mcp-server/internal/ghmcp"
	"github.com/github/projects-mcp-server/pkg/translations"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
)

// Config holds all configuration options for the SSE server
type Config struct {
	Token           string
	Host            string
	Owner           string
	Repo            string
	Address         string
	BasePath        string
	LogFilePath     string
	EnabledToolsets []string
	ReadOnly        bool
	Version         string

	// ConfigProvider, when set, is asked for the token, owner and repository
	// on every tool call and replaces Token, Owner and Repo.
	ConfigProvider ghmcp.ConfigProvider
}

// DefaultConfig creates a basic Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		Address:  "localhost:8080",
		BasePath: "",
		ReadOnly: false,
	}
}

// Server represents an SSE server that can be started and stopped
type Server struct {
	config    Config
	logger    *logrus.Logger
	mcpServer *server.MCPServer
	sseServer *server.SSEServer
}

func newLogger(logFilePath string) (*logrus.Logger, error) {
	logger := logrus.New()
	if logFilePath == "" {
		logger.SetOutput(os.Stderr)
		return logger, nil
	}
	file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger.SetOutput(file)
	logger.SetLevel(logrus.DebugLevel)
	return logger, nil
}

// NewServer creates a new SSE server with the provided configuration.
// A missing token is not an error: tool calls report it per session.
func NewServer(config Config) (*Server, error) {
	logger, err := newLogger(config.LogFilePath)
	if err != nil {
		return nil, err
	}

	mcpServer, err := ghmcp.NewMCPServer(ghmcp.MCPServerConfig{
		Version:         config.Version,
		Host:            config.Host,
		Token:           config.Token,
		Owner:           config.Owner,
		Repo:            config.Repo,
		ConfigProvider:  config.ConfigProvider,
		EnabledToolsets: config.EnabledToolsets,
		ReadOnly:        config.ReadOnly,
		Translator:      translations.NullTranslationHelper,
		Logger:          logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP server: %w", err)
	}

	sseServer := server.NewSSEServer(mcpServer,
		server.WithStaticBasePath(config.BasePath),
		server.WithSSEContextFunc(ghmcp.SSEContextFunc),
	)

	return &Server{
		config:    config,
		logger:    logger,
		mcpServer: mcpServer,
		sseServer: sseServer,
	}, nil
}

// GetMcpServer returns the MCP server behind the SSE transport.
func (s *Server) GetMcpServer() *server.MCPServer {
	return s.mcpServer
}

// Handler returns the SSE transport as an http.Handler, for mounting on an
// existing mux.
func (s *Server) Handler() http.Handler {
	return s.sseServer
}

// Start starts the SSE server
func (s *Server) Start() error {
	_, _ = fmt.Fprintf(os.Stderr, "GitHub Projects MCP Server running in SSE mode on %s with base path %s\n",
		s.config.Address, s.config.BasePath)

	s.logger.WithFields(logrus.Fields{
		"address":   s.config.Address,
		"base_path": s.config.BasePath,
		"read_only": s.config.ReadOnly,
	}).Info("starting SSE server")

	return s.sseServer.Start(s.config.Address)
}

// Shutdown closes open sessions and stops the HTTP listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.sseServer.Shutdown(ctx)
}

// RunSSEServer creates and starts an SSE server in one call.
func RunSSEServer(config Config) error {
	server, err := NewServer(config)
	if err != nil {
		return err
	}
	return server.Start()
}

// ServerOption represents an option for configuring an SSE server
type ServerOption func(*Config)

// WithAddress sets the address for the SSE server
func WithAddress(address string) ServerOption {
	return func(c *Config) {
		c.Address = address
	}
}

// WithBasePath sets the base path for SSE server URLs
func WithBasePath(basePath string) ServerOption {
	return func(c *Config) {
		c.BasePath = basePath
	}
}

// WithLogFilePath sets the log file path for the SSE server
func WithLogFilePath(logFilePath string) ServerOption {
	return func(c *Config) {
		c.LogFilePath = logFilePath
	}
}

// WithReadOnly sets the read-only mode for the SSE server
func WithReadOnly(readOnly bool) ServerOption {
	return func(c *Config) {
		c.ReadOnly = readOnly
	}
}

// WithEnabledToolsets sets the enabled toolsets for the SSE server
func WithEnabledToolsets(enabledToolsets []string) ServerOption {
	return func(c *Config) {
		c.EnabledToolsets = enabledToolsets
	}
}

// WithHost sets the GitHub host for the SSE server
func WithHost(host string) ServerOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithToken sets the fallback GitHub token for the SSE server
func WithToken(token string) ServerOption {
	return func(c *Config) {
		c.Token = token
	}
}

// WithRepository sets the repository whose linked project is used by default
func WithRepository(owner, repo string) ServerOption {
	return func(c *Config) {
		c.Owner = owner
		c.Repo = repo
	}
}

// WithConfigProvider resolves the token and repository on every tool call
func WithConfigProvider(provider ghmcp.ConfigProvider) ServerOption {
	return func(c *Config) {
		c.ConfigProvider = provider
	}
}

// WithVersion sets the version for the SSE server
func WithVersion(version string) ServerOption {
	return func(c *Config) {
		c.Version = version
	}
}

// CreateServerWithOptions creates a new SSE server with the provided options
func CreateServerWithOptions(options ...ServerOption) (*Server, error) {
	config := DefaultConfig()
	for _, option := range options {
		option(&config)
	}
	return NewServer(config)
}
