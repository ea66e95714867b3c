package ghmcp

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/github/projects-mcp-server/pkg/github"
	mcplog "github.com/github/projects-mcp-server/pkg/log"
	"github.com/github/projects-mcp-server/pkg/projects"
	"github.com/github/projects-mcp-server/pkg/translations"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
)

// TokenProvider is a function that returns the current GitHub token.
// It is called on every tool call, so it should be cheap.
type TokenProvider func() string

// ConfigProvider returns the project configuration for one tool call.
type ConfigProvider func(ctx context.Context) projects.Config

type MCPServerConfig struct {
	// Version of the server
	Version string

	// GitHub Host to target for API requests (e.g. github.com or github.enterprise.com)
	Host string

	// GitHub Token to authenticate with the GitHub API
	Token string

	// TokenProvider, when set, replaces Token and is asked on every call
	TokenProvider TokenProvider

	// Owner and Repo locate the default project when a call names none
	Owner string
	Repo  string

	// ConfigProvider, when set, replaces Token, TokenProvider, Owner and Repo
	ConfigProvider ConfigProvider

	// EnabledToolsets is a list of toolsets to enable
	EnabledToolsets []string

	// ReadOnly indicates if we should only register read-only tools
	ReadOnly bool

	// Translator provides translated text for the server tooling
	Translator translations.TranslationHelperFunc

	// Logger receives HTTP and operation logs. Defaults to the logrus standard logger.
	Logger *logrus.Logger
}

type tokenContextKey struct{}

// ContextWithToken returns a context whose tool calls authenticate with token
// instead of the configured one.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

// TokenFromContext returns the token stored by ContextWithToken.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey{}).(string)
	return token, ok && token != ""
}

// extractTokenFromRequest reads a GitHub token from the Authorization header.
// Both the "Bearer" and "token" schemes are accepted.
func extractTokenFromRequest(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found {
		return ""
	}
	switch strings.ToLower(scheme) {
	case "bearer", "token":
		return strings.TrimSpace(token)
	default:
		return ""
	}
}

// SSEContextFunc carries the caller's Authorization header into the context
// of every message on an SSE session.
func SSEContextFunc(ctx context.Context, r *http.Request) context.Context {
	if token := extractTokenFromRequest(r); token != "" {
		return ContextWithToken(ctx, token)
	}
	return ctx
}

// configFn resolves a projects.Config per call. A token carried by the
// context always wins.
func (cfg MCPServerConfig) configFn() github.GetConfigFn {
	return func(ctx context.Context) projects.Config {
		var c projects.Config
		switch {
		case cfg.ConfigProvider != nil:
			c = cfg.ConfigProvider(ctx)
		default:
			c = projects.Config{Token: cfg.Token, Owner: cfg.Owner, Repo: cfg.Repo}
			if cfg.TokenProvider != nil {
				c.Token = cfg.TokenProvider()
			}
		}
		if token, ok := TokenFromContext(ctx); ok {
			c.Token = token
		}
		return c
	}
}

func NewMCPServer(cfg MCPServerConfig) (*server.MCPServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	t := cfg.Translator
	if t == nil {
		t = translations.NullTranslationHelper
	}

	newClient, err := projects.NewClientFactory(cfg.Host, fmt.Sprintf("projects-mcp-server/%s", cfg.Version), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to parse API host: %w", err)
	}
	svc := projects.NewService(newClient, logger)

	hooks := &server.Hooks{}
	hooks.AddBeforeInitialize(func(_ context.Context, _ any, message *mcp.InitializeRequest) {
		logger.WithFields(logrus.Fields{
			"client":  message.Params.ClientInfo.Name,
			"version": message.Params.ClientInfo.Version,
		}).Info("client initializing")
	})

	ghServer := github.NewServer(cfg.Version, server.WithHooks(hooks))

	enabledToolsets := cfg.EnabledToolsets
	if len(enabledToolsets) == 0 {
		enabledToolsets = github.DefaultTools
	}

	tsg, err := github.InitToolsets(enabledToolsets, cfg.ReadOnly, svc, cfg.configFn(), t)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize toolsets: %w", err)
	}
	tsg.RegisterAll(ghServer)

	return ghServer, nil
}

type StdioServerConfig struct {
	// Version of the server
	Version string

	// GitHub Host to target for API requests (e.g. github.com or github.enterprise.com)
	Host string

	// GitHub Token to authenticate with the GitHub API
	Token string

	// TokenProvider, when set, replaces Token and is asked on every call
	TokenProvider TokenProvider

	// Owner and Repo locate the default project when a call names none
	Owner string
	Repo  string

	// ConfigProvider, when set, replaces Token, TokenProvider, Owner and Repo
	ConfigProvider ConfigProvider

	// EnabledToolsets is a list of toolsets to enable
	EnabledToolsets []string

	// ReadOnly indicates if we should only register read-only tools
	ReadOnly bool

	// ExportTranslations indicates if we should export translations
	ExportTranslations bool

	// EnableCommandLogging indicates if we should log commands
	EnableCommandLogging bool

	// Path to the log file if not stderr
	LogFilePath string
}

// NewStdioLogger returns the logger used in stdio mode: debug level into
// logFilePath when set, info level on stderr otherwise.
func NewStdioLogger(logFilePath string) (*logrus.Logger, error) {
	logrusLogger := logrus.New()
	if logFilePath == "" {
		logrusLogger.SetOutput(os.Stderr)
		return logrusLogger, nil
	}
	file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logrusLogger.SetLevel(logrus.DebugLevel)
	logrusLogger.SetOutput(file)
	return logrusLogger, nil
}

// RunStdioServer is not concurrent safe.
func RunStdioServer(cfg StdioServerConfig) error {
	// Create app context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	t, dumpTranslations := translations.TranslationHelper()

	logrusLogger, err := NewStdioLogger(cfg.LogFilePath)
	if err != nil {
		return err
	}

	ghServer, err := NewMCPServer(MCPServerConfig{
		Version:         cfg.Version,
		Host:            cfg.Host,
		Token:           cfg.Token,
		TokenProvider:   cfg.TokenProvider,
		Owner:           cfg.Owner,
		Repo:            cfg.Repo,
		ConfigProvider:  cfg.ConfigProvider,
		EnabledToolsets: cfg.EnabledToolsets,
		ReadOnly:        cfg.ReadOnly,
		Translator:      t,
		Logger:          logrusLogger,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	stdioServer := server.NewStdioServer(ghServer)

	stdLogger := log.New(logrusLogger.Writer(), "stdioserver", 0)
	stdioServer.SetErrorLogger(stdLogger)

	if cfg.ExportTranslations {
		// Once server is initialized, all translations are loaded
		if err := dumpTranslations(); err != nil {
			logrusLogger.WithError(err).Warn("failed to export translations")
		}
	}

	// Start listening for messages
	errC := make(chan error, 1)
	go func() {
		in, out := io.Reader(os.Stdin), io.Writer(os.Stdout)

		if cfg.EnableCommandLogging {
			loggedIO := mcplog.NewIOLogger(in, out, logrusLogger)
			in, out = loggedIO, loggedIO
		}

		errC <- stdioServer.Listen(ctx, in, out)
	}()

	// Announce on stderr; stdout carries the protocol
	_, _ = fmt.Fprintf(os.Stderr, "GitHub Projects MCP Server running on stdio\n")

	// Wait for shutdown signal
	select {
	case <-ctx.Done():
		logrusLogger.Infof("shutting down server...")
	case err := <-errC:
		if err != nil {
			return fmt.Errorf("error running server: %w", err)
		}
	}

	return nil
}
