package github

import (
	"context"
	"testing"

	"github.com/github/projects-mcp-server/pkg/projects"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"
)

// createMCPRequest is a helper function to create a MCP request with the given arguments.
func createMCPRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

// getTextResult is a helper function that returns a text result from a tool call.
func getTextResult(t *testing.T, result *mcp.CallToolResult) mcp.TextContent {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected content to be of type TextContent")
	require.Equal(t, "text", textContent.Type)
	return textContent
}

func stubGetConfigFn(cfg projects.Config) GetConfigFn {
	return func(context.Context) projects.Config {
		return cfg
	}
}

// stubService records the configuration and arguments it was called with and
// returns canned results.
type stubService struct {
	projects []projects.Project
	details  *projects.ProjectDetails
	draft    *projects.DraftIssueResult
	err      error

	gotConfig    projects.Config
	gotProjectID string
	gotDraft     projects.DraftIssueRequest
	calls        int
}

func (s *stubService) ListProjects(_ context.Context, cfg projects.Config) ([]projects.Project, error) {
	s.calls++
	s.gotConfig = cfg
	return s.projects, s.err
}

func (s *stubService) GetProjectDetails(_ context.Context, cfg projects.Config, projectID string) (*projects.ProjectDetails, error) {
	s.calls++
	s.gotConfig = cfg
	s.gotProjectID = projectID
	return s.details, s.err
}

func (s *stubService) AddDraftIssue(_ context.Context, cfg projects.Config, in projects.DraftIssueRequest) (*projects.DraftIssueResult, error) {
	s.calls++
	s.gotConfig = cfg
	s.gotDraft = in
	return s.draft, s.err
}
