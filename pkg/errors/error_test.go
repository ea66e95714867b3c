package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name         string
		err          *Error
		expectedKind Kind
		expectedMsg  string
	}{
		{
			name:         "missing credential",
			err:          NewMissingCredential(),
			expectedKind: MissingCredential,
			expectedMsg:  "GitHub PAT not found in configuration (set GITHUB_PAT)",
		},
		{
			name:         "missing project context",
			err:          NewMissingProjectContext("octo", ""),
			expectedKind: MissingProjectContext,
			expectedMsg:  "no project ID given and repository owner/name are not both configured (set GITHUB_OWNER and GITHUB_REPO)",
		},
		{
			name:         "project not found",
			err:          NewProjectNotFound("octo", "hello"),
			expectedKind: ProjectNotFound,
			expectedMsg:  "no GitHub Project V2 linked to repository octo/hello",
		},
		{
			name:         "project node not found",
			err:          NewProjectNodeNotFound("PVT_1"),
			expectedKind: ProjectNotFound,
			expectedMsg:  `project not found or invalid project ID "PVT_1"`,
		},
		{
			name:         "api request failed",
			err:          NewAPIRequestFailed(http.StatusBadGateway, "oops", errors.New("ignored")),
			expectedKind: APIRequestFailed,
			expectedMsg:  "GitHub API request failed: 502 Bad Gateway - oops",
		},
		{
			name:         "network failure",
			err:          NewAPIRequestFailed(0, "", errors.New("dial tcp: connection refused")),
			expectedKind: APIRequestFailed,
			expectedMsg:  "GitHub API request failed: dial tcp: connection refused",
		},
		{
			name:         "graphql error",
			err:          NewGraphQLError("bad token"),
			expectedKind: GraphQLError,
			expectedMsg:  "GraphQL error: bad token",
		},
		{
			name:         "blank graphql error",
			err:          NewGraphQLError(""),
			expectedKind: GraphQLError,
			expectedMsg:  "GraphQL error: Unknown GraphQL error",
		},
		{
			name:         "draft issue creation failed",
			err:          NewDraftIssueCreationFailed("PVT_1"),
			expectedKind: DraftIssueCreationFailed,
			expectedMsg:  `draft issue was not created in project "PVT_1": response carried no item ID`,
		},
		{
			name:         "unknown failure",
			err:          NewUnknownFailure(errors.New("boom")),
			expectedKind: UnknownFailure,
			expectedMsg:  "unexpected failure: boom",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedKind, tc.err.Kind)
			assert.Equal(t, tc.expectedMsg, tc.err.Error())
		})
	}
}

func TestAPIRequestFailedFields(t *testing.T) {
	err := NewAPIRequestFailed(http.StatusUnauthorized, "Bad credentials", nil)

	assert.Equal(t, http.StatusUnauthorized, err.Status)
	assert.Equal(t, "Unauthorized", err.StatusText)
	assert.Equal(t, "Bad credentials", err.Body)
	assert.Nil(t, err.Unwrap())
}

func TestNetworkFailureUnwraps(t *testing.T) {
	err := NewAPIRequestFailed(0, "", context.DeadlineExceeded)

	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, 0, err.Status)
}

func TestIsAndKindOf(t *testing.T) {
	wrapped := fmt.Errorf("listing projects: %w", NewProjectNotFound("octo", "hello"))

	assert.True(t, Is(wrapped, ProjectNotFound))
	assert.False(t, Is(wrapped, GraphQLError))
	assert.True(t, errors.Is(wrapped, &Error{Kind: ProjectNotFound}))
	assert.False(t, errors.Is(wrapped, &Error{Kind: MissingCredential}))

	assert.Equal(t, ProjectNotFound, KindOf(wrapped))
	assert.Equal(t, UnknownFailure, KindOf(errors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestAsError(t *testing.T) {
	assert.Nil(t, AsError(nil))

	tagged := NewGraphQLError("bad token")
	assert.Same(t, tagged, AsError(fmt.Errorf("wrapped: %w", tagged)))

	plain := errors.New("plain")
	converted := AsError(plain)
	require.NotNil(t, converted)
	assert.Equal(t, UnknownFailure, converted.Kind)
	assert.True(t, errors.Is(converted, plain))
}

func TestNewToolResultError(t *testing.T) {
	result := NewToolResultError("Error listing GitHub projects", NewGraphQLError("bad token"))

	require.True(t, result.IsError)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "Error listing GitHub projects: GraphQL error: bad token", text.Text)
}
