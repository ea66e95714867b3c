// Package errors defines the tagged failures surfaced by the project tools.
// Every failure that reaches the tool layer is an *Error carrying one Kind,
// so callers branch on the kind instead of matching message text.
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
)

// Kind identifies a class of failure.
type Kind string

const (
	MissingCredential        Kind = "MissingCredential"
	MissingProjectContext    Kind = "MissingProjectContext"
	ProjectNotFound          Kind = "ProjectNotFound"
	APIRequestFailed         Kind = "ApiRequestFailed"
	GraphQLError             Kind = "GraphQlError"
	DraftIssueCreationFailed Kind = "DraftIssueCreationFailed"
	UnknownFailure           Kind = "UnknownFailure"
)

// Error is a tagged failure. Only the fields relevant to Kind are set.
type Error struct {
	Kind    Kind
	Message string

	// ApiRequestFailed
	Status     int
	StatusText string
	Body       string

	// ProjectNotFound / MissingProjectContext
	Owner     string
	Repo      string
	ProjectID string

	Err error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports a match for any *Error of the same Kind, so errors.Is(err,
// &Error{Kind: ProjectNotFound}) works as a kind check.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func NewMissingCredential() *Error {
	return &Error{
		Kind:    MissingCredential,
		Message: "GitHub PAT not found in configuration (set GITHUB_PAT)",
	}
}

func NewMissingProjectContext(owner, repo string) *Error {
	return &Error{
		Kind:    MissingProjectContext,
		Message: "no project ID given and repository owner/name are not both configured (set GITHUB_OWNER and GITHUB_REPO)",
		Owner:   owner,
		Repo:    repo,
	}
}

// NewProjectNotFound reports a repository without a linked Project V2.
func NewProjectNotFound(owner, repo string) *Error {
	return &Error{
		Kind:    ProjectNotFound,
		Message: fmt.Sprintf("no GitHub Project V2 linked to repository %s/%s", owner, repo),
		Owner:   owner,
		Repo:    repo,
	}
}

// NewProjectNodeNotFound reports a project ID that did not resolve to a Project V2 node.
func NewProjectNodeNotFound(projectID string) *Error {
	return &Error{
		Kind:      ProjectNotFound,
		Message:   fmt.Sprintf("project not found or invalid project ID %q", projectID),
		ProjectID: projectID,
	}
}

// NewAPIRequestFailed reports a non-2xx response. A zero status means no
// response was received at all and cause holds the transport error.
func NewAPIRequestFailed(status int, body string, cause error) *Error {
	e := &Error{
		Kind:       APIRequestFailed,
		Status:     status,
		StatusText: http.StatusText(status),
		Body:       body,
		Err:        cause,
	}
	if status == 0 {
		e.Message = "GitHub API request failed"
		return e
	}
	e.Message = fmt.Sprintf("GitHub API request failed: %d %s - %s", status, e.StatusText, body)
	// the status line already describes the failure
	e.Err = nil
	return e
}

func NewGraphQLError(message string) *Error {
	if message == "" {
		message = "Unknown GraphQL error"
	}
	return &Error{
		Kind:    GraphQLError,
		Message: "GraphQL error: " + message,
	}
}

func NewDraftIssueCreationFailed(projectID string) *Error {
	return &Error{
		Kind:      DraftIssueCreationFailed,
		Message:   fmt.Sprintf("draft issue was not created in project %q: response carried no item ID", projectID),
		ProjectID: projectID,
	}
}

func NewUnknownFailure(err error) *Error {
	return &Error{
		Kind:    UnknownFailure,
		Message: "unexpected failure",
		Err:     err,
	}
}

// AsError returns err as a tagged *Error, wrapping anything untagged as
// UnknownFailure. A nil err yields nil.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return NewUnknownFailure(err)
}

// KindOf returns the Kind of err, or UnknownFailure for untagged errors.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	return AsError(err).Kind
}

// Is reports whether err is tagged with kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// NewToolResultError renders err as an MCP error result prefixed with message.
func NewToolResultError(message string, err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("%s: %s", message, AsError(err).Error()))
}
