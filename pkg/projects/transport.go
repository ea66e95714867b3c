package projects

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/github/projects-mcp-server/pkg/buffer"
	ghErrors "github.com/github/projects-mcp-server/pkg/errors"
	"github.com/google/go-github/v69/github"
	"github.com/sirupsen/logrus"
)

// A failed response body is kept as its last maxErrorBodyLines lines, and
// never more than maxErrorBodyBytes bytes.
const (
	maxErrorBodyLines = 50
	maxErrorBodyBytes = 64 * 1024
)

// Executor runs one GraphQL request and returns the response's data object.
type Executor interface {
	Execute(ctx context.Context, req Request) (json.RawMessage, error)
}

// Transport posts GraphQL requests through a go-github client, so it shares
// the client's base URL, authentication and error decoding.
type Transport struct {
	client *github.Client
	logger logrus.FieldLogger
}

func NewTransport(client *github.Client, logger logrus.FieldLogger) *Transport {
	return &Transport{
		client: client,
		logger: logger,
	}
}

type graphQLPayload struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLErrorEntry struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
	Path    []any  `json:"path,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage     `json:"data"`
	Errors []graphQLErrorEntry `json:"errors"`
}

// Execute sends req as a single POST. A top-level errors array is reported as
// a GraphQlError whatever the HTTP status; other non-2xx responses are
// ApiRequestFailed. Nothing is retried.
func (t *Transport) Execute(ctx context.Context, req Request) (json.RawMessage, error) {
	httpReq, err := t.client.NewRequest(http.MethodPost, "graphql", graphQLPayload{
		Query:     req.Document,
		Variables: req.Variables,
	})
	if err != nil {
		return nil, ghErrors.NewUnknownFailure(fmt.Errorf("failed to create request: %w", err))
	}

	var body graphQLResponse
	resp, err := t.client.Do(ctx, httpReq, &body)
	if err != nil {
		return nil, t.classifyFailure(resp, err)
	}

	if len(body.Errors) > 0 {
		return nil, t.graphQLFailure(body.Errors)
	}
	return body.Data, nil
}

func (t *Transport) classifyFailure(resp *github.Response, err error) error {
	if resp == nil || resp.Response == nil {
		t.logger.WithError(err).Error("GitHub API request failed without a response")
		return ghErrors.NewAPIRequestFailed(0, "", err)
	}

	status := resp.StatusCode
	if status >= 200 && status < 300 {
		return ghErrors.NewUnknownFailure(fmt.Errorf("failed to decode GraphQL response: %w", err))
	}

	// go-github leaves the error body readable after decoding it
	defer func() { _ = resp.Body.Close() }()
	raw, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		t.logger.WithError(readErr).Warn("failed to read error response body")
	}

	var body graphQLResponse
	if json.Unmarshal(raw, &body) == nil && len(body.Errors) > 0 {
		return t.graphQLFailure(body.Errors)
	}

	tail, _, tailErr := buffer.TailLines(bytes.NewReader(raw), maxErrorBodyLines)
	if tailErr != nil {
		// a line longer than the scanner allows
		tail = string(raw)
	}
	tail = buffer.TailBytes(tail, maxErrorBodyBytes)
	t.logger.WithFields(logrus.Fields{
		"status": status,
		"body":   tail,
	}).Error("GitHub API request failed")
	return ghErrors.NewAPIRequestFailed(status, tail, err)
}

func (t *Transport) graphQLFailure(errs []graphQLErrorEntry) error {
	for i, e := range errs {
		t.logger.WithFields(logrus.Fields{
			"index": i,
			"type":  e.Type,
			"path":  e.Path,
		}).Error("GitHub GraphQL API error: " + e.Message)
	}
	return ghErrors.NewGraphQLError(errs[0].Message)
}
