package projects

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shurcooL/githubv4"
)

// Page sizes. Nothing beyond the first page is ever fetched.
const (
	ListProjectsPageSize = 20
	FieldsPageSize       = 20
	ViewsPageSize        = 10
	ItemsPageSize        = 20
)

// Request is a GraphQL document and its variables, ready for the transport.
type Request struct {
	Document  string
	Variables map[string]any
}

// ListProjectsQuery fetches the viewer's projects.
func ListProjectsQuery() Request {
	return Request{
		Document: fmt.Sprintf(`query {
  viewer {
    projectsV2(first: %d) {
      nodes {
        id
        title
      }
    }
  }
}`, ListProjectsPageSize),
	}
}

// RepositoryProjectQuery fetches the first project linked to a repository.
func RepositoryProjectQuery(owner, repo string) Request {
	return Request{
		Document: `query($owner: String!, $name: String!) {
  repository(owner: $owner, name: $name) {
    projectsV2(first: 1) {
      nodes {
        id
        title
      }
    }
  }
}`,
		Variables: map[string]any{
			"owner": githubv4.String(owner),
			"name":  githubv4.String(repo),
		},
	}
}

// ProjectDetailsQuery fetches one project with its fields, views and items.
// Iteration and single-select fields report their typename as dataType.
func ProjectDetailsQuery(projectID string) Request {
	return Request{
		Document: fmt.Sprintf(`query($id: ID!) {
  node(id: $id) {
    ... on ProjectV2 {
      id
      title
      shortDescription
      url
      createdAt
      updatedAt
      fields(first: %d) {
        nodes {
          __typename
          ... on ProjectV2Field {
            id
            name
            dataType
          }
          ... on ProjectV2IterationField {
            id
            name
            dataType: __typename
          }
          ... on ProjectV2SingleSelectField {
            id
            name
            dataType: __typename
          }
        }
      }
      views(first: %d) {
        nodes {
          id
          name
          layout
        }
      }
      items(first: %d) {
        nodes {
          id
          content {
            __typename
            ... on Issue {
              title
              number
              repository {
                name
              }
            }
            ... on PullRequest {
              title
              number
              repository {
                name
              }
            }
            ... on DraftIssue {
              title
            }
          }
        }
      }
    }
  }
}`, FieldsPageSize, ViewsPageSize, ItemsPageSize),
		Variables: map[string]any{
			"id": githubv4.ID(projectID),
		},
	}
}

// AddDraftIssueMutation creates a draft issue. The values are interpolated
// into the document as string literals, so each one goes through EscapeString.
func AddDraftIssueMutation(projectID, title, body string) Request {
	return Request{
		Document: fmt.Sprintf(`mutation {
  addProjectV2DraftIssue(input: {projectId: %s, title: %s, body: %s}) {
    projectItem {
      id
    }
  }
}`, EscapeString(projectID), EscapeString(title), EscapeString(body)),
	}
}

// EscapeString returns s as a quoted GraphQL string literal. GraphQL accepts
// every escape sequence the JSON encoder produces, and the encoder escapes all
// characters a literal may not contain verbatim.
func EscapeString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// encoding a string cannot fail
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
