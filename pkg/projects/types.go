package projects

import "time"

// Project is a GitHub Project V2 as listed for the viewer. ID is the opaque
// node ID and is never modified by this package.
type Project struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// FieldKind is the GraphQL type of a project field node.
type FieldKind string

const (
	FieldKindPlain        FieldKind = "ProjectV2Field"
	FieldKindIteration    FieldKind = "ProjectV2IterationField"
	FieldKindSingleSelect FieldKind = "ProjectV2SingleSelectField"
)

// UnknownDataType is reported when a field node carries no data type.
const UnknownDataType = "Unknown"

// ProjectField is a column definition. For iteration and single-select
// fields DataType holds the field's typename, as GitHub has no scalar data
// type to report for them.
type ProjectField struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	DataType string    `json:"dataType"`
	Kind     FieldKind `json:"kind"`
}

// ProjectView is a saved board, table or roadmap layout.
type ProjectView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Layout string `json:"layout"`
}

// ItemType is the concrete kind behind a project item.
type ItemType string

const (
	ItemTypeIssue       ItemType = "Issue"
	ItemTypePullRequest ItemType = "PullRequest"
	ItemTypeDraftIssue  ItemType = "DraftIssue"
	ItemTypeRedacted    ItemType = "RedactedItem"
)

// ItemContent holds the readable fields of an item's underlying object.
type ItemContent struct {
	Title      string `json:"title,omitempty"`
	Number     int    `json:"number,omitempty"`
	Repository string `json:"repository,omitempty"`
}

// ProjectItem is one row of a project. Content is nil when the underlying
// object is not readable.
type ProjectItem struct {
	ID      string       `json:"id"`
	Type    ItemType     `json:"type"`
	Content *ItemContent `json:"content,omitempty"`
}

// ProjectDetails is a call-time snapshot of one project. Only the first page
// of each collection is fetched.
type ProjectDetails struct {
	Project
	Description *string        `json:"description"`
	URL         string         `json:"url"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Fields      []ProjectField `json:"fields"`
	Views       []ProjectView  `json:"views"`
	Items       []ProjectItem  `json:"items"`
}

// DraftIssueRequest describes a draft issue to add. An empty ProjectID makes
// the project resolve from the configured owner and repository.
type DraftIssueRequest struct {
	Title     string `mapstructure:"title" json:"title"`
	Body      string `mapstructure:"body" json:"body"`
	ProjectID string `mapstructure:"project_id" json:"projectId,omitempty"`
}

// DraftIssueResult identifies the project item created for a draft issue.
type DraftIssueResult struct {
	ItemID string `json:"itemId"`
}
