package projects

import (
	"bytes"
	"encoding/json"
	"fmt"

	ghErrors "github.com/github/projects-mcp-server/pkg/errors"
	"github.com/shurcooL/githubv4"
)

type projectNode struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type projectConnection struct {
	Nodes []*projectNode `json:"nodes"`
}

type listProjectsData struct {
	Viewer *struct {
		ProjectsV2 *projectConnection `json:"projectsV2"`
	} `json:"viewer"`
}

type repositoryProjectData struct {
	Repository *struct {
		ProjectsV2 *projectConnection `json:"projectsV2"`
	} `json:"repository"`
}

type fieldNode struct {
	Typename string  `json:"__typename"`
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	DataType *string `json:"dataType"`
}

type viewNode struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Layout string `json:"layout"`
}

type itemContentNode struct {
	Typename   string `json:"__typename"`
	Title      string `json:"title"`
	Number     int    `json:"number"`
	Repository *struct {
		Name string `json:"name"`
	} `json:"repository"`
}

type itemNode struct {
	ID      string           `json:"id"`
	Content *itemContentNode `json:"content"`
}

type projectDetailsNode struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	ShortDescription *string           `json:"shortDescription"`
	URL              string            `json:"url"`
	CreatedAt        githubv4.DateTime `json:"createdAt"`
	UpdatedAt        githubv4.DateTime `json:"updatedAt"`
	Fields           *struct {
		Nodes []*fieldNode `json:"nodes"`
	} `json:"fields"`
	Views *struct {
		Nodes []*viewNode `json:"nodes"`
	} `json:"views"`
	Items *struct {
		Nodes []*itemNode `json:"nodes"`
	} `json:"items"`
}

type projectDetailsData struct {
	Node *projectDetailsNode `json:"node"`
}

type addDraftIssueData struct {
	AddProjectV2DraftIssue *struct {
		ProjectItem *struct {
			ID string `json:"id"`
		} `json:"projectItem"`
	} `json:"addProjectV2DraftIssue"`
}

// decode unmarshals a data object. Missing or null data leaves v zeroed.
func decode(data json.RawMessage, v any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(trimmed, v); err != nil {
		return ghErrors.NewUnknownFailure(fmt.Errorf("failed to decode response data: %w", err))
	}
	return nil
}

// NormalizeProjects maps a listProjects response. A missing connection yields
// an empty list.
func NormalizeProjects(data json.RawMessage) ([]Project, error) {
	var d listProjectsData
	if err := decode(data, &d); err != nil {
		return nil, err
	}
	projects := []Project{}
	if d.Viewer == nil || d.Viewer.ProjectsV2 == nil {
		return projects, nil
	}
	for _, n := range d.Viewer.ProjectsV2.Nodes {
		if n == nil {
			continue
		}
		projects = append(projects, Project{ID: n.ID, Title: n.Title})
	}
	return projects, nil
}

// NormalizeRepositoryProject returns the ID of the first project linked to a
// repository, or "" when there is none.
func NormalizeRepositoryProject(data json.RawMessage) (string, error) {
	var d repositoryProjectData
	if err := decode(data, &d); err != nil {
		return "", err
	}
	if d.Repository == nil || d.Repository.ProjectsV2 == nil {
		return "", nil
	}
	for _, n := range d.Repository.ProjectsV2.Nodes {
		if n != nil && n.ID != "" {
			return n.ID, nil
		}
	}
	return "", nil
}

// NormalizeProjectDetails maps a project detail response. A null node, or a
// node that is not a ProjectV2, is reported as ProjectNotFound.
func NormalizeProjectDetails(projectID string, data json.RawMessage) (*ProjectDetails, error) {
	var d projectDetailsData
	if err := decode(data, &d); err != nil {
		return nil, err
	}
	n := d.Node
	if n == nil || n.ID == "" {
		return nil, ghErrors.NewProjectNodeNotFound(projectID)
	}

	details := &ProjectDetails{
		Project:   Project{ID: n.ID, Title: n.Title},
		URL:       n.URL,
		CreatedAt: n.CreatedAt.Time,
		UpdatedAt: n.UpdatedAt.Time,
		Fields:    []ProjectField{},
		Views:     []ProjectView{},
		Items:     []ProjectItem{},
	}
	if n.ShortDescription != nil && *n.ShortDescription != "" {
		desc := *n.ShortDescription
		details.Description = &desc
	}

	if n.Fields != nil {
		for _, f := range n.Fields.Nodes {
			if field, ok := normalizeField(f); ok {
				details.Fields = append(details.Fields, field)
			}
		}
	}
	if n.Views != nil {
		for _, v := range n.Views.Nodes {
			if v == nil {
				continue
			}
			details.Views = append(details.Views, ProjectView{ID: v.ID, Name: v.Name, Layout: v.Layout})
		}
	}
	if n.Items != nil {
		for _, it := range n.Items.Nodes {
			if it == nil {
				continue
			}
			details.Items = append(details.Items, normalizeItem(it))
		}
	}
	return details, nil
}

func normalizeField(f *fieldNode) (ProjectField, bool) {
	if f == nil {
		return ProjectField{}, false
	}
	field := ProjectField{
		ID:       f.ID,
		Name:     f.Name,
		DataType: UnknownDataType,
	}
	if f.DataType != nil && *f.DataType != "" {
		field.DataType = *f.DataType
	}

	switch kind := FieldKind(f.Typename); kind {
	case FieldKindPlain:
		field.Kind = kind
	case FieldKindIteration, FieldKindSingleSelect:
		field.Kind = kind
		if field.DataType == UnknownDataType {
			field.DataType = string(kind)
		}
	default:
		// no fragment matched, so the node carries no id or name
		if f.ID == "" {
			return ProjectField{}, false
		}
		field.Kind = kind
	}
	return field, true
}

func normalizeItem(it *itemNode) ProjectItem {
	item := ProjectItem{ID: it.ID}
	c := it.Content
	if c == nil {
		item.Type = ItemTypeRedacted
		return item
	}

	item.Type = ItemType(c.Typename)
	switch item.Type {
	case ItemTypeIssue, ItemTypePullRequest:
		item.Content = readableContent(c)
	case ItemTypeDraftIssue:
		item.Content = &ItemContent{Title: c.Title}
	default:
		if item.Type == "" {
			item.Type = ItemTypeRedacted
		}
		// Unrecognized content still exposes whatever it could read.
		if c.Title != "" {
			item.Content = readableContent(c)
		}
	}
	return item
}

func readableContent(c *itemContentNode) *ItemContent {
	content := &ItemContent{Title: c.Title, Number: c.Number}
	if c.Repository != nil {
		content.Repository = c.Repository.Name
	}
	return content
}

// NormalizeDraftIssue extracts the created item's ID.
func NormalizeDraftIssue(projectID string, data json.RawMessage) (*DraftIssueResult, error) {
	var d addDraftIssueData
	if err := decode(data, &d); err != nil {
		return nil, err
	}
	if d.AddProjectV2DraftIssue == nil || d.AddProjectV2DraftIssue.ProjectItem == nil ||
		d.AddProjectV2DraftIssue.ProjectItem.ID == "" {
		return nil, ghErrors.NewDraftIssueCreationFailed(projectID)
	}
	return &DraftIssueResult{ItemID: d.AddProjectV2DraftIssue.ProjectItem.ID}, nil
}
