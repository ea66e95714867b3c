package projects

import (
	"encoding/json"
	"testing"
	"time"

	ghErrors "github.com/github/projects-mcp-server/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NormalizeProjects(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected []Project
	}{
		{
			name:     "single project",
			data:     `{"viewer":{"projectsV2":{"nodes":[{"id":"P1","title":"Roadmap"}]}}}`,
			expected: []Project{{ID: "P1", Title: "Roadmap"}},
		},
		{
			name:     "null nodes are skipped",
			data:     `{"viewer":{"projectsV2":{"nodes":[null,{"id":"P2","title":"Bugs"}]}}}`,
			expected: []Project{{ID: "P2", Title: "Bugs"}},
		},
		{
			name:     "no projects",
			data:     `{"viewer":{"projectsV2":{"nodes":[]}}}`,
			expected: []Project{},
		},
		{
			name:     "missing connection",
			data:     `{"viewer":{}}`,
			expected: []Project{},
		},
		{
			name:     "null data",
			data:     `null`,
			expected: []Project{},
		},
		{
			name:     "empty data",
			data:     ``,
			expected: []Project{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			projects, err := NormalizeProjects(json.RawMessage(tc.data))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, projects)
		})
	}
}

func Test_NormalizeProjectsInvalidJSON(t *testing.T) {
	_, err := NormalizeProjects(json.RawMessage(`{"viewer":`))
	require.Error(t, err)
	assert.True(t, ghErrors.Is(err, ghErrors.UnknownFailure))
}

func Test_NormalizeRepositoryProject(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected string
	}{
		{
			name:     "linked project",
			data:     `{"repository":{"projectsV2":{"nodes":[{"id":"PVT_1","title":"Board"}]}}}`,
			expected: "PVT_1",
		},
		{
			name:     "no linked project",
			data:     `{"repository":{"projectsV2":{"nodes":[]}}}`,
			expected: "",
		},
		{
			name:     "null repository",
			data:     `{"repository":null}`,
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id, err := NormalizeRepositoryProject(json.RawMessage(tc.data))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, id)
		})
	}
}

const fullProjectDetails = `{
  "node": {
    "id": "PVT_1",
    "title": "Roadmap",
    "shortDescription": "Q3 plans",
    "url": "https://github.com/users/octo/projects/1",
    "createdAt": "2024-01-02T03:04:05Z",
    "updatedAt": "2024-02-03T04:05:06Z",
    "fields": {"nodes": [
      {"__typename": "ProjectV2Field", "id": "F1", "name": "Title", "dataType": "TITLE"},
      {"__typename": "ProjectV2IterationField", "id": "F2", "name": "Sprint", "dataType": "ProjectV2IterationField"},
      {"__typename": "ProjectV2SingleSelectField", "id": "F3", "name": "Status"},
      {"__typename": "ProjectV2Field", "id": "F4", "name": "Notes"}
    ]},
    "views": {"nodes": [
      {"id": "V1", "name": "Board", "layout": "BOARD_LAYOUT"}
    ]},
    "items": {"nodes": [
      {"id": "I1", "content": {"__typename": "Issue", "title": "Crash", "number": 12, "repository": {"name": "app"}}},
      {"id": "I2", "content": {"__typename": "PullRequest", "title": "Fix crash", "number": 13, "repository": {"name": "app"}}},
      {"id": "I3", "content": {"__typename": "DraftIssue", "title": "Idea"}},
      {"id": "I4", "content": null}
    ]}
  }
}`

func Test_NormalizeProjectDetails(t *testing.T) {
	details, err := NormalizeProjectDetails("PVT_1", json.RawMessage(fullProjectDetails))
	require.NoError(t, err)

	assert.Equal(t, Project{ID: "PVT_1", Title: "Roadmap"}, details.Project)
	require.NotNil(t, details.Description)
	assert.Equal(t, "Q3 plans", *details.Description)
	assert.Equal(t, "https://github.com/users/octo/projects/1", details.URL)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), details.CreatedAt.UTC())
	assert.Equal(t, time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC), details.UpdatedAt.UTC())

	assert.Equal(t, []ProjectField{
		{ID: "F1", Name: "Title", DataType: "TITLE", Kind: FieldKindPlain},
		{ID: "F2", Name: "Sprint", DataType: "ProjectV2IterationField", Kind: FieldKindIteration},
		{ID: "F3", Name: "Status", DataType: "ProjectV2SingleSelectField", Kind: FieldKindSingleSelect},
		{ID: "F4", Name: "Notes", DataType: UnknownDataType, Kind: FieldKindPlain},
	}, details.Fields)

	assert.Equal(t, []ProjectView{{ID: "V1", Name: "Board", Layout: "BOARD_LAYOUT"}}, details.Views)

	assert.Equal(t, []ProjectItem{
		{ID: "I1", Type: ItemTypeIssue, Content: &ItemContent{Title: "Crash", Number: 12, Repository: "app"}},
		{ID: "I2", Type: ItemTypePullRequest, Content: &ItemContent{Title: "Fix crash", Number: 13, Repository: "app"}},
		{ID: "I3", Type: ItemTypeDraftIssue, Content: &ItemContent{Title: "Idea"}},
		{ID: "I4", Type: ItemTypeRedacted},
	}, details.Items)
}

func Test_NormalizeProjectDetailsAbsentCollections(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "collections missing",
			data: `{"node":{"id":"PVT_1","title":"Empty"}}`,
		},
		{
			name: "nodes missing",
			data: `{"node":{"id":"PVT_1","title":"Empty","fields":{},"views":{},"items":{}}}`,
		},
		{
			name: "nodes null",
			data: `{"node":{"id":"PVT_1","title":"Empty","fields":{"nodes":null},"views":{"nodes":null},"items":{"nodes":null}}}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			details, err := NormalizeProjectDetails("PVT_1", json.RawMessage(tc.data))
			require.NoError(t, err)

			assert.NotNil(t, details.Fields)
			assert.Empty(t, details.Fields)
			assert.NotNil(t, details.Views)
			assert.Empty(t, details.Views)
			assert.NotNil(t, details.Items)
			assert.Empty(t, details.Items)
			assert.Nil(t, details.Description)

			out, err := json.Marshal(details)
			require.NoError(t, err)
			assert.Contains(t, string(out), `"fields":[]`)
			assert.Contains(t, string(out), `"description":null`)
		})
	}
}

func Test_NormalizeProjectDetailsNotFound(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "null node", data: `{"node":null}`},
		{name: "not a project", data: `{"node":{}}`},
		{name: "null data", data: `null`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NormalizeProjectDetails("PVT_missing", json.RawMessage(tc.data))
			require.Error(t, err)
			assert.True(t, ghErrors.Is(err, ghErrors.ProjectNotFound))
			assert.Contains(t, err.Error(), "PVT_missing")
		})
	}
}

func Test_NormalizeProjectDetailsUnknownKinds(t *testing.T) {
	data := `{"node":{"id":"PVT_1","title":"T",
		"fields":{"nodes":[{"__typename":"ProjectV2FutureField","id":"F9","name":"New"},{"__typename":"ProjectV2FutureField"}]},
		"items":{"nodes":[{"id":"I9","content":{"__typename":"FutureContent"}},{"id":"I10","content":{}}]}}}`

	details, err := NormalizeProjectDetails("PVT_1", json.RawMessage(data))
	require.NoError(t, err)

	assert.Equal(t, []ProjectField{
		{ID: "F9", Name: "New", DataType: UnknownDataType, Kind: "ProjectV2FutureField"},
	}, details.Fields)
	assert.Equal(t, []ProjectItem{
		{ID: "I9", Type: "FutureContent"},
		{ID: "I10", Type: ItemTypeRedacted},
	}, details.Items)
}

func Test_NormalizeProjectDetailsKeepsReadableContent(t *testing.T) {
	data := `{"node":{"id":"PVT_1","title":"T","items":{"nodes":[
		{"id":"I1","content":{"title":"x","number":3,"repository":{"name":"r"}}},
		{"id":"I2","content":{"__typename":"FutureContent","title":"y"}}
	]}}}`

	details, err := NormalizeProjectDetails("PVT_1", json.RawMessage(data))
	require.NoError(t, err)

	assert.Equal(t, []ProjectItem{
		{ID: "I1", Type: ItemTypeRedacted, Content: &ItemContent{Title: "x", Number: 3, Repository: "r"}},
		{ID: "I2", Type: "FutureContent", Content: &ItemContent{Title: "y"}},
	}, details.Items)
}

func Test_NormalizeDraftIssue(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		expected    *DraftIssueResult
		expectedErr ghErrors.Kind
	}{
		{
			name:     "created",
			data:     `{"addProjectV2DraftIssue":{"projectItem":{"id":"I9"}}}`,
			expected: &DraftIssueResult{ItemID: "I9"},
		},
		{
			name:        "missing item",
			data:        `{"addProjectV2DraftIssue":{"projectItem":null}}`,
			expectedErr: ghErrors.DraftIssueCreationFailed,
		},
		{
			name:        "empty id",
			data:        `{"addProjectV2DraftIssue":{"projectItem":{"id":""}}}`,
			expectedErr: ghErrors.DraftIssueCreationFailed,
		},
		{
			name:        "null payload",
			data:        `{"addProjectV2DraftIssue":null}`,
			expectedErr: ghErrors.DraftIssueCreationFailed,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := NormalizeDraftIssue("PVT_1", json.RawMessage(tc.data))
			if tc.expectedErr != "" {
				require.Error(t, err)
				assert.Equal(t, tc.expectedErr, ghErrors.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}
