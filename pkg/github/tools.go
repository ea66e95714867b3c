package github

import (
	"github.com/github/projects-mcp-server/pkg/toolsets"
	"github.com/github/projects-mcp-server/pkg/translations"
)

var DefaultTools = []string{"all"}

func InitToolsets(passedToolsets []string, readOnly bool, svc ProjectsService, getConfig GetConfigFn, t translations.TranslationHelperFunc) (*toolsets.ToolsetGroup, error) {
	tsg := DefaultToolsetGroup(readOnly, svc, getConfig, t)

	// Enable the requested features
	if err := tsg.EnableToolsets(passedToolsets); err != nil {
		return nil, err
	}

	return tsg, nil
}

// DefaultToolsetGroup builds every toolset without enabling any of them.
func DefaultToolsetGroup(readOnly bool, svc ProjectsService, getConfig GetConfigFn, t translations.TranslationHelperFunc) *toolsets.ToolsetGroup {
	tsg := toolsets.NewToolsetGroup(readOnly)

	projectTools := toolsets.NewToolset("projects", "GitHub Projects V2 related tools").
		AddReadTools(
			toolsets.NewServerTool(ListProjects(svc, getConfig, t)),
			toolsets.NewServerTool(GetProjectDetails(svc, getConfig, t)),
		).
		AddWriteTools(
			toolsets.NewServerTool(AddDraftIssue(svc, getConfig, t)),
		)

	tsg.AddToolset(projectTools)
	return tsg
}
