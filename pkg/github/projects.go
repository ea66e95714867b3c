package github

import (
	"context"
	"fmt"

	ghErrors "github.com/github/projects-mcp-server/pkg/errors"
	"github.com/github/projects-mcp-server/pkg/projects"
	"github.com/github/projects-mcp-server/pkg/translations"
	"github.com/go-viper/mapstructure/v2"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ProjectsService is the set of project operations the tools call into.
type ProjectsService interface {
	ListProjects(ctx context.Context, cfg projects.Config) ([]projects.Project, error)
	GetProjectDetails(ctx context.Context, cfg projects.Config, projectID string) (*projects.ProjectDetails, error)
	AddDraftIssue(ctx context.Context, cfg projects.Config, in projects.DraftIssueRequest) (*projects.DraftIssueResult, error)
}

// GetConfigFn returns the configuration for the call carried by ctx.
type GetConfigFn func(context.Context) projects.Config

func withFormat() mcp.ToolOption {
	return mcp.WithString("format",
		mcp.Description("Output format: human readable markdown (default) or json"),
		mcp.Enum(FormatMarkdown, FormatJSON),
	)
}

func formatParam(req mcp.CallToolRequest) (string, error) {
	format, err := OptionalStringParamWithDefault(req, "format", FormatMarkdown)
	if err != nil {
		return "", err
	}
	switch format {
	case FormatMarkdown, FormatJSON:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported format %q: must be %q or %q", format, FormatMarkdown, FormatJSON)
	}
}

// ListProjects lists the authenticated user's Projects V2.
func ListProjects(svc ProjectsService, getConfig GetConfigFn, t translations.TranslationHelperFunc) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("list_projects",
			mcp.WithDescription(t("TOOL_LIST_PROJECTS_DESCRIPTION", "List your GitHub Project V2 projects")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_LIST_PROJECTS_USER_TITLE", "List projects"),
				ReadOnlyHint: ToBoolPtr(true),
			}),
			withFormat(),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			format, err := formatParam(req)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			list, err := svc.ListProjects(ctx, getConfig(ctx))
			if err != nil {
				return ghErrors.NewToolResultError("Error listing GitHub projects", err), nil
			}

			if format == FormatJSON {
				return MarshalledTextResult(list), nil
			}
			return mcp.NewToolResultText(renderProjects(list)), nil
		}
}

// GetProjectDetails describes one project: its fields, views and items.
func GetProjectDetails(svc ProjectsService, getConfig GetConfigFn, t translations.TranslationHelperFunc) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("get_project_details",
			mcp.WithDescription(t("TOOL_GET_PROJECT_DETAILS_DESCRIPTION", "Get detailed information about a specific GitHub Project V2. Without a project_id, the first project linked to the configured repository is used.")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_GET_PROJECT_DETAILS_USER_TITLE", "Get project details"),
				ReadOnlyHint: ToBoolPtr(true),
			}),
			mcp.WithString("project_id",
				mcp.Description("The node ID of the project to retrieve details for"),
			),
			withFormat(),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			projectID, err := OptionalParam[string](req, "project_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			format, err := formatParam(req)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			details, err := svc.GetProjectDetails(ctx, getConfig(ctx), projectID)
			if err != nil {
				return ghErrors.NewToolResultError("Error getting project details", err), nil
			}

			if format == FormatJSON {
				return MarshalledTextResult(details), nil
			}
			return mcp.NewToolResultText(renderProjectDetails(details)), nil
		}
}

// AddDraftIssue creates a draft issue in a project.
func AddDraftIssue(svc ProjectsService, getConfig GetConfigFn, t translations.TranslationHelperFunc) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("add_draft_issue",
			mcp.WithDescription(t("TOOL_ADD_DRAFT_ISSUE_DESCRIPTION", "Add a draft issue to a GitHub Project V2. Without a project_id, the first project linked to the configured repository is used.")),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        t("TOOL_ADD_DRAFT_ISSUE_USER_TITLE", "Add draft issue"),
				ReadOnlyHint: ToBoolPtr(false),
			}),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("Draft issue title"),
			),
			mcp.WithString("body",
				mcp.Description("Draft issue body"),
			),
			mcp.WithString("project_id",
				mcp.Description("The node ID of the project to add the draft issue to"),
			),
			withFormat(),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			if _, err := RequiredParam[string](req, "title"); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			format, err := formatParam(req)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var in projects.DraftIssueRequest
			if err := mapstructure.Decode(req.GetArguments(), &in); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %s", err)), nil
			}

			result, err := svc.AddDraftIssue(ctx, getConfig(ctx), in)
			if err != nil {
				return ghErrors.NewToolResultError("Error adding draft issue", err), nil
			}

			if format == FormatJSON {
				return MarshalledTextResult(result), nil
			}
			return mcp.NewToolResultText(renderDraftIssue(in.Title, result)), nil
		}
}
