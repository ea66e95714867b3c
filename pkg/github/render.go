package github

import (
	"fmt"
	"strings"
	"time"

	"github.com/github/projects-mcp-server/pkg/projects"
)

const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

const timestampLayout = "2006-01-02 15:04:05 MST"

func renderProjects(list []projects.Project) string {
	if len(list) == 0 {
		return "No GitHub Projects V2 found."
	}

	var b strings.Builder
	b.WriteString("Your GitHub Projects:\n")
	for i, p := range list {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s (ID: %s)", p.Title, p.ID)
	}
	return b.String()
}

func renderTimestamp(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.UTC().Format(timestampLayout)
}

func renderProjectDetails(d *projects.ProjectDetails) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", d.Title)

	if d.Description != nil {
		fmt.Fprintf(&b, "**Description:** %s\n\n", *d.Description)
	}

	fmt.Fprintf(&b, "**URL:** %s\n", d.URL)
	fmt.Fprintf(&b, "**Created:** %s\n", renderTimestamp(d.CreatedAt))
	fmt.Fprintf(&b, "**Updated:** %s\n\n", renderTimestamp(d.UpdatedAt))

	fmt.Fprintf(&b, "## Fields (%d)\n", len(d.Fields))
	if len(d.Fields) == 0 {
		b.WriteString("No fields defined\n")
	}
	for _, f := range d.Fields {
		fmt.Fprintf(&b, "- %s (%s)\n", f.Name, f.DataType)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Views (%d)\n", len(d.Views))
	if len(d.Views) == 0 {
		b.WriteString("No views defined\n")
	}
	for _, v := range d.Views {
		fmt.Fprintf(&b, "- %s (%s)\n", v.Name, v.Layout)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Items (%d)\n", len(d.Items))
	if len(d.Items) == 0 {
		b.WriteString("No items in this project\n")
	}
	for _, item := range d.Items {
		b.WriteString(renderItem(item))
	}
	return b.String()
}

func renderItem(item projects.ProjectItem) string {
	c := item.Content
	switch {
	case c == nil || c.Title == "":
		return fmt.Sprintf("- %s (ID: %s)\n", item.Type, item.ID)
	case c.Number != 0 && c.Repository != "":
		return fmt.Sprintf("- %s (%s#%d)\n", c.Title, c.Repository, c.Number)
	default:
		return fmt.Sprintf("- %s\n", c.Title)
	}
}

func renderDraftIssue(title string, result *projects.DraftIssueResult) string {
	return fmt.Sprintf("Added draft issue %q to the project (item ID: %s)", title, result.ItemID)
}
