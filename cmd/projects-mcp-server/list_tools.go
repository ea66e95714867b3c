package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/github/projects-mcp-server/pkg/github"
	"github.com/github/projects-mcp-server/pkg/translations"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var listToolsCmd = &cobra.Command{
	Use:   "list-tools",
	Short: "List available MCP tools grouped by toolset",
	Long:  `Display the tools the server would register with the current toolsets and read-only settings.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		enabledToolsets, err := enabledToolsets()
		if err != nil {
			return err
		}
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return err
		}
		return listTools(os.Stdout, enabledToolsets, viper.GetBool("read-only"), format)
	},
}

func init() {
	listToolsCmd.Flags().String("format", "text", "Output format: text or json")
	rootCmd.AddCommand(listToolsCmd)
}

type toolSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ReadOnly    bool   `json:"readOnly"`
}

type toolsetSummary struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Tools       []toolSummary `json:"tools"`
}

func summarizeToolsets(enabledToolsets []string, readOnly bool) ([]toolsetSummary, error) {
	t, _ := translations.TranslationHelper()

	// Handlers are never invoked here, so no service is needed.
	tsg := github.DefaultToolsetGroup(readOnly, nil, nil, t)
	if err := tsg.EnableToolsets(enabledToolsets); err != nil {
		return nil, fmt.Errorf("failed to enable toolsets: %w", err)
	}

	var names []string
	for name := range tsg.Toolsets {
		names = append(names, name)
	}
	sort.Strings(names)

	summaries := []toolsetSummary{}
	for _, name := range names {
		toolset := tsg.Toolsets[name]
		if !toolset.Enabled {
			continue
		}

		summary := toolsetSummary{Name: name, Description: toolset.Description, Tools: []toolSummary{}}
		for _, serverTool := range toolset.GetActiveTools() {
			tool := serverTool.Tool
			summary.Tools = append(summary.Tools, toolSummary{
				Name:        tool.Name,
				Description: tool.Description,
				ReadOnly:    tool.Annotations.ReadOnlyHint != nil && *tool.Annotations.ReadOnlyHint,
			})
		}
		sort.Slice(summary.Tools, func(i, j int) bool {
			return summary.Tools[i].Name < summary.Tools[j].Name
		})
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func listTools(w io.Writer, enabledToolsets []string, readOnly bool, format string) error {
	summaries, err := summarizeToolsets(enabledToolsets, readOnly)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	case "text":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	for _, summary := range summaries {
		_, _ = fmt.Fprintf(w, "\nToolset: %s\n", summary.Name)
		_, _ = fmt.Fprintf(w, "Description: %s\n\n", summary.Description)

		if len(summary.Tools) == 0 {
			_, _ = fmt.Fprintln(w, "  No tools available")
			continue
		}
		for _, tool := range summary.Tools {
			_, _ = fmt.Fprintf(w, "- %s: %s\n", tool.Name, tool.Description)
		}
		_, _ = fmt.Fprintln(w)
	}
	return nil
}
