package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/github/projects-mcp-server/internal/ghmcp"
	"github.com/github/projects-mcp-server/pkg/github"
	"github.com/github/projects-mcp-server/pkg/ssecmd"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	rootCmd = &cobra.Command{
		Use:     "server",
		Short:   "GitHub Projects MCP Server",
		Long:    `An MCP server exposing GitHub Projects V2 as tools: list projects, inspect a project and add draft issues.`,
		Version: buildInfo.String(),
	}

	sseCmd = &cobra.Command{
		Use:   "sse",
		Short: "Start SSE server",
		Long:  `Start a Server-Sent Events (SSE) server. Each client may authenticate with its own token in the Authorization header.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			enabledToolsets, err := enabledToolsets()
			if err != nil {
				return err
			}

			provider := newConfigProvider(viper.GetViper())
			if provider.token() == "" {
				logrus.Warn("no fallback GitHub PAT configured; clients must send an Authorization header")
			}

			server, err := ssecmd.CreateServerWithOptions(
				ssecmd.WithConfigProvider(provider.Config),
				ssecmd.WithHost(viper.GetString("host")),
				ssecmd.WithAddress(viper.GetString("address")),
				ssecmd.WithBasePath(viper.GetString("base-path")),
				ssecmd.WithLogFilePath(viper.GetString("log-file")),
				ssecmd.WithReadOnly(viper.GetBool("read-only")),
				ssecmd.WithEnabledToolsets(enabledToolsets),
				ssecmd.WithVersion(version),
			)
			if err != nil {
				return err
			}
			return server.Start()
		},
	}

	stdioCmd = &cobra.Command{
		Use:   "stdio",
		Short: "Start stdio server",
		Long:  `Start a server that communicates via standard input/output streams using JSON-RPC messages.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			enabledToolsets, err := enabledToolsets()
			if err != nil {
				return err
			}

			provider := newConfigProvider(viper.GetViper())
			if provider.token() == "" {
				logrus.Warn("GITHUB_PAT not set; tool calls will fail until it is configured")
			}

			stdioServerConfig := ghmcp.StdioServerConfig{
				Version:              version,
				Host:                 viper.GetString("host"),
				ConfigProvider:       provider.Config,
				EnabledToolsets:      enabledToolsets,
				ReadOnly:             viper.GetBool("read-only"),
				ExportTranslations:   viper.GetBool("export-translations"),
				EnableCommandLogging: viper.GetBool("enable-command-logging"),
				LogFilePath:          viper.GetString("log-file"),
			}
			return ghmcp.RunStdioServer(stdioServerConfig)
		},
	}
)

// enabledToolsets reads the toolsets setting. viper.GetStringSlice does not
// split comma separated env values, so the key is unmarshalled instead.
func enabledToolsets() ([]string, error) {
	var enabledToolsets []string
	if err := viper.UnmarshalKey("toolsets", &enabledToolsets); err != nil {
		return nil, fmt.Errorf("failed to unmarshal toolsets: %w", err)
	}
	return enabledToolsets, nil
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.SetGlobalNormalizationFunc(wordSepNormalizeFunc)

	rootCmd.SetVersionTemplate("{{.Short}}\n{{.Version}}\n")

	// Add global flags that will be shared by all commands
	rootCmd.PersistentFlags().StringSlice("toolsets", github.DefaultTools, "An optional comma separated list of groups of tools to allow, defaults to enabling all")
	rootCmd.PersistentFlags().Bool("read-only", false, "Restrict the server to read-only operations")
	rootCmd.PersistentFlags().String("log-file", "", "Path to log file")
	rootCmd.PersistentFlags().Bool("enable-command-logging", false, "When enabled, the server will log all command requests and responses to the log file")
	rootCmd.PersistentFlags().Bool("export-translations", false, "Save translations to a JSON file")
	rootCmd.PersistentFlags().String("gh-host", "", "Specify the GitHub hostname (for GitHub Enterprise etc.)")
	rootCmd.PersistentFlags().String("owner", "", "Owner of the repository whose linked project is used by default")
	rootCmd.PersistentFlags().String("repo", "", "Name of the repository whose linked project is used by default")
	rootCmd.PersistentFlags().String("env-file", "", "Load environment variables from this dotenv file")
	rootCmd.PersistentFlags().Bool("gh-auth", false, "Fall back to the token stored by the gh CLI when GITHUB_PAT is not set")
	rootCmd.PersistentFlags().Bool("infer-repo", false, "Use the git remote of the working directory when owner or repo is not set")

	// Bind flag to viper
	_ = viper.BindPFlag("toolsets", rootCmd.PersistentFlags().Lookup("toolsets"))
	_ = viper.BindPFlag("read-only", rootCmd.PersistentFlags().Lookup("read-only"))
	_ = viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag("enable-command-logging", rootCmd.PersistentFlags().Lookup("enable-command-logging"))
	_ = viper.BindPFlag("export-translations", rootCmd.PersistentFlags().Lookup("export-translations"))
	_ = viper.BindPFlag("host", rootCmd.PersistentFlags().Lookup("gh-host"))
	_ = viper.BindPFlag("owner", rootCmd.PersistentFlags().Lookup("owner"))
	_ = viper.BindPFlag("repo", rootCmd.PersistentFlags().Lookup("repo"))
	_ = viper.BindPFlag("env_file", rootCmd.PersistentFlags().Lookup("env-file"))
	_ = viper.BindPFlag("gh_auth", rootCmd.PersistentFlags().Lookup("gh-auth"))
	_ = viper.BindPFlag("infer_repo", rootCmd.PersistentFlags().Lookup("infer-repo"))

	// Setup flags for SSE command
	sseCmd.Flags().String("address", "localhost:8080", "Address to listen on for SSE server")
	sseCmd.Flags().String("base-path", "", "Base path for SSE server URLs")

	// Bind SSE flags to viper
	_ = viper.BindPFlag("address", sseCmd.Flags().Lookup("address"))
	_ = viper.BindPFlag("base-path", sseCmd.Flags().Lookup("base-path"))

	// Add subcommands
	rootCmd.AddCommand(stdioCmd)
	rootCmd.AddCommand(sseCmd)
}

func initConfig() {
	// Initialize Viper configuration
	viper.SetEnvPrefix("github")
	viper.AutomaticEnv()

	if envFile := viper.GetString("env_file"); envFile != "" {
		// Variables already set in the environment take precedence.
		if err := godotenv.Load(envFile); err != nil {
			logrus.WithError(err).WithField("path", envFile).Warn("failed to load env file")
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func wordSepNormalizeFunc(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	from := []string{"_"}
	to := "-"
	for _, sep := range from {
		name = strings.ReplaceAll(name, sep, to)
	}
	return pflag.NormalizedName(name)
}
