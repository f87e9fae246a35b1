package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/drive-migrate/internal/auth"
	"github.com/pdiddy/drive-migrate/internal/convert"
	"github.com/pdiddy/drive-migrate/internal/export"
	"github.com/pdiddy/drive-migrate/internal/pipeline"
	"github.com/pdiddy/drive-migrate/internal/secrets"
	"github.com/pdiddy/drive-migrate/pkg/types"
)

const (
	defaultCredentialsPath = "credentials.json"
	defaultTokenPath       = "token.json"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [source-dir]",
	Short: "Convert Drive pointer files under a directory to local files",
	Long: `Migrate walks source-dir recursively for .gdoc and .gsheet pointer files,
exports each referenced document through the Drive API, and writes the result
next to its pointer: Markdown with provenance frontmatter for documents, CSV
for spreadsheets.

Per-file failures are counted and reported; they never abort the batch, and
the command exits 0 as long as the batch itself ran.`,
	Args: cobra.ExactArgs(1),
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().Int("limit", 0, "process at most this many files (0 = no limit)")
	migrateCmd.Flags().Bool("skip-existing", false, "skip pointers whose output file already exists")
	migrateCmd.Flags().Bool("dry-run", false, "report what would be converted without writing anything")
	migrateCmd.Flags().Bool("keep-intermediates", false, "retain exported DOCX files in an intermediates/ subdirectory")
	migrateCmd.Flags().Bool("gdoc-only", false, "process only .gdoc pointers")
	migrateCmd.Flags().Bool("gsheet-only", false, "process only .gsheet pointers")
	migrateCmd.Flags().String("credentials-path", defaultCredentialsPath, "OAuth client credentials JSON file")
	migrateCmd.Flags().String("token-path", defaultTokenPath, "where to persist the OAuth token")
	migrateCmd.Flags().String("client-id", "", "OAuth client ID (alternative to --credentials-path)")
	migrateCmd.Flags().String("client-secret", "", "OAuth client secret (alternative to --credentials-path)")
	migrateCmd.Flags().String("report", "", "write the run report to this file as YAML")

	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	sourceDir := args[0]
	info, err := os.Stat(sourceDir)
	if err != nil {
		return fmt.Errorf("source directory %s: %w", sourceDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source path %s is not a directory", sourceDir)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	skipExisting, _ := cmd.Flags().GetBool("skip-existing")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	keepIntermediates, _ := cmd.Flags().GetBool("keep-intermediates")
	gdocOnly, _ := cmd.Flags().GetBool("gdoc-only")
	gsheetOnly, _ := cmd.Flags().GetBool("gsheet-only")
	reportPath, _ := cmd.Flags().GetString("report")

	migCfg := types.MigrationConfig{
		SourceDir:         sourceDir,
		Limit:             limit,
		SkipExisting:      skipExisting,
		DryRun:            dryRun,
		KeepIntermediates: keepIntermediates,
		Filter:            types.KindFilter{DocsOnly: gdocOnly, SheetsOnly: gsheetOnly},
	}

	var converter convert.Converter
	if !gsheetOnly && !dryRun {
		c, err := convert.NewPandocConverter()
		if err != nil {
			return err
		}
		converter = c
	}

	var exporter export.Exporter
	if dryRun {
		fmt.Fprintln(os.Stderr, "dry run: skipping Drive authentication")
	} else {
		flow, err := auth.NewFlow(authConfig(cmd))
		if err != nil {
			return err
		}
		ts, err := flow.TokenSource(cmd.Context())
		if err != nil {
			return err
		}
		exporter, err = export.NewDriveExporter(cmd.Context(), ts)
		if err != nil {
			return err
		}
	}

	runner := pipeline.NewRunner(pipeline.New(exporter, converter, os.Stdout), migCfg, os.Stdout)
	report, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	if reportPath != "" {
		if err := pipeline.WriteReport(report, reportPath); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "report written to %s\n", reportPath)
	}

	// Per-file failures are already counted in the summary; a partially
	// failed batch is still a completed run.
	return nil
}

// authConfig assembles credentials from flags, then the config file, then
// .secrets/.
func authConfig(cmd *cobra.Command) types.AuthConfig {
	credentialsPath, _ := cmd.Flags().GetString("credentials-path")
	if !cmd.Flags().Changed("credentials-path") && viper.IsSet("credentials-path") {
		credentialsPath = viper.GetString("credentials-path")
	}
	tokenPath, _ := cmd.Flags().GetString("token-path")
	if !cmd.Flags().Changed("token-path") && viper.IsSet("token-path") {
		tokenPath = viper.GetString("token-path")
	}

	clientID, _ := cmd.Flags().GetString("client-id")
	clientSecret, _ := cmd.Flags().GetString("client-secret")

	return types.AuthConfig{
		CredentialsPath: credentialsPath,
		TokenPath:       tokenPath,
		ClientID:        secretDefault(secrets.KeyClientID, clientID),
		ClientSecret:    secretDefault(secrets.KeyClientSecret, clientSecret),
	}
}
