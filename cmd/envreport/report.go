// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirseerhq/azdo-envreport/internal/azdevops"
	"github.com/sirseerhq/azdo-envreport/internal/config"
	reporterrors "github.com/sirseerhq/azdo-envreport/internal/errors"
	"github.com/sirseerhq/azdo-envreport/internal/output"
	"github.com/sirseerhq/azdo-envreport/internal/progress"
	"github.com/sirseerhq/azdo-envreport/internal/report"
	"github.com/sirseerhq/azdo-envreport/internal/summary"
	"github.com/sirseerhq/azdo-envreport/pkg/version"
	"github.com/spf13/cobra"
)

// reportOptions carries the flag values of one report invocation.
type reportOptions struct {
	organization string
	project      string
	token        string
	outputFile   string
	configPath   string
	saveMetadata bool
}

// newReportCommand builds the report subcommand.
func newReportCommand() *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the environment approval report for a project",
		Long: `Generate a CSV report of all environments in an Azure DevOps project,
one row per environment, with the approvers of every approval check.

Authentication is required via a personal access token:
  - Use --token flag to provide the token directly
  - Or set the AZDO_PAT environment variable (a .env file works too)

The report is written to the reports directory next to the executable
unless the configuration overrides it. Output filenames must be bare
names; the .csv extension is appended if missing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RunTimeout())
			defer cancel()

			return runReport(ctx, cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.organization, "organization", "", "Azure DevOps organization name (required)")
	cmd.Flags().StringVar(&opts.project, "project", "", "Project name, exact match (required)")
	cmd.Flags().StringVar(&opts.token, "token", "", "Personal access token (overrides AZDO_PAT env var)")
	cmd.Flags().StringVar(&opts.outputFile, "output", "", "Report filename, bare name only (default: timestamped)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().BoolVar(&opts.saveMetadata, "metadata", false, "Save run metadata JSON next to the report")

	_ = cmd.MarkFlagRequired("organization")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

// runReport executes the report command
func runReport(ctx context.Context, cfg *config.Config, opts *reportOptions) error {
	token := getToken(opts.token, cfg.AzureDevOps.TokenEnv)
	if token == "" {
		return fmt.Errorf("personal access token not found. Set %s or use --token flag", cfg.AzureDevOps.TokenEnv)
	}

	// Resolve and prepare the output location before any network work so
	// a bad filename fails fast.
	reportDir, err := resolveReportDir(cfg.Defaults.ReportDir)
	if err != nil {
		return err
	}
	filename, err := resolveReportFilename(opts.outputFile, time.Now())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return fmt.Errorf("failed to create reports directory %s: %w", reportDir, err)
	}
	reportPath := filepath.Join(reportDir, filename)

	client := azdevops.NewRetryClient(
		azdevops.NewRESTClient(cfg.OrganizationURL(opts.organization), token),
		&azdevops.RetryConfig{
			MaxAttempts: cfg.Defaults.RetryAttempts,
			Delay:       cfg.RetryDelay(),
		},
	)

	tracker := summary.New()

	// Project resolution failure is fatal: nothing downstream can run
	// without the project id.
	project, err := client.ResolveProject(ctx, opts.project)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Resolved project %q (id %s)\n", project.Name, project.ID)

	collector := report.NewCollector(client, cfg.Defaults.PageSize, cfg.PageDelay())
	environments, err := collector.CollectEnvironments(ctx, project.ID)
	if err != nil {
		return err
	}
	tracker.SetEnvironmentsSeen(len(environments))

	if len(environments) == 0 {
		fmt.Fprintf(os.Stderr, "⚠️  No environments found in project %q. No report written.\n", project.Name)
		return nil
	}
	fmt.Fprintf(os.Stderr, "Found %d environments\n", len(environments))

	enricher := report.NewEnricher(client)
	writer := output.NewCSVWriter(report.Header())

	bar := progress.NewReporter()
	bar.Start(len(environments))
	for i, env := range environments {
		approvers := enricher.ResolveApprovers(ctx, project.ID, env)
		tracker.AddApprovers(len(approvers))

		record := report.BuildRecord(project, env, approvers)
		writer.Append(record.Row())

		bar.Update(i+1, env.Name)
	}
	bar.Finish()

	tracker.AddApprovalChecks(enricher.ApprovalChecksSeen())
	tracker.SetRecordsExported(writer.Count())

	if writer.Count() == 0 {
		fmt.Fprintln(os.Stderr, "⚠️  No records produced. No report written.")
		return nil
	}

	if err := writer.Flush(reportPath); err != nil {
		return err
	}
	tracker.SetReportPath(reportPath)

	results := tracker.Results()
	fmt.Fprintf(os.Stderr, "Report written to %s (%d environments seen, %d records exported)\n",
		reportPath, results.EnvironmentsSeen, results.RecordsExported)

	if opts.saveMetadata {
		metadata := tracker.Generate(version.Version, summary.RunParams{
			Organization: opts.organization,
			Project:      project.Name,
			PageSize:     cfg.Defaults.PageSize,
		})
		if err := summary.Save(metadata, reportDir); err != nil {
			fmt.Fprintf(os.Stderr, "⚠️  Failed to save run metadata: %v\n", err)
		}
	}

	return nil
}

// getToken returns the token from the flag or the configured environment variable
func getToken(flagToken, tokenEnv string) string {
	if flagToken != "" {
		return flagToken
	}
	return os.Getenv(tokenEnv)
}

// resolveReportDir returns the configured reports directory, defaulting to
// a reports directory next to the executable.
func resolveReportDir(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), "reports"), nil
}

// resolveReportFilename validates the user-supplied filename or generates
// the default timestamped one. Only bare names are accepted; the report
// always lands in the reports directory.
func resolveReportFilename(name string, now time.Time) (string, error) {
	if name == "" {
		return fmt.Sprintf("AzureDevOpsEnvironments_%s.csv", now.Format("20060102_150405")), nil
	}

	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("output file %q must be a bare filename: %w", name, reporterrors.ErrInvalidFilename)
	}

	if !strings.HasSuffix(strings.ToLower(name), ".csv") {
		name += ".csv"
	}
	return name, nil
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, reporterrors.ErrInvalidToken) ||
		errors.Is(err, reporterrors.ErrProjectNotFound) ||
		errors.Is(err, reporterrors.ErrRateLimit) {
		return 2 // Authentication/authorization errors
	}

	if errors.Is(err, reporterrors.ErrNetworkFailure) {
		return 3 // Network errors
	}

	return 1 // General error
}
