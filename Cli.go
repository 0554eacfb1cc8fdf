package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/reaandrew/boostfindings/fetchers"
	"github.com/reaandrew/boostfindings/reporters"
	"github.com/reaandrew/boostfindings/secrets"
	"github.com/reaandrew/boostfindings/utils"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Cli represents the command-line interface
type Cli struct {
	reportFormat     string
	baseUrl          string
	endpoint         string
	pageSize         int
	locateFindingId  string
	queriesPath      string
	artifactPrefix   string
	outputDir        string
	ssmParameter     string
	useKeyring       bool
	strictPagination bool
	timeout          time.Duration
	logLevel         string
	noProgress       bool
}

// Execute sets up and runs the root command
func (cli *Cli) Execute() error {
	return cli.rootCommand().Execute()
}

func (cli *Cli) rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "boostfindings",
		Short:         "Export BoostSecurity findings to spreadsheets and BI tools.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cli.logLevel != "" {
				setLogLevel(cli.logLevel)
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&cli.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(cli.createExportCommand())
	rootCmd.AddCommand(cli.createKeyCommand())
	return rootCmd
}

// createExportCommand creates the 'export' command with its flags
func (cli *Cli) createExportCommand() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Fetch every finding and write it out in the chosen report format.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.runExport(cmd.Context())
		},
	}

	flags := exportCmd.Flags()
	flags.StringVar(&cli.reportFormat, "report", "xlsx", fmt.Sprintf("Report format (supported: %s)", strings.Join(reporters.SupportedFormats, ", ")))
	flags.StringVar(&cli.baseUrl, "baseurl", "", "Http report base url")
	flags.StringVar(&cli.endpoint, "endpoint", "", fmt.Sprintf("Findings GraphQL endpoint (default $%s or %s)", EndpointEnvVar, fetchers.DefaultEndpoint))
	flags.IntVar(&cli.pageSize, "page-size", fetchers.DefaultPageSize, "Findings requested per page")
	flags.StringVar(&cli.locateFindingId, "locate-finding-id", "", "Pass locateFindingId to the findings query")
	flags.StringVar(&cli.queriesPath, "queries", "", "YAML file of summary SQL queries (default: built-in queries)")
	flags.StringVar(&cli.artifactPrefix, "prefix", "boost", "Prefix for generated report files")
	flags.StringVar(&cli.outputDir, "output-dir", ".", "Directory for generated report files")
	flags.StringVar(&cli.ssmParameter, "ssm-parameter", "", fmt.Sprintf("SSM parameter holding the API key (default $%s)", secrets.SsmParameterEnvVar))
	flags.BoolVar(&cli.useKeyring, "use-keyring", false, "Fall back to the API key stored with 'key set'")
	flags.BoolVar(&cli.strictPagination, "strict-pagination", false, "Fail instead of stopping when the end cursor does not advance")
	flags.DurationVar(&cli.timeout, "timeout", DefaultTimeout, "Timeout for each findings request")
	flags.BoolVar(&cli.noProgress, "no-progress", false, "Hide the progress bar")

	return exportCmd
}

func (cli *Cli) runExport(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	queries, err := utils.LoadQueries(cli.queriesPath)
	if err != nil {
		return err
	}

	reporter, err := reporters.CreateReporter(cli.reportFormat, reporters.ReporterOptions{
		Queries:        queries,
		ArtifactPrefix: cli.artifactPrefix,
		OutputDir:      cli.outputDir,
		BaseUrl:        cli.baseUrl,
	})
	if err != nil {
		return err
	}

	var progress utils.ProgressReporter = utils.NoopProgressReporter{}
	if !cli.noProgress {
		progress = utils.NewBarProgressReporter(-1, "Fetching findings")
	}

	table, err := FetchFindings(ctx, FetchOptions{
		Endpoint:         cli.endpoint,
		PageSize:         cli.pageSize,
		LocateFindingId:  cli.locateFindingId,
		StrictPagination: cli.strictPagination,
		Timeout:          cli.timeout,
		SsmParameter:     cli.ssmParameter,
		UseKeyring:       cli.useKeyring,
		Progress:         progress,
	})
	if err != nil {
		return err
	}

	if err := reporter.Report(table); err != nil {
		return fmt.Errorf("failed to generate %s report: %w", cli.reportFormat, err)
	}
	if artifacts := outputArtifacts(cli.reportFormat, cli.outputDir); artifacts > 0 {
		log.Infof("Output directory holds %d report artifact(s)", artifacts)
	}
	fmt.Printf("Exported %d findings as %s\n", table.Len(), cli.reportFormat)
	return nil
}

// outputArtifacts counts the files in the output directory after a file based
// report has been written. The http reporter writes nothing locally.
func outputArtifacts(reportFormat, outputDir string) int {
	if reportFormat == "http" {
		return 0
	}
	if outputDir == "" {
		outputDir = "."
	}
	count, err := utils.CountFiles(outputDir)
	if err != nil {
		log.Warnf("Could not count report artifacts in '%s': %v", outputDir, err)
		return 0
	}
	return count
}

func (cli *Cli) createKeyCommand() *cobra.Command {
	keyCmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the API key stored in the OS keychain.",
	}

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Read an API key from stdin and store it in the OS keychain.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			apiKey, err := readApiKey(cmd.InOrStdin())
			if err != nil {
				return err
			}
			ring, err := secrets.OpenRing()
			if err != nil {
				return err
			}
			if err := secrets.StoreApiKey(ring, apiKey); err != nil {
				return err
			}
			log.Infof("Stored API key %s in the OS keychain", utils.MaskApiKey(apiKey))
			fmt.Fprintln(cmd.OutOrStdout(), "API key stored.")
			return nil
		},
	}

	keyCmd.AddCommand(setCmd)
	return keyCmd
}

func readApiKey(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}
	apiKey := strings.TrimSpace(line)
	if apiKey == "" {
		return "", fmt.Errorf("no API key given on stdin")
	}
	return apiKey, nil
}
