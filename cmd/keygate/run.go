package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/keygate-dev/keygate/internal/application/dto"
	"github.com/keygate-dev/keygate/internal/application/ports"
	"github.com/keygate-dev/keygate/internal/application/services"
	"github.com/keygate-dev/keygate/internal/config"
	"github.com/keygate-dev/keygate/internal/infrastructure/approvals"
	"github.com/keygate-dev/keygate/internal/infrastructure/authapply"
	"github.com/keygate-dev/keygate/internal/infrastructure/output"
	"github.com/keygate-dev/keygate/internal/infrastructure/redaction"
	"github.com/keygate-dev/keygate/internal/infrastructure/secrets"
	"github.com/keygate-dev/keygate/internal/infrastructure/sensitivedata"
	"github.com/keygate-dev/keygate/internal/infrastructure/system"
	"github.com/keygate-dev/keygate/internal/infrastructure/template"
	"github.com/keygate-dev/keygate/internal/infrastructure/transport"
	"github.com/keygate-dev/keygate/internal/infrastructure/urlfilter"
)

var (
	format      string
	outFile     string
	concurrency int
	ask         bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <document.yaml>",
	Short: "Execute the requests defined in a document",
	Long: `Load a request document, resolve secret templates, apply dynamic
authorization, gate every URL through the global filter, dispatch the
requests, and print redacted results.

Secret values never appear in the output: responses, errors, and logs
are scrubbed before they are written.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&format, "format", "table", "Output format: table, json, yaml")
	runCmd.Flags().StringVarP(&outFile, "output", "o", "", "Output file path (default: stdout)")
	runCmd.Flags().IntVar(&concurrency, "concurrency", 1, "Number of requests to run in parallel")
	runCmd.Flags().BoolVar(&ask, "ask", false, "Prompt before refusing filter-denied URLs")
}

// runAction implements the core logic for the run command
func runAction(cmd *cobra.Command, documentPath string) error {
	sysConfig, err := system.NewConfigLoader().Load(configPath())
	if err != nil {
		return fmt.Errorf("failed to load system config: %w", err)
	}

	store := secrets.NewStore(sysConfig)

	redactor, err := redaction.New(redaction.Config{
		Values:          store.Values(),
		Patterns:        sysConfig.Redaction.Patterns,
		DisableGitleaks: sysConfig.Redaction.DisableGitleaks,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize redactor: %w", err)
	}

	// From here on every log line goes through the redactor too.
	installRedactingLogger(redactor)

	doc, err := config.LoadDocument(documentPath)
	if err != nil {
		return sensitivedata.SafeError(err, store.Values())
	}

	slog.Info("document loaded",
		"name", doc.Metadata.Name,
		"version", doc.Metadata.Version,
		"requests", len(doc.Requests))

	filter, err := urlfilter.New(sysConfig.Filter)
	if err != nil {
		return fmt.Errorf("failed to initialize URL filter: %w", err)
	}

	var approver ports.Approver
	if ask {
		var fileStore *approvals.FileStore
		if sysConfig.Approvals.Path != "" {
			fileStore = approvals.NewFileStore(sysConfig.Approvals.Path)
		}
		approver = approvals.NewManager(fileStore, approvals.NewTerminalPrompter(), slog.Default())
	}

	pipeline := services.NewPipeline(
		template.NewSubstitutor(store),
		authapply.NewApplicator(),
		filter,
		transport.NewClient(sysConfig.HTTP),
		redactor,
		approver,
		slog.Default(),
	)

	executor := services.NewExecutor(pipeline, slog.Default())

	outcomes := executor.ExecuteAll(cmd.Context(), doc.Requests, dto.ExecutionOptions{
		Concurrency: concurrency,
		Interactive: ask,
	})

	failed := 0
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed++
		}
	}

	// Determine output writer
	writer := os.Stdout
	if outFile != "" {
		//nolint:gosec // G304: User-controlled output file path is intentional
		file, err := os.Create(outFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			_ = file.Close() // Best-effort cleanup
		}()
		writer = file
		slog.Info("writing output", "file", outFile, "format", format)
	}

	// Results are already redacted; the scrubbing writer catches
	// anything a formatter might add on top.
	scrubbed := sensitivedata.NewWriter(writer, func(s string) string {
		return redactor.Redact(s, nil)
	})

	formatter, err := output.NewFormatter(format, scrubbed)
	if err != nil {
		return err
	}

	if err := formatter.Format(outcomes); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if failed > 0 {
		return fmt.Errorf("run finished: %d/%d requests failed", failed, len(outcomes))
	}

	return nil
}

// installRedactingLogger replaces the default logger with one whose
// output is scrubbed of secret material.
func installRedactingLogger(redactor *redaction.Redactor) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	scrubbed := sensitivedata.NewWriter(os.Stderr, func(s string) string {
		return redactor.Redact(s, nil)
	})

	logger := slog.New(slog.NewTextHandler(scrubbed, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
