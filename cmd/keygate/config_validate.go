package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keygate-dev/keygate/internal/config"
	"github.com/keygate-dev/keygate/internal/infrastructure/redaction"
	"github.com/keygate-dev/keygate/internal/infrastructure/system"
	"github.com/keygate-dev/keygate/internal/infrastructure/urlfilter"
)

// configCmd groups configuration commands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Work with keygate configuration",
}

// configValidateCmd checks the system config and, when given, a
// request document, without dispatching anything.
var configValidateCmd = &cobra.Command{
	Use:   "validate [document.yaml]",
	Short: "Validate the system config and optionally a request document",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		documentPath := ""
		if len(args) == 1 {
			documentPath = args[0]
		}
		return runConfigValidate(cmd, documentPath)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configValidateCmd)
}

func runConfigValidate(cmd *cobra.Command, documentPath string) error {
	path := configPath()

	sysConfig, err := system.NewConfigLoader().Load(path)
	if err != nil {
		return fmt.Errorf("system config %s: %w", path, err)
	}

	// Compile everything the config drives so bad patterns and rules
	// surface here instead of mid-run.
	if _, err := urlfilter.New(sysConfig.Filter); err != nil {
		return fmt.Errorf("system config %s: %w", path, err)
	}

	if _, err := redaction.New(redaction.Config{
		Patterns:        sysConfig.Redaction.Patterns,
		DisableGitleaks: sysConfig.Redaction.DisableGitleaks,
	}); err != nil {
		return fmt.Errorf("system config %s: %w", path, err)
	}

	cmd.Printf("✓ system config %s is valid\n", path)

	if documentPath != "" {
		doc, err := config.LoadDocument(documentPath)
		if err != nil {
			return fmt.Errorf("document %s: %w", documentPath, err)
		}
		cmd.Printf("✓ document %s is valid (%d requests)\n", documentPath, len(doc.Requests))
	}

	return nil
}
