package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/keygate-dev/keygate/internal/infrastructure/system"
)

var (
	initOutput         string
	initNoInteractive  bool
	initAllowPatterns  []string
	initEnableApproval bool
)

// initCmd scaffolds a system config file.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a keygate config file",
	Long: `Create a starter system config. Interactively asks for the URL
allowlist and approval persistence; flags skip the prompts.

Secrets are added to the generated file by hand afterwards - init never
asks for secret values.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runInit(cmd)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&initOutput, "output", "o", "", "where to write the config (default: $HOME/.keygate/config.yaml)")
	initCmd.Flags().BoolVar(&initNoInteractive, "no-interactive", false, "skip prompts and write a default config")
	initCmd.Flags().StringSliceVar(&initAllowPatterns, "allow", nil, "URL allowlist patterns (comma-separated)")
	initCmd.Flags().BoolVar(&initEnableApproval, "approvals", false, "persist interactive 'always' approvals")
}

func runInit(cmd *cobra.Command) error {
	outputPath := initOutput
	if outputPath == "" {
		outputPath = filepath.Join(defaultConfigDir(), "config.yaml")
	}

	if _, err := os.Stat(outputPath); err == nil {
		overwrite := false
		if !initNoInteractive {
			if err := huh.NewConfirm().
				Title(fmt.Sprintf("%s already exists. Overwrite?", outputPath)).
				Value(&overwrite).
				Run(); err != nil {
				return err
			}
		}
		if !overwrite {
			return fmt.Errorf("refusing to overwrite %s", outputPath)
		}
	}

	if !initNoInteractive {
		if len(initAllowPatterns) == 0 {
			var raw string
			if err := huh.NewInput().
				Title("URL allowlist patterns (comma-separated, empty allows everything)").
				Placeholder("https://api.example.com/*").
				Value(&raw).
				Run(); err != nil {
				return err
			}
			for _, p := range strings.Split(raw, ",") {
				if p = strings.TrimSpace(p); p != "" {
					initAllowPatterns = append(initAllowPatterns, p)
				}
			}
		}

		if !cmd.Flags().Changed("approvals") {
			if err := huh.NewConfirm().
				Title("Persist interactive 'always' approvals?").
				Value(&initEnableApproval).
				Run(); err != nil {
				return err
			}
		}
	}

	cfg := system.DefaultConfig()
	cfg.Filter.Allow = initAllowPatterns
	if initEnableApproval {
		cfg.Approvals.Path = filepath.Join(filepath.Dir(outputPath), "approved_urls.yaml")
	}

	data, err := yaml.MarshalWithOptions(cfg, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// 0600: the file will hold secret values once the user adds them.
	if err := os.WriteFile(outputPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	cmd.Printf("✓ config written to %s\n", outputPath)
	cmd.Println("Add secrets under the 'secrets:' and 'namespaces:' keys, then run 'keygate run <document.yaml>'.")
	return nil
}
