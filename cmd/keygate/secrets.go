package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keygate-dev/keygate/internal/infrastructure/secrets"
	"github.com/keygate-dev/keygate/internal/infrastructure/system"
)

// secretsCmd groups secret store inspection commands.
var secretsCmd = &cobra.Command{
	Use:   "secrets",
	Short: "Inspect the configured secret store",
}

// secretsListCmd prints which secrets exist and where they may be
// used. Values are never printed.
var secretsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured secret keys and their URL scopes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSecretsList(cmd)
	},
}

func init() {
	rootCmd.AddCommand(secretsCmd)
	secretsCmd.AddCommand(secretsListCmd)
}

func runSecretsList(cmd *cobra.Command) error {
	sysConfig, err := system.NewConfigLoader().Load(configPath())
	if err != nil {
		return fmt.Errorf("failed to load system config: %w", err)
	}

	store := secrets.NewStore(sysConfig)
	all := store.All()

	if len(all) == 0 {
		cmd.Println("No secrets configured.")
		return nil
	}

	for _, secret := range all {
		scope := "any URL"
		if secret.Restricted() {
			scope = strings.Join(secret.AllowedURLs, ", ")
		}

		namespace := secret.Namespace
		if namespace == "" {
			namespace = "(global)"
		}

		cmd.Printf("%-30s namespace=%-12s scope=%s\n", secret.TemplateKey, namespace, scope)
	}

	cmd.Printf("\n%d secrets configured\n", len(all))
	return nil
}
