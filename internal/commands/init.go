package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/siereport/internal/config"
)

func newInitCommand(a *app) *cobra.Command {
	var currency string
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default " + config.FileName,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			path, err := runInit(absDir, currency, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized siereport config at %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "", "fallback currency when a document names none")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")

	return cmd
}

func runInit(dir, currency string, force bool) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := config.Default()
	if currency != "" {
		cfg.Currency = currency
	}
	if err := config.Save(path, cfg); err != nil {
		return "", err
	}

	// .env.example documents the environment overrides.
	env := fmt.Sprintf("# %s=%s\n# %s=info\n", EnvConfig, path, EnvLogLevel)
	if err := os.WriteFile(filepath.Join(dir, ".env.example"), []byte(env), 0o644); err != nil {
		return "", fmt.Errorf("writing .env.example: %w", err)
	}
	return path, nil
}
