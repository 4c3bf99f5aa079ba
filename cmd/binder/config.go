package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/binder/internal/config"
	"github.com/jackzampolin/binder/internal/home"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration commands",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Long: `Init writes a commented default configuration to the binder home
directory (~/.binder/config.yaml unless --home is set). Existing files
are not overwritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := home.New(homeDir, nil)
		if err != nil {
			return err
		}

		path := h.ConfigPath()
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create home directory: %w", err)
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}

		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
