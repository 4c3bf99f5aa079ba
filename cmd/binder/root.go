package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/binder/internal/cli"
	"github.com/jackzampolin/binder/internal/config"
	"github.com/jackzampolin/binder/internal/home"
	"github.com/jackzampolin/binder/internal/pipeline"
	"github.com/jackzampolin/binder/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "binder",
	Short: "Assemble attachment PDFs into a single navigable document",
	Long: `Binder builds one navigable PDF from a spreadsheet catalog of
attachments: it renders a table of contents with a cover page per
attachment, splices each attachment behind its cover, then rewrites
every link and bookmark to point at the pages where content actually
landed.

The pipeline includes:
  - Spreadsheet catalog loading with header aliasing
  - TOC and cover page generation via WeasyPrint
  - Attachment splicing with live page-offset tracking
  - Post-assembly position resolution from page text
  - Link and outline reconciliation`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.binder/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "binder home directory (default: ~/.binder)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cli.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}

// newPipeline loads configuration and wires up a Pipeline for a command run.
func newPipeline() (*pipeline.Pipeline, error) {
	cm, err := config.NewManager(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg := cm.Get()

	h, err := home.New(homeDir, cfg)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.Log.Level),
	}))

	return pipeline.New(cfg, h, logger), nil
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
