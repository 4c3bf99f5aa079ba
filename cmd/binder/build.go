package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/binder/internal/cli"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run the full pipeline: render TOC, merge, reconcile",
	Long: `Build runs every stage in order.

The spreadsheet catalog drives the run: a TOC/cover document is rendered
from it, each attachment is spliced behind its cover page, and finally
links and bookmarks are rewritten against the assembled document. The
output is written atomically; a failed run leaves any previous output
untouched.

Examples:
  binder build                   # Use ./config.yaml or ~/.binder/config.yaml
  binder build --config my.yaml  # Explicit config
  binder build -o json           # JSON run summary`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		summary, err := p.Run(cmd.Context())
		if err != nil {
			return err
		}
		return cli.Output(summary)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
