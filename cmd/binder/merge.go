package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/binder/internal/cli"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge attachments behind a previously rendered TOC",
	Long: `Merge assembles the final document from an existing TOC/cover PDF
(produced by "binder toc"), then resolves actual page positions and
rewrites links and bookmarks to match.

Use this to iterate on attachment files without re-rendering the TOC.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		summary, err := p.Merge(cmd.Context())
		if err != nil {
			return err
		}
		return cli.Output(summary)
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}
