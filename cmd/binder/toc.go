package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/binder/internal/cli"
)

var tocCmd = &cobra.Command{
	Use:   "toc",
	Short: "Render only the TOC/cover document",
	Long: `Toc renders the table of contents and per-attachment cover pages to
PDF without touching attachment files. The intermediate HTML is kept
next to the PDF for debugging.

Page numbers printed in the TOC are estimates from the catalog's
declared page counts; the merge stage corrects navigation against
actual positions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		summary, err := p.RenderTOC(cmd.Context())
		if err != nil {
			return err
		}
		return cli.Output(summary)
	},
}

func init() {
	rootCmd.AddCommand(tocCmd)
}
