package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/binder/internal/cli"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify navigation in the assembled document",
	Long: `Check re-derives anchor positions from the assembled document's page
text and verifies every internal link against them, without modifying
the file. A non-zero exit means stale links, unresolvable targets or
missing cover pages were found; run "binder merge" to repair.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		report, err := p.Check()
		if err != nil {
			return err
		}
		if err := cli.Output(report); err != nil {
			return err
		}
		if !report.OK() {
			return fmt.Errorf("document needs repair: %d stale links, %d unresolved, %d missing covers",
				report.Stale, len(report.Unresolved), len(report.MissingCovers))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
