package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmmoran/langgen/pkg/action/check"
)

func init() {
	rootCmd.AddCommand(NewCheckCommand())
}

func NewCheckCommand() *cobra.Command {
	// checkCmd represents the langgen check command
	var checkCmd = &cobra.Command{
		Use:   "check",
		Short: "check generated files",
		Long:  "Re-render every document recorded in the manifest and report generated files that differ from their documents",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := loadOptions(nil)
			if err != nil {
				return err
			}
			drifts, err := check.Run(opts)
			for _, d := range drifts {
				status := "modified"
				if d.Missing {
					status = "missing"
				}
				fmt.Fprintf(c.OutOrStdout(), "%s (%s, from %s)\n%s\n", d.Entry.File, status, d.Entry.Document, d.Diff)
			}
			return err
		},
	}
	return checkCmd
}
