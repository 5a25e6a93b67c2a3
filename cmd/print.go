package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cmmoran/langgen/internal/document"
	"github.com/cmmoran/langgen/pkg/action/generate"
)

func init() {
	rootCmd.AddCommand(NewPrintCommand(), NewSchemaCommand())
}

func NewPrintCommand() *cobra.Command {
	// printCmd represents the langgen print command
	var printCmd = &cobra.Command{
		Use:   "print <document>",
		Short: "print a rendered document",
		Long:  "Render a single document and write it to stdout without touching the output directory or the manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := loadOptions(nil)
			if err != nil {
				return err
			}
			f, err := generate.Render(args[0], opts)
			if err != nil {
				return err
			}
			_, err = c.OutOrStdout().Write(f.Content)
			return err
		},
	}
	return printCmd
}

func NewSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "print the document JSON schema",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			_, err := c.OutOrStdout().Write(document.Schema())
			return err
		},
	}
}
