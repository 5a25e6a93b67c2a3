package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cmmoran/langgen/pkg/action/generate"
)

func init() {
	rootCmd.AddCommand(NewAliasesCommand())
}

func NewAliasesCommand() *cobra.Command {
	// aliasesCmd represents the langgen aliases command
	var aliasesCmd = &cobra.Command{
		Use:   "aliases <document>",
		Short: "print go type aliases for document symbols",
		Long:  "Build a go file declaring an exported type alias for every symbol of a go document and write it to stdout. The file is laid out by jennifer, so imports use jennifer's aliasing.",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := loadOptions(nil)
			if err != nil {
				return err
			}
			f, err := generate.Aliases(args[0], opts)
			if err != nil {
				return err
			}
			_, err = c.OutOrStdout().Write(f.Content)
			return err
		},
	}
	return aliasesCmd
}
