package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cmmoran/langgen/pkg/action/generate"
)

func init() {
	rootCmd.AddCommand(NewRenderCommand())
}

func NewRenderCommand() *cobra.Command {
	// renderCmd represents the langgen render command
	var renderCmd = &cobra.Command{
		Use:   "render [documents...]",
		Short: "render documents",
		Long:  "Render documents into source files below the output directory and record them in the manifest. Arguments may be glob patterns and are added to render.documents from the config file.",
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := loadOptions(args)
			if err != nil {
				return err
			}
			_, err = generate.Generate(opts, version)
			return err
		},
	}
	return renderCmd
}
