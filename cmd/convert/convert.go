package convert

import (
	"github.com/spf13/cobra"

	"github.com/mirex-tools/jku2jams/internal/conf"
	"github.com/mirex-tools/jku2jams/internal/converter"
)

// Command creates the convert command, which runs the dataset conversion.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [dataset-dir] [output-dir]",
		Short: "Convert a JKU PDD ground truth tree into JAMS files",
		Long: `Convert walks the ground truth tree of the JKU Patterns Development
Dataset and writes one JAMS annotation file per piece into the output
directory.`,
		Args: cobra.ExactArgs(2), // dataset root and output directory
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := converter.New(settings).Run(cmd.Context(), args[0], args[1])
			return err
		},
	}

	setupFlags(cmd, settings)

	return cmd
}

// setupFlags configures flags specific to the convert command.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) {
	cmd.Flags().BoolVar(&settings.Output.Indent, "indent", settings.Output.Indent, "Pretty-print the JSON output")
}
