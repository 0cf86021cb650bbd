package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

const (
	versionCommandUseConstant              = "version"
	versionCommandShortDescriptionConstant = "Print the gamm version"
	versionOutputTemplateConstant          = "gamm %s\n"
)

// VersionCommandBuilder assembles the version command.
type VersionCommandBuilder struct {
	Output io.Writer
}

// Build constructs the version command.
func (builder *VersionCommandBuilder) Build() *cobra.Command {
	return &cobra.Command{
		Use:   versionCommandUseConstant,
		Short: versionCommandShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			output := builder.Output
			if output == nil {
				output = os.Stdout
			}
			_, writeError := fmt.Fprintf(output, versionOutputTemplateConstant, Version)
			return writeError
		},
	}
}
