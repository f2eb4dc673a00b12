package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/telekom/kube-bearer/pkg/kbearer/output"
	"github.com/telekom/kube-bearer/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show kbearer version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.GetBuildInfo()

			// runtime may be missing when the command is used standalone
			rt, _ := getRuntime(cmd)
			writer := cmd.OutOrStdout()
			formatName := ""
			if rt != nil {
				writer = rt.Writer()
				formatName = rt.outputFormat
			}

			format, err := output.ParseFormat(formatName)
			if err != nil {
				return err
			}
			if format == output.FormatText {
				_, err = fmt.Fprintln(writer, info.String())
				return err
			}
			return output.WriteObject(writer, format, info)
		},
	}
}
