package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	miscService "github.com/SpecCon-Team/asset-app-sub001/internal/misc/service"
)

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := miscService.New(nil).GetVersion()
			if outputFormat == "json" {
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "uploadctl version %s, build %s (%s, %s/%s)\n",
				info.Version, info.GitCommit, info.GoVersion, info.OS, info.Arch)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputFormat, "output", "text", "Output format (json or text)")
	return cmd
}
