package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the uploadctl command tree
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "uploadctl",
		Short:         "Operate the AssetTrack upload gateway",
		Long:          "Inspect the upload policy, check files offline and sweep stored uploads",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cobra.EnableCommandSorting = false
	root.AddCommand(NewPolicyCommand())
	root.AddCommand(NewValidateCommand())
	root.AddCommand(NewCleanupCommand())
	root.AddCommand(NewVersionCommand())
	return root
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}
