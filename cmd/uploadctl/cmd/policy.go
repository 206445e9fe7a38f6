package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	miscService "github.com/SpecCon-Team/asset-app-sub001/internal/misc/service"
	"github.com/SpecCon-Team/asset-app-sub001/internal/upload/policy"
	"github.com/SpecCon-Team/asset-app-sub001/pkg/format"
)

// PolicyOptions holds command options
type PolicyOptions struct {
	OutputFormat string
}

// NewPolicyCommand creates the policy command
func NewPolicyCommand() *cobra.Command {
	opts := &PolicyOptions{}

	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Print the upload policy table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPolicy(cmd.OutOrStdout(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.OutputFormat, "output", "text", "Output format (text, json or yaml)")
	cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runPolicy(out io.Writer, opts *PolicyOptions) error {
	info := miscService.New(policy.Default()).GetPolicy()

	switch opts.OutputFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(info)
	case "text":
	default:
		return fmt.Errorf("invalid output format %q, must be text, json or yaml", opts.OutputFormat)
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CONTENT TYPE\tEXTENSIONS\tMAX SIZE\tARCHIVE")
	for _, e := range info.Entries {
		archive := ""
		if e.Container {
			archive = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ContentType, strings.Join(e.AllowedExtensions, ","),
			format.FormatBytes(e.MaxSizeBytes), archive)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nBlocked extensions: %s\n", strings.Join(info.DangerousExtensions, " "))
	fmt.Fprintf(out, "Request limit: %s, at most %d files\n",
		format.FormatBytes(info.MaxRequestBytes), info.MaxFilesPerRequest)
	return nil
}
