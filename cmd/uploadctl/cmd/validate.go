package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"

	apperrors "github.com/SpecCon-Team/asset-app-sub001/internal/common/errors"
	"github.com/SpecCon-Team/asset-app-sub001/internal/upload/policy"
	"github.com/SpecCon-Team/asset-app-sub001/internal/upload/validator"
	model "github.com/SpecCon-Team/asset-app-sub001/pkg/upload"
)

// ValidateOptions holds command options
type ValidateOptions struct {
	ContentType  string
	OutputFormat string
}

// ValidateReport is the outcome of an offline check
type ValidateReport struct {
	File         string                 `json:"file"`
	ContentType  string                 `json:"contentType"`
	DetectedType string                 `json:"detectedType"`
	SizeBytes    int64                  `json:"sizeBytes"`
	Validation   model.ValidationResult `json:"validation"`
	Scan         *model.ScanResult      `json:"scan,omitempty"`
}

// Accepted reports whether the file would be stored
func (r *ValidateReport) Accepted() bool {
	return r.Validation.Accepted && r.Scan != nil && r.Scan.Clean
}

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a local file against the upload policy and scanner",
		Long: "Run the same policy checks and content scan the gateway applies. " +
			"Without --type the declared content type is guessed from the file content.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := validateFile(args[0], opts.ContentType)
			if err != nil {
				return err
			}
			if err := printReport(cmd.OutOrStdout(), report, opts.OutputFormat); err != nil {
				return err
			}
			if !report.Accepted() {
				return fmt.Errorf("%s would be rejected", filepath.Base(args[0]))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.ContentType, "type", "t", "", "Declared content type")
	flags.StringVar(&opts.OutputFormat, "output", "text", "Output format (json or text)")

	return cmd
}

func validateFile(path, contentType string) (*ValidateReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %v", path, err)
	}

	detected := mimetype.Detect(data)
	if contentType == "" {
		contentType = policy.NormalizeContentType(detected.String())
	}

	v := validator.New(policy.Default())
	c := &model.UploadCandidate{
		OriginalName:        filepath.Base(path),
		DeclaredContentType: contentType,
		SizeBytes:           int64(len(data)),
		Payload:             data,
	}

	report := &ValidateReport{
		File:         c.OriginalName,
		ContentType:  contentType,
		DetectedType: detected.String(),
		SizeBytes:    c.SizeBytes,
		Validation:   v.ValidateFile(c),
	}
	if report.Validation.Accepted {
		scan := model.ScanResult{Clean: true}
		if err := v.Scan(contentType, data); err != nil {
			scan = model.ScanResult{Clean: false, Threat: apperrors.As(err).Message}
		}
		report.Scan = &scan
	}
	return report, nil
}

func printReport(out io.Writer, r *ValidateReport, outputFormat string) error {
	if outputFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	fmt.Fprintf(out, "File:          %s (%d bytes)\n", r.File, r.SizeBytes)
	fmt.Fprintf(out, "Content type:  %s (detected %s)\n", r.ContentType, r.DetectedType)
	switch {
	case !r.Validation.Accepted:
		fmt.Fprintf(out, "Result:        REJECTED [%s] %s\n", r.Validation.Code, r.Validation.Reason)
	case !r.Scan.Clean:
		fmt.Fprintf(out, "Result:        REJECTED [%s] %s\n", apperrors.CodeMalwareDetected, r.Scan.Threat)
	default:
		fmt.Fprintln(out, "Result:        ACCEPTED")
	}
	return nil
}
