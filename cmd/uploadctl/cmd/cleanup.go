package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/SpecCon-Team/asset-app-sub001/config"
	"github.com/SpecCon-Team/asset-app-sub001/internal/metrics"
	"github.com/SpecCon-Team/asset-app-sub001/internal/registry"
	"github.com/SpecCon-Team/asset-app-sub001/internal/storage"
	"github.com/SpecCon-Team/asset-app-sub001/internal/upload/service"
	"github.com/SpecCon-Team/asset-app-sub001/pkg/logger"
	model "github.com/SpecCon-Team/asset-app-sub001/pkg/upload"
)

// CleanupOptions holds command options
type CleanupOptions struct {
	Dir          string
	RegistryPath string
	MaxAge       time.Duration
	OutputFormat string
}

// NewCleanupCommand creates the cleanup command
func NewCleanupCommand() *cobra.Command {
	opts := &CleanupOptions{}

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete stored uploads older than --max-age",
		Long:  "Sweep the upload directory once, removing files and their registry records. Defaults come from the gateway configuration.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runCleanup(ctx, cmd.OutOrStdout(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Dir, "dir", "", "Sweep this local upload directory instead of the configured storage backend")
	flags.StringVar(&opts.RegistryPath, "db", "", "Registry database (default from UPLOAD_DB_PATH or config)")
	flags.DurationVar(&opts.MaxAge, "max-age", service.DefaultMaxAge, "Delete files last modified before now minus this age")
	flags.StringVar(&opts.OutputFormat, "output", "text", "Output format (json or text)")

	return cmd
}

func runCleanup(ctx context.Context, out io.Writer, opts *CleanupOptions) error {
	log := logger.New()

	// An explicit --dir sweeps that local directory. Otherwise the sweep
	// targets the same backend the gateway writes to.
	localDir := opts.Dir != ""

	if opts.Dir == "" || opts.RegistryPath == "" {
		cfg := config.NewUploadConfig()
		if err := cfg.Initialize(log); err != nil {
			return err
		}
		if opts.Dir == "" {
			opts.Dir = cfg.Dir
		}
		if opts.RegistryPath == "" {
			opts.RegistryPath = cfg.RegistryPath
		}
	}

	var store storage.Store
	var err error
	if localDir {
		store, err = storage.NewDiskStore(opts.Dir)
	} else {
		storageCfg := config.NewStorageConfig()
		if err := storageCfg.Initialize(log); err != nil {
			return err
		}
		store, err = storageCfg.NewStore(opts.Dir)
	}
	if err != nil {
		return err
	}
	log.Debug("Sweeping %s", store.Location())

	reg, err := registry.Open(opts.RegistryPath)
	if err != nil {
		return err
	}
	defer reg.Close()

	svc, err := service.New(service.Options{
		Store:    store,
		Registry: reg,
		Metrics:  metrics.New(prometheus.NewRegistry()),
		Logger:   log,
	})
	if err != nil {
		return err
	}

	result, err := svc.CleanupOldFiles(ctx, opts.MaxAge)
	if err != nil {
		return err
	}
	return printCleanup(out, result, opts.OutputFormat)
}

func printCleanup(out io.Writer, result *model.CleanupResult, outputFormat string) error {
	if outputFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if len(result.Deleted) == 0 {
		fmt.Fprintf(out, "No files older than %s\n", result.MaxAge)
	}
	for _, f := range result.Deleted {
		fmt.Fprintf(out, "Deleted %s (%d bytes, modified %s)\n", f.Name, f.Size, f.ModTime.Format(time.RFC3339))
	}
	for _, e := range result.Errors {
		fmt.Fprintf(out, "Error: %s\n", e)
	}
	if !result.Success {
		return fmt.Errorf("cleanup finished with %d error(s)", len(result.Errors))
	}
	return nil
}
