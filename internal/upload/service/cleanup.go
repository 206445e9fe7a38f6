package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/SpecCon-Team/asset-app-sub001/internal/common/errors"
	model "github.com/SpecCon-Team/asset-app-sub001/pkg/upload"
)

// CleanupOldFiles removes stored files last modified more than maxAge ago.
// A non-positive maxAge falls back to DefaultMaxAge. Per-file failures are
// logged and reported in the result without stopping the sweep.
func (s *UploadService) CleanupOldFiles(ctx context.Context, maxAge time.Duration) (*model.CleanupResult, error) {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	cutoff := s.now().Add(-maxAge)

	ctx, span := s.tracer.Start(ctx, "upload.CleanupOldFiles",
		trace.WithAttributes(attribute.String("cleanup.max_age", maxAge.String())))
	defer span.End()

	s.log.Debug("Sweeping files older than %s from %s", cutoff.Format(time.RFC3339), s.store.Location())

	// Sweep may stop part way and still report what it removed. Those files
	// are gone, so their registry rows go too before the error is returned.
	swept, failures, sweepErr := s.store.Sweep(ctx, cutoff)

	for _, f := range swept {
		s.log.Info("Cleaned up old file: %s", f.Name)
		if err := s.registry.Delete(context.WithoutCancel(ctx), f.Name); err != nil {
			failures = append(failures, f.Name+": "+err.Error())
		}
	}
	for _, msg := range failures {
		s.log.Warn("Cleanup error: %s", msg)
	}
	s.metrics.Swept(len(swept), len(failures))

	if sweepErr != nil {
		s.log.Error("Cleanup error after removing %d file(s): %v", len(swept), sweepErr)
		return nil, s.fail(span, apperrors.Wrap(sweepErr, apperrors.KindIO, apperrors.CodeInternal, "Cleanup failed"))
	}

	if swept == nil {
		swept = []model.SweptFile{}
	}
	if failures == nil {
		failures = []string{}
	}
	span.SetAttributes(attribute.Int("cleanup.deleted", len(swept)), attribute.Int("cleanup.errors", len(failures)))

	return &model.CleanupResult{
		Success: len(failures) == 0,
		MaxAge:  maxAge.String(),
		Deleted: swept,
		Errors:  failures,
	}, nil
}
