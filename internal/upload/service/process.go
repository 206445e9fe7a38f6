package service

import (
	"context"
	"encoding/hex"
	"errors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/minio/blake2b-simd"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/SpecCon-Team/asset-app-sub001/internal/common/errors"
	"github.com/SpecCon-Team/asset-app-sub001/internal/storage"
	model "github.com/SpecCon-Team/asset-app-sub001/pkg/upload"
)

// nameAttempts bounds retries when a generated name is already taken
const nameAttempts = 3

// ProcessUpload runs a single candidate through the pipeline. Policy and scan
// rejections are returned as errors. Storage failures produce an unsuccessful
// result carrying the generic processing message, alongside the error.
func (s *UploadService) ProcessUpload(ctx context.Context, c *model.UploadCandidate, meta RequestMeta) (model.UploadResult, error) {
	files, err := s.ProcessBatch(ctx, []*model.UploadCandidate{c}, meta)
	if err != nil {
		if apperrors.HasKind(err, apperrors.KindIO) {
			return model.UploadResult{Success: false, Error: apperrors.ErrProcessingFailed.Message}, err
		}
		return model.UploadResult{}, err
	}

	return model.UploadResult{Success: true, Filename: files[0].SecureFilename, File: &files[0]}, nil
}

// ProcessBatch validates and scans every candidate before writing any of
// them. If a write fails part way, files already written for the batch are
// removed again so a request is stored completely or not at all.
func (s *UploadService) ProcessBatch(ctx context.Context, candidates []*model.UploadCandidate, meta RequestMeta) ([]model.StoredFile, error) {
	ctx, span := s.tracer.Start(ctx, "upload.ProcessBatch",
		trace.WithAttributes(attribute.Int("upload.files", len(candidates))))
	defer span.End()

	if len(candidates) == 0 {
		return nil, s.fail(span, s.reject(apperrors.ErrNoFiles, meta, "", "", -1))
	}
	if len(candidates) > s.maxFiles {
		err := apperrors.Newf(apperrors.KindRequest, apperrors.CodeTooManyFiles,
			"Too many files. Maximum is %d per request", s.maxFiles)
		return nil, s.fail(span, s.reject(err, meta, "", "", -1))
	}

	for _, c := range candidates {
		if err := s.validator.Check(c); err != nil {
			return nil, s.fail(span, s.reject(err, meta, c.OriginalName, c.DeclaredContentType, c.SizeBytes))
		}
	}

	for _, c := range candidates {
		if err := s.validator.Scan(c.DeclaredContentType, c.Payload); err != nil {
			s.log.Audit(logrus.Fields{
				"filename":   c.OriginalName,
				"mimetype":   c.DeclaredContentType,
				"threat":     apperrors.As(err).Message,
				"ip":         meta.RemoteIP,
				"user_agent": meta.UserAgent,
			}).Warn("Malware detected in upload")
			return nil, s.fail(span, s.reject(err, meta, c.OriginalName, c.DeclaredContentType, c.SizeBytes))
		}
	}

	stored := make([]model.StoredFile, 0, len(candidates))
	for _, c := range candidates {
		f, err := s.persist(ctx, c, meta)
		if err != nil {
			s.rollback(ctx, stored)
			s.log.Error("Failed to store %s: %v", c.OriginalName, err)
			wrapped := apperrors.Wrap(err, apperrors.KindIO, apperrors.CodeProcessingFailed,
				apperrors.ErrProcessingFailed.Message)
			return nil, s.fail(span, s.reject(wrapped, meta, c.OriginalName, c.DeclaredContentType, c.SizeBytes))
		}
		stored = append(stored, *f)
	}

	for _, f := range stored {
		s.metrics.Accepted(f.SizeBytes)
	}
	span.SetStatus(codes.Ok, "")
	return stored, nil
}

// persist writes one validated candidate and records it in the registry
func (s *UploadService) persist(ctx context.Context, c *model.UploadCandidate, meta RequestMeta) (*model.StoredFile, error) {
	var (
		name string
		path string
		err  error
	)
	for i := 0; i < nameAttempts; i++ {
		name = s.names(c.OriginalName)
		path, err = s.store.Put(ctx, name, c.Payload)
		if !errors.Is(err, storage.ErrExists) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	sum := blake2b.Sum256(c.Payload)
	f := &model.StoredFile{
		SecureFilename: name,
		Path:           path,
		OriginalName:   c.OriginalName,
		SizeBytes:      c.SizeBytes,
		ContentType:    c.DeclaredContentType,
		DetectedType:   mimetype.Detect(c.Payload).String(),
		Checksum:       hex.EncodeToString(sum[:]),
		CreatedAt:      s.now().UTC(),
	}

	if err := s.registry.Insert(ctx, f); err != nil {
		if rmErr := s.store.Remove(ctx, name); rmErr != nil {
			s.log.Warn("Failed to remove %s after registry error: %v", name, rmErr)
		}
		return nil, err
	}

	s.log.Audit(logrus.Fields{
		"original_name": c.OriginalName,
		"secure_name":   name,
		"path":          path,
		"size":          c.SizeBytes,
		"mimetype":      c.DeclaredContentType,
		"detected_type": f.DetectedType,
		"ip":            meta.RemoteIP,
		"user_agent":    meta.UserAgent,
	}).Info("File uploaded successfully")

	return f, nil
}

// rollback removes files written earlier in a failed batch
func (s *UploadService) rollback(ctx context.Context, stored []model.StoredFile) {
	for _, f := range stored {
		if err := s.store.Remove(ctx, f.SecureFilename); err != nil && !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("Rollback failed to remove %s: %v", f.SecureFilename, err)
		}
		if err := s.registry.Delete(ctx, f.SecureFilename); err != nil {
			s.log.Warn("Rollback failed to unregister %s: %v", f.SecureFilename, err)
		}
	}
}

func (s *UploadService) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
