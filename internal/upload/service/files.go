package service

import (
	"context"
	"errors"
	"io"

	apperrors "github.com/SpecCon-Team/asset-app-sub001/internal/common/errors"
	"github.com/SpecCon-Team/asset-app-sub001/internal/registry"
	"github.com/SpecCon-Team/asset-app-sub001/internal/storage"
	"github.com/SpecCon-Team/asset-app-sub001/internal/upload/sanitize"
	model "github.com/SpecCon-Team/asset-app-sub001/pkg/upload"
)

// List returns all stored files, newest first
func (s *UploadService) List(ctx context.Context) ([]model.StoredFile, error) {
	files, err := s.registry.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindIO, apperrors.CodeInternal, "Failed to list files")
	}
	if files == nil {
		files = []model.StoredFile{}
	}
	return files, nil
}

// Get returns metadata for a stored file
func (s *UploadService) Get(ctx context.Context, name string) (*model.StoredFile, error) {
	if !sanitize.Pattern.MatchString(name) {
		return nil, apperrors.ErrInvalidName
	}
	f, err := s.registry.Get(ctx, name)
	if errors.Is(err, registry.ErrNotFound) {
		return nil, apperrors.ErrFileNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindIO, apperrors.CodeInternal, "Failed to read file metadata")
	}
	return f, nil
}

// Open returns metadata and content for a stored file. The caller closes the reader.
func (s *UploadService) Open(ctx context.Context, name string) (*model.StoredFile, io.ReadCloser, error) {
	f, err := s.Get(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.store.Open(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil, apperrors.ErrFileNotFound
	}
	if err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.KindIO, apperrors.CodeInternal, "Failed to open file")
	}
	return f, rc, nil
}

// Delete removes a stored file and its registry record
func (s *UploadService) Delete(ctx context.Context, name string) error {
	if !sanitize.Pattern.MatchString(name) {
		return apperrors.ErrInvalidName
	}

	_, getErr := s.registry.Get(ctx, name)
	rmErr := s.store.Remove(ctx, name)
	switch {
	case errors.Is(rmErr, storage.ErrNotFound) && errors.Is(getErr, registry.ErrNotFound):
		return apperrors.ErrFileNotFound
	case rmErr != nil && !errors.Is(rmErr, storage.ErrNotFound):
		return apperrors.Wrap(rmErr, apperrors.KindIO, apperrors.CodeInternal, "Failed to delete file")
	}

	if err := s.registry.Delete(ctx, name); err != nil {
		return apperrors.Wrap(err, apperrors.KindIO, apperrors.CodeInternal, "Failed to delete file record")
	}
	s.log.Info("Deleted stored file: %s", name)
	return nil
}
