package service

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/sirupsen/logrus"

	apperrors "github.com/SpecCon-Team/asset-app-sub001/internal/common/errors"
	model "github.com/SpecCon-Team/asset-app-sub001/pkg/upload"
)

// ReadCandidates streams the multipart body and type-filters each file part
// before buffering it. A part is read at most one byte past its type's size
// limit. The first rejection aborts the whole request.
func (s *UploadService) ReadCandidates(ctx context.Context, mr *multipart.Reader, meta RequestMeta) ([]*model.UploadCandidate, error) {
	var candidates []*model.UploadCandidate

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, s.reject(readError(err), meta, "", "", -1)
		}

		name := part.FileName()
		if name == "" {
			// plain form fields carry no file
			part.Close()
			continue
		}
		contentType := part.Header.Get("Content-Type")

		if len(candidates) == s.maxFiles {
			part.Close()
			err := apperrors.Newf(apperrors.KindRequest, apperrors.CodeTooManyFiles,
				"Too many files. Maximum is %d per request", s.maxFiles)
			return nil, s.reject(err, meta, name, contentType, -1)
		}

		if err := s.validator.ValidateHeader(name, contentType); err != nil {
			part.Close()
			return nil, s.reject(err, meta, name, contentType, -1)
		}

		limit := s.validator.SizeLimit(contentType)
		data, err := io.ReadAll(io.LimitReader(part, limit+1))
		part.Close()
		if err != nil {
			return nil, s.reject(readError(err), meta, name, contentType, int64(len(data)))
		}

		c := &model.UploadCandidate{
			OriginalName:        name,
			DeclaredContentType: contentType,
			SizeBytes:           int64(len(data)),
			Payload:             data,
		}
		if err := s.validator.Check(c); err != nil {
			return nil, s.reject(err, meta, name, contentType, c.SizeBytes)
		}
		candidates = append(candidates, c)
	}

	if len(candidates) == 0 {
		return nil, s.reject(apperrors.ErrNoFiles, meta, "", "", -1)
	}
	return candidates, nil
}

// readError maps body read failures onto request errors
func readError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return apperrors.Wrap(err, apperrors.KindRequest, apperrors.CodeRequestTooLarge,
			"Request too large")
	}
	return apperrors.Wrap(err, apperrors.KindRequest, apperrors.CodeInvalidMultipart,
		"Invalid multipart form")
}

// reject logs a rejection with its request context and counts it
func (s *UploadService) reject(err error, meta RequestMeta, filename, contentType string, size int64) error {
	e := apperrors.As(err)
	fields := logrus.Fields{
		"code":       e.Code,
		"reason":     e.Message,
		"ip":         meta.RemoteIP,
		"user_agent": meta.UserAgent,
	}
	if meta.RequestID != "" {
		fields["request_id"] = meta.RequestID
	}
	if filename != "" {
		fields["filename"] = filename
		fields["mimetype"] = contentType
	}
	if size >= 0 {
		fields["size"] = size
	}
	s.log.Audit(fields).Warn("File upload rejected")
	s.metrics.Rejected(string(e.Code))
	return err
}
