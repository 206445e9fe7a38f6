package service

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/SpecCon-Team/asset-app-sub001/internal/metrics"
	"github.com/SpecCon-Team/asset-app-sub001/internal/storage"
	"github.com/SpecCon-Team/asset-app-sub001/internal/upload/policy"
	"github.com/SpecCon-Team/asset-app-sub001/internal/upload/sanitize"
	"github.com/SpecCon-Team/asset-app-sub001/internal/upload/validator"
	"github.com/SpecCon-Team/asset-app-sub001/pkg/logger"
	model "github.com/SpecCon-Team/asset-app-sub001/pkg/upload"
)

const (
	// DefaultMaxAge is how long stored files live before the cleanup sweep removes them
	DefaultMaxAge = 7 * 24 * time.Hour

	tracerName = "github.com/SpecCon-Team/asset-app-sub001/internal/upload/service"
)

// Registry records metadata for stored files
type Registry interface {
	Insert(ctx context.Context, f *model.StoredFile) error
	Get(ctx context.Context, secureFilename string) (*model.StoredFile, error)
	List(ctx context.Context) ([]model.StoredFile, error)
	Delete(ctx context.Context, secureFilename string) error
}

// RequestMeta identifies who sent an upload, for the audit log
type RequestMeta struct {
	RequestID string
	RemoteIP  string
	UserAgent string
}

// Options configures an UploadService
type Options struct {
	Validator *validator.Validator
	Store     storage.Store
	Registry  Registry
	Metrics   *metrics.Metrics
	Logger    *logger.Logger
	// MaxFiles caps file parts per request; defaults to policy.MaxFilesPerBatch
	MaxFiles int
	// NameFunc derives storage names; defaults to sanitize.GenerateSecureFilename
	NameFunc func(originalName string) string
	// Now is the clock used by cleanup; defaults to time.Now
	Now func() time.Time
}

// UploadService runs the validate, scan and persist pipeline
type UploadService struct {
	validator *validator.Validator
	store     storage.Store
	registry  Registry
	metrics   *metrics.Metrics
	log       *logger.Logger
	tracer    trace.Tracer
	maxFiles  int
	names     func(string) string
	now       func() time.Time
}

// New creates a new UploadService
func New(opts Options) (*UploadService, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("upload service requires a store")
	}
	if opts.Registry == nil {
		return nil, fmt.Errorf("upload service requires a registry")
	}

	s := &UploadService{
		validator: opts.Validator,
		store:     opts.Store,
		registry:  opts.Registry,
		metrics:   opts.Metrics,
		log:       opts.Logger,
		tracer:    otel.Tracer(tracerName),
		maxFiles:  opts.MaxFiles,
		names:     opts.NameFunc,
		now:       opts.Now,
	}
	if s.validator == nil {
		s.validator = validator.New(policy.Default())
	}
	if s.log == nil {
		s.log = logger.New()
	}
	if s.maxFiles <= 0 {
		s.maxFiles = policy.MaxFilesPerBatch
	}
	if s.names == nil {
		s.names = sanitize.GenerateSecureFilename
	}
	if s.now == nil {
		s.now = time.Now
	}

	s.log.Info("Upload service initialized with storage: %s", s.store.Location())
	return s, nil
}

// Validator returns the validator the service enforces
func (s *UploadService) Validator() *validator.Validator {
	return s.validator
}
