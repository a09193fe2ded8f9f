package core

import (
	"context"
	"time"
)

// DefaultOperationTimeout bounds a single validate or import call.
const DefaultOperationTimeout = 2 * time.Minute

// Options tunes the Service's resource limits.
type Options struct {
	MaxConcurrent int
	MaxWait       time.Duration
	Timeout       time.Duration
}

// Service runs the upload pipelines against a Store.
type Service struct {
	store  Store
	parser Parser
	writer Writer
	schema Schema

	uploadLimiter *UploadLimiter
	timeout       time.Duration
}

// NewService wires a Service. Zero Options fields fall back to defaults.
func NewService(store Store, parser Parser, writer Writer, opts Options) *Service {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultOperationTimeout
	}
	return &Service{
		store:         store,
		parser:        parser,
		writer:        writer,
		schema:        RecordSchema,
		uploadLimiter: NewUploadLimiter(opts.MaxConcurrent, opts.MaxWait),
		timeout:       opts.Timeout,
	}
}

// UploadLimiterStatus returns the processing slot usage.
func (s *Service) UploadLimiterStatus() UploadLimiterStatus {
	return s.uploadLimiter.Status()
}

// WaitForUploads blocks until in-flight validate and import calls finish.
func (s *Service) WaitForUploads(ctx context.Context) error {
	return s.uploadLimiter.WaitForDrain(ctx)
}

// beginUpload takes a processing slot and applies the operation timeout.
// The returned func must be called once the operation is done.
func (s *Service) beginUpload(ctx context.Context) (context.Context, func(), error) {
	if err := s.uploadLimiter.Acquire(ctx); err != nil {
		return nil, nil, err
	}
	opCtx, cancel := context.WithTimeout(ctx, s.timeout)
	return opCtx, func() {
		cancel()
		s.uploadLimiter.Release()
	}, nil
}
