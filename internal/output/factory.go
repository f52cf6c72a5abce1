package output

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/goliatone/go-wpmigrate/internal/logging"
	"github.com/goliatone/go-wpmigrate/internal/runtimeconfig"
	"github.com/goliatone/go-wpmigrate/pkg/interfaces"
)

// S3ClientFunc lazily builds the client used by S3 sinks.
type S3ClientFunc func(ctx context.Context, cfg runtimeconfig.OutputConfig) (ObjectPutter, error)

// FactoryOption mutates a Factory during construction.
type FactoryOption func(*Factory)

// WithStdout replaces the writer used for the stdout sink.
func WithStdout(w io.Writer) FactoryOption {
	return func(f *Factory) {
		if w != nil {
			f.stdout = w
		}
	}
}

// WithS3Client replaces the S3 client constructor.
func WithS3Client(fn S3ClientFunc) FactoryOption {
	return func(f *Factory) {
		if fn != nil {
			f.newS3Client = fn
		}
	}
}

// WithLogger sets the logger used to report resolved sinks.
func WithLogger(logger interfaces.Logger) FactoryOption {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Factory resolves an output location into a sink.
type Factory struct {
	cfg         runtimeconfig.OutputConfig
	stdout      io.Writer
	newS3Client S3ClientFunc
	logger      interfaces.Logger
}

// NewFactory builds a Factory bound to the output configuration.
func NewFactory(cfg runtimeconfig.OutputConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		cfg:    cfg,
		stdout: os.Stdout,
		logger: logging.NoOp(),
		newS3Client: func(ctx context.Context, cfg runtimeconfig.OutputConfig) (ObjectPutter, error) {
			return NewS3Client(ctx, cfg)
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Open maps location onto a sink: empty or "-" is stdout, s3://bucket/key is
// an S3 upload, anything else is a local file path.
func (f *Factory) Open(ctx context.Context, location string) (interfaces.Sink, error) {
	location = strings.TrimSpace(location)
	if location == "" || location == "-" {
		f.logger.Debug("output.sink.opened", "kind", "stdout")
		return NewWriterSink(f.stdout, StdoutLocation), nil
	}

	bucket, key, isS3, err := ParseS3URI(location)
	if err != nil {
		return nil, err
	}
	if isS3 {
		client, err := f.newS3Client(ctx, f.cfg)
		if err != nil {
			return nil, err
		}
		f.logger.Debug("output.sink.opened", "kind", "s3", "bucket", bucket, "key", key)
		return NewS3Sink(client, bucket, key), nil
	}
	f.logger.Debug("output.sink.opened", "kind", "file", "path", location)
	return NewFileSink(location), nil
}
