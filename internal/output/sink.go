package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-wpmigrate/pkg/interfaces"
)

// StdoutLocation names the standard output sink in logs and summaries.
const StdoutLocation = "stdout"

var ErrNilWriter = errors.New("output: writer is nil")

// WriterSink writes the SQL text to an io.Writer, typically os.Stdout.
type WriterSink struct {
	writer io.Writer
	name   string
}

var _ interfaces.Sink = (*WriterSink)(nil)

// NewWriterSink wraps w. name is reported by Location.
func NewWriterSink(w io.Writer, name string) *WriterSink {
	if strings.TrimSpace(name) == "" {
		name = StdoutLocation
	}
	return &WriterSink{writer: w, name: name}
}

func (s *WriterSink) Write(ctx context.Context, sql []byte) error {
	if s.writer == nil {
		return ErrNilWriter
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.writer.Write(sql)
	return err
}

func (s *WriterSink) Location() string {
	return s.name
}

// FileSink writes the SQL text to a local path. The file is written to a
// temporary sibling first and renamed into place, so readers never observe a
// partial script.
type FileSink struct {
	path string
	perm os.FileMode
}

var _ interfaces.Sink = (*FileSink)(nil)

// NewFileSink targets path, creating parent directories on write.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path, perm: 0o644}
}

func (s *FileSink) Write(ctx context.Context, sql []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("output: create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("output: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(sql); err != nil {
		tmp.Close()
		return fmt.Errorf("output: write %s: %w", s.path, err)
	}
	if err := tmp.Chmod(s.perm); err != nil {
		tmp.Close()
		return fmt.Errorf("output: chmod %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("output: close %s: %w", s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("output: rename into %s: %w", s.path, err)
	}
	return nil
}

func (s *FileSink) Location() string {
	return s.path
}
