package dbexport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
)

// Options configures an Exporter. Zero values select the defaults.
type Options struct {
	// TempDir is where output files are written; empty means os.TempDir().
	TempDir string
	// BatchSize is used when a request does not carry one.
	BatchSize int
	// MaxColumnWidth caps the bytes kept per field.
	MaxColumnWidth int
	// Encoding is the WHATWG label of the source text encoding.
	Encoding string
	// RemovePartial deletes the output file when an export fails.
	RemovePartial bool
	Logger        *zap.Logger
	Metrics       *Metrics
}

// Exporter runs export requests against one Environment.
type Exporter struct {
	env  *Environment
	opts Options
	enc  encoding.Encoding
	log  *zap.Logger

	newStem func() string
}

// NewExporter validates opts and returns an Exporter bound to env.
func NewExporter(env *Environment, opts Options) (*Exporter, error) {
	if env == nil {
		return nil, errors.New("nil environment")
	}
	enc, err := LookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.MaxColumnWidth <= 0 {
		opts.MaxColumnWidth = DefaultMaxColumnWidth
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{env: env, opts: opts, enc: enc, log: logger, newStem: uuid.NewString}, nil
}

// OutputPath resolves where the export for the given output name is written.
// An empty name gets a freshly generated stem.
func (x *Exporter) OutputPath(name string) string {
	if name == "" {
		name = x.newStem()
	}
	dir := x.opts.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, name+".csv")
}

// Export runs one request and reports the outcome. It never panics.
func (x *Exporter) Export(ctx context.Context, req ExportRequest) (res Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			x.log.Error("export panicked", zap.Any("panic", r))
			res = Failure(fmt.Errorf("internal error: %v", r))
		}
		x.opts.Metrics.observeExport(res.Success, start)
	}()

	path, rows, err := x.run(ctx, req)
	if err != nil {
		x.log.Error("export failed",
			zap.Stringer("kind", KindOf(err)),
			zap.Error(err),
			zap.Duration("elapsed", time.Since(start)))
		return Failure(err)
	}
	x.log.Info("export finished",
		zap.String("path", path),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", time.Since(start)))
	return Success(path)
}

func (x *Exporter) run(ctx context.Context, req ExportRequest) (string, int64, error) {
	if err := req.Validate(); err != nil {
		return "", 0, err
	}
	batchSize := req.BatchSize
	if batchSize <= 0 {
		batchSize = x.opts.BatchSize
	}
	path := x.OutputPath(req.OutputName)

	conn, err := x.env.Connect(ctx, req.ConnectionString)
	if err != nil {
		return "", 0, err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			x.log.Warn("error closing connection", zap.Error(err))
		}
	}()
	x.log.Debug("connected", zap.String("driver", x.env.Driver()))

	sink := NewCSVSink(path, x.enc)
	streamer := &Streamer{
		BatchSize:      batchSize,
		MaxColumnWidth: x.opts.MaxColumnWidth,
		Logger:         x.log,
		Metrics:        x.opts.Metrics,
	}
	rows, err := streamer.Stream(ctx, conn, req.Query, sink)
	closeErr := sink.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		if x.opts.RemovePartial && sink.Created() {
			if rmErr := os.Remove(path); rmErr != nil {
				x.log.Warn("error removing partial output", zap.String("path", path), zap.Error(rmErr))
			}
		}
		return "", rows, err
	}
	return path, rows, nil
}
