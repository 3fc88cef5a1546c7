package dbexport

import (
	"context"

	"go.uber.org/zap"
)

// Streamer copies the result set of one query into a RowSink in bounded batches.
type Streamer struct {
	BatchSize      int
	MaxColumnWidth int
	Logger         *zap.Logger
	Metrics        *Metrics
}

// Stream executes query on q without parameters and writes the header and
// every row to sink, flushing it before returning the number of rows written.
// A statement that produces no result set fails with KindEmptyResult.
func (s *Streamer) Stream(ctx context.Context, q Queryer, query string, sink RowSink) (int64, error) {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return 0, newError(KindQuery, err, "error executing query")
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return 0, newError(KindQuery, err, "error getting columns")
	}
	if len(cols) == 0 {
		return 0, newError(KindEmptyResult, nil, "query came back empty: the statement produced no result set, no output has been created")
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return 0, newError(KindQuery, err, "error getting column types")
	}
	schema := NewColumnSchema(types, s.MaxColumnWidth)

	if err := sink.WriteHeader(schema.Names); err != nil {
		return 0, err
	}

	batch := NewRowBatch(schema, s.BatchSize)
	logger.Debug("row buffer allocated",
		zap.Int("columns", schema.Len()),
		zap.Int("batchSize", batch.Capacity()),
		zap.Ints("widths", schema.Widths))

	fields := make([][]byte, batch.Cols())
	var total int64
	var truncated int
	for {
		n, err := batch.Fill(rows)
		if err != nil {
			return total, newError(KindQuery, err, "error fetching batch")
		}
		if n == 0 {
			break
		}
		for r := range n {
			for c := range fields {
				fields[c] = batch.At(r, c)
			}
			if err := sink.WriteRow(fields); err != nil {
				return total, err
			}
			total++
		}
		truncated += batch.Truncated()
		s.Metrics.observeBatch(n)
		logger.Debug("batch written", zap.Int("rows", n), zap.Int64("total", total))
	}
	if truncated > 0 {
		logger.Warn("fields truncated at column width",
			zap.Int("fields", truncated),
			zap.Int("maxColumnWidth", s.MaxColumnWidth))
	}

	if err := sink.Flush(); err != nil {
		return total, err
	}
	return total, nil
}
