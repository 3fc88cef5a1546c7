package dbexport

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// DefaultBatchSize is the number of rows fetched per batch when none is given.
const DefaultBatchSize = 5000

const nullField = -1

// RowBatch is a fixed-capacity text buffer for rows of one result set.
// Each column owns one slab of capacity*width bytes; Fill overwrites the
// slabs in place, so the memory in use never depends on the row count.
type RowBatch struct {
	capacity int
	widths   []int
	slabs    [][]byte
	lens     [][]int // per column, per row; nullField marks NULL
	rows     int

	truncated int

	// scan targets, reused for every row
	vals    []any
	ptrs    []any
	scratch []byte
}

// NewRowBatch allocates a batch of capacity rows shaped by schema.
func NewRowBatch(schema ColumnSchema, capacity int) *RowBatch {
	if capacity <= 0 {
		capacity = DefaultBatchSize
	}
	cols := schema.Len()
	b := &RowBatch{
		capacity: capacity,
		widths:   make([]int, cols),
		slabs:    make([][]byte, cols),
		lens:     make([][]int, cols),
		vals:     make([]any, cols),
		ptrs:     make([]any, cols),
	}
	for c := range cols {
		b.widths[c] = max(schema.Widths[c], 1)
		b.slabs[c] = make([]byte, capacity*b.widths[c])
		b.lens[c] = make([]int, capacity)
		b.ptrs[c] = &b.vals[c]
	}
	return b
}

// Capacity returns the maximum number of rows one Fill can hold.
func (b *RowBatch) Capacity() int { return b.capacity }

// Rows returns the number of rows held since the last Fill.
func (b *RowBatch) Rows() int { return b.rows }

// Cols returns the number of columns.
func (b *RowBatch) Cols() int { return len(b.widths) }

// Truncated returns how many fields of the last Fill were cut at their column width.
func (b *RowBatch) Truncated() int { return b.truncated }

// At returns the raw text of a field.
// The slice is only valid until the next Fill; NULL yields nil.
func (b *RowBatch) At(row, col int) []byte {
	n := b.lens[col][row]
	if n == nullField {
		return nil
	}
	off := row * b.widths[col]
	return b.slabs[col][off : off+n]
}

// Fill replaces the contents of the batch with up to Capacity rows read from
// cur and returns how many were read. Zero rows means the cursor is exhausted.
func (b *RowBatch) Fill(cur Cursor) (int, error) {
	b.rows = 0
	b.truncated = 0
	for b.rows < b.capacity {
		if !cur.Next() {
			if err := cur.Err(); err != nil {
				return b.rows, fmt.Errorf("error fetching rows: %w", err)
			}
			break
		}
		if err := cur.Scan(b.ptrs...); err != nil {
			return b.rows, fmt.Errorf("error scanning row: %w", err)
		}
		for c, v := range b.vals {
			b.store(b.rows, c, v)
			b.vals[c] = nil
		}
		b.rows++
	}
	return b.rows, nil
}

func (b *RowBatch) store(row, col int, v any) {
	switch t := v.(type) {
	case nil:
		b.lens[col][row] = nullField
	case string:
		b.lens[col][row] = copyField(b, row, col, t)
	case []byte:
		b.lens[col][row] = copyField(b, row, col, t)
	default:
		text, exact := b.render(t)
		// numbers, booleans and times are never cut; the column grows instead
		if exact && len(text) > b.widths[col] {
			b.widen(col, len(text))
		}
		b.lens[col][row] = copyField(b, row, col, text)
	}
}

// copyField copies text into the slot of (row, col), truncating it at the
// column width, and returns the stored length.
func copyField[T string | []byte](b *RowBatch, row, col int, text T) int {
	w := b.widths[col]
	if len(text) > w {
		b.truncated++
	}
	return copy(b.slabs[col][row*w:(row+1)*w], text)
}

// widen reallocates the slab of col with a larger width, keeping the rows
// already stored in the current fill.
func (b *RowBatch) widen(col, width int) {
	old, w := b.slabs[col], b.widths[col]
	slab := make([]byte, b.capacity*width)
	for r := range b.rows {
		if n := b.lens[col][r]; n > 0 {
			copy(slab[r*width:], old[r*w:r*w+n])
		}
	}
	b.slabs[col] = slab
	b.widths[col] = width
}

// render formats non-text values into the scratch buffer. exact reports
// whether the value has a bounded textual form that must not be truncated.
func (b *RowBatch) render(v any) (text []byte, exact bool) {
	buf := b.scratch[:0]
	exact = true
	switch t := v.(type) {
	case int64:
		buf = strconv.AppendInt(buf, t, 10)
	case int:
		buf = strconv.AppendInt(buf, int64(t), 10)
	case int32:
		buf = strconv.AppendInt(buf, int64(t), 10)
	case uint64:
		buf = strconv.AppendUint(buf, t, 10)
	case float64:
		buf = appendFloat(buf, t, 64)
	case float32:
		buf = appendFloat(buf, float64(t), 32)
	case bool:
		buf = strconv.AppendBool(buf, t)
	case time.Time:
		buf = appendTime(buf, t)
	default:
		buf = fmt.Append(buf, t)
		exact = false
	}
	b.scratch = buf
	return buf, exact
}

// appendFloat writes the shortest representation that round-trips, in plain
// notation for magnitudes in [1e-4, 1e21) and in exponent notation otherwise.
func appendFloat(dst []byte, f float64, bits int) []byte {
	if abs := math.Abs(f); f == 0 || (abs >= 1e-4 && abs < 1e21) {
		return strconv.AppendFloat(dst, f, 'f', -1, bits)
	}
	return strconv.AppendFloat(dst, f, 'g', -1, bits)
}

// appendTime writes UTC values without an offset, and dates at midnight as a
// bare date. Any other location keeps its offset.
func appendTime(dst []byte, t time.Time) []byte {
	if t.Location() != time.UTC {
		return t.AppendFormat(dst, "2006-01-02 15:04:05.999999999-07:00")
	}
	h, m, s := t.Clock()
	if h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0 {
		return t.AppendFormat(dst, time.DateOnly)
	}
	return t.AppendFormat(dst, "2006-01-02 15:04:05.999999999")
}
