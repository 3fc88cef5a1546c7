package dbexport

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// LookupEncoding resolves a WHATWG encoding label such as "utf-8" or
// "windows-1252". An empty label means UTF-8.
func LookupEncoding(label string) (encoding.Encoding, error) {
	if label == "" {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unknown source encoding %q: %w", label, err)
	}
	return enc, nil
}

// CSVSink writes one result set to a CSV file.
// The file is created by WriteHeader, so a statement that never yields a
// result set leaves nothing on disk.
// Fields are decoded lossily: bytes that are invalid in the source encoding
// become U+FFFD and never fail a row.
type CSVSink struct {
	path   string
	file   *os.File
	w      *csv.Writer
	dec    *encoding.Decoder
	utf8   bool
	record []string
}

// NewCSVSink returns a sink for path without touching the filesystem.
// A nil enc means UTF-8.
func NewCSVSink(path string, enc encoding.Encoding) *CSVSink {
	if enc == nil {
		enc = unicode.UTF8
	}
	return &CSVSink{
		path: path,
		dec:  enc.NewDecoder(),
		utf8: enc == unicode.UTF8,
	}
}

// Path returns the file being written.
func (s *CSVSink) Path() string { return s.path }

// Created reports whether the output file exists.
func (s *CSVSink) Created() bool { return s.file != nil }

// WriteHeader creates (or truncates) the file and writes the column names.
func (s *CSVSink) WriteHeader(names []string) error {
	if s.file == nil {
		file, err := os.Create(s.path)
		if err != nil {
			return newError(KindIO, err, "error creating output file")
		}
		s.file = file
		s.w = csv.NewWriter(file)
	}
	if err := s.w.Write(names); err != nil {
		return newError(KindIO, err, "error writing CSV header")
	}
	return nil
}

func (s *CSVSink) WriteRow(fields [][]byte) error {
	s.record = s.record[:0]
	for _, f := range fields {
		s.record = append(s.record, s.decode(f))
	}
	if err := s.w.Write(s.record); err != nil {
		return newError(KindIO, err, "error writing CSV row")
	}
	return nil
}

func (s *CSVSink) decode(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	if s.utf8 && utf8.Valid(raw) {
		return string(raw)
	}
	out, err := s.dec.Bytes(raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), string(utf8.RuneError))
	}
	return string(out)
}

// Flush writes buffered records through to the file.
func (s *CSVSink) Flush() error {
	if s.w == nil {
		return nil
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return newError(KindIO, err, "error flushing CSV output")
	}
	return nil
}

// Close releases the file. It does not flush.
func (s *CSVSink) Close() error {
	if s.file == nil {
		return nil
	}
	if err := s.file.Close(); err != nil {
		return newError(KindIO, err, "error closing output file")
	}
	return nil
}
