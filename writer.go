package deadcsv

import (
	"bufio"
	"errors"
	"io"
)

var (
	errNilWriter      = errors.New("deadcsv: writer is nil")
	errWriterNoTarget = errors.New("deadcsv: writer destination cannot be nil")
)

// Writer streams schema-shaped records as delimiter-separated text.
type Writer struct {
	dst    *bufio.Writer
	schema *Schema

	line int
	err  error
}

// NewWriter creates a Writer over dst bound to schema, panicking if either is
// nil. If header is true it immediately writes schema.Header() followed by a
// newline; a header write failure means no Writer is returned.
func NewWriter(dst io.Writer, schema *Schema, header bool) (*Writer, error) {
	if dst == nil {
		panic(errWriterNoTarget.Error())
	}
	if schema == nil {
		panic("deadcsv: writer schema cannot be nil")
	}

	w := &Writer{
		dst:    bufio.NewWriterSize(dst, defaultBufferSize),
		schema: schema,
		line:   1,
	}
	if header {
		if err := w.writeHeader(); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Reset updates the underlying writer, clearing any stored error and
// restarting the line counter. It does not re-emit a header; header emission
// is a construction-time policy.
func (w *Writer) Reset(dst io.Writer) {
	if w == nil {
		panic(errNilWriter.Error())
	}
	if dst == nil {
		panic(errWriterNoTarget.Error())
	}
	if w.dst == nil {
		w.dst = bufio.NewWriterSize(dst, defaultBufferSize)
	} else {
		w.dst.Reset(dst)
	}
	w.line = 1
	w.err = nil
}

// Write emits a single record: every field except the last followed by one
// separator byte, the last followed by one newline byte. The record length
// must equal the schema length; a mismatch returns ErrFieldCount without
// writing anything. Field contents are not validated — a field containing the
// separator or a newline produces a malformed, unparseable line.
func (w *Writer) Write(record []string) error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}
	if len(record) != w.schema.Len() {
		// The stream is untouched, so this is not sticky: the caller may
		// retry with a corrected record.
		return ErrFieldCount
	}

	sep := w.schema.sep
	for i, field := range record {
		if i > 0 {
			if err := w.dst.WriteByte(sep); err != nil {
				w.err = err
				return err
			}
		}
		if _, err := w.dst.WriteString(field); err != nil {
			w.err = err
			return err
		}
	}
	if err := w.dst.WriteByte('\n'); err != nil {
		w.err = err
		return err
	}
	w.line++
	return nil
}

// WriteAll writes multiple records, stopping at the first error.
func (w *Writer) WriteAll(records [][]string) error {
	if w == nil {
		return errNilWriter
	}
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes pending buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}
	if err := w.dst.Flush(); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Error reports the first error encountered by the writer.
func (w *Writer) Error() error {
	if w == nil {
		return errNilWriter
	}
	return w.err
}

// Line returns the number of the next line to be produced. It starts at 1 on
// a fresh Writer and at 2 after an emitted header.
func (w *Writer) Line() int {
	return w.line
}

func (w *Writer) writeHeader() error {
	if _, err := w.dst.WriteString(w.schema.header); err != nil {
		w.err = err
		return err
	}
	if err := w.dst.WriteByte('\n'); err != nil {
		w.err = err
		return err
	}
	w.line++
	return nil
}
