package deadcsv

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"unsafe"
)

const defaultBufferSize = 1 << 10 // 1024 bytes

var (
	// ErrHeaderMismatch is returned when the first input line does not equal the schema header.
	ErrHeaderMismatch = errors.New("deadcsv: header does not match schema")
	// ErrFieldCount is returned when a line contains an unexpected number of fields.
	ErrFieldCount = errors.New("deadcsv: wrong number of fields")
)

// ParseError contains location information for parsing errors.
type ParseError struct {
	Line int
	Err  error
}

// Error formats the parse error message with the stored line and Err values.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("deadcsv: parse error on line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying Err so ParseError participates in errors.Unwrap.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Reader streams schema-shaped records from delimiter-separated text.
//
// Records returned by Read are views into an internal line buffer that is
// cleared and refilled on every call: each record is valid only until the
// next Read on the same Reader. Set CopyFields when records must survive it.
type Reader struct {
	src    io.Reader
	schema *Schema

	// CopyFields makes Read return records that own their memory instead of
	// borrowing the internal line buffer.
	CopyFields bool

	buf    []byte
	bufPos int
	bufLen int
	bufErr error

	lineBuf  []byte
	offsets  []int
	record   []string
	line     int
	finished bool
}

// NewReader creates a Reader over src bound to schema, panicking if either is
// nil. If header is true it consumes the first input line and validates it
// byte-for-byte against schema.Header(); on mismatch no Reader is returned.
func NewReader(src io.Reader, schema *Schema, header bool) (*Reader, error) {
	return NewReaderSize(src, schema, defaultBufferSize, header)
}

// NewReaderSize is like NewReader but sets the initial capacity of the line
// buffer. The capacity is a hint, not a limit: the buffer grows to fit the
// longest line seen and never shrinks. A non-positive size uses the default.
func NewReaderSize(src io.Reader, schema *Schema, size int, header bool) (*Reader, error) {
	if src == nil {
		panic("deadcsv: reader source cannot be nil")
	}
	if schema == nil {
		panic("deadcsv: reader schema cannot be nil")
	}
	if size <= 0 {
		size = defaultBufferSize
	}

	r := &Reader{
		src:     src,
		schema:  schema,
		buf:     make([]byte, defaultBufferSize),
		lineBuf: make([]byte, 0, size),
		offsets: make([]int, schema.Len()),
		record:  make([]string, schema.Len()),
		line:    1,
	}
	if header {
		if err := r.readHeader(); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Read parses the next record from the underlying stream. io.EOF signals that
// no more records remain; a malformed line is reported as a *ParseError
// wrapping ErrFieldCount, and the stream position has already moved past it,
// so the following Read parses the next line.
func (r *Reader) Read() ([]string, error) {
	if r == nil || r.src == nil {
		return nil, io.EOF
	}
	if r.finished {
		return nil, io.EOF
	}

	eof, err := r.readLine()
	if err != nil {
		return nil, err
	}
	if eof {
		r.finished = true
		// A final line without a trailing newline is still a record; zero
		// remaining bytes is a clean stop, never a field-count violation.
		if len(r.lineBuf) == 0 {
			return nil, io.EOF
		}
	}

	line := r.line
	r.line++

	sep := r.schema.sep
	want := len(r.offsets) - 1
	found := 0
	pos := 0
	for {
		i := bytes.IndexByte(r.lineBuf[pos:], sep)
		if i < 0 {
			break
		}
		if found == want {
			return nil, &ParseError{Line: line, Err: ErrFieldCount}
		}
		r.offsets[found] = pos + i
		found++
		pos += i + 1
	}
	if found != want {
		return nil, &ParseError{Line: line, Err: ErrFieldCount}
	}
	r.offsets[want] = len(r.lineBuf)

	return r.buildRecord(), nil
}

// ReadAll exhausts the reader, collecting records until io.EOF and returning
// the accumulated slice plus the first non-EOF error encountered. Records are
// always copied out of the line buffer, regardless of CopyFields.
func (r *Reader) ReadAll() (records [][]string, err error) {
	copyFields := r.CopyFields
	r.CopyFields = true
	defer func() { r.CopyFields = copyFields }()

	for {
		record, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}

// Line returns the number of the next line to be consumed. It starts at 1 on
// a fresh Reader and at 2 after a validated header.
func (r *Reader) Line() int {
	return r.line
}

// readHeader consumes the first input line and compares it against the cached
// schema header.
func (r *Reader) readHeader() error {
	eof, err := r.readLine()
	if err != nil {
		return err
	}
	if string(r.lineBuf) != r.schema.header {
		return &ParseError{Line: r.line, Err: ErrHeaderMismatch}
	}
	r.line++
	if eof {
		r.finished = true
	}
	return nil
}

// readLine refills lineBuf with the next line, excluding the terminating
// newline. It reports eof=true when the stream was exhausted before a newline
// was found; the bytes read so far (possibly zero) are kept.
func (r *Reader) readLine() (eof bool, err error) {
	r.lineBuf = r.lineBuf[:0]

	for {
		// Ensure the working buffer has data before scanning for the newline.
		if r.bufPos >= r.bufLen {
			if r.bufErr != nil {
				err := r.bufErr
				r.bufErr = nil
				if err == io.EOF {
					return true, nil
				}
				return false, err
			}

			// Pull the next chunk from the source.
			n, err := r.src.Read(r.buf)
			if n == 0 {
				if err != nil {
					r.bufErr = err
				}
				continue
			}
			r.bufPos = 0
			r.bufLen = n
			r.bufErr = err
		}

		data := r.buf[r.bufPos:r.bufLen]
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			r.lineBuf = append(r.lineBuf, data[:i]...)
			r.bufPos += i + 1
			return false, nil
		}
		r.lineBuf = append(r.lineBuf, data...)
		r.bufPos = r.bufLen
	}
}

// buildRecord slices the line buffer between consecutive offsets, skipping
// the separator byte itself, and materialises the record. The last offset is
// always the line length, so the final field needs no special case.
func (r *Reader) buildRecord() []string {
	var record []string
	var line string
	if r.CopyFields {
		record = make([]string, len(r.offsets))
		line = string(r.lineBuf)
	} else {
		record = r.record
		if len(r.lineBuf) > 0 {
			// Zero-copy string construction so fields can share the line buffer.
			line = unsafe.String(unsafe.SliceData(r.lineBuf), len(r.lineBuf))
		}
	}

	start := 0
	for i, end := range r.offsets {
		record[i] = line[start:end]
		start = end + 1
	}
	return record
}
