package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// DefaultStatus is the status of a buffer nobody has set one on.
// A handler that forgets SetStatus therefore answers 500.
const DefaultStatus = http.StatusInternalServerError

// Header is a single buffered response header. Order and duplicates are preserved.
type Header struct {
	Key   string
	Value string
}

// Buffer accumulates a response until it is flushed in one go.
// It is not safe for concurrent use; each request owns its own buffer.
type Buffer struct {
	status  int
	headers []Header
	body    bytes.Buffer
}

// NewBuffer returns an empty buffer with DefaultStatus.
func NewBuffer() *Buffer {
	return &Buffer{status: DefaultStatus}
}

// SetStatus sets the status code sent on Flush.
func (b *Buffer) SetStatus(code int) {
	b.status = code
}

// Status returns the current status code.
func (b *Buffer) Status() int {
	return b.status
}

// AddHeader appends a header. Existing headers with the same key are kept.
func (b *Buffer) AddHeader(key, value string) {
	b.headers = append(b.headers, Header{Key: key, Value: value})
}

// Headers returns a copy of the buffered headers in insertion order.
func (b *Buffer) Headers() []Header {
	out := make([]Header, len(b.headers))
	copy(out, b.headers)
	return out
}

// Write appends p to the body. It never fails.
func (b *Buffer) Write(p []byte) (int, error) {
	return b.body.Write(p)
}

// WriteString appends s to the body. It never fails.
func (b *Buffer) WriteString(s string) (int, error) {
	return b.body.WriteString(s)
}

// Append adds v to the body.
//
// nil is ignored, []byte and string are written verbatim, http.Header is written
// in wire format, errors and fmt.Stringer values use their text, and anything else
// is encoded as compact JSON.
func (b *Buffer) Append(v any) {
	switch val := v.(type) {
	case nil:
	case []byte:
		b.body.Write(val)
	case string:
		b.body.WriteString(val)
	case http.Header:
		_ = val.Write(&b.body)
	case error:
		b.body.WriteString(val.Error())
	case fmt.Stringer:
		b.body.WriteString(val.String())
	default:
		b.appendJSON(v)
	}
}

func (b *Buffer) appendJSON(v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		fmt.Fprint(&b.body, v)
		return
	}
	// Encoder terminates every value with a newline.
	b.body.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}

// Len returns the body length in bytes.
func (b *Buffer) Len() int {
	return b.body.Len()
}

// Bytes returns the buffered body. The slice is only valid until the next mutation.
func (b *Buffer) Bytes() []byte {
	return b.body.Bytes()
}

// Flush writes status, headers, a computed Content-Length and the body to w,
// then resets the buffer. Status codes outside 100-999 are sent as 500.
// It returns the number of body bytes written.
func (b *Buffer) Flush(w http.ResponseWriter) (int, error) {
	defer b.Reset()

	h := w.Header()
	for _, hdr := range b.headers {
		h.Add(hdr.Key, hdr.Value)
	}
	h.Set("Content-Length", strconv.Itoa(b.body.Len()))

	w.WriteHeader(b.EffectiveStatus())

	if b.body.Len() == 0 {
		return 0, nil
	}
	return w.Write(b.body.Bytes())
}

// EffectiveStatus returns the status Flush writes: the buffered status, or 500
// when it is not a final status code (200..999). Informational 1xx codes are
// rejected since net/http would send them ahead of an implicit 200.
func (b *Buffer) EffectiveStatus() int {
	if b.status < 200 || b.status > 999 {
		return http.StatusInternalServerError
	}
	return b.status
}

// Reset restores the buffer to its initial state.
func (b *Buffer) Reset() {
	b.status = DefaultStatus
	b.headers = b.headers[:0]
	b.body.Reset()
}
