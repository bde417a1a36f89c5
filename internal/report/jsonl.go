package report

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"

	"github.com/fla4sh/redirectscope/internal/model"
)

// JSONLWriter writes one ClassifiedResult per line as JSON. Safe for
// concurrent use.
type JSONLWriter struct {
	w  *bufio.Writer
	mu sync.Mutex
}

// NewJSONLWriter wraps an io.Writer with buffering.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{w: bufio.NewWriter(w)}
}

// Write writes a single result as a JSON line.
func (j *JSONLWriter) Write(res model.ClassifiedResult) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	enc := json.NewEncoder(j.w)
	// For stable lines without extra escaping.
	enc.SetEscapeHTML(false)
	return enc.Encode(res)
}

// Close flushes the underlying buffer; keep the signature similar to
// io.Closer.
func (j *JSONLWriter) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.w.Flush()
}

// WriteJSONL writes each result as a JSON line to w.
func WriteJSONL(w io.Writer, results []model.ClassifiedResult) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for _, res := range results {
		if err := enc.Encode(res); err != nil {
			return err
		}
	}
	return bw.Flush()
}
