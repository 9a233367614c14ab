package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	importStartedTotal      atomic.Uint64
	importCompletedTotal    atomic.Uint64
	importDecodeFailedTotal atomic.Uint64
	importFailedTotal       atomic.Uint64

	extractedSectionsByKind = newLabeledCounter()
	importDuration          = newHistogram([]float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000})
)

// IncImportStarted counts an upload accepted for extraction.
func IncImportStarted() {
	importStartedTotal.Add(1)
}

// IncImportCompleted counts an import that persisted a resume.
func IncImportCompleted() {
	importCompletedTotal.Add(1)
}

// IncImportDecodeFailed counts an upload rejected by the decoder.
func IncImportDecodeFailed() {
	importDecodeFailedTotal.Add(1)
}

// IncImportFailed counts an import that failed after decoding.
func IncImportFailed() {
	importFailedTotal.Add(1)
}

// AddExtractedSections adds n recognized sections of the given kind.
func AddExtractedSections(kind string, n int) {
	if n <= 0 {
		return
	}
	extractedSectionsByKind.Add(kind, uint64(n))
}

// ObserveImportDurationMs records an import duration in milliseconds.
func ObserveImportDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	importDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "resume_import_started_total", "Total resume imports started", importStartedTotal.Load())
	writeCounter(&buf, "resume_import_completed_total", "Total resume imports persisted", importCompletedTotal.Load())
	writeCounter(&buf, "resume_import_decode_failed_total", "Total uploads the decoder rejected", importDecodeFailedTotal.Load())
	writeCounter(&buf, "resume_import_failed_total", "Total resume imports failed after decoding", importFailedTotal.Load())
	writeLabeledCounter(&buf, "resume_extracted_sections_total", "Recognized resume sections by kind", "kind", extractedSectionsByKind.Snapshot())
	writeHistogram(&buf, "resume_import_duration_ms", "Resume import duration in milliseconds", importDuration.Snapshot())
	return buf.String()
}

type labeledCounter struct {
	mu     sync.Mutex
	values map[string]uint64
}

func newLabeledCounter() *labeledCounter {
	return &labeledCounter{values: make(map[string]uint64)}
}

func (l *labeledCounter) Add(label string, n uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.values[label] += n
}

func (l *labeledCounter) Snapshot() map[string]uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]uint64, len(l.values))
	for k, v := range l.values {
		out[k] = v
	}
	return out
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe counts value once, in the first bucket whose bound it fits.
// Cumulative totals are computed when rendering.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeLabeledCounter(buf *bytes.Buffer, name, help, label string, values map[string]uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(buf, "%s{%s=%q} %d\n", name, label, k, values[k])
	}
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
