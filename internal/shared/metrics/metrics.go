package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	summarizeStartedTotal   atomic.Uint64
	summarizeCompletedTotal atomic.Uint64
	summarizeFailedTotal    atomic.Uint64

	askStartedTotal   atomic.Uint64
	askCompletedTotal atomic.Uint64
	askFailedTotal    atomic.Uint64

	summarizeDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
	askDuration       = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncSummarizeStarted increments the summarize started counter.
func IncSummarizeStarted() {
	summarizeStartedTotal.Add(1)
}

// IncSummarizeCompleted increments the summarize completed counter.
func IncSummarizeCompleted() {
	summarizeCompletedTotal.Add(1)
}

// IncSummarizeFailed increments the summarize failed counter.
func IncSummarizeFailed() {
	summarizeFailedTotal.Add(1)
}

// IncAskStarted increments the ask started counter.
func IncAskStarted() {
	askStartedTotal.Add(1)
}

// IncAskCompleted increments the ask completed counter.
func IncAskCompleted() {
	askCompletedTotal.Add(1)
}

// IncAskFailed increments the ask failed counter.
func IncAskFailed() {
	askFailedTotal.Add(1)
}

// ObserveSummarizeDurationMs records a summarize pipeline duration in milliseconds.
func ObserveSummarizeDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	summarizeDuration.Observe(value)
}

// ObserveAskDurationMs records a question-answering duration in milliseconds.
func ObserveAskDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	askDuration.Observe(value)
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
	writeCounter(&buf, "summarize_started_total", "Total summarize pipelines started", summarizeStartedTotal.Load())
	writeCounter(&buf, "summarize_completed_total", "Total summarize pipelines completed", summarizeCompletedTotal.Load())
	writeCounter(&buf, "summarize_failed_total", "Total summarize pipelines failed", summarizeFailedTotal.Load())
	writeCounter(&buf, "ask_started_total", "Total questions started", askStartedTotal.Load())
	writeCounter(&buf, "ask_completed_total", "Total questions answered", askCompletedTotal.Load())
	writeCounter(&buf, "ask_failed_total", "Total questions failed", askFailedTotal.Load())
	writeHistogram(&buf, "summarize_duration_ms", "Summarize pipeline duration in milliseconds", summarizeDuration.Snapshot())
	writeHistogram(&buf, "ask_duration_ms", "Question-answering duration in milliseconds", askDuration.Snapshot())
	return buf.String()
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

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
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

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
