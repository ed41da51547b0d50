// Package metrics collects builder and rendering counters, exposed in
// Prometheus text format.
package metrics

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics holds all server metrics.
type Metrics struct {
	// Editing sessions
	SessionsActive *Gauge
	SessionsTotal  *Counter

	// Edit messages, labelled by wire type name
	MessagesReceived *CounterVec
	OperationErrors  *CounterVec
	ApplyDuration    *Histogram

	// Rendering
	RendersTotal *Counter
	PatchOps     *Histogram

	// Persistence
	PagesSaved *Counter
}

// New creates a metrics instance with the given name prefix.
func New(namespace string) *Metrics {
	return &Metrics{
		SessionsActive:   NewGauge(namespace + "_sessions_active"),
		SessionsTotal:    NewCounter(namespace + "_sessions_total"),
		MessagesReceived: NewCounterVec(namespace + "_messages_received_total"),
		OperationErrors:  NewCounterVec(namespace + "_operation_errors_total"),
		ApplyDuration:    NewHistogram(namespace + "_apply_duration_seconds"),
		RendersTotal:     NewCounter(namespace + "_renders_total"),
		PatchOps:         NewHistogram(namespace + "_patch_ops"),
		PagesSaved:       NewCounter(namespace + "_pages_saved_total"),
	}
}

// Handler serves the metrics in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		writeValue(w, m.SessionsActive.name, m.SessionsActive.Value())
		writeValue(w, m.SessionsTotal.name, m.SessionsTotal.Value())
		writeValue(w, m.RendersTotal.name, m.RendersTotal.Value())
		writeValue(w, m.PagesSaved.name, m.PagesSaved.Value())

		writeVec(w, m.MessagesReceived)
		writeVec(w, m.OperationErrors)

		writeHistogram(w, m.ApplyDuration)
		writeHistogram(w, m.PatchOps)
	})
}

func writeValue(w http.ResponseWriter, name string, value float64) {
	fmt.Fprintf(w, "%s %g\n", name, value)
}

func writeVec(w http.ResponseWriter, cv *CounterVec) {
	values := cv.Values()
	labels := make([]string, 0, len(values))
	for label := range values {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		fmt.Fprintf(w, "%s{type=%q} %g\n", cv.name, label, values[label])
	}
}

func writeHistogram(w http.ResponseWriter, h *Histogram) {
	stats := h.Stats()
	fmt.Fprintf(w, "%s_sum %g\n", h.name, stats.Sum)
	fmt.Fprintf(w, "%s_count %d\n", h.name, stats.Count)
	fmt.Fprintf(w, "%s_max %g\n", h.name, stats.Max)
}

// Counter is a monotonically increasing counter.
type Counter struct {
	name  string
	value int64
}

func NewCounter(name string) *Counter {
	return &Counter{name: name}
}

func (c *Counter) Inc() {
	atomic.AddInt64(&c.value, 1)
}

func (c *Counter) Value() float64 {
	return float64(atomic.LoadInt64(&c.value))
}

// Gauge is a value that can go up and down.
type Gauge struct {
	name  string
	value int64
}

func NewGauge(name string) *Gauge {
	return &Gauge{name: name}
}

func (g *Gauge) Inc() {
	atomic.AddInt64(&g.value, 1)
}

func (g *Gauge) Dec() {
	atomic.AddInt64(&g.value, -1)
}

func (g *Gauge) Value() float64 {
	return float64(atomic.LoadInt64(&g.value))
}

// CounterVec is a counter with one label dimension.
type CounterVec struct {
	name   string
	mu     sync.RWMutex
	values map[string]*Counter
}

func NewCounterVec(name string) *CounterVec {
	return &CounterVec{name: name, values: make(map[string]*Counter)}
}

// Inc increments the counter for the given label value.
func (cv *CounterVec) Inc(label string) {
	cv.mu.Lock()
	c, ok := cv.values[label]
	if !ok {
		c = NewCounter(cv.name)
		cv.values[label] = c
	}
	cv.mu.Unlock()
	c.Inc()
}

// Values returns a snapshot of all label values.
func (cv *CounterVec) Values() map[string]float64 {
	cv.mu.RLock()
	defer cv.mu.RUnlock()
	out := make(map[string]float64, len(cv.values))
	for label, c := range cv.values {
		out[label] = c.Value()
	}
	return out
}

// Histogram tracks sum, count, and max of observed values.
type Histogram struct {
	name  string
	mu    sync.Mutex
	sum   float64
	count int64
	max   float64
}

func NewHistogram(name string) *Histogram {
	return &Histogram{name: name}
}

// Observe records a value.
func (h *Histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sum += value
	h.count++
	if value > h.max {
		h.max = value
	}
}

// ObserveDuration records a duration in seconds.
func (h *Histogram) ObserveDuration(d time.Duration) {
	h.Observe(d.Seconds())
}

// Stats returns a snapshot.
func (h *Histogram) Stats() HistogramStats {
	h.mu.Lock()
	defer h.mu.Unlock()
	stats := HistogramStats{Count: h.count, Sum: h.sum, Max: h.max}
	if h.count > 0 {
		stats.Avg = h.sum / float64(h.count)
	}
	return stats
}

// HistogramStats is a histogram snapshot.
type HistogramStats struct {
	Count int64
	Sum   float64
	Max   float64
	Avg   float64
}
