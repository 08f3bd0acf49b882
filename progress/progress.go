package progress

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	nb "github.com/katalvlaran/bcnbhd/neighborhood"
)

// ErrOptionViolation is returned for invalid constructor arguments.
var ErrOptionViolation = errors.New("progress: invalid option supplied")

// Logger logs clustering progress.
type Logger struct {
	log   *zap.Logger
	every int
	start time.Time

	visited int
	closed  int
	largest int
}

// NewLogger reports every `every` visited sequences; 0 logs only the
// summary from Done. A nil logger discards output.
func NewLogger(log *zap.Logger, every int) (*Logger, error) {
	if every < 0 {
		return nil, fmt.Errorf("%w: every cannot be negative (%d)", ErrOptionViolation, every)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Logger{log: log, every: every, start: time.Now()}, nil
}

// Visited counts one sequence.
func (l *Logger) Visited(string) {
	l.visited++
	if l.every > 0 && l.visited%l.every == 0 {
		l.log.Info("clustering",
			zap.Int("sequences", l.visited),
			zap.Int("neighborhoods", l.closed))
	}
}

// Closed counts one neighborhood.
func (l *Logger) Closed(size int) {
	l.closed++
	l.largest = max(l.largest, size)
}

// Done logs the summary.
func (l *Logger) Done() {
	l.log.Info("clustering done",
		zap.Int("sequences", l.visited),
		zap.Int("neighborhoods", l.closed),
		zap.Int("largest", l.largest),
		zap.Duration("elapsed", time.Since(l.start)))
}

// Metrics exports clustering counters.
type Metrics struct {
	visited prometheus.Counter
	closed  prometheus.Counter
	size    prometheus.Histogram
}

// NewMetrics creates and registers the clustering metrics on reg.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		visited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sequences_visited_total",
			Help:      "Sequences assigned to a neighborhood.",
		}),
		closed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "neighborhoods_total",
			Help:      "Neighborhoods closed.",
		}),
		size: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "neighborhood_size",
			Help:      "Members per neighborhood.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
	}
	for _, c := range []prometheus.Collector{m.visited, m.closed, m.size} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("progress: register: %w", err)
		}
	}
	return m, nil
}

// Visited counts one sequence.
func (m *Metrics) Visited(string) { m.visited.Inc() }

// Closed counts one neighborhood and records its size.
func (m *Metrics) Closed(size int) {
	m.closed.Inc()
	m.size.Observe(float64(size))
}

type multi []nb.Observer

func (m multi) Visited(seq string) {
	for _, o := range m {
		o.Visited(seq)
	}
}

func (m multi) Closed(size int) {
	for _, o := range m {
		o.Closed(size)
	}
}

// Multi fans events out to every non-nil observer.
func Multi(obs ...nb.Observer) nb.Observer {
	out := make(multi, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}
