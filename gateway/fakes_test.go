package gateway

import (
	"strings"
	"sync"

	"github.com/go-kit/kit/metrics"
)

type countRecorder struct {
	mu   sync.Mutex
	keys []string
}

func (c *countRecorder) With(labelValues ...string) metrics.Counter {
	return labeledCount{rec: c, key: strings.Join(labelValues, ",")}
}

func (c *countRecorder) Add(float64) {}

type labeledCount struct {
	rec *countRecorder
	key string
}

func (l labeledCount) With(labelValues ...string) metrics.Counter {
	return labeledCount{rec: l.rec, key: l.key + "," + strings.Join(labelValues, ",")}
}

func (l labeledCount) Add(float64) {
	l.rec.mu.Lock()
	defer l.rec.mu.Unlock()
	l.rec.keys = append(l.rec.keys, l.key)
}

type discardHistogram struct{}

func (h discardHistogram) With(...string) metrics.Histogram { return h }

func (discardHistogram) Observe(float64) {}
