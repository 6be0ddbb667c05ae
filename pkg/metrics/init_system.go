package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSystemMetrics() {
	r.UptimeSeconds = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "streamcount_uptime_seconds",
			Help: "Process uptime in seconds",
		},
	)

	r.GoRoutines = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "streamcount_goroutines",
			Help: "Current number of goroutines",
		},
	)

	r.MemoryAllocBytes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "streamcount_memory_alloc_bytes",
			Help: "Bytes of allocated heap objects",
		},
	)
}

// StartSystemCollector updates system metrics periodically until the
// stop channel closes.
func (r *Registry) StartSystemCollector(interval time.Duration, stop <-chan struct{}) {
	start := time.Now()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				var m runtime.MemStats
				runtime.ReadMemStats(&m)
				r.UptimeSeconds.Set(time.Since(start).Seconds())
				r.GoRoutines.Set(float64(runtime.NumGoroutine()))
				r.MemoryAllocBytes.Set(float64(m.Alloc))
			case <-stop:
				return
			}
		}
	}()
}
