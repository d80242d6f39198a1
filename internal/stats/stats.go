package stats

import (
	"encoding/json"
	"expvar"
	"net/http"
	"sync"
	"time"
)

const statsVarName = "chatstore-stats"

type StatsProvider interface {
	Incr(name string)
	Add(name string, delta int64)
	RegisterMetric(name string)
	Run()
}

type StatsUpdater struct {
	vars        *expvar.Map
	updateChan  chan *metricsUpdateReq
	publishOnce sync.Once
}

type metricsUpdateReq struct {
	name  string
	value int64
	done  chan struct{}
}

// NewStatsUpdater creates a new stats updater instance. The counters are not
// published to the process-wide expvar registry until Publish is called.
func NewStatsUpdater() *StatsUpdater {
	su := &StatsUpdater{
		vars:       new(expvar.Map).Init(),
		updateChan: make(chan *metricsUpdateReq, 512),
	}
	su.initializeMetrics()

	return su
}

func (su *StatsUpdater) initializeMetrics() {
	startTime := time.Now()
	su.vars.Set("Uptime", expvar.Func(func() any {
		return time.Since(startTime).Milliseconds()
	}))
}

// Publish exposes the counters under /debug/vars. Repeated calls are no-ops.
func (su *StatsUpdater) Publish() {
	su.publishOnce.Do(func() {
		expvar.Publish(statsVarName, su.vars)
	})
}

func (su *StatsUpdater) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		json.NewEncoder(w).Encode(su.Snapshot())
	})
}

// Snapshot returns the current value of every registered metric.
func (su *StatsUpdater) Snapshot() map[string]any {
	data := make(map[string]any)
	su.vars.Do(func(kv expvar.KeyValue) {
		var value any
		json.Unmarshal([]byte(kv.Value.String()), &value)
		data[kv.Key] = value
	})
	return data
}

func (su *StatsUpdater) Value(name string) int64 {
	if metric, ok := su.vars.Get(name).(*expvar.Int); ok {
		return metric.Value()
	}
	return 0
}

func (su *StatsUpdater) updateMetrics() {
	for req := range su.updateChan {
		if req.done != nil {
			close(req.done)
			continue
		}

		metric, ok := su.vars.Get(req.name).(*expvar.Int)
		if !ok {
			panic("metric not found: " + req.name)
		}

		metric.Add(req.value)
	}
}

func (su *StatsUpdater) Incr(name string) {
	su.Add(name, 1)
}

func (su *StatsUpdater) Add(name string, delta int64) {
	su.updateChan <- &metricsUpdateReq{name: name, value: delta}
}

// Flush blocks until every update queued before the call has been applied.
func (su *StatsUpdater) Flush() {
	done := make(chan struct{})
	su.updateChan <- &metricsUpdateReq{done: done}
	<-done
}

func (su *StatsUpdater) RegisterMetric(name string) {
	if su.vars.Get(name) != nil {
		return
	}
	su.vars.Set(name, new(expvar.Int))
}

func (su *StatsUpdater) Run() {
	go su.updateMetrics()
}

func (su *StatsUpdater) Stop() {
	close(su.updateChan)
}

type discard struct{}

func (discard) Incr(string) {}
func (discard) Add(string, int64) {}
func (discard) RegisterMetric(string) {}
func (discard) Run() {}

// Discard drops every update.
var Discard StatsProvider = discard{}
