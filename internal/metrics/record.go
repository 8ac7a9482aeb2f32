package metrics

import "time"

func (r *Registry) RecordSimulationStarted() {
	if r == nil {
		return
	}
	r.SimulationsStarted.Inc()
	r.SimulationsActive.Inc()
}

func (r *Registry) RecordSimulationStopped() {
	if r == nil {
		return
	}
	r.SimulationsStopped.Inc()
	r.SimulationsActive.Dec()
}

func (r *Registry) RecordTick(d time.Duration) {
	if r == nil {
		return
	}
	r.TicksTotal.Inc()
	r.TickDuration.Observe(d.Seconds())
}

// RecordDraw outcome is one of "drawn", "empty" or "unmounted".
func (r *Registry) RecordDraw(outcome string) {
	if r == nil {
		return
	}
	r.DrawsTotal.WithLabelValues(outcome).Inc()
}

func (r *Registry) RecordSessionOpened() {
	if r == nil {
		return
	}
	r.SessionsActive.Inc()
}

func (r *Registry) RecordSessionClosed() {
	if r == nil {
		return
	}
	r.SessionsActive.Dec()
}

func (r *Registry) RecordSessionEvent(eventType string) {
	if r == nil {
		return
	}
	r.SessionEvents.WithLabelValues(eventType).Inc()
}

func (r *Registry) RecordFetch(operation, status string, d time.Duration) {
	if r == nil {
		return
	}
	r.FetchDuration.WithLabelValues(operation, status).Observe(d.Seconds())
}

// RecordCache result is "hit", "miss" or "error".
func (r *Registry) RecordCache(result string) {
	if r == nil {
		return
	}
	r.CacheResults.WithLabelValues(result).Inc()
}

func (r *Registry) RecordLayoutRequest(code string) {
	if r == nil {
		return
	}
	r.LayoutRequests.WithLabelValues(code).Inc()
}
