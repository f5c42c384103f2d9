package trace

import (
	"strconv"
	"sync"
	"time"
)

// Probe samples process state for a heartbeat event.
type Probe func() map[string]string

// Heartbeat emits a liveness event every interval. A run whose heartbeats
// keep arriving while no span ends is stuck rather than slow.
type Heartbeat struct {
	tracer   Tracer
	interval time.Duration
	probe    Probe
	stop     chan struct{}
	done     chan struct{}
	once     sync.Once
}

// StartHeartbeat starts beating on tracer. It returns nil when the tracer
// is disabled or interval is not positive; Stop on nil is a no-op. The
// probe may be nil; otherwise its result becomes the event's Extra.
func StartHeartbeat(tracer Tracer, interval time.Duration, probe Probe) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{
		tracer:   tracer,
		interval: interval,
		probe:    probe,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Heartbeat) run() {
	defer close(h.done)
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	var beat uint64
	for {
		select {
		case <-h.stop:
			return
		case now := <-ticker.C:
			beat++
			ev := &Event{
				Time:   now,
				Seq:    NextSeq(),
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				GID:    getGoroutineID(),
				Name:   "heartbeat",
				Detail: "#" + strconv.FormatUint(beat, 10),
			}
			if h.probe != nil {
				ev.Extra = h.probe()
			}
			h.tracer.Emit(ev)
		}
	}
}

// Stop ends the heartbeat and waits for the goroutine to exit.
// It is safe to call more than once.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	<-h.done
}
