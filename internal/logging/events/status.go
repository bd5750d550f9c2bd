package events

import "github.com/mtakeda/editor-tab-sync/internal/logging"

type StatusTracer struct{}

var Status = StatusTracer{}

func (StatusTracer) Update(count int) {
	logging.Trace("status.update", map[string]interface{}{"count": count})
}

func (StatusTracer) Dismiss(path, reason string) {
	logging.Trace("status.dismiss", map[string]interface{}{"path": path, "reason": reason})
}

func (StatusTracer) Notify(path string) {
	logging.Trace("status.notify", map[string]interface{}{"path": path})
}

type TimerTracer struct{}

var Timer = TimerTracer{}

func (TimerTracer) Arm(path string, generation uint64) {
	logging.Trace("timer.arm", map[string]interface{}{"path": path, "generation": generation})
}

func (TimerTracer) Fire(path string, generation uint64) {
	logging.Trace("timer.fire", map[string]interface{}{"path": path, "generation": generation})
}
