package events

import "github.com/mtakeda/editor-tab-sync/internal/logging"

type TabTracer struct{}

var Tab = TabTracer{}

func (TabTracer) Click(index int, name string) {
	logging.Trace("tab.click", map[string]interface{}{"index": index, "name": name})
}

func (TabTracer) FocusAdopted(index int, name string) {
	logging.Trace("tab.focus.adopted", map[string]interface{}{"index": index, "name": name})
}

func (TabTracer) FocusSuppressed() {
	logging.Trace("tab.focus.suppressed", nil)
}

func (TabTracer) Snapshot(count int, changed bool) {
	logging.Trace("tab.snapshot", map[string]interface{}{"count": count, "changed": changed})
}

func (TabTracer) SnapshotError(err error) {
	if err == nil {
		return
	}
	logging.Trace("tab.snapshot.error", map[string]interface{}{"error": err.Error()})
}

func (TabTracer) Reorder(from, to int) {
	logging.Trace("tab.reorder", map[string]interface{}{"from": from, "to": to})
}

func (TabTracer) Close(name string) {
	logging.Trace("tab.close", map[string]interface{}{"name": name})
}

func (TabTracer) Open() {
	logging.Trace("tab.open", nil)
}
