package ui

import (
	"fmt"

	"ifj25/internal/driver"
)

type fileItem struct {
	path    string
	label   string
	stage   driver.Stage
	status  driver.Status
	elapsed string
	tokens  int
}

func (it fileItem) finished() bool {
	return it.status == driver.StatusDone || it.status == driver.StatusError
}

// tracker is the per-file state behind the view. Events for files it was
// not created with are ignored.
type tracker struct {
	items []fileItem
	byKey map[string]int
}

func newTracker(files []string) tracker {
	t := tracker{items: make([]fileItem, len(files)), byKey: make(map[string]int, len(files))}
	for i, f := range files {
		t.items[i] = fileItem{path: f, label: statusLabel(driver.StageLoad, driver.StatusQueued), status: driver.StatusQueued}
		t.byKey[f] = i
	}
	return t
}

// apply folds ev into the tracker and reports whether anything changed.
func (t *tracker) apply(ev driver.Event) bool {
	i, ok := t.byKey[ev.File]
	if !ok {
		return false
	}
	it := &t.items[i]
	it.stage, it.status = ev.Stage, ev.Status
	it.label = statusLabel(ev.Stage, ev.Status)
	if it.finished() {
		if ev.Elapsed > 0 {
			it.elapsed = fmt.Sprintf("%.1fms", float64(ev.Elapsed.Microseconds())/1000)
		}
		it.tokens = ev.Tokens
	}
	return true
}

func (t *tracker) counts() (finished, failed int) {
	for _, it := range t.items {
		if it.finished() {
			finished++
		}
		if it.status == driver.StatusError {
			failed++
		}
	}
	return finished, failed
}

// fraction is the mean per-file completion, in [0, 1].
func (t *tracker) fraction() float64 {
	if len(t.items) == 0 {
		return 0
	}
	var sum float64
	for _, it := range t.items {
		sum += progressFromStage(it.stage, it.status)
	}
	return sum / float64(len(t.items))
}

// stageWeight is how far along a file is while a stage is running.
var stageWeight = map[driver.Stage]float64{
	driver.StageLoad: 0.2,
	driver.StageLex:  0.5,
}

func progressFromStage(stage driver.Stage, status driver.Status) float64 {
	switch status {
	case driver.StatusDone, driver.StatusError:
		return 1
	case driver.StatusWorking:
		return stageWeight[stage]
	}
	return 0
}

var workingLabel = map[driver.Stage]string{
	driver.StageLoad: "loading",
	driver.StageLex:  "lexing",
}

func statusLabel(stage driver.Stage, status driver.Status) string {
	if status == driver.StatusWorking {
		return workingLabel[stage]
	}
	return string(status) // queued, done, error
}
