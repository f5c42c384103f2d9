package driver

import "time"

// Stage names a step of tokenizing one file.
type Stage string

const (
	// StageLoad reads the file into the FileSet.
	StageLoad Stage = "load"
	// StageLex runs the lexer.
	StageLex Stage = "lex"
)

// Status is the state of a file within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage is running.
	StatusWorking Status = "working"
	// StatusDone indicates the file was tokenized without errors.
	StatusDone Status = "done"
	// StatusError indicates a load failure or lexical errors.
	StatusError Status = "error"
)

// Event reports progress of one file; File is empty for run-wide events.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
	Tokens  int // set when lexing finishes
}

// ProgressSink consumes progress events. It may be called from several
// goroutines at once.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel. Once Done is closed, events
// that cannot be delivered are dropped instead of blocking the sender.
type ChannelSink struct {
	Ch   chan<- Event
	Done <-chan struct{}
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	select {
	case s.Ch <- evt:
	case <-s.Done:
	}
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
