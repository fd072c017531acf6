package driver

import "time"

// Stage identifies the step a file is in.
type Stage string

const (
	// StageRead loads and normalizes the file.
	StageRead Stage = "read"
	// StageFormat runs the formatter (or a cache lookup).
	StageFormat Stage = "format"
	// StageWrite writes the result back in write mode.
	StageWrite Stage = "write"
)

// Status is the state reported with a Stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage has started.
	StatusWorking Status = "working"
	// StatusDone indicates the file is already formatted.
	StatusDone Status = "done"
	// StatusChanged indicates formatting changed the file.
	StatusChanged Status = "changed"
	// StatusError indicates the file failed.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use: workers report independently.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// FuncSink adapts a function to ProgressSink.
type FuncSink func(Event)

func (f FuncSink) OnEvent(evt Event) {
	if f != nil {
		f(evt)
	}
}

func report(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
