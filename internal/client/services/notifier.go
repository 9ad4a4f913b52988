package services

import (
	"fmt"
	"io"
	"sync"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelPlain   Level = ""
)

// Notice is a short transient message for the person using the device.
type Notice struct {
	Level   Level
	Message string
}

type Notifier interface {
	Notify(n Notice)
}

// WriterNotifier prints notices as lines on W.
type WriterNotifier struct {
	W io.Writer
}

func (w WriterNotifier) Notify(n Notice) {
	switch n.Level {
	case LevelSuccess:
		fmt.Fprintf(w.W, "✓ %s\n", n.Message)
	case LevelInfo:
		fmt.Fprintf(w.W, "i %s\n", n.Message)
	default:
		fmt.Fprintln(w.W, n.Message)
	}
}

// Recorder keeps every notice; useful in tests.
type Recorder struct {
	mu      sync.Mutex
	Notices []Notice
}

func (r *Recorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Notices = append(r.Notices, n)
}

// Messages returns the recorded messages in order.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.Notices))
	for _, n := range r.Notices {
		out = append(out, n.Message)
	}
	return out
}

type discard struct{}

func (discard) Notify(Notice) {}
