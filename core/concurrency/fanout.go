package concurrency

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync/atomic"
)

// DefaultWorkers is the number of units a default run spawns.
const DefaultWorkers = 10

var ErrHandleJoined = errors.New("worker handle already joined")

// Action is the body of a single unit of work. It receives its own index.
type Action func(index int)

// PrintThreadNumber returns the reference action: one diagnostic line per
// unit, written to w without coordination between units.
func PrintThreadNumber(w io.Writer) Action {
	return func(index int) {
		fmt.Fprintf(w, "this is thread number %d\n", index)
	}
}

// WorkerFault records a unit whose action panicked.
type WorkerFault struct {
	Index int
	Value any
	Stack string
}

func (e *WorkerFault) Error() string {
	return fmt.Sprintf("worker %d terminated abnormally: %v", e.Index, e.Value)
}

// Handle is a one-shot completion token for a spawned unit.
type Handle struct {
	index  int
	done   chan struct{}
	fault  atomic.Pointer[WorkerFault]
	joined atomic.Bool
}

// Spawn starts action on its own goroutine and returns immediately.
func Spawn(index int, action Action) *Handle {
	h := &Handle{
		index: index,
		done:  make(chan struct{}),
	}
	go h.run(index, action)
	return h
}

func (h *Handle) run(index int, action Action) {
	defer close(h.done)
	defer h.recoverFault(index)
	action(index)
}

func (h *Handle) recoverFault(index int) {
	if r := recover(); r != nil {
		h.fault.Store(&WorkerFault{
			Index: index,
			Value: r,
			Stack: captureStack(),
		})
	}
}

// Join blocks until the unit has finished and returns its fault, if any.
// A handle can be joined once; later calls return ErrHandleJoined.
func (h *Handle) Join() error {
	if !h.joined.CompareAndSwap(false, true) {
		return ErrHandleJoined
	}
	<-h.done
	if f := h.fault.Load(); f != nil {
		return f
	}
	return nil
}

func (h *Handle) Done() <-chan struct{} {
	return h.done
}

func (h *Handle) Index() int {
	return h.index
}

// FanOutConfig contains configuration for a FanOut.
type FanOutConfig struct {
	Workers int
	Action  Action
	Logger  *slog.Logger // Optional, uses slog.Default() if nil
}

// FanOut spawns a fixed number of units and waits for all of them.
type FanOut struct {
	workers int
	action  Action
	logger  *slog.Logger
}

func NewFanOut(cfg FanOutConfig) *FanOut {
	if cfg.Workers < 0 {
		cfg.Workers = 0
	}
	if cfg.Action == nil {
		cfg.Action = PrintThreadNumber(os.Stdout)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &FanOut{
		workers: cfg.Workers,
		action:  cfg.Action,
		logger:  cfg.Logger,
	}
}

// Run spawns every unit, then joins every handle in spawn order. A unit
// that panics is logged and otherwise ignored; Run always returns normally.
func (f *FanOut) Run() {
	handles := f.spawnAll()
	f.joinAll(handles)
}

func (f *FanOut) spawnAll() []*Handle {
	handles := make([]*Handle, 0, f.workers)
	for i := 0; i < f.workers; i++ {
		handles = append(handles, Spawn(i, f.action))
	}
	f.logger.Debug("spawned workers", "count", len(handles))
	return handles
}

func (f *FanOut) joinAll(handles []*Handle) {
	faults := 0
	for _, h := range handles {
		err := h.Join()
		if err == nil {
			continue
		}
		faults++
		f.logger.Warn("worker terminated abnormally", "index", h.Index(), "error", err)
	}
	f.logger.Debug("joined workers", "count", len(handles), "faults", faults)
}

func (f *FanOut) Workers() int {
	return f.workers
}

// Run executes the reference fan-out against stdout with the given number of
// workers.
func Run(workers int) {
	NewFanOut(FanOutConfig{Workers: workers}).Run()
}

// RunDefault executes the reference fan-out with DefaultWorkers.
func RunDefault() {
	Run(DefaultWorkers)
}

func captureStack() string {
	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}
