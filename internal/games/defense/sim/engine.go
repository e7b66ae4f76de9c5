package sim

import (
	"context"
	"time"
)

// DefaultQueueSize is the command buffer used when none is given.
const DefaultQueueSize = 64

// Engine owns a State and is its only writer. Commands from any goroutine
// go through a buffered channel and are applied at the start of the next
// tick; events are delivered to listeners once per tick on the tick
// goroutine.
type Engine struct {
	state     *State
	commands  chan Command
	listeners []Listener
	observers []func(*State)
}

// NewEngine wraps state. queueSize <= 0 selects DefaultQueueSize.
func NewEngine(state *State, queueSize int) *Engine {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Engine{
		state:    state,
		commands: make(chan Command, queueSize),
	}
}

// State returns the owned state. Only read it from the tick goroutine
// (listeners, observers, or the caller of Step).
func (e *Engine) State() *State {
	return e.state
}

// Subscribe registers an event listener. Register listeners before the
// first Step or Run; the list is not guarded.
func (e *Engine) Subscribe(l Listener) {
	e.listeners = append(e.listeners, l)
}

// OnTick registers a callback that runs after every tick with read access
// to the state. Same registration rules as Subscribe.
func (e *Engine) OnTick(fn func(*State)) {
	e.observers = append(e.observers, fn)
}

// Submit queues a command without blocking. It is safe to call from any
// goroutine, including listeners.
func (e *Engine) Submit(c Command) error {
	select {
	case e.commands <- c:
		return nil
	default:
		return ErrQueueFull
	}
}

// Pending returns the number of queued commands.
func (e *Engine) Pending() int {
	return len(e.commands)
}

// Step applies queued commands, advances one tick and dispatches events.
func (e *Engine) Step() {
	e.drainCommands()
	e.state.Advance()
	e.dispatch()
	for _, fn := range e.observers {
		fn(e.state)
	}
}

// Flush applies queued commands and dispatches their events without
// advancing the clock.
func (e *Engine) Flush() {
	e.drainCommands()
	e.dispatch()
}

// Run drives Step at the state's tick rate until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(e.state.opts.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			e.Step()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (e *Engine) drainCommands() {
	for {
		select {
		case c := <-e.commands:
			e.apply(c)
		default:
			return
		}
	}
}

func (e *Engine) apply(c Command) {
	err := e.state.Apply(c)
	if err != nil {
		e.state.reject(err)
	}
	if c.Reply != nil {
		select {
		case c.Reply <- Result{Command: c, Err: err}:
		default:
		}
	}
}

func (e *Engine) dispatch() {
	events := e.state.DrainEvents()
	for _, ev := range events {
		for _, l := range e.listeners {
			l(ev)
		}
	}
}
