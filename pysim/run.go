package pysim

import (
	"context"
	"strings"
	"sync"
)

type State int

const (
	StateRunning State = iota
	StateAwaitingInput
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateAwaitingInput:
		return "awaiting_input"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

type outputBuffer struct {
	mu sync.Mutex
	b  strings.Builder
}

func (o *outputBuffer) WriteString(s string) {
	o.mu.Lock()
	o.b.WriteString(s)
	o.mu.Unlock()
}

func (o *outputBuffer) String() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.b.String()
}

// Run is an interpreter run executing in its own goroutine. Input requests
// are surfaced on Requests and answered with Resolve, so the owner can watch
// a stalled run and cancel it through the context passed to Start.
type Run struct {
	ctx       context.Context
	mu        sync.Mutex
	state     State
	pending   *InputRequest
	requests  chan InputRequest
	responses chan string
	done      chan struct{}
	out       outputBuffer
	err       error
}

// Start begins executing source and returns immediately.
func (in *Interpreter) Start(ctx context.Context, source string) *Run {
	if ctx == nil {
		ctx = context.Background()
	}
	r := &Run{
		ctx:       ctx,
		requests:  make(chan InputRequest, 1),
		responses: make(chan string, 1),
		done:      make(chan struct{}),
	}
	go func() {
		err := in.execute(ctx, source, r.awaitInput, &r.out)
		r.mu.Lock()
		r.state = StateCompleted
		r.pending = nil
		r.err = err
		r.mu.Unlock()
		close(r.requests)
		close(r.done)
	}()
	return r
}

func (r *Run) awaitInput(ctx context.Context, req InputRequest) (string, error) {
	r.mu.Lock()
	r.state = StateAwaitingInput
	r.pending = &req
	r.mu.Unlock()

	select {
	case <-r.requests:
	default:
	}
	r.requests <- req

	select {
	case value := <-r.responses:
		return value, nil
	case <-ctx.Done():
		r.mu.Lock()
		r.state = StateRunning
		r.pending = nil
		r.mu.Unlock()
		return "", ctx.Err()
	}
}

// State reports whether the run is executing, blocked on input, or finished.
func (r *Run) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Pending returns the outstanding input request, if any.
func (r *Run) Pending() (InputRequest, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending == nil {
		return InputRequest{}, false
	}
	return *r.pending, true
}

// Requests delivers each input request once. The channel is closed when the
// run completes.
func (r *Run) Requests() <-chan InputRequest {
	return r.requests
}

// Resolve answers the pending input request. Once the run's context has
// ended, Resolve returns the context error and the value is not delivered.
func (r *Run) Resolve(value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateCompleted {
		return ErrRunCompleted
	}
	if r.ctx != nil {
		if err := r.ctx.Err(); err != nil {
			return err
		}
	}
	switch r.state {
	case StateAwaitingInput:
	default:
		return ErrNoPendingInput
	}
	r.state = StateRunning
	r.pending = nil
	r.responses <- value
	return nil
}

// Output returns the text produced so far.
func (r *Run) Output() string {
	return r.out.String()
}

// Done is closed once the run has completed.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the run completes or ctx ends, returning the output and
// the run's own error. A ctx ending here does not stop the run.
func (r *Run) Wait(ctx context.Context) (string, error) {
	select {
	case <-r.done:
		r.mu.Lock()
		defer r.mu.Unlock()
		return r.out.String(), r.err
	case <-ctx.Done():
		return r.out.String(), ctx.Err()
	}
}
