package pysim

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Config controls interpreter rendering limits and logging.
type Config struct {
	MaxLinkedNodes int
	Logger         *zap.Logger
}

// Interpreter runs Python-like sources. It holds no per-run state, so one
// Interpreter can serve concurrent runs.
type Interpreter struct {
	config Config
	logger *zap.Logger
}

// InputRequest describes a pending input() call.
type InputRequest struct {
	Prompt   string
	Variable string
	Line     int
}

// InputFunc resolves an input request. It may block until a value is
// available; a context error aborts the run.
type InputFunc func(ctx context.Context, req InputRequest) (string, error)

// NewInterpreter constructs an Interpreter, filling zero-valued config fields
// with defaults.
func NewInterpreter(cfg Config) *Interpreter {
	if cfg.MaxLinkedNodes <= 0 {
		cfg.MaxLinkedNodes = 20
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Interpreter{config: cfg, logger: cfg.Logger.Named("pysim")}
}

// Execute runs source to completion and returns everything it printed,
// including inline line errors. The error is non-nil only when ctx ends the
// run early; the partial output is returned alongside it.
func (in *Interpreter) Execute(ctx context.Context, source string, input InputFunc) (string, error) {
	out := &outputBuffer{}
	err := in.execute(ctx, source, input, out)
	return out.String(), err
}

func (in *Interpreter) execute(ctx context.Context, source string, input InputFunc, out *outputBuffer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	exec := newExecution(ctx, in, source, input, out)
	return exec.run()
}

// ScriptedInput answers input requests from a fixed list of values in order.
func ScriptedInput(values ...string) InputFunc {
	next := 0
	return func(ctx context.Context, req InputRequest) (string, error) {
		if next >= len(values) {
			return "", errInputExhausted
		}
		value := values[next]
		next++
		return value, nil
	}
}

// ConfigSummary describes the interpreter limits for startup logs.
func (in *Interpreter) ConfigSummary() string {
	return fmt.Sprintf("linked_nodes=%d", in.config.MaxLinkedNodes)
}
