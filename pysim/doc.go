// Package pysim simulates a small, line-oriented subset of Python for the
// task-submission editor. Supported constructs:
//   - Assignment of literals, variables and obj.attr lookups.
//   - Class definitions whose methods may only assign self attributes.
//   - Instantiation via `x = Name(args)`, running __init__.
//   - `print(...)` with sep/end keywords and `input(...)`, optionally wrapped
//     in int() or float().
//   - Method call statements `obj.method(args)`.
//
// There are no operators or control flow. Each line runs independently: a
// failing line is reported inline as `Error on line N: ...` and the run
// continues. Input requests either go through a caller-supplied InputFunc or,
// with Start, through a Run that exposes its awaiting-input state.
package pysim
