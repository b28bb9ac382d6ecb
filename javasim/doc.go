// Package javasim grades Java-like submissions without executing them.
//
// A submission holds a `class Solution { ... }` and a `main` harness. The
// matcher reads the harness's int[] literals and its single
// `solution.<method>(<arg>)` call, checks the submitted method body for the
// constructs a correct answer needs (a for loop, an accumulation and a
// return), and then either computes the answer with a trusted equivalent or
// returns the validator's sentinel. The harness's print calls are replayed
// textually to build the output.
//
// This is a heuristic stand-in for real execution: a plausible-looking but
// wrong body passes, and a correct body shaped differently (a stream
// reduction, recursion) fails.
package javasim
