// Package grading is the seam between the simulators and the platform's
// submission flow: it runs a submission through pysim or javasim, compares
// the output with the task's expected output and reports a verdict.
package grading
