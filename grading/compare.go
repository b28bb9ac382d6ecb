package grading

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// normalizeOutput drops trailing whitespace on every line and trailing blank
// lines, the differences a learner cannot see in the output panel.
func normalizeOutput(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// OutputsMatch reports whether actual equals expected after normalisation.
func OutputsMatch(actual, expected string) bool {
	return normalizeOutput(actual) == normalizeOutput(expected)
}

// Diff renders a unified diff from expected to actual output.
func Diff(expected, actual string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(normalizeOutput(expected) + "\n"),
		B:        difflib.SplitLines(normalizeOutput(actual) + "\n"),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  2,
	})
	if err != nil {
		return ""
	}
	return diff
}
