package main

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mgomes/codesim/grading"
	"github.com/mgomes/codesim/javasim"
	"github.com/mgomes/codesim/pysim"
)

type checkWarning struct {
	Line    int
	Message string
}

func checkCommand(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	lang := fs.String("lang", "", "source language (python or java), inferred from the extension when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("codesim check: source path required")
	}
	sourcePath, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve source path: %w", err)
	}
	source, language, err := readSource(sourcePath, *lang)
	if err != nil {
		return err
	}

	var warnings []checkWarning
	if language == grading.LanguageJava {
		warnings = checkHarness(source)
	} else {
		for _, w := range pysim.Analyze(source) {
			warnings = append(warnings, checkWarning{Line: w.Line, Message: w.Message})
		}
	}

	if len(warnings) == 0 {
		fmt.Println("No issues found")
		return nil
	}
	for _, w := range warnings {
		if w.Line > 0 {
			fmt.Printf("%s:%d: %s\n", sourcePath, w.Line, w.Message)
		} else {
			fmt.Printf("%s: %s\n", sourcePath, w.Message)
		}
	}
	return fmt.Errorf("check found %d issue(s)", len(warnings))
}

// checkHarness reports structural harness errors and heuristics the
// solution does not satisfy. The matcher has no line positions.
func checkHarness(source string) []checkWarning {
	report, err := javasim.NewMatcher(javasim.Config{}).Analyze(source)
	if err != nil {
		return []checkWarning{{Message: err.Error()}}
	}
	var warnings []checkWarning
	if !report.SolutionFound {
		warnings = append(warnings, checkWarning{Message: "no Solution class found; the whole source is checked"})
	}
	var failed []string
	for _, h := range report.Heuristics {
		if !h.Passed {
			failed = append(failed, h.Name)
		}
	}
	if len(failed) > 0 {
		warnings = append(warnings, checkWarning{Message: fmt.Sprintf(
			"%s does not show %s; its result is reported as %d",
			report.Method, strings.Join(failed, ", "), report.Result,
		)})
	}
	return warnings
}
