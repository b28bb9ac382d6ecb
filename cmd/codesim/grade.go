package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mgomes/codesim/grading"
	"github.com/mgomes/codesim/internal/config"
)

func gradeCommand(args []string) error {
	fs := flag.NewFlagSet("grade", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	configPath := fs.String("config", "", "path to a YAML config file")
	concurrency := fs.Int("concurrency", 0, "maximum submissions graded at once (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("codesim grade: task path required")
	}
	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		return err
	}
	if *concurrency > 0 {
		cfg.Grading.Concurrency = *concurrency
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	tasks, err := grading.LoadTasks(fs.Args()...)
	if err != nil {
		return err
	}
	subs := make([]grading.Submission, 0, len(tasks))
	for _, task := range tasks {
		sub, err := task.Submission()
		if err != nil {
			return err
		}
		subs = append(subs, sub)
	}

	grader := grading.NewGrader(grading.Config{
		Timeout:        cfg.Grading.Timeout,
		Concurrency:    cfg.Grading.Concurrency,
		MaxLinkedNodes: cfg.Interpreter.MaxLinkedNodes,
	}, log)
	results, err := grader.GradeAll(context.Background(), subs)
	if err != nil {
		return err
	}

	failed := printResults(os.Stdout, results)
	if failed > 0 {
		return fmt.Errorf("%d of %d task(s) did not pass", failed, len(results))
	}
	return nil
}

func printResults(w io.Writer, results []grading.Result) int {
	failed := 0
	for _, res := range results {
		var label string
		switch res.Verdict {
		case grading.VerdictPassed:
			label = resultStyle.Render("PASS ")
		case grading.VerdictFailed:
			label = errorStyle.Render("FAIL ")
		default:
			label = errorStyle.Render("ERROR")
		}
		fmt.Fprintf(w, "%s %s %s\n", label, res.TaskID, mutedStyle.Render(res.Duration.String()))
		if res.Passed() {
			continue
		}
		failed++
		if res.Error != "" {
			fmt.Fprintf(w, "  %s\n", res.Error)
		}
		if res.Diff != "" {
			for _, line := range strings.Split(strings.TrimRight(res.Diff, "\n"), "\n") {
				fmt.Fprintf(w, "  %s\n", diffLineStyle(line).Render(line))
			}
		}
	}
	return failed
}
