package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/mgomes/codesim/grading"
	"github.com/mgomes/codesim/internal/config"
	"github.com/mgomes/codesim/internal/logger"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "check":
		return checkCommand(args[2:])
	case "grade":
		return gradeCommand(args[2:])
	case "serve":
		return serveCommand(args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] [args...]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run [-lang python|java] [-tui] [-config file] <source>")
	fmt.Fprintln(os.Stderr, "    run a submission, answering input() prompts from the terminal")
	fmt.Fprintln(os.Stderr, "  check [-lang python|java] <source>")
	fmt.Fprintln(os.Stderr, "    report lines the simulator would ignore")
	fmt.Fprintln(os.Stderr, "  grade [-config file] [-concurrency n] <task.yaml|dir>...")
	fmt.Fprintln(os.Stderr, "    grade task fixtures against their expected output")
	fmt.Fprintln(os.Stderr, "  serve [-config file] [-addr host:port]")
	fmt.Fprintln(os.Stderr, "    serve the grading HTTP endpoint")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}

// readSource resolves path and returns its contents together with the
// language, taken from langFlag or else from the file extension.
func readSource(path, langFlag string) (string, grading.Language, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", "", fmt.Errorf("resolve source path: %w", err)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return "", "", fmt.Errorf("read source: %w", err)
	}
	name := langFlag
	if name == "" {
		switch strings.ToLower(filepath.Ext(absPath)) {
		case ".py":
			name = "python"
		case ".java":
			name = "java"
		default:
			return "", "", fmt.Errorf("cannot infer language of %s; pass -lang", path)
		}
	}
	lang, err := grading.ParseLanguage(name)
	if err != nil {
		return "", "", err
	}
	return string(data), lang, nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		OutputPath: cfg.Log.OutputPath,
	})
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}
	return log, nil
}
