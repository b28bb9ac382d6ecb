package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/chzyer/readline"
	"go.uber.org/zap"

	"github.com/mgomes/codesim/grading"
	"github.com/mgomes/codesim/internal/config"
	"github.com/mgomes/codesim/javasim"
	"github.com/mgomes/codesim/pysim"
)

var errInputCancelled = errors.New("input cancelled")

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	lang := fs.String("lang", "", "source language (python or java), inferred from the extension when empty")
	useTUI := fs.Bool("tui", false, "run python sources in the interactive terminal UI")
	configPath := fs.String("config", "", "path to a YAML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("codesim run: source path required")
	}
	source, language, err := readSource(remaining[0], *lang)
	if err != nil {
		return err
	}
	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if language == grading.LanguageJava {
		matcher := javasim.NewMatcher(javasim.Config{Logger: log})
		fmt.Print(matcher.Execute(source))
		return nil
	}

	interp := pysim.NewInterpreter(pysim.Config{
		MaxLinkedNodes: cfg.Interpreter.MaxLinkedNodes,
		Logger:         log,
	})
	log.Debug("interpreter ready", zap.String("limits", interp.ConfigSummary()))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if *useTUI {
		return runTUI(ctx, interp, source)
	}

	reader := &readlineReader{}
	defer reader.Close()
	return runConsole(ctx, interp, source, reader, os.Stdout)
}

// lineReader answers one input() prompt.
type lineReader interface {
	ReadLine(prompt string) (string, error)
}

// readlineReader opens the terminal on first use so runs that never call
// input() do not touch it.
type readlineReader struct {
	rl *readline.Instance
}

func (r *readlineReader) ReadLine(prompt string) (string, error) {
	if r.rl == nil {
		rl, err := readline.NewEx(&readline.Config{
			Prompt:          prompt,
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
		})
		if err != nil {
			return "", err
		}
		r.rl = rl
	}
	r.rl.SetPrompt(prompt)
	return r.rl.Readline()
}

func (r *readlineReader) Close() error {
	if r.rl == nil {
		return nil
	}
	return r.rl.Close()
}

// runConsole streams a run's output to w and answers its input requests from
// in. The interpreter echoes each prompt and answer into its output; the
// terminal already shows them, so that echo is skipped.
func runConsole(ctx context.Context, interp *pysim.Interpreter, source string, in lineReader, w io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	run := interp.Start(ctx, source)

	printed := 0
	echo := ""
	flush := func() {
		out := run.Output()
		fresh := out[printed:]
		printed = len(out)
		if echo != "" {
			fresh = strings.TrimPrefix(fresh, echo)
			echo = ""
		}
		_, _ = io.WriteString(w, fresh)
	}

	for req := range run.Requests() {
		flush()
		value, err := in.ReadLine(req.Prompt)
		if err != nil {
			cancel()
			_, _ = run.Wait(context.Background())
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return errInputCancelled
			}
			return fmt.Errorf("read input: %w", err)
		}
		echo = req.Prompt + value + "\n"
		if err := run.Resolve(value); err != nil {
			return err
		}
	}

	_, err := run.Wait(context.Background())
	flush()
	return err
}
