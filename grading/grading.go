package grading

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mgomes/codesim/javasim"
	"github.com/mgomes/codesim/pysim"
)

type Language string

const (
	LanguagePython Language = "python"
	LanguageJava   Language = "java"
)

// ErrUnsupportedLanguage is returned for submissions neither simulator handles.
var ErrUnsupportedLanguage = errors.New("grading: unsupported language")

// ParseLanguage maps user-facing language names onto a Language.
func ParseLanguage(name string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "python", "py", "python3":
		return LanguagePython, nil
	case "java":
		return LanguageJava, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, name)
	}
}

type Verdict string

const (
	VerdictPassed Verdict = "passed"
	VerdictFailed Verdict = "failed"
	VerdictError  Verdict = "error"
)

type Submission struct {
	ID       string
	TaskID   string
	Language Language
	Source   string
	Expected string
	Inputs   []string
}

type Result struct {
	SubmissionID string        `json:"submission_id"`
	TaskID       string        `json:"task_id,omitempty"`
	Language     Language      `json:"language"`
	Verdict      Verdict       `json:"verdict"`
	Output       string        `json:"output"`
	Expected     string        `json:"expected"`
	Diff         string        `json:"diff,omitempty"`
	Error        string        `json:"error,omitempty"`
	Duration     time.Duration `json:"duration_ns"`
}

func (r Result) Passed() bool { return r.Verdict == VerdictPassed }

type Config struct {
	Timeout        time.Duration
	Concurrency    int
	MaxLinkedNodes int
}

// Grader runs submissions through the matching simulator and compares the
// output with the expected text. Each submission gets fresh simulator state.
type Grader struct {
	config  Config
	interp  *pysim.Interpreter
	matcher *javasim.Matcher
	logger  *zap.Logger
}

func NewGrader(cfg Config, logger *zap.Logger) *Grader {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Grader{
		config:  cfg,
		interp:  pysim.NewInterpreter(pysim.Config{MaxLinkedNodes: cfg.MaxLinkedNodes, Logger: logger}),
		matcher: javasim.NewMatcher(javasim.Config{Logger: logger}),
		logger:  logger.Named("grading"),
	}
	g.logger.Info("grader ready",
		zap.Duration("timeout", cfg.Timeout),
		zap.Int("concurrency", cfg.Concurrency),
		zap.String("interpreter", g.interp.ConfigSummary()),
		zap.Strings("java_methods", g.matcher.Methods()),
	)
	return g
}

// Grade runs one submission. Python submissions read their input() values
// from sub.Inputs in order. A run cut short by the timeout gets VerdictError.
func (g *Grader) Grade(ctx context.Context, sub Submission) (Result, error) {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	result := Result{
		SubmissionID: sub.ID,
		TaskID:       sub.TaskID,
		Language:     sub.Language,
		Expected:     sub.Expected,
	}

	start := time.Now()
	runCtx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	switch sub.Language {
	case LanguagePython:
		out, err := g.interp.Execute(runCtx, sub.Source, pysim.ScriptedInput(sub.Inputs...))
		result.Output = out
		if err != nil {
			result.Error = err.Error()
		}
	case LanguageJava:
		result.Output = g.matcher.Execute(sub.Source)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, sub.Language)
	}
	result.Duration = time.Since(start)

	switch {
	case result.Error != "":
		result.Verdict = VerdictError
	case OutputsMatch(result.Output, sub.Expected):
		result.Verdict = VerdictPassed
	default:
		result.Verdict = VerdictFailed
		result.Diff = Diff(sub.Expected, result.Output)
	}

	g.logger.Info("submission graded",
		zap.String("submission_id", result.SubmissionID),
		zap.String("task_id", result.TaskID),
		zap.String("language", string(result.Language)),
		zap.String("verdict", string(result.Verdict)),
		zap.Duration("duration", result.Duration),
	)
	return result, nil
}

// GradeAll grades submissions concurrently, at most Config.Concurrency at a
// time. Results keep the order of subs.
func (g *Grader) GradeAll(ctx context.Context, subs []Submission) ([]Result, error) {
	results := make([]Result, len(subs))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.config.Concurrency)
	for i, sub := range subs {
		i, sub := i, sub
		eg.Go(func() error {
			res, err := g.Grade(egCtx, sub)
			if err != nil {
				return fmt.Errorf("grade submission %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
