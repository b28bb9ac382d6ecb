package javasim

import (
	"errors"
	"sort"

	"go.uber.org/zap"
)

// Config controls matcher logging.
type Config struct {
	Logger *zap.Logger
}

// Matcher validates Java-like submissions that pair a Solution class with a
// hard-coded main harness. Validators are registered up front and are not
// modified while the matcher is in use.
type Matcher struct {
	validators map[string]Validator
	logger     *zap.Logger
}

// Report is the structured outcome of one matcher run.
type Report struct {
	Method        string
	Argument      string
	ResultName    string
	Data          []int64
	SolutionFound bool
	Heuristics    []HeuristicResult
	Trusted       bool
	Result        int64
	Output        string
}

// NewMatcher constructs a Matcher with the built-in validators registered.
func NewMatcher(cfg Config) *Matcher {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	m := &Matcher{
		validators: make(map[string]Validator),
		logger:     cfg.Logger.Named("javasim"),
	}
	m.Register(TotalSalesValidator())
	return m
}

// Register adds or replaces the validator for v.Method.
func (m *Matcher) Register(v Validator) {
	m.validators[v.Method] = v
}

// Methods lists the method names the matcher can validate.
func (m *Matcher) Methods() []string {
	names := make([]string, 0, len(m.validators))
	for name := range m.validators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs the matcher and returns the replayed harness output. Failures
// come back as an "Execution Error: ..." string, never as a Go error.
func (m *Matcher) Execute(source string) string {
	report, err := m.Analyze(source)
	if err != nil {
		var execErr *ExecutionError
		if errors.As(err, &execErr) {
			return execErr.Error()
		}
		return executionErrorPrefix + err.Error()
	}
	return report.Output
}

// Analyze runs the matcher and returns the full report. Errors are
// *ExecutionError values.
func (m *Matcher) Analyze(source string) (*Report, error) {
	userCode, solutionFound := extractSolution(source)
	mainBody, ok := extractMain(source)
	if !ok {
		return nil, errMainNotFound
	}
	mainBody = stripComments(mainBody)

	arrays, err := collectIntArrays(mainBody)
	if err != nil {
		return nil, err
	}
	call, ok := findSolutionCall(mainBody)
	if !ok {
		return nil, errCallNotFound
	}
	data, ok := arrays[call.Argument]
	if !ok {
		return nil, executionErrorf("Could not find test data for argument '%s'.", call.Argument)
	}
	validator, ok := m.validators[call.Method]
	if !ok {
		return nil, executionErrorf("No validator available for method '%s'.", call.Method)
	}

	report := &Report{
		Method:        call.Method,
		Argument:      call.Argument,
		ResultName:    call.Holder,
		Data:          data,
		SolutionFound: solutionFound,
		Result:        validator.Sentinel,
	}
	body, _ := extractMethodBody(stripComments(userCode), call.Method)
	report.Heuristics, report.Trusted = validator.check(body)
	if report.Trusted {
		report.Result = validator.Compute(data)
	}
	report.Output = replayPrints(mainBody, call.Holder, report.Result)

	m.logger.Debug("harness validated",
		zap.String("method", report.Method),
		zap.String("argument", report.Argument),
		zap.Bool("solution_found", solutionFound),
		zap.Bool("trusted", report.Trusted),
		zap.Int64("result", report.Result),
	)
	return report, nil
}
