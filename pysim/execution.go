package pysim

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// execution is the state of a single run. It is discarded when the run ends.
type execution struct {
	ctx     context.Context
	interp  *Interpreter
	logger  *zap.Logger
	lines   []string
	globals *Env
	classes map[string]*ClassDef
	out     *outputBuffer
	input   InputFunc
}

var (
	constructorPattern = regexp.MustCompile(`^([A-Za-z_]\w*)\s*\(`)
	inputWrapPattern   = regexp.MustCompile(`^(int|float|str)\s*\(\s*input\s*\(`)
	printKeywordArg    = regexp.MustCompile(`^(sep|end)\s*=\s*(.+)$`)
)

func newExecution(ctx context.Context, in *Interpreter, source string, input InputFunc, out *outputBuffer) *execution {
	return &execution{
		ctx:     ctx,
		interp:  in,
		logger:  in.logger,
		lines:   strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n"),
		globals: newEnv(nil),
		classes: make(map[string]*ClassDef),
		out:     out,
		input:   input,
	}
}

func (exec *execution) run() error {
	for i := 0; i < len(exec.lines); i++ {
		if err := exec.ctx.Err(); err != nil {
			return err
		}
		text := stripComment(strings.TrimSpace(exec.lines[i]))
		if text == "" {
			continue
		}
		line := i + 1
		stmt := Classify(text, line)
		if cls, ok := stmt.(*ClassStmt); ok {
			i = exec.defineClass(cls, i+1) - 1
			continue
		}
		if err := exec.exec(stmt); err != nil {
			if ctxErr := exec.ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			exec.out.WriteString(asLineError(err, line).Error() + "\n")
		}
	}
	return nil
}

// defineClass consumes the indented body following a class header and
// returns the index of the first line after it.
func (exec *execution) defineClass(stmt *ClassStmt, next int) int {
	builder, end := scanClassBody(stmt, exec.lines, next)
	def, err := builder.finish(exec.classes)
	exec.classes[def.Name] = def
	if err != nil {
		exec.out.WriteString(asLineError(err, stmt.Line()).Error() + "\n")
	}
	exec.logger.Debug("class defined",
		zap.String("class", def.Name),
		zap.Int("line", stmt.Line()),
		zap.Int("methods", len(def.Methods)),
		zap.Strings("attributes", def.AttributeNames()),
	)
	return end
}

func (exec *execution) exec(stmt Statement) error {
	switch s := stmt.(type) {
	case *AssignStmt:
		return exec.assign(s)
	case *PrintStmt:
		return exec.print(s)
	case *InputStmt:
		_, err := exec.readInput(s.Call, "", s.Line())
		return err
	case *CallStmt:
		return exec.callStatement(s)
	case *ExprStmt:
		exec.logger.Debug("statement ignored", zap.Int("line", s.Line()), zap.String("text", s.Text))
		return nil
	default:
		return fmt.Errorf("unsupported statement %T", stmt)
	}
}

func (exec *execution) assign(s *AssignStmt) error {
	var (
		val Value
		err error
	)
	switch {
	case exec.isConstructorCall(s.Value):
		val, err = exec.construct(s.Value)
	case inputCallIndex(s.Value) != nil:
		val, err = exec.readInput(s.Value, s.Target, s.Line())
	default:
		val, err = exec.eval(s.Value, exec.globals)
	}
	if err != nil {
		return err
	}
	return exec.bind(s.Target, val)
}

func (exec *execution) bind(target string, val Value) error {
	objName, attr, dotted := strings.Cut(target, ".")
	if !dotted {
		exec.globals.Define(target, val)
		return nil
	}
	obj, ok := exec.globals.Get(objName)
	if !ok {
		return fmt.Errorf("name '%s' is not defined", objName)
	}
	inst := obj.Instance()
	if inst == nil {
		return fmt.Errorf("'%s' object has no attribute '%s'", obj.Kind(), attr)
	}
	inst.Attrs[attr] = val
	return nil
}

func (exec *execution) isConstructorCall(expr string) bool {
	m := constructorPattern.FindStringSubmatch(expr)
	if m == nil {
		return false
	}
	_, known := exec.classes[m[1]]
	return known
}

func (exec *execution) construct(expr string) (Value, error) {
	name := constructorPattern.FindStringSubmatch(expr)[1]
	def := exec.classes[name]
	open := strings.IndexByte(expr, '(')
	end := matchParen(expr, open)
	if end < 0 || strings.TrimSpace(expr[end+1:]) != "" {
		return NewNone(), fmt.Errorf("malformed constructor call to %s", name)
	}
	args, err := exec.evalArgs(expr[open+1:end], exec.globals)
	if err != nil {
		return NewNone(), err
	}
	inst := newInstance(def)
	if init, ok := inst.Methods["__init__"]; ok {
		if err := exec.invoke(inst, init, args); err != nil {
			return NewNone(), err
		}
	} else if len(args) > 0 {
		return NewNone(), fmt.Errorf("%s() takes no arguments", name)
	}
	return NewInstance(inst), nil
}

func (exec *execution) print(s *PrintStmt) error {
	end := matchParen(s.Call, 0)
	if end < 0 {
		return fmt.Errorf("'(' was never closed")
	}
	if strings.TrimSpace(s.Call[end+1:]) != "" {
		return fmt.Errorf("invalid syntax")
	}
	rawArgs, err := splitArgs(s.Call[1:end])
	if err != nil {
		return err
	}
	sep, terminator := " ", "\n"
	parts := make([]string, 0, len(rawArgs))
	for _, raw := range rawArgs {
		if m := printKeywordArg.FindStringSubmatch(raw); m != nil {
			val, err := exec.eval(m[2], exec.globals)
			if err != nil {
				return err
			}
			if m[1] == "sep" {
				sep = val.String()
			} else {
				terminator = val.String()
			}
			continue
		}
		val, err := exec.eval(raw, exec.globals)
		if err != nil {
			return err
		}
		parts = append(parts, exec.render(val))
	}
	exec.out.WriteString(strings.Join(parts, sep) + terminator)
	return nil
}

// readInput suspends on the input source. The prompt and the supplied value
// are echoed to the output the way a terminal shows them.
func (exec *execution) readInput(call, variable string, line int) (Value, error) {
	loc := inputCallIndex(call)
	open := loc[1] - 1
	end := matchParen(call, open)
	if end < 0 {
		return NewNone(), fmt.Errorf("'(' was never closed")
	}
	prompt := ""
	if raw := strings.TrimSpace(call[open+1 : end]); raw != "" {
		val, err := exec.eval(raw, exec.globals)
		if err != nil {
			return NewNone(), err
		}
		prompt = val.String()
	}
	if exec.input == nil {
		return NewNone(), errNoInputSource
	}
	req := InputRequest{Prompt: prompt, Variable: variable, Line: line}
	text, err := exec.input(exec.ctx, req)
	if err != nil {
		return NewNone(), err
	}
	exec.out.WriteString(prompt + text + "\n")

	conv := ""
	if m := inputWrapPattern.FindStringSubmatch(call); m != nil {
		conv = m[1]
	}
	switch conv {
	case "int":
		n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return NewNone(), fmt.Errorf("invalid literal for int() with base 10: '%s'", text)
		}
		return NewInt(n), nil
	case "float":
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return NewNone(), fmt.Errorf("could not convert string to float: '%s'", text)
		}
		return NewFloat(f), nil
	default:
		return NewString(text), nil
	}
}

func (exec *execution) callStatement(s *CallStmt) error {
	obj, ok := exec.globals.Get(s.Object)
	inst := obj.Instance()
	if !ok || inst == nil {
		exec.logger.Debug("call on unknown receiver ignored", zap.Int("line", s.Line()), zap.String("receiver", s.Object))
		return nil
	}
	method, ok := inst.Methods[s.Method]
	if !ok {
		exec.logger.Debug("call to undefined method ignored",
			zap.Int("line", s.Line()),
			zap.String("class", inst.Class.Name),
			zap.String("method", s.Method),
		)
		return nil
	}
	args, err := exec.evalArgs(s.Args, exec.globals)
	if err != nil {
		return err
	}
	return exec.invoke(inst, method, args)
}

// invoke runs a stored method body. Only `self.<attr> = <expr>` lines have
// an effect; parameters resolve to the positional arguments.
func (exec *execution) invoke(inst *Instance, method *Method, args []Value) error {
	minArgs, maxArgs := method.arity()
	qualified := inst.Class.Name + "." + method.Name
	if len(args) > maxArgs {
		return fmt.Errorf("%s() takes %d positional arguments but %d were given", qualified, maxArgs+1, len(args)+1)
	}
	if len(args) < minArgs {
		missing := minArgs - len(args)
		return fmt.Errorf("%s() missing %d required positional argument(s)", qualified, missing)
	}

	local := newEnv(exec.globals)
	local.Define("self", NewInstance(inst))
	for i, param := range method.Params {
		switch {
		case i < len(args):
			local.Define(param.Name, args[i])
		case param.HasDefault:
			val, err := exec.eval(param.Default, exec.globals)
			if err != nil {
				return err
			}
			local.Define(param.Name, val)
		default:
			local.Define(param.Name, NewNone())
		}
	}

	for _, ml := range method.Body {
		target, expr, ok := splitAssignment(ml.Text)
		attr, isSelf := strings.CutPrefix(target, "self.")
		if !ok || !isSelf {
			exec.logger.Debug("method line ignored",
				zap.String("method", qualified),
				zap.Int("line", ml.Line),
				zap.String("text", ml.Text),
			)
			continue
		}
		val, err := exec.eval(expr, local)
		if err != nil {
			return err
		}
		inst.Attrs[attr] = val
	}
	return nil
}

func (exec *execution) evalArgs(raw string, env *Env) ([]Value, error) {
	parts, err := splitArgs(raw)
	if err != nil {
		return nil, err
	}
	args := make([]Value, 0, len(parts))
	for _, part := range parts {
		val, err := exec.eval(part, env)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}
	return args, nil
}
