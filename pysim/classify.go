package pysim

import (
	"regexp"
	"strings"
)

// Statement is one classified top-level source line. The variant set is
// closed: class header, assignment, print, input, method call, and ExprStmt
// for anything the interpreter ignores.
type Statement interface {
	stmtNode()
	Line() int
}

type ClassStmt struct {
	Name   string
	Parent string
	line   int
}

func (s *ClassStmt) stmtNode() {}
func (s *ClassStmt) Line() int { return s.line }

// AssignStmt binds Value to Target, which is an identifier or obj.attr.
type AssignStmt struct {
	Target string
	Value  string
	line   int
}

func (s *AssignStmt) stmtNode() {}
func (s *AssignStmt) Line() int { return s.line }

// PrintStmt keeps the parenthesised call text; the closing parenthesis is
// checked when the statement runs so a malformed call reports a line error.
type PrintStmt struct {
	Call string
	line int
}

func (s *PrintStmt) stmtNode() {}
func (s *PrintStmt) Line() int { return s.line }

type InputStmt struct {
	Call string
	line int
}

func (s *InputStmt) stmtNode() {}
func (s *InputStmt) Line() int { return s.line }

type CallStmt struct {
	Object string
	Method string
	Args   string
	line   int
}

func (s *CallStmt) stmtNode() {}
func (s *CallStmt) Line() int { return s.line }

type ExprStmt struct {
	Text string
	line int
}

func (s *ExprStmt) stmtNode() {}
func (s *ExprStmt) Line() int { return s.line }

var (
	classPattern        = regexp.MustCompile(`^class\s+([A-Za-z_]\w*)\s*(?:\(\s*([A-Za-z_][\w.]*)?\s*\))?\s*:\s*$`)
	assignTargetPattern = regexp.MustCompile(`^[A-Za-z_]\w*(?:\.[A-Za-z_]\w*)?$`)
	printPattern        = regexp.MustCompile(`^print\s*(\(.*)$`)
	methodCallPattern   = regexp.MustCompile(`^([A-Za-z_]\w*)\.([A-Za-z_]\w*)\s*\((.*)\)\s*$`)
)

var conditionalKeywords = []string{"if ", "elif ", "while ", "for ", "return ", "assert "}

// Classify tags a trimmed, non-blank, non-comment line. Priority follows the
// interpreter's dispatch order: class header, assignment, print, input,
// method call.
func Classify(text string, line int) Statement {
	if m := classPattern.FindStringSubmatch(text); m != nil {
		return &ClassStmt{Name: m[1], Parent: m[2], line: line}
	}
	if target, value, ok := splitAssignment(text); ok {
		return &AssignStmt{Target: target, Value: value, line: line}
	}
	if m := printPattern.FindStringSubmatch(text); m != nil {
		return &PrintStmt{Call: m[1], line: line}
	}
	if inputCallIndex(text) != nil {
		return &InputStmt{Call: text, line: line}
	}
	if m := methodCallPattern.FindStringSubmatch(text); m != nil {
		return &CallStmt{Object: m[1], Method: m[2], Args: m[3], line: line}
	}
	return &ExprStmt{Text: text, line: line}
}

// splitAssignment finds a plain `=` outside string literals. Comparison and
// augmented operators are not assignments, nor are conditional lines.
func splitAssignment(text string) (target, value string, ok bool) {
	for _, kw := range conditionalKeywords {
		if strings.HasPrefix(text, kw) {
			return "", "", false
		}
	}
	idx := assignmentIndex(text)
	if idx < 0 {
		return "", "", false
	}
	target = strings.TrimSpace(text[:idx])
	if !assignTargetPattern.MatchString(target) {
		return "", "", false
	}
	return target, strings.TrimSpace(text[idx+1:]), true
}

func assignmentIndex(text string) int {
	var quote byte
	for i := 0; i < len(text); i++ {
		c := text[i]
		if quote != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '=':
			if i+1 < len(text) && text[i+1] == '=' {
				i++
				continue
			}
			if i > 0 && strings.IndexByte("=!<>+-*/%&|^:", text[i-1]) >= 0 {
				continue
			}
			return i
		}
	}
	return -1
}
