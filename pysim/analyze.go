package pysim

import (
	"fmt"
	"sort"
	"strings"
)

// Warning flags a line the interpreter will accept but not act on.
type Warning struct {
	Line    int
	Message string
}

// Analyze scans source without running it and reports lines that would be
// silently ignored: unsupported top-level statements, calls on names that are
// never bound to an instance or to methods the class does not define, and
// method-body lines other than self attribute assignments.
func Analyze(source string) []Warning {
	lines := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")
	classes := make(map[string]*ClassDef)
	instances := make(map[string]*ClassDef)
	var warnings []Warning
	warn := func(line int, format string, args ...any) {
		warnings = append(warnings, Warning{Line: line, Message: fmt.Sprintf(format, args...)})
	}

	for i := 0; i < len(lines); i++ {
		text := stripComment(strings.TrimSpace(lines[i]))
		if text == "" {
			continue
		}
		line := i + 1
		switch s := Classify(text, line).(type) {
		case *ClassStmt:
			builder, end := scanClassBody(s, lines, i+1)
			i = end - 1
			for _, ml := range builder.stray {
				if ml.Text != "pass" && !isDocstring(ml.Text) {
					warn(ml.Line, "class-level statement in %s is ignored", s.Name)
				}
			}
			for _, method := range builder.methods {
				for _, ml := range method.Body {
					target, _, ok := splitAssignment(ml.Text)
					if ok && strings.HasPrefix(target, "self.") {
						continue
					}
					if ml.Text == "pass" || isDocstring(ml.Text) {
						continue
					}
					warn(ml.Line, "only self attribute assignments run inside %s.%s; line is ignored", s.Name, method.Name)
				}
			}
			def, err := builder.finish(classes)
			if err != nil {
				warn(line, "%v", err)
			}
			classes[def.Name] = def
		case *AssignStmt:
			if m := constructorPattern.FindStringSubmatch(s.Value); m != nil {
				if def, ok := classes[m[1]]; ok && !strings.Contains(s.Target, ".") {
					instances[s.Target] = def
					continue
				}
			}
			delete(instances, s.Target)
		case *CallStmt:
			def, ok := instances[s.Object]
			if !ok {
				warn(line, "call on %s has no effect: it is not bound to an instance", s.Object)
			} else if _, found := def.Methods[s.Method]; !found {
				warn(line, "call to %s.%s has no effect: %s defines no such method", s.Object, s.Method, def.Name)
			}
		case *ExprStmt:
			warn(line, "unsupported statement is ignored: %s", s.Text)
		}
	}

	sort.SliceStable(warnings, func(i, j int) bool {
		return warnings[i].Line < warnings[j].Line
	})
	return warnings
}

func isDocstring(text string) bool {
	return strings.HasPrefix(text, `"""`) || strings.HasPrefix(text, `'''`)
}
