package pysim

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ClassDef is a fully scanned class. It is never mutated once the builder
// has finished it.
type ClassDef struct {
	Name       string
	Parent     string
	Methods    map[string]*Method
	Attributes map[string]struct{}
	Line       int
}

type Method struct {
	Name   string
	Params []Param
	Body   []MethodLine
}

// MethodLine is one trimmed source line of a method body, kept unparsed for
// re-interpretation at call time.
type MethodLine struct {
	Text string
	Line int
}

type Param struct {
	Name       string
	Default    string
	HasDefault bool
}

type Instance struct {
	Class   *ClassDef
	Methods map[string]*Method
	Attrs   map[string]Value
}

func newInstance(def *ClassDef) *Instance {
	inst := &Instance{Class: def, Methods: def.Methods, Attrs: make(map[string]Value, len(def.Attributes))}
	for name := range def.Attributes {
		inst.Attrs[name] = NewNone()
	}
	return inst
}

// AttributeNames returns the attribute names sorted for stable display.
func (def *ClassDef) AttributeNames() []string {
	names := make([]string, 0, len(def.Attributes))
	for name := range def.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Method) arity() (minArgs, maxArgs int) {
	for _, p := range m.Params {
		if !p.HasDefault {
			minArgs++
		}
	}
	return minArgs, len(m.Params)
}

var (
	defPattern      = regexp.MustCompile(`^def\s+([A-Za-z_]\w*)\s*\(([^)]*)\)\s*(?:->\s*[^:]+)?:\s*$`)
	selfAttrPattern = regexp.MustCompile(`self\.([A-Za-z_]\w*)`)
)

// classBuilder accumulates the lines of one class body while the line scanner
// walks past them.
type classBuilder struct {
	name       string
	parent     string
	line       int
	methods    map[string]*Method
	attributes map[string]struct{}
	current    *Method
	stray      []MethodLine
}

func newClassBuilder(stmt *ClassStmt) *classBuilder {
	return &classBuilder{
		name:       stmt.Name,
		parent:     stmt.Parent,
		line:       stmt.Line(),
		methods:    make(map[string]*Method),
		attributes: make(map[string]struct{}),
	}
}

func (b *classBuilder) add(text string, line int) {
	for _, m := range selfAttrPattern.FindAllStringSubmatch(text, -1) {
		b.attributes[m[1]] = struct{}{}
	}
	if m := defPattern.FindStringSubmatch(text); m != nil {
		b.current = &Method{Name: m[1], Params: parseParams(m[2])}
		b.methods[m[1]] = b.current
		return
	}
	if b.current == nil {
		b.stray = append(b.stray, MethodLine{Text: text, Line: line})
		return
	}
	b.current.Body = append(b.current.Body, MethodLine{Text: text, Line: line})
}

// finish seals the class. A known parent contributes the methods and
// attributes the child does not define itself.
func (b *classBuilder) finish(classes map[string]*ClassDef) (*ClassDef, error) {
	def := &ClassDef{
		Name:       b.name,
		Parent:     b.parent,
		Methods:    b.methods,
		Attributes: b.attributes,
		Line:       b.line,
	}
	if b.parent == "" || b.parent == "object" {
		return def, nil
	}
	parent, ok := classes[b.parent]
	if !ok {
		return def, fmt.Errorf("name '%s' is not defined", b.parent)
	}
	for name, method := range parent.Methods {
		if _, exists := def.Methods[name]; !exists {
			def.Methods[name] = method
		}
	}
	for name := range parent.Attributes {
		def.Attributes[name] = struct{}{}
	}
	return def, nil
}

func parseParams(raw string) []Param {
	var params []Param
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" || part == "self" {
			continue
		}
		name, def, hasDefault := strings.Cut(part, "=")
		name = strings.TrimSpace(name)
		if colon := strings.Index(name, ":"); colon >= 0 {
			name = strings.TrimSpace(name[:colon])
		}
		params = append(params, Param{Name: name, Default: strings.TrimSpace(def), HasDefault: hasDefault})
	}
	return params
}

// isIndented reports whether a raw line belongs to an enclosing block: a tab
// or at least two spaces of leading indentation.
func isIndented(raw string) bool {
	return strings.HasPrefix(raw, "\t") || strings.HasPrefix(raw, "  ")
}

// scanClassBody collects the indented body that starts at lines[next]. Blank
// and comment-only lines never end a body. It returns the builder and the
// index of the first line after the body.
func scanClassBody(stmt *ClassStmt, lines []string, next int) (*classBuilder, int) {
	builder := newClassBuilder(stmt)
	j := next
	for ; j < len(lines); j++ {
		raw := lines[j]
		text := stripComment(strings.TrimSpace(raw))
		if text == "" {
			continue
		}
		if !isIndented(raw) {
			break
		}
		builder.add(text, j+1)
	}
	return builder, j
}
