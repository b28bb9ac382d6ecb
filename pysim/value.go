package pysim

import (
	"fmt"
	"strconv"
	"strings"
)

type ValueKind int

const (
	KindNone ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindInstance
)

type Value struct {
	kind ValueKind
	data any
}

func NewNone() Value           { return Value{kind: KindNone} }
func NewBool(b bool) Value     { return Value{kind: KindBool, data: b} }
func NewInt(i int64) Value     { return Value{kind: KindInt, data: i} }
func NewFloat(f float64) Value { return Value{kind: KindFloat, data: f} }
func NewString(s string) Value { return Value{kind: KindString, data: s} }
func NewInstance(inst *Instance) Value {
	return Value{kind: KindInstance, data: inst}
}

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.data.(bool)
	}
	return false
}

func (v Value) Instance() *Instance {
	if v.kind != KindInstance {
		return nil
	}
	return v.data.(*Instance)
}

func (k ValueKind) String() string {
	switch k {
	case KindNone:
		return "NoneType"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "str"
	case KindInstance:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// String renders the value the way print shows it. Linked-list rendering
// needs interpreter limits and lives in format.go.
func (v Value) String() string {
	switch v.kind {
	case KindNone:
		return "None"
	case KindBool:
		if v.Bool() {
			return "True"
		}
		return "False"
	case KindInt:
		return strconv.FormatInt(v.data.(int64), 10)
	case KindFloat:
		return formatFloat(v.data.(float64))
	case KindString:
		return v.data.(string)
	case KindInstance:
		return fmt.Sprintf("<__main__.%s object>", v.data.(*Instance).Class.Name)
	default:
		return fmt.Sprintf("<%v>", v.kind)
	}
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if strings.ContainsAny(s, ".eEn") {
		return s
	}
	return s + ".0"
}
