package pysim

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	intLiteralPattern   = regexp.MustCompile(`^[-+]?\d+$`)
	floatLiteralPattern = regexp.MustCompile(`^[-+]?(?:\d+\.\d*|\.\d+|\d+(?:\.\d*)?[eE][-+]?\d+)$`)
	identifierPattern   = regexp.MustCompile(`^[A-Za-z_]\w*$`)
	attrAccessPattern   = regexp.MustCompile(`^([A-Za-z_]\w*)\.([A-Za-z_]\w*)$`)
)

// eval resolves a literal or name. There are no operators: text that matches
// nothing below evaluates to itself as a string.
func (exec *execution) eval(text string, env *Env) (Value, error) {
	text = strings.TrimSpace(text)

	if s, ok, err := unquote(text); err != nil {
		return NewNone(), err
	} else if ok {
		return NewString(s), nil
	}

	if intLiteralPattern.MatchString(text) {
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return NewInt(n), nil
		}
		f, _ := strconv.ParseFloat(text, 64)
		return NewFloat(f), nil
	}
	if floatLiteralPattern.MatchString(text) {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return NewNone(), fmt.Errorf("invalid float literal %q", text)
		}
		return NewFloat(f), nil
	}

	if identifierPattern.MatchString(text) {
		if val, ok := env.Get(text); ok {
			return val, nil
		}
	}

	if m := attrAccessPattern.FindStringSubmatch(text); m != nil {
		if obj, ok := env.Get(m[1]); ok {
			if inst := obj.Instance(); inst != nil {
				val, ok := inst.Attrs[m[2]]
				if !ok {
					return NewNone(), fmt.Errorf("'%s' object has no attribute '%s'", inst.Class.Name, m[2])
				}
				return val, nil
			}
		}
	}

	switch text {
	case "None", "null":
		return NewNone(), nil
	case "True":
		return NewBool(true), nil
	case "False":
		return NewBool(false), nil
	}

	return NewString(text), nil
}
