package pysim

import (
	"errors"
	"strings"
)

var (
	errUnterminatedString = errors.New("unterminated string literal")
	errUnbalancedParens   = errors.New("unbalanced parentheses")
)

// splitArgs splits a call argument list on top-level commas, keeping commas
// inside string literals and nested brackets together.
func splitArgs(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var (
		args  []string
		depth int
		quote byte
		start int
	)
	for i := 0; i < len(raw); i++ {
		c := raw[i]
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
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth < 0 {
				return nil, errUnbalancedParens
			}
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(raw[start:i]))
				start = i + 1
			}
		}
	}
	if quote != 0 {
		return nil, errUnterminatedString
	}
	if depth != 0 {
		return nil, errUnbalancedParens
	}
	if last := strings.TrimSpace(raw[start:]); last != "" || len(args) > 0 {
		args = append(args, last)
	}
	return args, nil
}

// unquote returns the contents of a complete single- or double-quoted
// literal. ok is false when text is not exactly one literal.
func unquote(text string) (string, bool, error) {
	if len(text) == 0 || (text[0] != '"' && text[0] != '\'') {
		return "", false, nil
	}
	quote := text[0]
	var b strings.Builder
	for i := 1; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '\\' && i+1 < len(text):
			i++
			b.WriteByte(unescape(text[i]))
		case c == quote:
			if i != len(text)-1 {
				return "", false, nil
			}
			return b.String(), true, nil
		default:
			b.WriteByte(c)
		}
	}
	return "", false, errUnterminatedString
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	default:
		return c
	}
}

// matchParen returns the index of the bracket closing the one at open, or -1.
func matchParen(text string, open int) int {
	depth := 0
	var quote byte
	for i := open; i < len(text); i++ {
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
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// stripComment drops a trailing # comment that is not inside a string literal.
func stripComment(text string) string {
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
		case '#':
			return strings.TrimSpace(text[:i])
		}
	}
	return text
}

// inputCallIndex locates the first input( call outside string literals. The
// span runs from the start of the name to just past the opening parenthesis;
// nil means there is none.
func inputCallIndex(text string) []int {
	const name = "input"
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
		if c == '"' || c == '\'' {
			quote = c
			continue
		}
		if !strings.HasPrefix(text[i:], name) || (i > 0 && isWordByte(text[i-1])) {
			continue
		}
		j := i + len(name)
		for j < len(text) && (text[j] == ' ' || text[j] == '\t') {
			j++
		}
		if j < len(text) && text[j] == '(' {
			return []int{i, j + 1}
		}
	}
	return nil
}

func isWordByte(c byte) bool {
	return c == '_' || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
