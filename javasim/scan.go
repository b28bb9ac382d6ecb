package javasim

import "strings"

// skipLiteral advances past a string or char literal or a comment starting at
// i. It returns i unchanged when nothing is there to skip.
func skipLiteral(src string, i int) int {
	switch {
	case strings.HasPrefix(src[i:], "//"):
		if nl := strings.IndexByte(src[i:], '\n'); nl >= 0 {
			return i + nl
		}
		return len(src)
	case strings.HasPrefix(src[i:], "/*"):
		if end := strings.Index(src[i+2:], "*/"); end >= 0 {
			return i + 2 + end + 1
		}
		return len(src)
	case src[i] == '"' || src[i] == '\'':
		quote := src[i]
		for j := i + 1; j < len(src); j++ {
			switch src[j] {
			case '\\':
				j++
			case quote:
				return j
			}
		}
		return len(src)
	}
	return i
}

// matchBracket returns the index of the bracket closing the one at open,
// ignoring brackets inside literals and comments, or -1.
func matchBracket(src string, open int) int {
	if open < 0 || open >= len(src) {
		return -1
	}
	opener := src[open]
	var closer byte
	switch opener {
	case '{':
		closer = '}'
	case '(':
		closer = ')'
	default:
		return -1
	}
	depth := 0
	for i := open; i < len(src); i++ {
		if next := skipLiteral(src, i); next != i {
			i = next
			continue
		}
		switch src[i] {
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// stripComments blanks out comments so textual heuristics only see code.
func stripComments(src string) string {
	var b strings.Builder
	for i := 0; i < len(src); i++ {
		if strings.HasPrefix(src[i:], "//") || strings.HasPrefix(src[i:], "/*") {
			i = skipLiteral(src, i)
			b.WriteByte(' ')
			if i < len(src) && src[i] == '\n' {
				b.WriteByte('\n')
			}
			continue
		}
		if src[i] == '"' || src[i] == '\'' {
			end := skipLiteral(src, i)
			if end >= len(src) {
				b.WriteString(src[i:])
				break
			}
			b.WriteString(src[i : end+1])
			i = end
			continue
		}
		b.WriteByte(src[i])
	}
	return b.String()
}

func unescapeJava(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
