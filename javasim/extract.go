package javasim

import (
	"regexp"
	"strconv"
	"strings"
)

const defaultSolutionVar = "solution"

var (
	solutionClassPattern = regexp.MustCompile(`\bclass\s+Solution\b[^{;]*\{`)
	mainMethodPattern    = regexp.MustCompile(`\bpublic\s+static\s+void\s+main\s*\(\s*(?:final\s+)?String\s*(?:\[\s*\]\s*\w+|\w+\s*\[\s*\]|\.\.\.\s*\w+)\s*\)\s*(?:throws\s+[\w.,\s]+)?\{`)
	intArrayPattern      = regexp.MustCompile(`\bint\s*\[\s*\]\s+([A-Za-z_]\w*)\s*=\s*(?:new\s+int\s*\[\s*\]\s*)?\{([^}]*)\}`)
	solutionVarPattern   = regexp.MustCompile(`\bSolution\s+([A-Za-z_]\w*)\s*=\s*new\s+Solution\s*\(\s*\)`)
	printCallPattern     = regexp.MustCompile(`\bSystem\.out\.(println|print)\s*\(`)
	stringLiteralPattern = regexp.MustCompile(`^"((?:[^"\\]|\\.)*)"$`)
	concatPattern        = regexp.MustCompile(`^"((?:[^"\\]|\\.)*)"\s*\+\s*([A-Za-z_]\w*)$`)
)

// blockBody returns the text between the brace ending loc and its partner.
func blockBody(src string, loc []int) (string, bool) {
	if loc == nil {
		return "", false
	}
	open := loc[1] - 1
	end := matchBracket(src, open)
	if end < 0 {
		return "", false
	}
	return src[open+1 : end], true
}

// extractSolution returns the body of class Solution, or the whole source
// when no such class can be delimited.
func extractSolution(src string) (string, bool) {
	if body, ok := blockBody(src, solutionClassPattern.FindStringIndex(src)); ok {
		return body, true
	}
	return src, false
}

func extractMain(src string) (string, bool) {
	return blockBody(src, mainMethodPattern.FindStringIndex(src))
}

// extractMethodBody finds the declaration of name (a signature followed by a
// block, never a call site) and returns its body.
func extractMethodBody(src, name string) (string, bool) {
	pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\s*\([^)]*\)\s*(?:throws\s+[\w.,\s]+)?\{`)
	return blockBody(src, pattern.FindStringIndex(src))
}

// collectIntArrays maps each int[] literal declared in body to its values.
func collectIntArrays(body string) (map[string][]int64, error) {
	arrays := make(map[string][]int64)
	for _, m := range intArrayPattern.FindAllStringSubmatch(body, -1) {
		name := m[1]
		values := make([]int64, 0)
		for _, raw := range strings.Split(m[2], ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			n, err := strconv.ParseInt(strings.ReplaceAll(raw, "_", ""), 0, 64)
			if err != nil {
				return nil, executionErrorf("Invalid integer literal '%s' in array '%s'.", raw, name)
			}
			values = append(values, n)
		}
		arrays[name] = values
	}
	return arrays, nil
}

type harnessCall struct {
	Holder   string
	Method   string
	Argument string
}

// findSolutionCall locates `<solution>.<method>(<arg>)`. The receiver is the
// variable bound to `new Solution()`, falling back to "solution".
func findSolutionCall(body string) (harnessCall, bool) {
	receiver := defaultSolutionVar
	if m := solutionVarPattern.FindStringSubmatch(body); m != nil {
		receiver = m[1]
	}
	pattern := regexp.MustCompile(`(?:\b([A-Za-z_]\w*)\s*=\s*)?\b` + regexp.QuoteMeta(receiver) + `\.([A-Za-z_]\w*)\s*\(\s*([A-Za-z_]\w*)\s*\)`)
	m := pattern.FindStringSubmatch(body)
	if m == nil {
		return harnessCall{}, false
	}
	return harnessCall{Holder: m[1], Method: m[2], Argument: m[3]}, true
}

// replayPrints re-emits the harness's print calls. Only string literals and
// `"literal" + holder` are understood; other arguments produce nothing.
func replayPrints(body, holder string, result int64) string {
	var b strings.Builder
	for _, loc := range printCallPattern.FindAllStringSubmatchIndex(body, -1) {
		open := loc[1] - 1
		end := matchBracket(body, open)
		if end < 0 {
			continue
		}
		newline := body[loc[2]:loc[3]] == "println"
		arg := strings.TrimSpace(body[open+1 : end])

		var text string
		switch {
		case arg == "":
			if !newline {
				continue
			}
		case stringLiteralPattern.MatchString(arg):
			text = unescapeJava(stringLiteralPattern.FindStringSubmatch(arg)[1])
		case concatPattern.MatchString(arg):
			m := concatPattern.FindStringSubmatch(arg)
			if holder == "" || m[2] != holder {
				continue
			}
			text = unescapeJava(m[1]) + strconv.FormatInt(result, 10)
		default:
			continue
		}
		b.WriteString(text)
		if newline {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
