package javasim

import "regexp"

// Heuristic is a textual check a submitted method body must satisfy before
// the trusted computation is allowed to stand in for it.
type Heuristic struct {
	Name    string
	Pattern *regexp.Regexp
}

// Validator grades one known method. Submitted code never runs: when every
// heuristic matches the method body, Compute produces the answer from the
// harness data; otherwise the result is Sentinel.
type Validator struct {
	Method     string
	Heuristics []Heuristic
	Compute    func(data []int64) int64
	Sentinel   int64
}

type HeuristicResult struct {
	Name   string
	Passed bool
}

var (
	LoopHeuristic         = Heuristic{Name: "loop", Pattern: regexp.MustCompile(`\bfor\s*\(`)}
	AccumulationHeuristic = Heuristic{Name: "accumulation", Pattern: regexp.MustCompile(`\+=|[\w)\]]\s*\+\s*[\w(]`)}
	ReturnHeuristic       = Heuristic{Name: "return", Pattern: regexp.MustCompile(`\breturn\b`)}
)

// TotalSalesValidator grades calculateTotalSales(int[]) as the array sum.
func TotalSalesValidator() Validator {
	return Validator{
		Method:     "calculateTotalSales",
		Heuristics: []Heuristic{LoopHeuristic, AccumulationHeuristic, ReturnHeuristic},
		Compute: func(data []int64) int64 {
			var total int64
			for _, v := range data {
				total += v
			}
			return total
		},
	}
}

func (v Validator) check(body string) ([]HeuristicResult, bool) {
	results := make([]HeuristicResult, 0, len(v.Heuristics))
	passed := true
	for _, h := range v.Heuristics {
		ok := h.Pattern.MatchString(body)
		results = append(results, HeuristicResult{Name: h.Name, Passed: ok})
		passed = passed && ok
	}
	return results, passed
}
