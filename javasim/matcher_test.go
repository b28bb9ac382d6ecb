package javasim

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

const loopSolution = `class Solution {
    public int calculateTotalSales(int[] sales) {
        int total = 0;
        for (int i = 0; i < sales.length; i++) {
            total += sales[i];
        }
        return total;
    }
}
`

func harness(solution, mainBody string) string {
	return solution + `
public class Main {
    public static void main(String[] args) {
` + mainBody + `
    }
}
`
}

const totalHarness = `        Solution solution = new Solution();
        int[] sales = new int[]{1, 2, 3, 4};
        int total = solution.calculateTotalSales(sales);
        System.out.println("Total: " + total);`

func TestExecuteTrustedPath(t *testing.T) {
	m := NewMatcher(Config{})
	got := m.Execute(harness(loopSolution, totalHarness))
	if got != "Total: 10\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestExecuteWithoutLoopReturnsSentinel(t *testing.T) {
	noLoop := `class Solution {
    public int calculateTotalSales(int[] sales) {
        int total = sales[0] + sales[1];
        return total;
    }
}
`
	m := NewMatcher(Config{})
	for _, data := range []string{"{1, 2, 3, 4}", "{100, 200}", "{-5}"} {
		body := strings.Replace(totalHarness, "{1, 2, 3, 4}", data, 1)
		if got := m.Execute(harness(noLoop, body)); got != "Total: 0\n" {
			t.Fatalf("data %s: unexpected output %q", data, got)
		}
	}
}

func TestHeuristicsRequireEveryConstruct(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		trusted bool
		failing []string
	}{
		{
			name:    "enhanced for with binary plus",
			body:    "int t = 0; for (int s : sales) { t = t + s; } return t;",
			trusted: true,
		},
		{
			name:    "missing return",
			body:    "int t = 0; for (int s : sales) { t += s; }",
			failing: []string{"return"},
		},
		{
			name:    "missing accumulation",
			body:    "int t = 0; for (int i = 0; i < sales.length; i++) { t = sales[i]; } return t;",
			failing: []string{"accumulation"},
		},
		{
			name:    "stream reduction",
			body:    "return java.util.Arrays.stream(sales).sum();",
			failing: []string{"loop", "accumulation"},
		},
		{
			name:    "loop only in comment",
			body:    "// for (int s : sales) total += s;\nreturn 0;",
			failing: []string{"loop", "accumulation"},
		},
	}

	m := NewMatcher(Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			solution := "class Solution {\n    public int calculateTotalSales(int[] sales) {\n" + tt.body + "\n    }\n}\n"
			report, err := m.Analyze(harness(solution, totalHarness))
			if err != nil {
				t.Fatalf("analyze failed: %v", err)
			}
			if report.Trusted != tt.trusted {
				t.Fatalf("trusted = %t, want %t (%#v)", report.Trusted, tt.trusted, report.Heuristics)
			}
			var failing []string
			for _, h := range report.Heuristics {
				if !h.Passed {
					failing = append(failing, h.Name)
				}
			}
			if !reflect.DeepEqual(failing, tt.failing) {
				t.Fatalf("failing heuristics = %v, want %v", failing, tt.failing)
			}
			wantResult := int64(0)
			if tt.trusted {
				wantResult = 10
			}
			if report.Result != wantResult {
				t.Fatalf("result = %d, want %d", report.Result, wantResult)
			}
		})
	}
}

func TestExecuteStructuralErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "no main",
			source: loopSolution,
			want:   "Execution Error: Could not find the main method in the test harness.",
		},
		{
			name:   "no solution call",
			source: harness(loopSolution, `        int[] sales = new int[]{1, 2};
        System.out.println("nothing");`),
			want: "Execution Error: Could not find the call to the solution method in the test harness.",
		},
		{
			name:   "unknown method",
			source: harness(loopSolution, `        int[] sales = new int[]{1, 2};
        int avg = solution.averageSales(sales);`),
			want: "Execution Error: No validator available for method 'averageSales'.",
		},
		{
			name:   "argument without data",
			source: harness(loopSolution, `        int total = solution.calculateTotalSales(missing);`),
			want:   "Execution Error: Could not find test data for argument 'missing'.",
		},
		{
			name:   "invalid array literal",
			source: harness(loopSolution, `        int[] sales = new int[]{1, two};
        int total = solution.calculateTotalSales(sales);`),
			want: "Execution Error: Invalid integer literal 'two' in array 'sales'.",
		},
	}

	m := NewMatcher(Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Execute(tt.source); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
			_, err := m.Analyze(tt.source)
			var execErr *ExecutionError
			if !errors.As(err, &execErr) {
				t.Fatalf("expected *ExecutionError, got %T", err)
			}
		})
	}
}

func TestReplayPrintPatterns(t *testing.T) {
	body := `        Solution s = new Solution();
        int[] data = {5, 5};
        System.out.println("Start");
        System.out.print("Sum = ");
        int total = s.calculateTotalSales(data);
        System.out.println("" + total);
        System.out.println("Other: " + other);
        System.out.println(total);
        System.out.println();
        // System.out.println("commented");
        System.out.println("Done\t!");`

	m := NewMatcher(Config{})
	report, err := m.Analyze(harness(loopSolution, body))
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	want := "Start\nSum = 10\n\nDone\t!\n"
	if report.Output != want {
		t.Fatalf("got %q, want %q", report.Output, want)
	}
	if report.ResultName != "total" || report.Argument != "data" || report.Method != "calculateTotalSales" {
		t.Fatalf("unexpected report: %#v", report)
	}
	if !reflect.DeepEqual(report.Data, []int64{5, 5}) {
		t.Fatalf("unexpected data: %v", report.Data)
	}
}

func TestMissingSolutionClassFallsBackToWholeSource(t *testing.T) {
	source := `public class Main {
    static int calculateTotalSales(int[] sales) {
        int t = 0;
        for (int v : sales) { t += v; }
        return t;
    }
    public static void main(String[] args) {
        int[] sales = new int[]{2, 3};
        int total = solution.calculateTotalSales(sales);
        System.out.println("Total: " + total);
    }
}`
	m := NewMatcher(Config{})
	report, err := m.Analyze(source)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if report.SolutionFound {
		t.Fatalf("expected fallback to the whole source")
	}
	if report.Output != "Total: 5\n" {
		t.Fatalf("unexpected output: %q", report.Output)
	}
}

func TestRegisterCustomValidator(t *testing.T) {
	m := NewMatcher(Config{})
	m.Register(Validator{
		Method:     "maxSale",
		Heuristics: []Heuristic{LoopHeuristic, ReturnHeuristic},
		Compute: func(data []int64) int64 {
			best := data[0]
			for _, v := range data[1:] {
				best = max(best, v)
			}
			return best
		},
		Sentinel: -1,
	})
	if got := m.Methods(); !reflect.DeepEqual(got, []string{"calculateTotalSales", "maxSale"}) {
		t.Fatalf("unexpected methods: %v", got)
	}

	solution := `class Solution {
    int maxSale(int[] xs) {
        int best = xs[0];
        for (int x : xs) { if (x > best) best = x; }
        return best;
    }
}
`
	out := m.Execute(harness(solution, `        int[] xs = new int[]{3, 9, 4};
        int best = solution.maxSale(xs);
        System.out.println("Max: " + best);`))
	if out != "Max: 9\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}
