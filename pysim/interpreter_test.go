package pysim

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func runSource(t *testing.T, source string, input InputFunc) string {
	t.Helper()
	interp := NewInterpreter(Config{})
	out, err := interp.Execute(context.Background(), source, input)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	return out
}

func TestExecutePrintsAssignedString(t *testing.T) {
	out := runSource(t, "x = \"hello\"\nprint(x)", nil)
	if out != "hello\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestPrintRendering(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{name: "mixed literals", source: `print("a", 1, 2.5, True, None)`, want: "a 1 2.5 True None\n"},
		{name: "empty", source: `print()`, want: "\n"},
		{name: "integral float", source: `print(3.0)`, want: "3.0\n"},
		{name: "comma inside string", source: `print("a, b")`, want: "a, b\n"},
		{name: "single quotes", source: `print('single')`, want: "single\n"},
		{name: "escape sequence", source: `print("tab\there")`, want: "tab\there\n"},
		{name: "unknown name is raw text", source: `print(unknown_name)`, want: "unknown_name\n"},
		{name: "null literal", source: `print(null)`, want: "None\n"},
		{name: "sep keyword", source: `print("x", "y", sep="-")`, want: "x-y\n"},
		{name: "end keyword", source: `print("no newline", end="")`, want: "no newline"},
		{name: "negative int", source: `print(-7)`, want: "-7\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runSource(t, tt.source, nil); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintAndAssignmentOnlyProgramsConcatenateInOrder(t *testing.T) {
	source := `greeting = "hi"
count = 3
print(greeting, count)
flag = False
print(flag)
count = 4
print(count, greeting)`

	want := "hi 3\nFalse\n4 hi\n"
	if got := runSource(t, source, nil); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCommentsAndBlankLinesAreSkipped(t *testing.T) {
	source := "# header\n\nprint(1) # trailing note\n   \nprint(\"# not a comment\")"
	want := "1\n# not a comment\n"
	if got := runSource(t, source, nil); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestComparisonLineIsNotAssignment(t *testing.T) {
	source := "x = 5\nx == 6\nprint(x)"
	if got := runSource(t, source, nil); got != "5\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestClassConstructorBindsAttributes(t *testing.T) {
	source := `class Counter:
    def __init__(self, n):
        self.n = n
        self.label = "count"

c = Counter(5)
print(c.n, c.label)`

	if got := runSource(t, source, nil); got != "5 count\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestPrintInsideMethodIsNotInterpreted(t *testing.T) {
	source := `class Counter:
    def __init__(self, n):
        self.n = n
    def show(self):
        print(self.n)

c = Counter(5)
c.show()`

	if got := runSource(t, source, nil); got != "" {
		t.Fatalf("expected no output from method print, got %q", got)
	}
}

func TestMethodCallAssignsAttributes(t *testing.T) {
	source := `class Account:
	def __init__(self, owner, balance=0):
		self.owner = owner
		self.balance = balance
	def deposit(self, amount):
		self.balance = amount
		self.last = self.owner

a = Account("ann")
print(a.balance)
a.deposit(50)
print(a.balance, a.last)`

	want := "0\n50 ann\n"
	if got := runSource(t, source, nil); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSubclassInheritsParentMethods(t *testing.T) {
	source := `class Animal:
    def __init__(self, name):
        self.name = name
class Dog(Animal):
    def speak(self):
        self.sound = "woof"
d = Dog("rex")
d.speak()
print(d.name, d.sound)`

	if got := runSource(t, source, nil); got != "rex woof\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestUnknownParentReportsErrorButDefinesClass(t *testing.T) {
	source := `class Dog(Animal):
    def __init__(self):
        self.legs = 4
d = Dog()
print(d.legs)`

	want := "Error on line 1: name 'Animal' is not defined\n4\n"
	if got := runSource(t, source, nil); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestAttributesDefaultToNone(t *testing.T) {
	source := `class Box:
    def fill(self, item):
        self.item = item
b = Box()
print(b.item)
b.item = "apple"
print(b.item)`

	want := "None\napple\n"
	if got := runSource(t, source, nil); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestInstanceRendersTypeTag(t *testing.T) {
	source := `class Point:
    def __init__(self, x):
        self.x = x
p = Point(1)
print(p)`

	if got := runSource(t, source, nil); got != "<__main__.Point object>\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

const linkedListSource = `class ListNode:
    def __init__(self, val, next=None):
        self.val = val
        self.next = next

c = ListNode(3)
b = ListNode(2, c)
a = ListNode(1, b)
print(a)`

func TestLinkedListRendering(t *testing.T) {
	if got := runSource(t, linkedListSource, nil); got != "1 -> 2 -> 3 -> None\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestLinkedListCycleMarker(t *testing.T) {
	source := linkedListSource + "\nc.next = a\nprint(a)"
	want := "1 -> 2 -> 3 -> None\n1 -> 2 -> 3 -> ... (cycle)\n"
	if got := runSource(t, source, nil); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLinkedListNodeLimit(t *testing.T) {
	interp := NewInterpreter(Config{MaxLinkedNodes: 2})
	out, err := interp.Execute(context.Background(), linkedListSource, nil)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if out != "1 -> 2 -> ...\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestErrorLineDoesNotHaltExecution(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "unterminated string",
			source: "print(\"start\")\nprint(\"oops)\nprint(\"end\")",
			want:   "start\nError on line 2: '(' was never closed\nend\n",
		},
		{
			name: "malformed constructor",
			source: `class Point:
    def __init__(self, x):
        self.x = x
p = Point(1
print("after")`,
			want: "Error on line 4: malformed constructor call to Point\nafter\n",
		},
		{
			name: "too many constructor arguments",
			source: `class Point:
    def __init__(self, x):
        self.x = x
p = Point(1, 2)
print("after")`,
			want: "Error on line 4: Point.__init__() takes 2 positional arguments but 3 were given\nafter\n",
		},
		{
			name: "missing constructor argument",
			source: `class Point:
    def __init__(self, x):
        self.x = x
p = Point()`,
			want: "Error on line 4: Point.__init__() missing 1 required positional argument(s)\n",
		},
		{
			name: "unknown attribute",
			source: `class Point:
    def __init__(self, x):
        self.x = x
p = Point(1)
print(p.y)
print(p.x)`,
			want: "Error on line 5: 'Point' object has no attribute 'y'\n1\n",
		},
		{
			name:   "arguments to class without init",
			source: "class Empty:\n    pass\ne = Empty(1)\nprint(\"ok\")",
			want:   "Error on line 3: Empty() takes no arguments\nok\n",
		},
		{
			name:   "attribute on unbound name",
			source: "ghost.x = 1\nprint(\"ok\")",
			want:   "Error on line 1: name 'ghost' is not defined\nok\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runSource(t, tt.source, nil); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExecuteIsIdempotent(t *testing.T) {
	source := linkedListSource + "\nprint(\"done\", b.val)"
	interp := NewInterpreter(Config{})
	first, err := interp.Execute(context.Background(), source, nil)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := interp.Execute(context.Background(), source, nil)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if first != second {
		t.Fatalf("runs differ: %q vs %q", first, second)
	}
}

func TestInputCaptureEchoesPromptAndValue(t *testing.T) {
	source := "name = input(\"Name: \")\nprint(\"Hi\", name)"
	out := runSource(t, source, ScriptedInput("Ada"))
	if out != "Name: Ada\nHi Ada\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestInputInsideStringLiteralIsNotCalled(t *testing.T) {
	tests := []struct {
		name   string
		source string
		input  InputFunc
		want   string
	}{
		{
			name:   "assigned literal",
			source: "tip = \"call input() to read\"\nprint(tip)",
			want:   "call input() to read\n",
		},
		{
			name:   "printed literal",
			source: "print('type input(here)')",
			want:   "type input(here)\n",
		},
		{
			name: "method argument",
			source: `class Logger:
    def log(self, msg):
        self.last = msg
obj = Logger()
obj.log("input(")
print(obj.last)`,
			want: "input(\n",
		},
		{
			name:   "real call with literal prompt",
			source: "name = input(\"input() please: \")\nprint(name)",
			input:  ScriptedInput("Ada"),
			want:   "input() please: Ada\nAda\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runSource(t, tt.source, tt.input); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommentLinesInsideClassBody(t *testing.T) {
	source := `class Counter:
    def __init__(self, n):
# note
        self.n = n

    # indented note
c = Counter(3)
print(c.n)`
	if out := runSource(t, source, nil); out != "3\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestUndefinedMethodCallIsIgnored(t *testing.T) {
	source := `class Point:
    def __init__(self, x):
        self.x = x
p = Point(1)
p.move(5)
print(p.x)`
	if out := runSource(t, source, nil); out != "1\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestConfigSummary(t *testing.T) {
	if got := NewInterpreter(Config{}).ConfigSummary(); got != "linked_nodes=20" {
		t.Fatalf("unexpected default summary: %q", got)
	}
	if got := NewInterpreter(Config{MaxLinkedNodes: 3}).ConfigSummary(); got != "linked_nodes=3" {
		t.Fatalf("unexpected summary: %q", got)
	}
}

func TestInputRequestCarriesVariableAndLine(t *testing.T) {
	var got []InputRequest
	input := func(ctx context.Context, req InputRequest) (string, error) {
		got = append(got, req)
		return "x", nil
	}
	runSource(t, "print(\"start\")\ncity = input(\"City? \")\ninput()", input)

	if len(got) != 2 {
		t.Fatalf("expected 2 input requests, got %d", len(got))
	}
	if got[0] != (InputRequest{Prompt: "City? ", Variable: "city", Line: 2}) {
		t.Fatalf("unexpected first request: %#v", got[0])
	}
	if got[1] != (InputRequest{Prompt: "", Variable: "", Line: 3}) {
		t.Fatalf("unexpected second request: %#v", got[1])
	}
}

func TestInputConversions(t *testing.T) {
	tests := []struct {
		name   string
		source string
		value  string
		want   string
	}{
		{name: "int", source: "age = int(input(\"Age: \"))\nprint(age)", value: "42", want: "Age: 42\n42\n"},
		{name: "float", source: "w = float(input())\nprint(w)", value: "2", want: "2\n2.0\n"},
		{name: "invalid int", source: "age = int(input(\"Age: \"))\nprint(age)", value: "x", want: "Age: x\nError on line 1: invalid literal for int() with base 10: 'x'\nage\n"},
		{name: "bare input", source: "input(\"Press enter\")\nprint(\"go\")", value: "", want: "Press enter\ngo\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runSource(t, tt.source, ScriptedInput(tt.value)); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInputWithoutSource(t *testing.T) {
	out := runSource(t, "x = input(\"? \")\nprint(\"after\")", nil)
	if out != "Error on line 1: input is not available\nafter\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestScriptedInputExhausted(t *testing.T) {
	out := runSource(t, "a = input()\nb = input()\nprint(a)", ScriptedInput("one"))
	want := "one\nError on line 2: EOF when reading a line\none\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestExecuteStopsWhenInputCancelsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	input := func(ctx context.Context, req InputRequest) (string, error) {
		cancel()
		<-ctx.Done()
		return "", ctx.Err()
	}

	interp := NewInterpreter(Config{})
	out, err := interp.Execute(ctx, "print(\"before\")\nx = input()\nprint(\"after\")", input)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if out != "before\n" {
		t.Fatalf("unexpected partial output: %q", out)
	}
}

func TestUnsupportedStatementsAreIgnored(t *testing.T) {
	source := "for i in range(3):\n    print(i)\nx += 1\nprint(\"done\")"
	out := runSource(t, source, nil)
	if !strings.HasSuffix(out, "done\n") {
		t.Fatalf("unexpected output: %q", out)
	}
}
