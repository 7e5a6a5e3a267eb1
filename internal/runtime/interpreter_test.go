package runtime

import (
	"strings"
	"testing"
)

func run(t *testing.T, src string) (string, bool) {
	t.Helper()
	var out strings.Builder
	ok := Interpret(strings.NewReader(src), &out)
	return out.String(), ok
}

func expectOutput(t *testing.T, src, want string) {
	t.Helper()
	got, ok := run(t, src)
	if !ok {
		t.Fatalf("source failed to execute: %q\noutput: %s", src, got)
	}
	if got != want {
		t.Fatalf("output mismatch for %q:\n got:  %q\n want: %q", src, got, want)
	}
}

func expectFailure(t *testing.T, src string) string {
	t.Helper()
	got, ok := run(t, src)
	if ok {
		t.Fatalf("expected failure for %q, got output %q", src, got)
	}
	return got
}

func TestMaxOfList(t *testing.T) {
	src := `max = function(arr)
if len(arr) == 0 then
return nil
end if
m = arr[0]
for i in arr
if i > m then
m = i
end if
end for
return m
end function
print(max([10, -1, 0, 2, 2025, 239]))`
	expectOutput(t, src, "2025")
}

func TestIfElseIfCascade(t *testing.T) {
	src := `x = 10
if x > 15 then
print("Big")
else if x > 5 then
print("Medium")
else
print("Small")
end if`
	expectOutput(t, src, "Medium")
}

func TestWhileBreakContinue(t *testing.T) {
	src := `i = 0
while i < 5
i = i + 1
if i == 2 then
continue
end if
if i == 4 then
break
end if
print(i)
end while`
	expectOutput(t, src, "13")
}

func TestForOverListContinueSumOdd(t *testing.T) {
	src := `total = 0
for i in [1, 2, 3, 4, 5]
if i % 2 == 0 then
continue
end if
total = total + i
end for
print(total)`
	expectOutput(t, src, "9")
}

func TestListOfFunctions(t *testing.T) {
	src := `funcs = [function() return 1 end function, function() return 2 end function, function() return 3 end function]
print(funcs[0]())
print(funcs[1]())
print(funcs[2]())`
	expectOutput(t, src, "123")
}

func TestTypeMismatchAborts(t *testing.T) {
	src := `a = 123
b = "s"
c = a + b
print(239)`
	out := expectFailure(t, src)
	if strings.Contains(out, "239") {
		t.Fatalf("output should not contain 239: %q", out)
	}
	if !strings.HasPrefix(out, "Runtime error (specific): ") {
		t.Fatalf("expected a specific runtime error message, got %q", out)
	}
}

func TestUnshadowedGlobalsResolveInsideCall(t *testing.T) {
	// there is exactly one flat environment; a function body sees whatever
	// is bound at call time, not a lexically captured snapshot from its
	// definition site.
	src := `x = 1
f = function() return x end function
x = 2
print(f())`
	expectOutput(t, src, "2")
}

func TestSnapshotRestoreOnCall(t *testing.T) {
	src := `x = 1
f = function()
x = 99
end function
f()
print(x)`
	expectOutput(t, src, "1")
}

func TestAliasing(t *testing.T) {
	src := `x = [1]
y = x
push(y, 2)
print(len(x))
print(len(y))`
	expectOutput(t, src, "22")
}

func TestTopLevelReturnSilentlyAbsorbed(t *testing.T) {
	src := `print(1)
return
print(2)`
	// a top-level return ends execution of the remaining block but does
	// not itself count as an error.
	got, ok := run(t, src)
	if !ok {
		t.Fatalf("expected success, got failure: %q", got)
	}
	if got != "1" {
		t.Fatalf("got %q, want %q", got, "1")
	}
}

func TestBreakOutsideLoopIsError(t *testing.T) {
	expectFailure(t, "break")
	expectFailure(t, "continue")
}

func TestAndOrAreEager(t *testing.T) {
	// both operands are always evaluated, even though a short-circuiting
	// 'and' would never need to evaluate the right-hand side once the
	// left-hand side is false.
	src := `f = function()
print("called")
return 1
end function
y = 0 and f()
print(y)`
	expectOutput(t, src, "called0")
}

func TestCaretOnlyViaCompoundAssign(t *testing.T) {
	expectOutput(t, "x = 2\nx ^= 3\nprint(x)", "8")
}

func TestStringMinusSuffix(t *testing.T) {
	expectOutput(t, `print("hello.txt" - ".txt")`, "hello")
	expectOutput(t, `print("hello" - ".txt")`, "hello")
}

func TestNegativeIndexing(t *testing.T) {
	expectOutput(t, `print([1, 2, 3][-1])`, "3")
	expectOutput(t, `print("abc"[-1])`, "c")
}

func TestBoundaryErrors(t *testing.T) {
	expectFailure(t, "print(sqrt(-1))")
	expectFailure(t, "print(1/0)")
	expectFailure(t, "print(1%0)")
	expectFailure(t, "print(range(0, 5, 0))")
}

func TestSliceFreshNotAliased(t *testing.T) {
	src := `x = [1, 2, 3]
y = x[0:2]
push(x, 4)
print(len(y))`
	expectOutput(t, src, "2")
}

func TestSortIdempotent(t *testing.T) {
	src := `a = [3, 1, 2]
sort(a)
b = [a[0], a[1], a[2]]
sort(a)
print(a[0])
print(a[1])
print(a[2])`
	expectOutput(t, src, "123")
}

func TestRangeDefaultStepLength(t *testing.T) {
	expectOutput(t, "print(len(range(2, 9)))", "7")
}

func TestParseNumToStringRoundTrip(t *testing.T) {
	expectOutput(t, `print(parse_num(to_string(42)))`, "42")
}

func TestJoinSplitRoundTrip(t *testing.T) {
	expectOutput(t, `print(join(split("a,b,c", ","), ","))`, "a,b,c")
}

func TestReplaceIdempotentOnSameNeedle(t *testing.T) {
	expectOutput(t, `print(replace("hello", "l", "l"))`, "hello")
}

func TestCanonicalNumberFormatting(t *testing.T) {
	expectOutput(t, "print(1)", "1")
	expectOutput(t, "print(1.5)", "1.5")
	expectOutput(t, "print(-3)", "-3")
}

func TestPrintQuotesNestedStringsInLists(t *testing.T) {
	expectOutput(t, `print(["a", "b"])`, `["a", "b"]`)
	expectOutput(t, `print("a")`, "a")
}

func TestBuiltinMustBeCalled(t *testing.T) {
	expectFailure(t, "x = print")
}

func TestMutatingBuiltinRequiresIdentifier(t *testing.T) {
	src := `f = function() return [1, 2] end function
push(f(), 3)`
	expectFailure(t, src)
}
