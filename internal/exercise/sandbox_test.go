package exercise

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"

	"creai_edu_backend/internal/config"
	"creai_edu_backend/internal/model"
	"creai_edu_backend/internal/util"
)

func newTestSandbox() *Sandbox {
	return NewSandbox(config.SandboxConfig{TimeoutMs: 200})
}

func TestRunCase(t *testing.T) {
	t.Parallel()

	sb := newTestSandbox()
	code := "const result = input.toUpperCase();"

	tests := []struct {
		name string
		tc   model.TestCase
		want bool
	}{
		{name: "matching output", tc: model.TestCase{Input: "ab", Expected: "AB"}, want: true},
		{name: "different output", tc: model.TestCase{Input: "ab", Expected: "ab"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := sb.RunCase(context.Background(), code, tt.tc); got != tt.want {
				t.Fatalf("unexpected result: got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestRunCaseWithoutResult(t *testing.T) {
	t.Parallel()

	sb := newTestSandbox()
	if sb.RunCase(context.Background(), "let other = input;", model.TestCase{Input: "", Expected: ""}) {
		t.Fatalf("case without result must fail")
	}
}

func TestRunReportsRuntimeError(t *testing.T) {
	t.Parallel()

	out := newTestSandbox().Run(context.Background(), "const result = null.length;")
	if !out.Failed() {
		t.Fatalf("expected runtime error")
	}
	if !strings.HasPrefix(out.Value, "Error: ") {
		t.Fatalf("unexpected output: %q", out.Value)
	}
}

func TestRunCapturesConsole(t *testing.T) {
	t.Parallel()

	out := newTestSandbox().Run(context.Background(), `console.log("hola", 1); const result = 42;`)
	if out.Failed() {
		t.Fatalf("unexpected error: %v", out.Err)
	}
	if out.Value != "42" {
		t.Fatalf("unexpected value: got=%q want=%q", out.Value, "42")
	}
	if len(out.Logs) != 1 || out.Logs[0] != "hola 1" {
		t.Fatalf("unexpected logs: %v", out.Logs)
	}
}

func TestRunTimesOut(t *testing.T) {
	t.Parallel()

	sb := newTestSandbox()
	code := "while (true) {}\nconst result = 1;"

	out := sb.Run(context.Background(), code)
	if out.Value != "Error: "+MsgTimeout {
		t.Fatalf("unexpected output: got=%q want=%q", out.Value, "Error: "+MsgTimeout)
	}
	if sb.RunCase(context.Background(), code, model.TestCase{Expected: "1"}) {
		t.Fatalf("interrupted case must fail")
	}
}

// 不并行：堆监控读取的是进程级指标
func TestRunInterruptsMemoryGrowth(t *testing.T) {
	t.Cleanup(runtime.GC)

	sb := NewSandbox(config.SandboxConfig{TimeoutMs: 10000, MaxMemoryMB: 16})
	code := "let a = 'x'; for (let i = 0; i < 27; i++) { a = a + a; } const result = a.length;"

	out := sb.Run(context.Background(), code)
	if out.Value != "Error: "+MsgMemory {
		t.Fatalf("unexpected output: got=%q want=%q", out.Value, "Error: "+MsgMemory)
	}

	runtime.GC()
	report, err := sb.Evaluate(context.Background(), urlParser(), code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Output != "Error: "+MsgMemory || report.AllPassed {
		t.Fatalf("unexpected report: %+v", report)
	}
	for _, r := range report.Results {
		if r.Passed {
			t.Fatalf("interrupted code must fail every case")
		}
	}
}

func TestRunLimitsCallStack(t *testing.T) {
	t.Parallel()

	sb := NewSandbox(config.SandboxConfig{TimeoutMs: 5000})
	out := sb.Run(context.Background(), "function f(n) { return f(n + 1); }\nconst result = f(0);")
	if !out.Failed() || out.Value == "Error: "+MsgTimeout {
		t.Fatalf("expected stack overflow error, got %q", out.Value)
	}
}

func TestCheckSize(t *testing.T) {
	t.Parallel()

	sb := NewSandbox(config.SandboxConfig{MaxCodeBytes: 8})
	if err := sb.CheckSize("const result = 1;"); !errors.Is(err, util.ErrValidation) {
		t.Fatalf("unexpected error: got=%v want=%v", err, util.ErrValidation)
	}
	// 长度校验不涉及黑名单
	if err := sb.CheckSize("fetch"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckRejectsNetworkAccess(t *testing.T) {
	t.Parallel()

	sb := newTestSandbox()
	tests := []string{
		`fetch("https://example.com")`,
		`const x = new XMLHttpRequest();`,
		`import fs from "fs";`,
	}
	for _, code := range tests {
		err := sb.Check(code)
		if !errors.Is(err, util.ErrUnsafeInput) {
			t.Fatalf("code %q: unexpected error: got=%v want=%v", code, err, util.ErrUnsafeInput)
		}
	}

	out := sb.Run(context.Background(), `const result = fetch("x");`)
	if out.Value != "Error: "+MsgNetworkDenied {
		t.Fatalf("unexpected output: %q", out.Value)
	}
}

func TestCheckRejectsOversizedCode(t *testing.T) {
	t.Parallel()

	sb := NewSandbox(config.SandboxConfig{MaxCodeBytes: 8})
	if err := sb.Check("const result = 1;"); !errors.Is(err, util.ErrValidation) {
		t.Fatalf("unexpected error: got=%v want=%v", err, util.ErrValidation)
	}
}

func urlParser() model.CodeExercise {
	return model.CodeExercise{
		ID:           "url-parser",
		StartingCode: `const result = "";`,
		TestCases: []model.TestCase{
			{Input: "https://www.google.com", Expected: "https", Description: "URL HTTPS básica"},
			{Input: "http://example.com", Expected: "http", Description: "URL HTTP básica"},
			{Input: "ftp://files.example.com", Expected: "ftp", Description: "URL FTP"},
		},
		Hints:  []string{"uno", "dos"},
		Points: 25,
	}
}

const urlParserSolution = `function getProtocol(url) { return url.split(":")[0]; }
const result = getProtocol(input);`

func TestEvaluate(t *testing.T) {
	t.Parallel()

	sb := newTestSandbox()
	report, err := sb.Evaluate(context.Background(), urlParser(), urlParserSolution)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.AllPassed || report.Points != 25 {
		t.Fatalf("unexpected report: allPassed=%v points=%d", report.AllPassed, report.Points)
	}
	if got := report.Results[0].Message; got != "✅ URL HTTPS básica: Correcto" {
		t.Fatalf("unexpected message: %q", got)
	}

	report, err = sb.Evaluate(context.Background(), urlParser(), `const result = "https";`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.AllPassed || report.Points != 0 {
		t.Fatalf("partial solution must not pass: %+v", report)
	}
	if got := report.Results[1].Message; got != `❌ URL HTTP básica: Esperado "http"` {
		t.Fatalf("unexpected message: %q", got)
	}

	if _, err := sb.Evaluate(context.Background(), urlParser(), `fetch("x")`); !errors.Is(err, util.ErrUnsafeInput) {
		t.Fatalf("unexpected error: got=%v want=%v", err, util.ErrUnsafeInput)
	}
}

func TestSessionCompletionFiresOnce(t *testing.T) {
	t.Parallel()

	var calls []int
	s := NewSession("s1", newTestSandbox(), urlParser(), func(success bool, points int) {
		if !success {
			t.Errorf("unexpected failure callback")
		}
		calls = append(calls, points)
	})

	s.SetCode(urlParserSolution)
	s.Run(context.Background())
	s.Run(context.Background())
	if len(calls) != 1 || calls[0] != 25 {
		t.Fatalf("unexpected callbacks: %v", calls)
	}

	s.Reset()
	if s.Completed() {
		t.Fatalf("reset must clear completion")
	}
	if s.Code() != `const result = "";` {
		t.Fatalf("reset must restore starting code, got %q", s.Code())
	}

	s.SetCode(urlParserSolution)
	s.Run(context.Background())
	if len(calls) != 2 {
		t.Fatalf("completion after reset must fire again: %v", calls)
	}
}

func TestSessionRejectsUnsafeCode(t *testing.T) {
	t.Parallel()

	called := false
	s := NewSession("s2", newTestSandbox(), urlParser(), func(bool, int) { called = true })
	s.SetCode(`const result = fetch(input);`)

	report := s.Run(context.Background())
	if report.Output != "Error: "+MsgNetworkDenied {
		t.Fatalf("unexpected output: %q", report.Output)
	}
	for _, r := range report.Results {
		if r.Passed {
			t.Fatalf("rejected code must fail every case")
		}
	}
	if called || s.Completed() {
		t.Fatalf("rejected code must not complete the session")
	}
}

func TestSessionHints(t *testing.T) {
	t.Parallel()

	s := NewSession("s3", newTestSandbox(), urlParser(), nil)
	if len(s.RevealedHints()) != 0 || !s.HasMoreHints() {
		t.Fatalf("no hint should be revealed initially")
	}

	for _, want := range []string{"uno", "dos"} {
		got, ok := s.RevealNextHint()
		if !ok || got != want {
			t.Fatalf("unexpected hint: got=%q,%v want=%q", got, ok, want)
		}
	}
	if _, ok := s.RevealNextHint(); ok {
		t.Fatalf("expected no more hints")
	}
	if s.HasMoreHints() {
		t.Fatalf("HasMoreHints should be false")
	}

	s.Reset()
	if len(s.View().RevealedHints) != 0 {
		t.Fatalf("reset must hide hints")
	}
}
