package exercise

import (
	"context"
	"errors"
	"fmt"

	"creai_edu_backend/internal/model"

	"golang.org/x/sync/errgroup"
)

// 并发执行测试用例的上限
const caseConcurrency = 4

type CaseResult struct {
	Description string `json:"description"`
	Expected    string `json:"expected"`
	Passed      bool   `json:"passed"`
	Message     string `json:"message"`
}

// Report 一次完整评测：自由运行输出 + 每个测试用例的结果
type Report struct {
	Output      string       `json:"output"`
	Logs        []string     `json:"logs,omitempty"`
	Results     []CaseResult `json:"results"`
	AllPassed   bool         `json:"allPassed"`
	Points      int          `json:"points"`
	TotalPoints int          `json:"totalPoints"`
}

// Evaluate 运行代码并逐个比对测试用例。代码未通过 Check 时返回错误且不执行
func (s *Sandbox) Evaluate(ctx context.Context, ex model.CodeExercise, code string) (Report, error) {
	if err := s.Check(code); err != nil {
		return Report{}, err
	}
	return s.evaluate(ctx, ex, code), nil
}

func (s *Sandbox) evaluate(ctx context.Context, ex model.CodeExercise, code string) Report {
	out := s.Run(ctx, code)
	// 自由运行已被中断（超时或内存）时不再执行测试用例
	if errors.Is(out.Err, errTimeout) || errors.Is(out.Err, errMemory) {
		return buildReport(ex, out.Value, out.Logs, failedResults(ex))
	}

	results := make([]CaseResult, len(ex.TestCases))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(caseConcurrency)
	for i, tc := range ex.TestCases {
		g.Go(func() error {
			results[i] = caseResult(tc, s.RunCase(gctx, code, tc))
			return nil
		})
	}
	_ = g.Wait()

	return buildReport(ex, out.Value, out.Logs, results)
}

// rejectedReport 不安全代码不执行，所有用例判为失败
func rejectedReport(ex model.CodeExercise, err error) Report {
	return buildReport(ex, errorText(err), nil, failedResults(ex))
}

func failedResults(ex model.CodeExercise) []CaseResult {
	results := make([]CaseResult, len(ex.TestCases))
	for i, tc := range ex.TestCases {
		results[i] = caseResult(tc, false)
	}
	return results
}

func buildReport(ex model.CodeExercise, output string, logs []string, results []CaseResult) Report {
	report := Report{
		Output:      output,
		Logs:        logs,
		Results:     results,
		AllPassed:   true,
		TotalPoints: ex.Points,
	}
	for _, r := range results {
		if !r.Passed {
			report.AllPassed = false
			break
		}
	}
	if report.AllPassed {
		report.Points = ex.Points
	}
	return report
}

func caseResult(tc model.TestCase, passed bool) CaseResult {
	r := CaseResult{Description: tc.Description, Expected: tc.Expected, Passed: passed}
	if passed {
		r.Message = fmt.Sprintf("✅ %s: Correcto", tc.Description)
	} else {
		r.Message = fmt.Sprintf("❌ %s: Esperado \"%s\"", tc.Description, tc.Expected)
	}
	return r
}
