package exercise

import (
	"context"
	"sync"
	"time"

	"creai_edu_backend/internal/model"
)

// CompletionFunc 练习首次全部通过时调用
type CompletionFunc func(success bool, points int)

// Session 一次练习尝试：当前代码、已揭示的提示、最近一次评测结果
type Session struct {
	ID string

	mu         sync.Mutex
	sandbox    *Sandbox
	exercise   model.CodeExercise
	code       string
	revealed   int
	report     *Report
	completed  bool
	onComplete CompletionFunc
	updatedAt  time.Time
}

type SessionView struct {
	ID            string    `json:"id"`
	ExerciseID    string    `json:"exerciseId"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Code          string    `json:"code"`
	RevealedHints []string  `json:"revealedHints"`
	HasMoreHints  bool      `json:"hasMoreHints"`
	Completed     bool      `json:"completed"`
	Points        int       `json:"points"`
	LastReport    *Report   `json:"lastReport,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewSession(id string, sandbox *Sandbox, ex model.CodeExercise, onComplete CompletionFunc) *Session {
	return &Session{
		ID:         id,
		sandbox:    sandbox,
		exercise:   ex,
		code:       ex.StartingCode,
		onComplete: onComplete,
		updatedAt:  time.Now(),
	}
}

func (s *Session) SetCode(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.code = code
	s.updatedAt = time.Now()
}

func (s *Session) Code() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.code
}

// Run 评测当前代码。被拒绝的代码不执行，输出错误文案且全部用例失败
func (s *Session) Run(ctx context.Context) Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	var report Report
	if err := s.sandbox.Check(s.code); err != nil {
		report = rejectedReport(s.exercise, err)
	} else {
		report = s.sandbox.evaluate(ctx, s.exercise, s.code)
	}
	s.report = &report
	s.updatedAt = time.Now()

	if report.AllPassed && !s.completed {
		s.completed = true
		if s.onComplete != nil {
			s.onComplete(true, s.exercise.Points)
		}
	}
	return report
}

// RevealNextHint 没有更多提示时返回 false
func (s *Session) RevealNextHint() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.revealed >= len(s.exercise.Hints) {
		return "", false
	}
	hint := s.exercise.Hints[s.revealed]
	s.revealed++
	s.updatedAt = time.Now()
	return hint, true
}

func (s *Session) RevealedHints() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revealedHints()
}

func (s *Session) revealedHints() []string {
	out := make([]string, s.revealed)
	copy(out, s.exercise.Hints[:s.revealed])
	return out
}

func (s *Session) HasMoreHints() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revealed < len(s.exercise.Hints)
}

// Reset 恢复初始代码并清除完成状态，之后再次通过会重新触发回调
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.code = s.exercise.StartingCode
	s.revealed = 0
	s.report = nil
	s.completed = false
	s.updatedAt = time.Now()
}

func (s *Session) Completed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed
}

func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := SessionView{
		ID:            s.ID,
		ExerciseID:    s.exercise.ID,
		Title:         s.exercise.Title,
		Description:   s.exercise.Description,
		Code:          s.code,
		RevealedHints: s.revealedHints(),
		HasMoreHints:  s.revealed < len(s.exercise.Hints),
		Completed:     s.completed,
		Points:        s.exercise.Points,
		UpdatedAt:     s.updatedAt,
	}
	if s.report != nil {
		r := *s.report
		v.LastReport = &r
	}
	return v
}
