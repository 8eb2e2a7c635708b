package service

import (
	"context"
	"creai_edu_backend/internal/exercise"
	"creai_edu_backend/internal/model"
	"creai_edu_backend/internal/repository"
	"creai_edu_backend/internal/util"
	"creai_edu_backend/pkg/tracing"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
)

// ExerciseView 不直接暴露提示内容，提示通过会话逐个揭示
type ExerciseView struct {
	ID             string           `json:"id"`
	LessonID       string           `json:"lessonId"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	StartingCode   string           `json:"startingCode"`
	ExpectedOutput string           `json:"expectedOutput"`
	TestCases      []model.TestCase `json:"testCases"`
	HintCount      int              `json:"hintCount"`
	Points         int              `json:"points"`
}

type HintResult struct {
	Hint     string               `json:"hint,omitempty"`
	Revealed bool                 `json:"revealed"`
	Session  exercise.SessionView `json:"session"`
}

type RunResult struct {
	Report  exercise.Report      `json:"report"`
	Session exercise.SessionView `json:"session"`
}

type ExerciseService struct {
	ExerciseRepo repository.ExerciseRepository
	Sandbox      *exercise.Sandbox
	Sessions     *SessionStore[*exercise.Session]
	Progress     *ProgressService
}

func NewExerciseService(repo repository.ExerciseRepository, sandbox *exercise.Sandbox, sessions *SessionStore[*exercise.Session], progress *ProgressService) *ExerciseService {
	return &ExerciseService{
		ExerciseRepo: repo,
		Sandbox:      sandbox,
		Sessions:     sessions,
		Progress:     progress,
	}
}

func (s *ExerciseService) find(ctx context.Context, id string) (*model.CodeExercise, error) {
	ex, err := s.ExerciseRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, util.NewError(util.ErrNotFound, "Exercise '%s' not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find exercise %s: %w", id, err)
	}
	return ex, nil
}

func (s *ExerciseService) GetExercise(ctx context.Context, id string) (*ExerciseView, error) {
	ex, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ExerciseView{
		ID:             ex.ID,
		LessonID:       ex.LessonID,
		Title:          ex.Title,
		Description:    ex.Description,
		StartingCode:   ex.StartingCode,
		ExpectedOutput: ex.ExpectedOutput,
		TestCases:      ex.TestCases,
		HintCount:      len(ex.Hints),
		Points:         ex.Points,
	}, nil
}

// Run 无状态评测，不安全代码直接返回 ErrUnsafeInput
func (s *ExerciseService) Run(ctx context.Context, id, code string) (exercise.Report, error) {
	ctx, span := tracing.StartSpan(ctx, "exercise.Run", attribute.String("exercise.id", id))
	defer span.End()

	ex, err := s.find(ctx, id)
	if err != nil {
		return exercise.Report{}, err
	}
	report, err := s.Sandbox.Evaluate(ctx, *ex, code)
	if err != nil {
		return exercise.Report{}, err
	}
	s.Progress.RecordExerciseRun(ex.ID, report.AllPassed)
	return report, nil
}

func (s *ExerciseService) StartSession(ctx context.Context, exerciseID string) (exercise.SessionView, error) {
	ex, err := s.find(ctx, exerciseID)
	if err != nil {
		return exercise.SessionView{}, err
	}
	id := model.GenerateUUID()
	session := exercise.NewSession(id, s.Sandbox, *ex, func(_ bool, points int) {
		s.Progress.RecordExerciseCompletion(id, exerciseID, points)
	})
	s.Sessions.Put(id, session)
	return session.View(), nil
}

func (s *ExerciseService) session(id string) (*exercise.Session, error) {
	session, ok := s.Sessions.Get(id)
	if !ok {
		return nil, util.NewError(util.ErrNotFound, "Exercise session '%s' not found", id)
	}
	return session, nil
}

func (s *ExerciseService) GetSession(id string) (exercise.SessionView, error) {
	session, err := s.session(id)
	if err != nil {
		return exercise.SessionView{}, err
	}
	return session.View(), nil
}

// UpdateCode 超长代码不保存，会话保留原来的代码
func (s *ExerciseService) UpdateCode(id, code string) (exercise.SessionView, error) {
	session, err := s.session(id)
	if err != nil {
		return exercise.SessionView{}, err
	}
	if err := s.Sandbox.CheckSize(code); err != nil {
		return exercise.SessionView{}, err
	}
	session.SetCode(code)
	return session.View(), nil
}

func (s *ExerciseService) RunSession(ctx context.Context, id string) (RunResult, error) {
	session, err := s.session(id)
	if err != nil {
		return RunResult{}, err
	}
	report := session.Run(ctx)
	view := session.View()
	s.Progress.RecordExerciseRun(view.ExerciseID, report.AllPassed)
	return RunResult{Report: report, Session: view}, nil
}

func (s *ExerciseService) NextHint(id string) (HintResult, error) {
	session, err := s.session(id)
	if err != nil {
		return HintResult{}, err
	}
	hint, ok := session.RevealNextHint()
	return HintResult{Hint: hint, Revealed: ok, Session: session.View()}, nil
}

func (s *ExerciseService) ResetSession(id string) (exercise.SessionView, error) {
	session, err := s.session(id)
	if err != nil {
		return exercise.SessionView{}, err
	}
	session.Reset()
	return session.View(), nil
}
