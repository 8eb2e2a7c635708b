package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"creai_edu_backend/internal/model"
	"creai_edu_backend/internal/quiz"
	"creai_edu_backend/internal/seed"
	"creai_edu_backend/internal/util"
)

func newTestQuizService(t *testing.T) *QuizService {
	content := newTestContentService(t)
	return NewQuizService(content, NewSessionStore[*QuizSession](time.Minute), NewProgressService(content.LessonRepo))
}

func TestQuizSessionFromLesson(t *testing.T) {
	t.Parallel()
	svc := newTestQuizService(t)
	block := 2

	view, err := svc.CreateSession(context.Background(), CreateQuizSessionRequest{
		ModuleID:   seed.InternetModuleSlug,
		LessonSlug: "dns-detallado",
		BlockIndex: &block,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.QuestionCount != 3 || view.TotalPoints != 35 || view.Title != "Repaso rápido: DNS" {
		t.Fatalf("unexpected session: %+v", view)
	}

	for _, answer := range []int{1, 2, 1} {
		if _, err := svc.Answer(view.ID, answer); err != nil {
			t.Fatalf("answer: %v", err)
		}
		// 解释阶段再次选择不改变得分
		if _, err := svc.Answer(view.ID, 0); err != nil {
			t.Fatalf("answer while explaining: %v", err)
		}
		if _, err := svc.Next(view.ID); err != nil {
			t.Fatalf("next: %v", err)
		}
	}

	done, err := svc.GetSession(view.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if done.State != quiz.StateCompleted || done.Result == nil {
		t.Fatalf("expected completed session: %+v", done)
	}
	if done.Result.Score != 35 || done.Result.Percentage != 100 {
		t.Fatalf("unexpected result: got=%d/%d%% want=35/100%%", done.Result.Score, done.Result.Percentage)
	}

	restarted, err := svc.Restart(view.ID)
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if restarted.State != quiz.StateAnswering || restarted.Score != 0 {
		t.Fatalf("unexpected restart: %+v", restarted)
	}
}

func TestQuizSessionInlineQuestions(t *testing.T) {
	t.Parallel()
	svc := newTestQuizService(t)

	view, err := svc.CreateSession(context.Background(), CreateQuizSessionRequest{
		Title: "Inline",
		Questions: []model.QuizQuestion{
			{ID: "q1", Question: "¿1+1?", Options: []string{"1", "2"}, CorrectAnswer: 1, Points: 5},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Next(view.ID); !errors.Is(err, util.ErrInvalidTransition) {
		t.Fatalf("next before answering: got=%v want=%v", err, util.ErrInvalidTransition)
	}
	if _, err := svc.Answer(view.ID, 7); !errors.Is(err, util.ErrValidation) {
		t.Fatalf("out of range answer: got=%v want=%v", err, util.ErrValidation)
	}
}

func TestQuizSessionErrors(t *testing.T) {
	t.Parallel()
	svc := newTestQuizService(t)
	ctx := context.Background()
	textBlock := 0

	tests := []struct {
		name string
		req  CreateQuizSessionRequest
		want error
	}{
		{"missing reference", CreateQuizSessionRequest{}, util.ErrValidation},
		{"not a quiz block", CreateQuizSessionRequest{ModuleID: seed.InternetModuleSlug, LessonSlug: "dns-detallado", BlockIndex: &textBlock}, util.ErrValidation},
		{"unknown lesson", CreateQuizSessionRequest{ModuleID: seed.InternetModuleSlug, LessonSlug: "no-existe", BlockIndex: &textBlock}, util.ErrNotFound},
	}
	for _, tt := range tests {
		if _, err := svc.CreateSession(ctx, tt.req); !errors.Is(err, tt.want) {
			t.Fatalf("%s: got=%v want=%v", tt.name, err, tt.want)
		}
	}

	if _, err := svc.GetSession("missing"); !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("missing session: got=%v want=%v", err, util.ErrNotFound)
	}
}
