package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"creai_edu_backend/internal/config"
	"creai_edu_backend/internal/exercise"
	"creai_edu_backend/internal/seed"
	"creai_edu_backend/internal/util"
)

func newTestExerciseService(t *testing.T, maxCodeBytes int) *ExerciseService {
	t.Helper()
	repos := seededRepos(t)
	sandbox := exercise.NewSandbox(config.SandboxConfig{TimeoutMs: 1000, MaxCodeBytes: maxCodeBytes})
	return NewExerciseService(repos.Exercises, sandbox, NewSessionStore[*exercise.Session](time.Minute), NewProgressService(repos.Lessons))
}

func TestUpdateCodeLimitsSize(t *testing.T) {
	t.Parallel()
	svc := newTestExerciseService(t, 64)

	view, err := svc.StartSession(context.Background(), seed.URLParserExerciseID)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	original := view.Code

	tests := []struct {
		name     string
		code     string
		wantErr  error
		wantCode string
	}{
		{"fits", "const result = 1;", nil, "const result = 1;"},
		{"at limit", strings.Repeat("x", 64), nil, strings.Repeat("x", 64)},
		{"oversized", strings.Repeat("x", 65), util.ErrValidation, strings.Repeat("x", 64)},
		{"huge", strings.Repeat("x", 1<<20), util.ErrValidation, strings.Repeat("x", 64)},
	}
	for _, tt := range tests {
		_, err := svc.UpdateCode(view.ID, tt.code)
		if !errors.Is(err, tt.wantErr) {
			t.Fatalf("%s: got=%v want=%v", tt.name, err, tt.wantErr)
		}
		got, err := svc.GetSession(view.ID)
		if err != nil {
			t.Fatalf("%s: get session: %v", tt.name, err)
		}
		if got.Code != tt.wantCode {
			t.Fatalf("%s: stored code got=%d bytes want=%d bytes", tt.name, len(got.Code), len(tt.wantCode))
		}
	}

	if original == "" {
		t.Fatalf("expected session to start with the exercise's starting code")
	}
}

func TestUpdateCodeMissingSession(t *testing.T) {
	t.Parallel()
	svc := newTestExerciseService(t, 0)

	if _, err := svc.UpdateCode("missing", "const result = 1;"); !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("unexpected error: got=%v want=%v", err, util.ErrNotFound)
	}
}
