package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"creai_edu_backend/internal/render"
	"creai_edu_backend/internal/repository"
	"creai_edu_backend/internal/seed"
	"creai_edu_backend/internal/util"
)

func seededRepos(t *testing.T) seed.Repositories {
	t.Helper()
	repos := seed.Repositories{
		Modules:   repository.NewMemoryModuleRepository(),
		Lessons:   repository.NewMemoryLessonRepository(),
		Exercises: repository.NewMemoryExerciseRepository(),
	}
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	if err := seed.Builtin(now).Apply(context.Background(), repos, now); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return repos
}

func newTestContentService(t *testing.T) *ContentService {
	t.Helper()
	repos := seededRepos(t)
	return NewContentService(repos.Modules, repos.Lessons, render.NewRenderer(), nil, 0)
}

func TestListPublishedModules(t *testing.T) {
	t.Parallel()
	svc := newTestContentService(t)

	modules, err := svc.ListPublishedModules(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(modules) != 1 {
		t.Fatalf("unexpected module count: got=%d want=1", len(modules))
	}
	if modules[0].ID != seed.InternetModuleID {
		t.Fatalf("unexpected module: got=%s want=%s", modules[0].ID, seed.InternetModuleID)
	}
	if modules[0].TotalLessons != 5 {
		t.Fatalf("unexpected totalLessons: got=%d want=5", modules[0].TotalLessons)
	}
}

func TestGetModuleBySlug(t *testing.T) {
	t.Parallel()
	svc := newTestContentService(t)

	tests := []struct {
		name string
		slug string
		want error
	}{
		{name: "published", slug: seed.InternetModuleSlug},
		{name: "draft", slug: "redes-avanzadas", want: util.ErrNotPublished},
		{name: "missing", slug: "no-existe", want: util.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := svc.GetModuleBySlug(context.Background(), tt.slug)
			if tt.want != nil {
				if !errors.Is(err, tt.want) {
					t.Fatalf("unexpected error: got=%v want=%v", err, tt.want)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.Slug != tt.slug {
				t.Fatalf("unexpected slug: got=%s want=%s", m.Slug, tt.slug)
			}
		})
	}
}

func TestGetLessonsForModuleByIDOrSlug(t *testing.T) {
	t.Parallel()
	svc := newTestContentService(t)

	for _, ref := range []string{seed.InternetModuleID, seed.InternetModuleSlug} {
		lessons, err := svc.GetLessonsForModule(context.Background(), ref)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", ref, err)
		}
		if len(lessons) != 5 {
			t.Fatalf("%s: unexpected lesson count: got=%d want=5", ref, len(lessons))
		}
		for i, l := range lessons {
			if l.Order != i+1 {
				t.Fatalf("%s: unexpected order at %d: got=%d", ref, i, l.Order)
			}
			if l.Slug == seed.ArchivedLessonSlug {
				t.Fatalf("%s: archived lesson listed", ref)
			}
		}
	}
}

func TestGetLessonContent(t *testing.T) {
	t.Parallel()
	svc := newTestContentService(t)
	ctx := context.Background()

	lesson, err := svc.GetLessonContent(ctx, seed.InternetModuleSlug, "dns-detallado")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lesson.ID != "dns-detallado" {
		t.Fatalf("unexpected lesson: got=%s", lesson.ID)
	}

	if _, err := svc.GetLessonContent(ctx, seed.InternetModuleSlug, seed.ArchivedLessonSlug); !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("archived lesson: got=%v want=%v", err, util.ErrNotFound)
	}
	if _, err := svc.GetLessonContent(ctx, "redes-avanzadas", "cualquiera"); !errors.Is(err, util.ErrNotPublished) {
		t.Fatalf("draft module: got=%v want=%v", err, util.ErrNotPublished)
	}
}

func TestGetRenderedLesson(t *testing.T) {
	t.Parallel()
	svc := newTestContentService(t)

	rendered, err := svc.GetRenderedLesson(context.Background(), seed.InternetModuleID, "fundamentos-de-internet")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rendered.Units) == 0 {
		t.Fatalf("expected rendered units")
	}
}

func TestFindLessonByID(t *testing.T) {
	t.Parallel()
	svc := newTestContentService(t)
	ctx := context.Background()

	if _, err := svc.FindLessonByID(ctx, "seguridad-web"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.FindLessonByID(ctx, "historia-arpanet"); !errors.Is(err, util.ErrNotPublished) {
		t.Fatalf("archived lesson: got=%v want=%v", err, util.ErrNotPublished)
	}
	if _, err := svc.FindLessonByID(ctx, "lesson-1"); !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("missing lesson: got=%v want=%v", err, util.ErrNotFound)
	}
}

func TestPublishAndArchive(t *testing.T) {
	t.Parallel()
	svc := newTestContentService(t)
	ctx := context.Background()

	if _, err := svc.PublishModule(ctx, seed.DraftModuleID); err != nil {
		t.Fatalf("publish module: %v", err)
	}
	if _, err := svc.GetModuleBySlug(ctx, "redes-avanzadas"); err != nil {
		t.Fatalf("published module not visible: %v", err)
	}

	if _, err := svc.ArchiveLesson(ctx, "seguridad-web"); err != nil {
		t.Fatalf("archive lesson: %v", err)
	}
	lessons, err := svc.GetLessonsForModule(ctx, seed.InternetModuleID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lessons) != 4 {
		t.Fatalf("unexpected lesson count: got=%d want=4", len(lessons))
	}

	if _, err := svc.PublishLesson(ctx, "no-existe"); !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("missing lesson: got=%v want=%v", err, util.ErrNotFound)
	}
}
