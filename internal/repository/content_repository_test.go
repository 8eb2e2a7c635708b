package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"creai_edu_backend/internal/config"
	"creai_edu_backend/internal/model"
	"creai_edu_backend/internal/repository"
	"creai_edu_backend/internal/util"
	"creai_edu_backend/pkg/database"
)

type contentRepos struct {
	modules   repository.ModuleRepository
	lessons   repository.LessonRepository
	exercises repository.ExerciseRepository
	users     repository.UserRepository
}

func memoryRepos(t *testing.T) contentRepos {
	return contentRepos{
		modules:   repository.NewMemoryModuleRepository(),
		lessons:   repository.NewMemoryLessonRepository(),
		exercises: repository.NewMemoryExerciseRepository(),
		users:     repository.NewMemoryUserRepository(),
	}
}

func sqliteRepos(t *testing.T) contentRepos {
	db, err := database.InitDB(&config.DatabaseConfig{
		Driver: util.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "content.db"),
	}, false)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return contentRepos{
		modules:   repository.NewGormModuleRepository(db),
		lessons:   repository.NewGormLessonRepository(db),
		exercises: repository.NewGormExerciseRepository(db),
		users:     repository.NewGormUserRepository(db),
	}
}

var backends = []struct {
	name string
	open func(t *testing.T) contentRepos
}{
	{"memory", memoryRepos},
	{"sqlite", sqliteRepos},
}

func fixtureModule(id, slug string, order int, status model.PublishStatus) *model.Module {
	now := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	return &model.Module{
		ID:        id,
		Title:     "Módulo " + id,
		Slug:      slug,
		Status:    status,
		Order:     order,
		Tags:      []string{"redes"},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func fixtureLesson(id, moduleID string, order int, status model.PublishStatus) *model.Lesson {
	now := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	return &model.Lesson{
		ID:            id,
		ModuleID:      moduleID,
		Title:         "Lección " + id,
		Slug:          id,
		Order:         order,
		Status:        status,
		ContentBlocks: []model.ContentBlock{model.TextBlock("# Hola")},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestModuleRepositories(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			repos := b.open(t)
			ctx := context.Background()

			for _, m := range []*model.Module{
				fixtureModule("m2", "segundo", 2, model.StatusPublished),
				fixtureModule("m1", "primero", 1, model.StatusPublished),
				fixtureModule("m3", "borrador", 3, model.StatusDraft),
			} {
				if err := repos.modules.Save(ctx, m); err != nil {
					t.Fatalf("save %s: %v", m.ID, err)
				}
			}

			m, err := repos.modules.FindBySlug(ctx, "primero")
			if err != nil || m.ID != "m1" {
				t.Fatalf("find by slug: got=%v err=%v", m, err)
			}
			if len(m.Tags) != 1 || m.Tags[0] != "redes" {
				t.Fatalf("unexpected tags: %v", m.Tags)
			}
			if _, err := repos.modules.FindByID(ctx, "nope"); !errors.Is(err, repository.ErrNotFound) {
				t.Fatalf("missing module: got=%v want=%v", err, repository.ErrNotFound)
			}

			page, err := repos.modules.FindPublished(ctx, repository.PageParams{Page: 1, Limit: 1})
			if err != nil {
				t.Fatalf("find published: %v", err)
			}
			if page.Pagination.Total != 2 || len(page.Data) != 1 || page.Data[0].ID != "m1" || !page.Pagination.HasNext {
				t.Fatalf("unexpected page: %+v", page)
			}

			all, err := repos.modules.FindAll(ctx, repository.PageParams{})
			if err != nil || all.Pagination.Total != 3 {
				t.Fatalf("find all: total=%d err=%v", all.Pagination.Total, err)
			}

			updated, err := repos.modules.Update(ctx, "m3", func(m *model.Module) error {
				m.Publish(time.Now())
				return nil
			})
			if err != nil || !updated.IsPublished() {
				t.Fatalf("update: got=%v err=%v", updated, err)
			}
			if _, err := repos.modules.Update(ctx, "nope", func(*model.Module) error { return nil }); !errors.Is(err, repository.ErrNotFound) {
				t.Fatalf("update missing: got=%v want=%v", err, repository.ErrNotFound)
			}

			if err := repos.modules.Save(ctx, fixtureModule("m4", "primero", 4, model.StatusDraft)); err == nil {
				t.Fatalf("expected duplicate slug error")
			}
		})
	}
}

func TestLessonRepositories(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			repos := b.open(t)
			ctx := context.Background()

			if err := repos.modules.Save(ctx, fixtureModule("m1", "primero", 1, model.StatusPublished)); err != nil {
				t.Fatalf("save module: %v", err)
			}
			for _, l := range []*model.Lesson{
				fixtureLesson("l3", "m1", 3, model.StatusPublished),
				fixtureLesson("l1", "m1", 1, model.StatusPublished),
				fixtureLesson("l2", "m1", 2, model.StatusArchived),
			} {
				if err := repos.lessons.Save(ctx, l); err != nil {
					t.Fatalf("save %s: %v", l.ID, err)
				}
			}

			published, err := repos.lessons.FindPublishedByModuleID(ctx, "m1")
			if err != nil {
				t.Fatalf("find published: %v", err)
			}
			if len(published) != 2 || published[0].ID != "l1" || published[1].ID != "l3" {
				t.Fatalf("unexpected published lessons: %+v", published)
			}
			if len(published[0].ContentBlocks) != 1 || published[0].ContentBlocks[0].Type != model.BlockText {
				t.Fatalf("content blocks not preserved: %+v", published[0].ContentBlocks)
			}

			l, err := repos.lessons.FindByModuleAndSlug(ctx, "m1", "l2")
			if err != nil || l.Status != model.StatusArchived {
				t.Fatalf("find by slug: got=%v err=%v", l, err)
			}

			all, err := repos.lessons.FindAll(ctx)
			if err != nil || len(all) != 3 {
				t.Fatalf("find all: got=%d err=%v", len(all), err)
			}

			page, err := repos.lessons.FindPublished(ctx, repository.PageParams{Page: 1, Limit: 10})
			if err != nil || page.Pagination.Total != 2 {
				t.Fatalf("paged published: total=%d err=%v", page.Pagination.Total, err)
			}
		})
	}
}

func TestExerciseRepositories(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			repos := b.open(t)
			ctx := context.Background()

			ex := &model.CodeExercise{
				ID:        "url-parser",
				LessonID:  "l1",
				Title:     "Parser",
				TestCases: []model.TestCase{{Input: "https://a.com", Expected: "https", Description: "protocolo"}},
				Hints:     []string{"usa split"},
				Points:    10,
			}
			if err := repos.exercises.Save(ctx, ex); err != nil {
				t.Fatalf("save: %v", err)
			}
			got, err := repos.exercises.FindByID(ctx, "url-parser")
			if err != nil {
				t.Fatalf("find: %v", err)
			}
			if len(got.TestCases) != 1 || got.TestCases[0].Expected != "https" || len(got.Hints) != 1 {
				t.Fatalf("unexpected exercise: %+v", got)
			}
			list, err := repos.exercises.FindByLessonID(ctx, "l1")
			if err != nil || len(list) != 1 {
				t.Fatalf("find by lesson: got=%d err=%v", len(list), err)
			}
			if _, err := repos.exercises.FindByID(ctx, "nope"); !errors.Is(err, repository.ErrNotFound) {
				t.Fatalf("missing exercise: got=%v want=%v", err, repository.ErrNotFound)
			}
		})
	}
}

func TestUserRepositories(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			repos := b.open(t)
			ctx := context.Background()

			user := &model.User{Email: "ana@example.com", PasswordHash: "x", FirstName: "Ana", LastName: "López", Role: model.RoleUser, Status: model.UserActive}
			if err := repos.users.Create(ctx, user); err != nil {
				t.Fatalf("create: %v", err)
			}
			if user.ID == "" {
				t.Fatalf("expected generated id")
			}

			dup := &model.User{Email: "ANA@example.com", PasswordHash: "y", FirstName: "Otra", LastName: "Ana"}
			if err := repos.users.Create(ctx, dup); !errors.Is(err, repository.ErrDuplicate) {
				t.Fatalf("duplicate email: got=%v want=%v", err, repository.ErrDuplicate)
			}

			found, err := repos.users.FindByEmail(ctx, "Ana@Example.com")
			if err != nil || found.ID != user.ID {
				t.Fatalf("find by email: got=%v err=%v", found, err)
			}
			if _, err := repos.users.FindByID(ctx, "nope"); !errors.Is(err, repository.ErrNotFound) {
				t.Fatalf("missing user: got=%v want=%v", err, repository.ErrNotFound)
			}

			page, err := repos.users.FindAll(ctx, repository.PageParams{})
			if err != nil || page.Pagination.Total != 1 {
				t.Fatalf("find all: total=%d err=%v", page.Pagination.Total, err)
			}
		})
	}
}
