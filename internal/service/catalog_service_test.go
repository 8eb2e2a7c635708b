package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"creai_edu_backend/internal/config"
	"creai_edu_backend/internal/repository"
	"creai_edu_backend/internal/seed"
	"creai_edu_backend/internal/util"
)

func newLocalCatalog(t *testing.T) (*CatalogService, string) {
	t.Helper()
	root := t.TempDir()
	storage, err := NewStorageService(&config.StorageConfig{Type: util.StorageLocal, LocalPath: root})
	if err != nil {
		t.Fatalf("storage: %v", err)
	}
	repos := seed.Repositories{
		Modules:   repository.NewMemoryModuleRepository(),
		Lessons:   repository.NewMemoryLessonRepository(),
		Exercises: repository.NewMemoryExerciseRepository(),
	}
	return NewCatalogService(storage, repos), root
}

func TestCatalogExportAndLoad(t *testing.T) {
	t.Parallel()
	svc, root := newLocalCatalog(t)
	ctx := context.Background()

	url, err := svc.Export(ctx, "bundles/internet.yaml")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(url, "file://") {
		t.Fatalf("unexpected url: %s", url)
	}
	if _, err := os.Stat(filepath.Join(root, "bundles", "internet.yaml")); err != nil {
		t.Fatalf("bundle not written: %v", err)
	}

	loaded, err := svc.LoadBundle(ctx, "bundles/internet.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	builtin := seed.Builtin(time.Now())
	if len(loaded.Modules) != len(builtin.Modules) || len(loaded.Lessons) != len(builtin.Lessons) || len(loaded.Exercises) != len(builtin.Exercises) {
		t.Fatalf("unexpected bundle size: got=%d/%d/%d want=%d/%d/%d",
			len(loaded.Modules), len(loaded.Lessons), len(loaded.Exercises),
			len(builtin.Modules), len(builtin.Lessons), len(builtin.Exercises))
	}
	if err := loaded.Validate(); err != nil {
		t.Fatalf("loaded bundle invalid: %v", err)
	}
}

func TestCatalogBootstrap(t *testing.T) {
	t.Parallel()
	svc, _ := newLocalCatalog(t)
	ctx := context.Background()

	catalog, err := svc.Bootstrap(ctx, "")
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if len(catalog.Modules) != 2 {
		t.Fatalf("unexpected module count: got=%d want=2", len(catalog.Modules))
	}
	if _, err := svc.Repos.Modules.FindBySlug(ctx, seed.InternetModuleSlug); err != nil {
		t.Fatalf("module not stored: %v", err)
	}
	if _, err := svc.Repos.Exercises.FindByID(ctx, seed.URLParserExerciseID); err != nil {
		t.Fatalf("exercise not stored: %v", err)
	}
}

func TestCatalogBootstrapWithBundle(t *testing.T) {
	t.Parallel()
	svc, root := newLocalCatalog(t)
	ctx := context.Background()

	if _, err := svc.Export(ctx, "internet.yaml"); err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := svc.Bootstrap(ctx, "internet.yaml"); err != nil {
		t.Fatalf("bootstrap with bundle: %v", err)
	}

	if err := os.WriteFile(filepath.Join(root, "broken.yaml"), []byte("modules: [\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := svc.Bootstrap(ctx, "broken.yaml"); err == nil {
		t.Fatalf("expected error for malformed bundle")
	}
	if _, err := svc.Bootstrap(ctx, "missing.yaml"); err == nil {
		t.Fatalf("expected error for missing bundle")
	}
}

func TestNewStorageServiceRejectsUnknownType(t *testing.T) {
	t.Parallel()
	if _, err := NewStorageService(&config.StorageConfig{Type: "ftp"}); err == nil {
		t.Fatalf("expected error for unknown storage type")
	}
}
