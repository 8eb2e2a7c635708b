package repository

import (
	"context"
	"creai_edu_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound 内存实现与 gorm 实现共用，调用方用 errors.Is 判断
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate 唯一键冲突
var ErrDuplicate = errors.New("duplicate key")

type ModuleRepository interface {
	Save(ctx context.Context, module *model.Module) error
	FindByID(ctx context.Context, id string) (*model.Module, error)
	FindBySlug(ctx context.Context, slug string) (*model.Module, error)
	FindAll(ctx context.Context, params PageParams) (Page[model.Module], error)
	FindPublished(ctx context.Context, params PageParams) (Page[model.Module], error)
	// Update 在写锁内对已存在的模块执行 fn
	Update(ctx context.Context, id string, fn func(*model.Module) error) (*model.Module, error)
}

type LessonRepository interface {
	Save(ctx context.Context, lesson *model.Lesson) error
	FindByID(ctx context.Context, id string) (*model.Lesson, error)
	FindByModuleAndSlug(ctx context.Context, moduleID, slug string) (*model.Lesson, error)
	FindPublishedByModuleID(ctx context.Context, moduleID string) ([]model.Lesson, error)
	FindPublished(ctx context.Context, params PageParams) (Page[model.Lesson], error)
	FindAll(ctx context.Context) ([]model.Lesson, error)
	Update(ctx context.Context, id string, fn func(*model.Lesson) error) (*model.Lesson, error)
}

type ExerciseRepository interface {
	Save(ctx context.Context, exercise *model.CodeExercise) error
	FindByID(ctx context.Context, id string) (*model.CodeExercise, error)
	FindByLessonID(ctx context.Context, lessonID string) ([]model.CodeExercise, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAll(ctx context.Context, params PageParams) (Page[model.User], error)
}

func moduleKey(m model.Module) sortKey {
	return sortKey{order: m.Order, title: m.Title, createdAt: m.CreatedAt}
}

func lessonKey(l model.Lesson) sortKey {
	return sortKey{order: l.Order, title: l.Title, createdAt: l.CreatedAt}
}

func userKey(u model.User) sortKey {
	return sortKey{title: u.Email, createdAt: u.CreatedAt}
}
