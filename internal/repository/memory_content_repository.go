package repository

import (
	"cmp"
	"context"
	"creai_edu_backend/internal/model"
	"slices"
	"sync"
)

// MemoryModuleRepository 进程内模块存储，读多写少，写操作持有写锁
type MemoryModuleRepository struct {
	mu      sync.RWMutex
	modules map[string]model.Module
}

func NewMemoryModuleRepository() *MemoryModuleRepository {
	return &MemoryModuleRepository{modules: make(map[string]model.Module)}
}

func (r *MemoryModuleRepository) Save(ctx context.Context, module *model.Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.modules {
		if id != module.ID && existing.Slug == module.Slug {
			return ErrDuplicate
		}
	}
	r.modules[module.ID] = *module
	return nil
}

func (r *MemoryModuleRepository) FindByID(ctx context.Context, id string) (*model.Module, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.modules[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &m, nil
}

func (r *MemoryModuleRepository) FindBySlug(ctx context.Context, slug string) (*model.Module, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.modules {
		if m.Slug == slug {
			return &m, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryModuleRepository) FindAll(ctx context.Context, params PageParams) (Page[model.Module], error) {
	return paginate(r.filter(nil), params, moduleKey), nil
}

func (r *MemoryModuleRepository) FindPublished(ctx context.Context, params PageParams) (Page[model.Module], error) {
	return paginate(r.filter(func(m model.Module) bool { return m.IsPublished() }), params, moduleKey), nil
}

func (r *MemoryModuleRepository) Update(ctx context.Context, id string, fn func(*model.Module) error) (*model.Module, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.modules[id]
	if !ok {
		return nil, ErrNotFound
	}
	if err := fn(&m); err != nil {
		return nil, err
	}
	r.modules[id] = m
	return &m, nil
}

func (r *MemoryModuleRepository) filter(keep func(model.Module) bool) []model.Module {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Module, 0, len(r.modules))
	for _, m := range r.modules {
		if keep == nil || keep(m) {
			out = append(out, m)
		}
	}
	return out
}

type MemoryLessonRepository struct {
	mu      sync.RWMutex
	lessons map[string]model.Lesson
}

func NewMemoryLessonRepository() *MemoryLessonRepository {
	return &MemoryLessonRepository{lessons: make(map[string]model.Lesson)}
}

func (r *MemoryLessonRepository) Save(ctx context.Context, lesson *model.Lesson) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.lessons {
		if id != lesson.ID && existing.ModuleID == lesson.ModuleID && existing.Slug == lesson.Slug {
			return ErrDuplicate
		}
	}
	r.lessons[lesson.ID] = *lesson
	return nil
}

func (r *MemoryLessonRepository) FindByID(ctx context.Context, id string) (*model.Lesson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.lessons[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &l, nil
}

func (r *MemoryLessonRepository) FindByModuleAndSlug(ctx context.Context, moduleID, slug string) (*model.Lesson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, l := range r.lessons {
		if l.ModuleID == moduleID && l.Slug == slug {
			return &l, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryLessonRepository) FindPublishedByModuleID(ctx context.Context, moduleID string) ([]model.Lesson, error) {
	lessons := r.filter(func(l model.Lesson) bool {
		return l.ModuleID == moduleID && l.IsPublished()
	})
	slices.SortStableFunc(lessons, func(a, b model.Lesson) int {
		return cmp.Compare(a.Order, b.Order)
	})
	return lessons, nil
}

func (r *MemoryLessonRepository) FindPublished(ctx context.Context, params PageParams) (Page[model.Lesson], error) {
	return paginate(r.filter(func(l model.Lesson) bool { return l.IsPublished() }), params, lessonKey), nil
}

func (r *MemoryLessonRepository) FindAll(ctx context.Context) ([]model.Lesson, error) {
	lessons := r.filter(nil)
	slices.SortStableFunc(lessons, func(a, b model.Lesson) int {
		if c := cmp.Compare(a.ModuleID, b.ModuleID); c != 0 {
			return c
		}
		return cmp.Compare(a.Order, b.Order)
	})
	return lessons, nil
}

func (r *MemoryLessonRepository) Update(ctx context.Context, id string, fn func(*model.Lesson) error) (*model.Lesson, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.lessons[id]
	if !ok {
		return nil, ErrNotFound
	}
	if err := fn(&l); err != nil {
		return nil, err
	}
	r.lessons[id] = l
	return &l, nil
}

func (r *MemoryLessonRepository) filter(keep func(model.Lesson) bool) []model.Lesson {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Lesson, 0, len(r.lessons))
	for _, l := range r.lessons {
		if keep == nil || keep(l) {
			out = append(out, l)
		}
	}
	return out
}

type MemoryExerciseRepository struct {
	mu        sync.RWMutex
	exercises map[string]model.CodeExercise
}

func NewMemoryExerciseRepository() *MemoryExerciseRepository {
	return &MemoryExerciseRepository{exercises: make(map[string]model.CodeExercise)}
}

func (r *MemoryExerciseRepository) Save(ctx context.Context, exercise *model.CodeExercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exercises[exercise.ID] = *exercise
	return nil
}

func (r *MemoryExerciseRepository) FindByID(ctx context.Context, id string) (*model.CodeExercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.exercises[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (r *MemoryExerciseRepository) FindByLessonID(ctx context.Context, lessonID string) ([]model.CodeExercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.CodeExercise, 0)
	for _, e := range r.exercises {
		if e.LessonID == lessonID {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b model.CodeExercise) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}
