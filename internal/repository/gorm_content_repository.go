package repository

import (
	"context"
	"creai_edu_backend/internal/model"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormModuleRepository 适用于 mysql / postgres / sqlite
type GormModuleRepository struct {
	DB *gorm.DB
}

func NewGormModuleRepository(db *gorm.DB) *GormModuleRepository {
	return &GormModuleRepository{DB: db}
}

func (r *GormModuleRepository) Save(ctx context.Context, module *model.Module) error {
	err := r.DB.WithContext(ctx).Save(module).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (r *GormModuleRepository) FindByID(ctx context.Context, id string) (*model.Module, error) {
	var m model.Module
	if err := r.DB.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *GormModuleRepository) FindBySlug(ctx context.Context, slug string) (*model.Module, error) {
	var m model.Module
	if err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *GormModuleRepository) FindAll(ctx context.Context, params PageParams) (Page[model.Module], error) {
	return findPage[model.Module](r.DB.WithContext(ctx).Model(&model.Module{}), params)
}

func (r *GormModuleRepository) FindPublished(ctx context.Context, params PageParams) (Page[model.Module], error) {
	q := r.DB.WithContext(ctx).Model(&model.Module{}).Where("status = ?", model.StatusPublished)
	return findPage[model.Module](q, params)
}

func (r *GormModuleRepository) Update(ctx context.Context, id string, fn func(*model.Module) error) (*model.Module, error) {
	var m model.Module
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&m, "id = ?", id).Error; err != nil {
			return err
		}
		if err := fn(&m); err != nil {
			return err
		}
		return tx.Save(&m).Error
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

type GormLessonRepository struct {
	DB *gorm.DB
}

func NewGormLessonRepository(db *gorm.DB) *GormLessonRepository {
	return &GormLessonRepository{DB: db}
}

func (r *GormLessonRepository) Save(ctx context.Context, lesson *model.Lesson) error {
	err := r.DB.WithContext(ctx).Save(lesson).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (r *GormLessonRepository) FindByID(ctx context.Context, id string) (*model.Lesson, error) {
	var l model.Lesson
	if err := r.DB.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *GormLessonRepository) FindByModuleAndSlug(ctx context.Context, moduleID, slug string) (*model.Lesson, error) {
	var l model.Lesson
	err := r.DB.WithContext(ctx).
		Where("module_id = ? AND slug = ?", moduleID, slug).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *GormLessonRepository) FindPublishedByModuleID(ctx context.Context, moduleID string) ([]model.Lesson, error) {
	lessons := make([]model.Lesson, 0)
	err := r.DB.WithContext(ctx).
		Where("module_id = ? AND status = ?", moduleID, model.StatusPublished).
		Order("sort_order ASC").
		Find(&lessons).Error
	return lessons, err
}

func (r *GormLessonRepository) FindPublished(ctx context.Context, params PageParams) (Page[model.Lesson], error) {
	q := r.DB.WithContext(ctx).Model(&model.Lesson{}).Where("status = ?", model.StatusPublished)
	return findPage[model.Lesson](q, params)
}

func (r *GormLessonRepository) FindAll(ctx context.Context) ([]model.Lesson, error) {
	lessons := make([]model.Lesson, 0)
	err := r.DB.WithContext(ctx).Order("module_id ASC, sort_order ASC").Find(&lessons).Error
	return lessons, err
}

func (r *GormLessonRepository) Update(ctx context.Context, id string, fn func(*model.Lesson) error) (*model.Lesson, error) {
	var l model.Lesson
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&l, "id = ?", id).Error; err != nil {
			return err
		}
		if err := fn(&l); err != nil {
			return err
		}
		return tx.Save(&l).Error
	})
	if err != nil {
		return nil, err
	}
	return &l, nil
}

type GormExerciseRepository struct {
	DB *gorm.DB
}

func NewGormExerciseRepository(db *gorm.DB) *GormExerciseRepository {
	return &GormExerciseRepository{DB: db}
}

func (r *GormExerciseRepository) Save(ctx context.Context, exercise *model.CodeExercise) error {
	return r.DB.WithContext(ctx).Save(exercise).Error
}

func (r *GormExerciseRepository) FindByID(ctx context.Context, id string) (*model.CodeExercise, error) {
	var e model.CodeExercise
	if err := r.DB.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *GormExerciseRepository) FindByLessonID(ctx context.Context, lessonID string) ([]model.CodeExercise, error) {
	exercises := make([]model.CodeExercise, 0)
	err := r.DB.WithContext(ctx).Where("lesson_id = ?", lessonID).Order("id ASC").Find(&exercises).Error
	return exercises, err
}

// findPage 先统计过滤后的总数再取当前页
func findPage[T any](q *gorm.DB, params PageParams) (Page[T], error) {
	params = params.Normalize()

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Page[T]{}, err
	}

	data := make([]T, 0, params.Limit)
	err := q.Session(&gorm.Session{}).
		Order(orderClause(params)).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&data).Error
	if err != nil {
		return Page[T]{}, err
	}
	return Page[T]{Data: data, Pagination: NewPagination(params, total)}, nil
}

// sqlite 不支持 FOR UPDATE
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
