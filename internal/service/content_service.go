package service

import (
	"context"
	"creai_edu_backend/internal/model"
	"creai_edu_backend/internal/render"
	"creai_edu_backend/internal/repository"
	"creai_edu_backend/internal/util"
	"creai_edu_backend/pkg/logger"
	"creai_edu_backend/pkg/tracing"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const moduleCacheKeyPrefix = "content:module:"

// ContentService 模块与课程的只读查询，以及发布状态变更
type ContentService struct {
	ModuleRepo repository.ModuleRepository
	LessonRepo repository.LessonRepository
	Renderer   *render.Renderer
	Redis      *redis.Client
	CacheTTL   time.Duration
}

func NewContentService(moduleRepo repository.ModuleRepository, lessonRepo repository.LessonRepository, renderer *render.Renderer, rdb *redis.Client, cacheTTL time.Duration) *ContentService {
	return &ContentService{
		ModuleRepo: moduleRepo,
		LessonRepo: lessonRepo,
		Renderer:   renderer,
		Redis:      rdb,
		CacheTTL:   cacheTTL,
	}
}

// ListPublishedModules 返回全部已发布模块，按 order 升序，并填充 totalLessons
func (s *ContentService) ListPublishedModules(ctx context.Context) ([]model.Module, error) {
	params := repository.PageParams{Page: 1, Limit: util.MaxLimit, SortBy: "order", SortOrder: "asc"}
	modules := make([]model.Module, 0)
	for {
		page, err := s.ModuleRepo.FindPublished(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("list published modules: %w", err)
		}
		modules = append(modules, page.Data...)
		if !page.Pagination.HasNext {
			break
		}
		params.Page++
	}
	if err := s.fillLessonCounts(ctx, modules); err != nil {
		return nil, err
	}
	return modules, nil
}

// ListModules 分页版本，供带分页参数的列表请求使用
func (s *ContentService) ListModules(ctx context.Context, params repository.PageParams) (repository.Page[model.Module], error) {
	page, err := s.ModuleRepo.FindPublished(ctx, params)
	if err != nil {
		return page, fmt.Errorf("list modules: %w", err)
	}
	if err := s.fillLessonCounts(ctx, page.Data); err != nil {
		return page, err
	}
	return page, nil
}

func (s *ContentService) fillLessonCounts(ctx context.Context, modules []model.Module) error {
	for i := range modules {
		lessons, err := s.LessonRepo.FindPublishedByModuleID(ctx, modules[i].ID)
		if err != nil {
			return fmt.Errorf("count lessons of %s: %w", modules[i].ID, err)
		}
		modules[i].TotalLessons = len(lessons)
	}
	return nil
}

// GetModuleBySlug 区分不存在与未发布两种错误
func (s *ContentService) GetModuleBySlug(ctx context.Context, slug string) (*model.Module, error) {
	ctx, span := tracing.StartSpan(ctx, "content.GetModuleBySlug", attribute.String("module.slug", slug))
	defer span.End()

	if m, ok := s.cachedModule(ctx, slug); ok {
		return m, nil
	}

	m, err := s.ModuleRepo.FindBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, util.ModuleNotFound(slug)
	}
	if err != nil {
		return nil, fmt.Errorf("find module %s: %w", slug, err)
	}
	if !m.IsPublished() {
		return nil, util.ModuleNotPublished(slug)
	}

	modules := []model.Module{*m}
	if err := s.fillLessonCounts(ctx, modules); err != nil {
		return nil, err
	}
	m = &modules[0]
	s.cacheModule(ctx, m)
	return m, nil
}

// resolveModule 先按 id 查找，再按 slug 查找
func (s *ContentService) resolveModule(ctx context.Context, ref string) (*model.Module, error) {
	m, err := s.ModuleRepo.FindByID(ctx, ref)
	if errors.Is(err, repository.ErrNotFound) {
		m, err = s.ModuleRepo.FindBySlug(ctx, ref)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, util.ModuleNotFound(ref)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve module %s: %w", ref, err)
	}
	if !m.IsPublished() {
		return nil, util.ModuleNotPublished(ref)
	}
	return m, nil
}

// GetLessonsForModule moduleRef 可以是模块 id 或 slug
func (s *ContentService) GetLessonsForModule(ctx context.Context, moduleRef string) ([]model.Lesson, error) {
	ctx, span := tracing.StartSpan(ctx, "content.GetLessonsForModule", attribute.String("module.ref", moduleRef))
	defer span.End()

	m, err := s.resolveModule(ctx, moduleRef)
	if err != nil {
		return nil, err
	}
	lessons, err := s.LessonRepo.FindPublishedByModuleID(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("list lessons of %s: %w", m.ID, err)
	}
	return lessons, nil
}

func (s *ContentService) GetLessonContent(ctx context.Context, moduleRef, lessonSlug string) (*model.Lesson, error) {
	lessons, err := s.GetLessonsForModule(ctx, moduleRef)
	if err != nil {
		return nil, err
	}
	for i := range lessons {
		if lessons[i].Slug == lessonSlug {
			return &lessons[i], nil
		}
	}
	return nil, util.LessonNotFound(lessonSlug, moduleRef)
}

func (s *ContentService) ListPublishedLessons(ctx context.Context, params repository.PageParams) (repository.Page[model.Lesson], error) {
	page, err := s.LessonRepo.FindPublished(ctx, params)
	if err != nil {
		return page, fmt.Errorf("list lessons: %w", err)
	}
	return page, nil
}

// RenderedLesson 课程元数据加上逐块渲染结果
type RenderedLesson struct {
	ID          string        `json:"id"`
	ModuleID    string        `json:"moduleId"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Slug        string        `json:"slug"`
	Order       int           `json:"order"`
	Units       []render.Unit `json:"units"`
}

func (s *ContentService) GetRenderedLesson(ctx context.Context, moduleRef, lessonSlug string) (*RenderedLesson, error) {
	lesson, err := s.GetLessonContent(ctx, moduleRef, lessonSlug)
	if err != nil {
		return nil, err
	}
	return &RenderedLesson{
		ID:          lesson.ID,
		ModuleID:    lesson.ModuleID,
		Title:       lesson.Title,
		Description: lesson.Description,
		Slug:        lesson.Slug,
		Order:       lesson.Order,
		Units:       s.Renderer.RenderAll(lesson.ContentBlocks),
	}, nil
}

// FindLessonByID 完成课程时校验课程存在且已发布
func (s *ContentService) FindLessonByID(ctx context.Context, id string) (*model.Lesson, error) {
	l, err := s.LessonRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, util.NewError(util.ErrNotFound, "Lesson with id '%s' not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find lesson %s: %w", id, err)
	}
	if !l.IsPublished() {
		return nil, util.NewError(util.ErrNotPublished, "Lesson with id '%s' is not published", id)
	}
	return l, nil
}

func (s *ContentService) PublishModule(ctx context.Context, id string) (*model.Module, error) {
	return s.updateModule(ctx, id, func(m *model.Module) { m.Publish(time.Now()) })
}

func (s *ContentService) ArchiveModule(ctx context.Context, id string) (*model.Module, error) {
	return s.updateModule(ctx, id, func(m *model.Module) { m.Archive(time.Now()) })
}

func (s *ContentService) updateModule(ctx context.Context, id string, change func(*model.Module)) (*model.Module, error) {
	m, err := s.ModuleRepo.Update(ctx, id, func(m *model.Module) error {
		change(m)
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, util.NewError(util.ErrNotFound, "Module with id '%s' not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("update module %s: %w", id, err)
	}
	s.invalidateModule(ctx, m.Slug)
	logger.Log.Info("module status changed", zap.String("module", m.ID), zap.String("status", string(m.Status)))
	return m, nil
}

func (s *ContentService) PublishLesson(ctx context.Context, id string) (*model.Lesson, error) {
	return s.updateLesson(ctx, id, func(l *model.Lesson) { l.Publish(time.Now()) })
}

func (s *ContentService) ArchiveLesson(ctx context.Context, id string) (*model.Lesson, error) {
	return s.updateLesson(ctx, id, func(l *model.Lesson) { l.Archive(time.Now()) })
}

func (s *ContentService) updateLesson(ctx context.Context, id string, change func(*model.Lesson)) (*model.Lesson, error) {
	l, err := s.LessonRepo.Update(ctx, id, func(l *model.Lesson) error {
		change(l)
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, util.NewError(util.ErrNotFound, "Lesson with id '%s' not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("update lesson %s: %w", id, err)
	}
	// 课程数量变化会影响模块缓存里的 totalLessons
	if m, err := s.ModuleRepo.FindByID(ctx, l.ModuleID); err == nil {
		s.invalidateModule(ctx, m.Slug)
	}
	logger.Log.Info("lesson status changed", zap.String("lesson", l.ID), zap.String("status", string(l.Status)))
	return l, nil
}

// DebugLessons 调试接口使用，包含未发布内容
func (s *ContentService) DebugLessons(ctx context.Context) ([]model.Lesson, error) {
	return s.LessonRepo.FindAll(ctx)
}

func (s *ContentService) DebugModuleIDs(ctx context.Context) ([]string, error) {
	page, err := s.ModuleRepo.FindAll(ctx, repository.PageParams{Page: 1, Limit: util.MaxLimit})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(page.Data))
	for _, m := range page.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

func (s *ContentService) cachedModule(ctx context.Context, slug string) (*model.Module, bool) {
	if s.Redis == nil {
		return nil, false
	}
	data, err := s.Redis.Get(ctx, moduleCacheKeyPrefix+slug).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("module cache read failed", zap.String("slug", slug), zap.Error(err))
		}
		return nil, false
	}
	var m model.Module
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, false
	}
	return &m, true
}

func (s *ContentService) cacheModule(ctx context.Context, m *model.Module) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(m)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, moduleCacheKeyPrefix+m.Slug, data, s.CacheTTL).Err(); err != nil {
		logger.Log.Warn("module cache write failed", zap.String("slug", m.Slug), zap.Error(err))
	}
}

func (s *ContentService) invalidateModule(ctx context.Context, slug string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, moduleCacheKeyPrefix+slug).Err(); err != nil {
		logger.Log.Warn("module cache invalidation failed", zap.String("slug", slug), zap.Error(err))
	}
}
