package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"creai_edu_backend/internal/model"
	"creai_edu_backend/internal/repository"

	"gopkg.in/yaml.v3"
)

// Catalog 一组可整体导入导出的课程内容，YAML 字段与 REST 返回的 JSON 一致
type Catalog struct {
	Modules   []model.Module       `json:"modules"`
	Lessons   []model.Lesson       `json:"lessons"`
	Exercises []model.CodeExercise `json:"exercises"`
}

// Builtin 返回内置的 Internet 模块及其课程、练习
func Builtin(now time.Time) Catalog {
	lessons := internetLessons(now)
	lessons = append(lessons, archivedLesson(now))
	return Catalog{
		Modules:   []model.Module{internetModule(now), draftModule(now)},
		Lessons:   lessons,
		Exercises: internetExercises(),
	}
}

// Merge 用 other 中同 id 的条目覆盖当前内容，其余追加
func (c Catalog) Merge(other Catalog) Catalog {
	out := Catalog{
		Modules:   mergeByID(c.Modules, other.Modules, func(m model.Module) string { return m.ID }),
		Lessons:   mergeByID(c.Lessons, other.Lessons, func(l model.Lesson) string { return l.ID }),
		Exercises: mergeByID(c.Exercises, other.Exercises, func(e model.CodeExercise) string { return e.ID }),
	}
	return out
}

func mergeByID[T any](base, extra []T, id func(T) string) []T {
	out := make([]T, 0, len(base)+len(extra))
	index := make(map[string]int, len(base))
	for _, item := range base {
		index[id(item)] = len(out)
		out = append(out, item)
	}
	for _, item := range extra {
		if i, ok := index[id(item)]; ok {
			out[i] = item
			continue
		}
		index[id(item)] = len(out)
		out = append(out, item)
	}
	return out
}

// Validate 检查引用完整性与内容块合法性，返回全部问题
func (c Catalog) Validate() error {
	var errs []error

	modules := make(map[string]bool, len(c.Modules))
	slugs := make(map[string]bool, len(c.Modules))
	for _, m := range c.Modules {
		if m.ID == "" || m.Slug == "" {
			errs = append(errs, fmt.Errorf("module %q: id and slug are required", m.Title))
			continue
		}
		if slugs[m.Slug] {
			errs = append(errs, fmt.Errorf("module %s: duplicate slug %q", m.ID, m.Slug))
		}
		modules[m.ID] = true
		slugs[m.Slug] = true
	}

	lessonSlugs := make(map[string]bool, len(c.Lessons))
	lessonIDs := make(map[string]bool, len(c.Lessons))
	for _, l := range c.Lessons {
		if !modules[l.ModuleID] {
			errs = append(errs, fmt.Errorf("lesson %s: unknown module %q", l.ID, l.ModuleID))
		}
		key := l.ModuleID + "/" + l.Slug
		if lessonSlugs[key] {
			errs = append(errs, fmt.Errorf("lesson %s: duplicate slug %q in module %s", l.ID, l.Slug, l.ModuleID))
		}
		lessonSlugs[key] = true
		lessonIDs[l.ID] = true
		for i, b := range l.ContentBlocks {
			// unsupported 块允许存在，由渲染器隔离
			if b.Type == model.BlockUnsupported {
				continue
			}
			if err := b.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("lesson %s block %d: %w", l.ID, i, err))
			}
		}
	}

	for _, e := range c.Exercises {
		if e.LessonID != "" && !lessonIDs[e.LessonID] {
			errs = append(errs, fmt.Errorf("exercise %s: unknown lesson %q", e.ID, e.LessonID))
		}
	}
	return errors.Join(errs...)
}

type Repositories struct {
	Modules   repository.ModuleRepository
	Lessons   repository.LessonRepository
	Exercises repository.ExerciseRepository
}

// Apply 写入全部内容，缺失的时间戳用 now 补齐
func (c Catalog) Apply(ctx context.Context, repos Repositories, now time.Time) error {
	if err := c.Validate(); err != nil {
		return err
	}
	for i := range c.Modules {
		m := c.Modules[i]
		if m.CreatedAt.IsZero() {
			m.CreatedAt = now
		}
		if m.UpdatedAt.IsZero() {
			m.UpdatedAt = now
		}
		if err := repos.Modules.Save(ctx, &m); err != nil {
			return fmt.Errorf("save module %s: %w", m.ID, err)
		}
	}
	for i := range c.Lessons {
		l := c.Lessons[i]
		if l.CreatedAt.IsZero() {
			l.CreatedAt = now
		}
		if l.UpdatedAt.IsZero() {
			l.UpdatedAt = now
		}
		if err := repos.Lessons.Save(ctx, &l); err != nil {
			return fmt.Errorf("save lesson %s: %w", l.ID, err)
		}
	}
	for i := range c.Exercises {
		e := c.Exercises[i]
		if err := repos.Exercises.Save(ctx, &e); err != nil {
			return fmt.Errorf("save exercise %s: %w", e.ID, err)
		}
	}
	return nil
}

// DecodeBundle 解析 YAML 内容包。先转成通用结构再走 JSON 解码，
// 这样内容块的判别逻辑只有一份
func DecodeBundle(r io.Reader) (Catalog, error) {
	var raw any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Catalog{}, errors.New("catalog bundle is empty")
		}
		return Catalog{}, fmt.Errorf("parse catalog bundle: %w", err)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return Catalog{}, fmt.Errorf("convert catalog bundle: %w", err)
	}
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog bundle: %w", err)
	}
	return c, nil
}

func EncodeBundle(w io.Writer, c Catalog) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(raw); err != nil {
		return err
	}
	return enc.Close()
}
