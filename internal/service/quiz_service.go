package service

import (
	"context"
	"creai_edu_backend/internal/model"
	"creai_edu_backend/internal/quiz"
	"creai_edu_backend/internal/util"
)

// CreateQuizSessionRequest 二选一：引用课程中的测验块，或直接提交题目
type CreateQuizSessionRequest struct {
	ModuleID   string               `json:"moduleId"`
	LessonSlug string               `json:"lessonSlug"`
	BlockIndex *int                 `json:"blockIndex"`
	Title      string               `json:"title"`
	Questions  []model.QuizQuestion `json:"questions"`
}

type QuizSession struct {
	ID         string
	Title      string
	ModuleID   string
	LessonSlug string
	Engine     *quiz.Engine
}

type QuizSessionView struct {
	ID         string `json:"id"`
	Title      string `json:"title,omitempty"`
	ModuleID   string `json:"moduleId,omitempty"`
	LessonSlug string `json:"lessonSlug,omitempty"`
	quiz.Snapshot
}

func (s *QuizSession) View() QuizSessionView {
	return QuizSessionView{
		ID:         s.ID,
		Title:      s.Title,
		ModuleID:   s.ModuleID,
		LessonSlug: s.LessonSlug,
		Snapshot:   s.Engine.Snapshot(),
	}
}

type QuizService struct {
	Content  *ContentService
	Sessions *SessionStore[*QuizSession]
	Progress *ProgressService
}

func NewQuizService(content *ContentService, sessions *SessionStore[*QuizSession], progress *ProgressService) *QuizService {
	return &QuizService{Content: content, Sessions: sessions, Progress: progress}
}

func (s *QuizService) CreateSession(ctx context.Context, req CreateQuizSessionRequest) (QuizSessionView, error) {
	title := req.Title
	questions := req.Questions
	if len(questions) == 0 {
		content, err := s.lessonQuiz(ctx, req)
		if err != nil {
			return QuizSessionView{}, err
		}
		questions = content.Questions
		if title == "" {
			title = content.Title
		}
	}

	id := model.GenerateUUID()
	engine, err := quiz.NewEngine(questions, func(score, total int) {
		s.Progress.RecordQuizCompletion(id, score, total)
	})
	if err != nil {
		return QuizSessionView{}, err
	}

	session := &QuizSession{
		ID:         id,
		Title:      title,
		ModuleID:   req.ModuleID,
		LessonSlug: req.LessonSlug,
		Engine:     engine,
	}
	s.Sessions.Put(id, session)
	return session.View(), nil
}

// lessonQuiz 取出课程中指定位置的测验块
func (s *QuizService) lessonQuiz(ctx context.Context, req CreateQuizSessionRequest) (*model.QuizContent, error) {
	var details []util.FieldError
	if req.ModuleID == "" {
		details = append(details, util.FieldError{Field: "moduleId", Message: "moduleId is required when questions are not provided"})
	}
	if req.LessonSlug == "" {
		details = append(details, util.FieldError{Field: "lessonSlug", Message: "lessonSlug is required when questions are not provided"})
	}
	if req.BlockIndex == nil {
		details = append(details, util.FieldError{Field: "blockIndex", Message: "blockIndex is required when questions are not provided"})
	}
	if len(details) > 0 {
		return nil, util.NewValidationError(details)
	}

	lesson, err := s.Content.GetLessonContent(ctx, req.ModuleID, req.LessonSlug)
	if err != nil {
		return nil, err
	}
	idx := *req.BlockIndex
	if idx < 0 || idx >= len(lesson.ContentBlocks) || lesson.ContentBlocks[idx].Type != model.BlockQuiz {
		return nil, util.NewValidationError([]util.FieldError{{
			Field:   "blockIndex",
			Message: "block is not a quiz",
		}})
	}
	return lesson.ContentBlocks[idx].Quiz, nil
}

func (s *QuizService) session(id string) (*QuizSession, error) {
	session, ok := s.Sessions.Get(id)
	if !ok {
		return nil, util.NewError(util.ErrNotFound, "Quiz session '%s' not found", id)
	}
	return session, nil
}

func (s *QuizService) GetSession(id string) (QuizSessionView, error) {
	session, err := s.session(id)
	if err != nil {
		return QuizSessionView{}, err
	}
	return session.View(), nil
}

func (s *QuizService) Answer(id string, option int) (QuizSessionView, error) {
	session, err := s.session(id)
	if err != nil {
		return QuizSessionView{}, err
	}
	if err := session.Engine.Select(option); err != nil {
		return QuizSessionView{}, err
	}
	return session.View(), nil
}

func (s *QuizService) Next(id string) (QuizSessionView, error) {
	session, err := s.session(id)
	if err != nil {
		return QuizSessionView{}, err
	}
	if err := session.Engine.Next(); err != nil {
		return QuizSessionView{}, err
	}
	return session.View(), nil
}

func (s *QuizService) Restart(id string) (QuizSessionView, error) {
	session, err := s.session(id)
	if err != nil {
		return QuizSessionView{}, err
	}
	session.Engine.Restart()
	return session.View(), nil
}
