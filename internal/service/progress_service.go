package service

import (
	"context"
	"creai_edu_backend/internal/quiz"
	"creai_edu_backend/internal/repository"
	"creai_edu_backend/pkg/logger"
	"creai_edu_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// 未知课程统一归到这个标签下，避免任意 id 撑爆指标基数
const unknownLessonLabel = "unknown"

// ProgressService 只记录日志与指标，不持久化学习进度
type ProgressService struct {
	LessonRepo repository.LessonRepository
}

func NewProgressService(lessonRepo repository.LessonRepository) *ProgressService {
	return &ProgressService{LessonRepo: lessonRepo}
}

func (s *ProgressService) RecordLessonCompletion(ctx context.Context, lessonID string, score, totalPoints int) {
	label := unknownLessonLabel
	if _, err := s.LessonRepo.FindByID(ctx, lessonID); err == nil {
		label = lessonID
	}
	monitoring.LessonCompletions.WithLabelValues(label).Inc()
	logger.Log.Info("lesson completed",
		zap.String("lessonId", lessonID),
		zap.Int("score", score),
		zap.Int("totalPoints", totalPoints),
	)
}

func (s *ProgressService) RecordExerciseRun(exerciseID string, allPassed bool) {
	outcome := "failed"
	if allPassed {
		outcome = "passed"
	}
	monitoring.ExerciseRuns.WithLabelValues(outcome).Inc()
	logger.Log.Debug("exercise run", zap.String("exerciseId", exerciseID), zap.String("outcome", outcome))
}

func (s *ProgressService) RecordExerciseCompletion(sessionID, exerciseID string, points int) {
	logger.Log.Info("exercise completed",
		zap.String("sessionId", sessionID),
		zap.String("exerciseId", exerciseID),
		zap.Int("points", points),
	)
}

func (s *ProgressService) RecordQuizCompletion(sessionID string, score, totalPoints int) {
	band := quiz.BandFor(quiz.Percentage(score, totalPoints))
	monitoring.QuizCompletions.WithLabelValues(string(band)).Inc()
	logger.Log.Info("quiz completed",
		zap.String("sessionId", sessionID),
		zap.Int("score", score),
		zap.Int("totalPoints", totalPoints),
		zap.String("band", string(band)),
	)
}
