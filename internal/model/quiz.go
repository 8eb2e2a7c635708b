package model

import (
	"errors"
	"fmt"
)

// swagger:model QuizQuestion
type QuizQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Points        int      `json:"points"`
}

func (q QuizQuestion) Validate() error {
	if len(q.Options) == 0 {
		return errors.New("question has no options")
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return fmt.Errorf("correctAnswer %d out of range [0,%d)", q.CorrectAnswer, len(q.Options))
	}
	if q.Points < 0 {
		return errors.New("points must not be negative")
	}
	return nil
}

func (q QuizQuestion) IsCorrect(option int) bool {
	return option == q.CorrectAnswer
}
