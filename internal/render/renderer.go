package render

import (
	"bytes"
	"fmt"

	"creai_edu_backend/internal/model"
	"creai_edu_backend/pkg/logger"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"
)

type Kind string

const (
	KindText         Kind = "text"
	KindWidget       Kind = "widget"
	KindQuiz         Kind = "quiz"
	KindExternalQuiz Kind = "external-quiz"
	KindUnsupported  Kind = "unsupported"
)

// FlagMissingURL 外部测验没有链接时的标记
const FlagMissingURL = "missing_url"

type QuizSummary struct {
	Title         string               `json:"title,omitempty"`
	QuestionCount int                  `json:"questionCount"`
	TotalPoints   int                  `json:"totalPoints"`
	Questions     []model.QuizQuestion `json:"-"`
}

type ExternalQuizLink struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url,omitempty"`
	Available   bool   `json:"available"`
	Flag        string `json:"flag,omitempty"`
}

// Unit 一个内容块的渲染结果，只有与 Kind 对应的字段有值
type Unit struct {
	Index        int               `json:"index"`
	Kind         Kind              `json:"kind"`
	HTML         string            `json:"html,omitempty"`
	Widget       *model.Widget     `json:"widget,omitempty"`
	Quiz         *QuizSummary      `json:"quiz,omitempty"`
	ExternalQuiz *ExternalQuizLink `json:"externalQuiz,omitempty"`
	Message      string            `json:"message,omitempty"`
}

type Renderer struct {
	md goldmark.Markdown
}

func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("monokai"),
				),
			),
		),
	}
}

// RenderAll 按顺序渲染，单个块出错只影响它自己
func (r *Renderer) RenderAll(blocks []model.ContentBlock) []Unit {
	units := make([]Unit, len(blocks))
	for i, b := range blocks {
		units[i] = r.renderSafe(i, b)
	}
	return units
}

func (r *Renderer) renderSafe(index int, b model.ContentBlock) (u Unit) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Log.Warn("content block render panic",
				zap.Int("index", index),
				zap.String("type", b.DisplayType()),
				zap.Any("panic", rec),
			)
			u = unsupported(index, b.DisplayType())
		}
	}()

	u, err := r.Render(b)
	if err != nil {
		logger.Log.Warn("content block rejected",
			zap.Int("index", index),
			zap.String("type", b.DisplayType()),
			zap.Error(err),
		)
		u = unsupported(index, b.DisplayType())
	}
	u.Index = index
	return u
}

// Render 渲染单个块，块本身不合法时返回错误
func (r *Renderer) Render(b model.ContentBlock) (Unit, error) {
	if err := b.Validate(); err != nil {
		return Unit{}, err
	}

	switch b.Type {
	case model.BlockText:
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(b.Text), &buf); err != nil {
			return Unit{}, fmt.Errorf("markdown: %w", err)
		}
		return Unit{Kind: KindText, HTML: buf.String()}, nil
	case model.BlockWidget:
		w := *b.Widget
		return Unit{Kind: KindWidget, Widget: &w}, nil
	case model.BlockQuiz:
		return Unit{Kind: KindQuiz, Quiz: &QuizSummary{
			Title:         b.Quiz.Title,
			QuestionCount: len(b.Quiz.Questions),
			TotalPoints:   b.Quiz.TotalPoints(),
			Questions:     b.Quiz.Questions,
		}}, nil
	case model.BlockExternalQuiz:
		link := &ExternalQuizLink{
			Title:       b.ExternalQuiz.Title,
			Description: b.ExternalQuiz.Description,
			URL:         b.ExternalQuiz.URL,
			Available:   b.ExternalQuiz.URL != "",
		}
		if !link.Available {
			link.Flag = FlagMissingURL
		}
		return Unit{Kind: KindExternalQuiz, ExternalQuiz: link}, nil
	}
	return Unit{}, fmt.Errorf("unknown block type %q", b.DisplayType())
}

func unsupported(index int, typeName string) Unit {
	return Unit{
		Index:   index,
		Kind:    KindUnsupported,
		Message: "Tipo de contenido no reconocido: " + typeName,
	}
}
