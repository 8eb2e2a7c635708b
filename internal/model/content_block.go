package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

type BlockType string

const (
	BlockText         BlockType = "text"
	BlockWidget       BlockType = "widget"
	BlockQuiz         BlockType = "quiz"
	BlockExternalQuiz BlockType = "external-quiz"
	// BlockUnsupported 未知类型或解码失败的块，构造函数不会产生
	BlockUnsupported BlockType = "unsupported"
)

// blockTypeInteractive 旧版内容使用的别名，解码时归一为 widget
const blockTypeInteractive = "interactive"

type Widget struct {
	WidgetType   string `json:"widgetType"`
	Title        string `json:"title,omitempty"`
	Description  string `json:"description,omitempty"`
	Placeholder  string `json:"placeholder,omitempty"`
	Note         string `json:"note,omitempty"`
	URL          string `json:"url,omitempty"`
	ExerciseType string `json:"exerciseType,omitempty"`
	ExerciseID   string `json:"exerciseId,omitempty"`
}

type QuizContent struct {
	Title     string         `json:"title,omitempty"`
	Questions []QuizQuestion `json:"questions"`
}

func (q QuizContent) TotalPoints() int {
	total := 0
	for _, question := range q.Questions {
		total += question.Points
	}
	return total
}

type ExternalQuiz struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// ContentBlock 内容块。与 Type 对应的负载指针有且只有一个非空；
// unsupported 块保留原始类型名和原始负载，重新编码时原样输出
type ContentBlock struct {
	Type         BlockType
	Text         string
	Widget       *Widget
	Quiz         *QuizContent
	ExternalQuiz *ExternalQuiz

	RawType string
	Raw     json.RawMessage
	Problem string
}

func TextBlock(markdown string) ContentBlock {
	return ContentBlock{Type: BlockText, Text: markdown}
}

func WidgetBlock(w Widget) ContentBlock {
	return ContentBlock{Type: BlockWidget, Widget: &w}
}

func QuizBlock(q QuizContent) ContentBlock {
	return ContentBlock{Type: BlockQuiz, Quiz: &q}
}

func ExternalQuizBlock(e ExternalQuiz) ContentBlock {
	return ContentBlock{Type: BlockExternalQuiz, ExternalQuiz: &e}
}

func (b ContentBlock) MarshalJSON() ([]byte, error) {
	switch b.Type {
	case BlockText:
		return json.Marshal(struct {
			Type    BlockType `json:"type"`
			Content string    `json:"content"`
		}{b.Type, b.Text})
	case BlockWidget:
		return json.Marshal(struct {
			Type    BlockType `json:"type"`
			Content *Widget   `json:"content"`
		}{b.Type, b.Widget})
	case BlockQuiz:
		return json.Marshal(struct {
			Type    BlockType    `json:"type"`
			Content *QuizContent `json:"content"`
		}{b.Type, b.Quiz})
	case BlockExternalQuiz:
		return json.Marshal(struct {
			Type     BlockType     `json:"type"`
			Metadata *ExternalQuiz `json:"metadata"`
		}{b.Type, b.ExternalQuiz})
	}
	if len(b.Raw) > 0 {
		return b.Raw, nil
	}
	return json.Marshal(struct {
		Type string `json:"type"`
	}{b.RawType})
}

type blockEnvelope struct {
	Type       string          `json:"type"`
	Content    json.RawMessage `json:"content"`
	Metadata   json.RawMessage `json:"metadata"`
	WidgetType string          `json:"widgetType"`
}

// UnmarshalJSON 只要是合法的 JSON 对象就不返回错误，未知类型和坏负载都解码为 unsupported 块
func (b *ContentBlock) UnmarshalJSON(data []byte) error {
	var env blockEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	raw := append(json.RawMessage(nil), data...)
	unsupported := func(problem string) error {
		*b = ContentBlock{Type: BlockUnsupported, RawType: env.Type, Raw: raw, Problem: problem}
		return nil
	}

	switch env.Type {
	case string(BlockText):
		var text string
		if err := json.Unmarshal(env.Content, &text); err != nil {
			return unsupported("text content must be a string")
		}
		*b = TextBlock(text)
	case string(BlockWidget):
		var w Widget
		if err := json.Unmarshal(env.Content, &w); err != nil {
			return unsupported("invalid widget content")
		}
		*b = WidgetBlock(w)
	case blockTypeInteractive:
		w, err := decodeInteractive(env)
		if err != nil {
			return unsupported(err.Error())
		}
		*b = WidgetBlock(w)
	case string(BlockQuiz):
		var q QuizContent
		if err := json.Unmarshal(env.Content, &q); err != nil {
			return unsupported("invalid quiz content")
		}
		*b = QuizBlock(q)
	case string(BlockExternalQuiz):
		var e ExternalQuiz
		if err := json.Unmarshal(env.Metadata, &e); err != nil {
			return unsupported("invalid external quiz metadata")
		}
		*b = ExternalQuizBlock(e)
	default:
		return unsupported(fmt.Sprintf("unknown block type %q", env.Type))
	}
	return nil
}

// decodeInteractive 兼容 {type:"interactive", widgetType, metadata:{..., exercise:{id}}}
func decodeInteractive(env blockEnvelope) (Widget, error) {
	var meta struct {
		Widget
		Exercise *struct {
			ID string `json:"id"`
		} `json:"exercise"`
	}
	if len(env.Metadata) > 0 {
		if err := json.Unmarshal(env.Metadata, &meta); err != nil {
			return Widget{}, errors.New("invalid interactive metadata")
		}
	}
	w := meta.Widget
	if env.WidgetType != "" {
		w.WidgetType = env.WidgetType
	}
	if meta.Exercise != nil && w.ExerciseID == "" {
		w.ExerciseID = meta.Exercise.ID
	}
	return w, nil
}

// Validate 返回块无法按声明类型展示的原因
func (b ContentBlock) Validate() error {
	switch b.Type {
	case BlockText:
		return nil
	case BlockWidget:
		if b.Widget == nil || b.Widget.WidgetType == "" {
			return errors.New("widget block requires a widgetType")
		}
		return nil
	case BlockQuiz:
		if b.Quiz == nil {
			return errors.New("quiz block has no content")
		}
		for i, q := range b.Quiz.Questions {
			if err := q.Validate(); err != nil {
				return fmt.Errorf("question %d: %w", i, err)
			}
		}
		return nil
	case BlockExternalQuiz:
		if b.ExternalQuiz == nil {
			return errors.New("external quiz block has no metadata")
		}
		return nil
	case BlockUnsupported:
		if b.Problem != "" {
			return errors.New(b.Problem)
		}
		return fmt.Errorf("unknown block type %q", b.RawType)
	}
	return fmt.Errorf("unknown block type %q", b.Type)
}

// DisplayType 展示给用户的类型名
func (b ContentBlock) DisplayType() string {
	if b.Type == BlockUnsupported {
		return b.RawType
	}
	return string(b.Type)
}
