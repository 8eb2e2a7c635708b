package model

import (
	"encoding/json"
	"testing"
)

func TestContentBlockDecode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		in       string
		wantType BlockType
		check    func(t *testing.T, b ContentBlock)
	}{
		{
			name:     "text",
			in:       `{"type":"text","content":"# Título"}`,
			wantType: BlockText,
			check: func(t *testing.T, b ContentBlock) {
				if b.Text != "# Título" {
					t.Fatalf("unexpected text: %q", b.Text)
				}
			},
		},
		{
			name:     "widget",
			in:       `{"type":"widget","content":{"widgetType":"IPAddressWidget","description":"Tu IP"}}`,
			wantType: BlockWidget,
			check: func(t *testing.T, b ContentBlock) {
				if b.Widget == nil || b.Widget.WidgetType != "IPAddressWidget" {
					t.Fatalf("unexpected widget: %+v", b.Widget)
				}
			},
		},
		{
			name:     "interactive alias",
			in:       `{"type":"interactive","widgetType":"CodeExerciseWidget","metadata":{"title":"Parser","exercise":{"id":"url-parser"}}}`,
			wantType: BlockWidget,
			check: func(t *testing.T, b ContentBlock) {
				if b.Widget == nil || b.Widget.WidgetType != "CodeExerciseWidget" || b.Widget.ExerciseID != "url-parser" || b.Widget.Title != "Parser" {
					t.Fatalf("unexpected widget: %+v", b.Widget)
				}
			},
		},
		{
			name:     "quiz",
			in:       `{"type":"quiz","content":{"questions":[{"id":"q1","question":"¿?","options":["a","b"],"correctAnswer":1,"points":5}]}}`,
			wantType: BlockQuiz,
			check: func(t *testing.T, b ContentBlock) {
				if b.Quiz == nil || b.Quiz.TotalPoints() != 5 {
					t.Fatalf("unexpected quiz: %+v", b.Quiz)
				}
			},
		},
		{
			name:     "external quiz",
			in:       `{"type":"external-quiz","metadata":{"title":"Quiz","description":"d","url":"https://forms.office.com/r/x"}}`,
			wantType: BlockExternalQuiz,
			check: func(t *testing.T, b ContentBlock) {
				if b.ExternalQuiz == nil || b.ExternalQuiz.URL != "https://forms.office.com/r/x" {
					t.Fatalf("unexpected external quiz: %+v", b.ExternalQuiz)
				}
			},
		},
		{
			name:     "unknown type",
			in:       `{"type":"video","content":{"src":"a.mp4"}}`,
			wantType: BlockUnsupported,
			check: func(t *testing.T, b ContentBlock) {
				if b.RawType != "video" || b.Problem == "" {
					t.Fatalf("unexpected unsupported block: %+v", b)
				}
			},
		},
		{
			name:     "malformed text",
			in:       `{"type":"text","content":{"not":"a string"}}`,
			wantType: BlockUnsupported,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b ContentBlock
			if err := json.Unmarshal([]byte(tt.in), &b); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if b.Type != tt.wantType {
				t.Fatalf("unexpected type: got=%s want=%s", b.Type, tt.wantType)
			}
			if tt.check != nil {
				tt.check(t, b)
			}
		})
	}
}

func TestUnsupportedBlockKeepsPayload(t *testing.T) {
	t.Parallel()
	in := `{"type":"video","content":{"src":"a.mp4"}}`

	var b ContentBlock
	if err := json.Unmarshal([]byte(in), &b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != in {
		t.Fatalf("payload changed: got=%s want=%s", out, in)
	}
}

func TestContentBlockValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		block   ContentBlock
		wantErr bool
	}{
		{"text", TextBlock("hola"), false},
		{"widget without type", WidgetBlock(Widget{}), true},
		{"quiz out of range", QuizBlock(QuizContent{Questions: []QuizQuestion{{Options: []string{"a"}, CorrectAnswer: 3}}}), true},
		{"quiz ok", QuizBlock(QuizContent{Questions: []QuizQuestion{{Options: []string{"a", "b"}, CorrectAnswer: 1}}}), false},
		{"external quiz", ExternalQuizBlock(ExternalQuiz{Title: "q", URL: "https://example.com"}), false},
	}
	for _, tt := range tests {
		if err := tt.block.Validate(); (err != nil) != tt.wantErr {
			t.Fatalf("%s: got err=%v wantErr=%v", tt.name, err, tt.wantErr)
		}
	}
}
