package quiz

import (
	"math"
	"strconv"
	"sync"

	"creai_edu_backend/internal/model"
	"creai_edu_backend/internal/util"
)

type State string

const (
	StateAnswering  State = "answering"
	StateExplaining State = "explaining"
	StateCompleted  State = "completed"
)

type Band string

const (
	BandExcellent     Band = "excellent"
	BandGood          Band = "good"
	BandFair          Band = "fair"
	BandNeedsPractice Band = "needs_practice"
)

var bandMessages = map[Band]string{
	BandExcellent:     "¡Excelente!",
	BandGood:          "¡Muy bien!",
	BandFair:          "¡Buen trabajo!",
	BandNeedsPractice: "Sigue practicando",
}

// CompletionFunc 进入 completed 状态时调用
type CompletionFunc func(score, totalPoints int)

// Engine 单次测验的状态机。分数始终由 selections 重新计算
type Engine struct {
	mu         sync.Mutex
	questions  []model.QuizQuestion
	state      State
	current    int
	selections map[int]int
	onComplete CompletionFunc
}

func NewEngine(questions []model.QuizQuestion, onComplete CompletionFunc) (*Engine, error) {
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, util.NewValidationError([]util.FieldError{{
				Field:   "questions[" + strconv.Itoa(i) + "]",
				Message: err.Error(),
			}})
		}
	}
	e := &Engine{
		questions:  append([]model.QuizQuestion(nil), questions...),
		onComplete: onComplete,
	}
	e.restart()
	return e, nil
}

func (e *Engine) restart() {
	e.current = 0
	e.selections = make(map[int]int)
	e.state = StateAnswering
	if len(e.questions) == 0 {
		e.state = StateCompleted
	}
}

// Select 只在 answering 状态生效，其余状态忽略
func (e *Engine) Select(option int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateAnswering {
		return nil
	}
	q := e.questions[e.current]
	if option < 0 || option >= len(q.Options) {
		return util.NewValidationError([]util.FieldError{{
			Field:   "optionIndex",
			Message: "option index out of range",
		}})
	}
	e.selections[e.current] = option
	e.state = StateExplaining
	return nil
}

// Next 只允许在 explaining 状态调用。完成回调在释放锁之后执行，回调里可以读取引擎
func (e *Engine) Next() error {
	e.mu.Lock()
	if e.state != StateExplaining {
		state := e.state
		e.mu.Unlock()
		return util.NewError(util.ErrInvalidTransition, "cannot advance while %s", state)
	}
	if e.current < len(e.questions)-1 {
		e.current++
		e.state = StateAnswering
		e.mu.Unlock()
		return nil
	}

	e.state = StateCompleted
	score, total := e.score(), e.totalPoints()
	onComplete := e.onComplete
	e.mu.Unlock()

	if onComplete != nil {
		onComplete(score, total)
	}
	return nil
}

func (e *Engine) Restart() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.restart()
}

func (e *Engine) score() int {
	score := 0
	for i, option := range e.selections {
		if e.questions[i].IsCorrect(option) {
			score += e.questions[i].Points
		}
	}
	return score
}

func (e *Engine) totalPoints() int {
	total := 0
	for _, q := range e.questions {
		total += q.Points
	}
	return total
}

type QuestionReview struct {
	QuestionID string `json:"questionId"`
	Selected   *int   `json:"selected"`
	Correct    bool   `json:"correct"`
	Earned     int    `json:"earned"`
}

type Result struct {
	Score       int              `json:"score"`
	TotalPoints int              `json:"totalPoints"`
	Percentage  int              `json:"percentage"`
	Band        Band             `json:"band"`
	Message     string           `json:"message"`
	Review      []QuestionReview `json:"review"`
}

func (e *Engine) Result() Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result()
}

func (e *Engine) result() Result {
	r := Result{Score: e.score(), TotalPoints: e.totalPoints()}
	r.Percentage = Percentage(r.Score, r.TotalPoints)
	r.Band = BandFor(r.Percentage)
	r.Message = bandMessages[r.Band]
	r.Review = make([]QuestionReview, len(e.questions))
	for i, q := range e.questions {
		review := QuestionReview{QuestionID: q.ID}
		if option, ok := e.selections[i]; ok {
			selected := option
			review.Selected = &selected
			review.Correct = q.IsCorrect(option)
		}
		if review.Correct {
			review.Earned = q.Points
		}
		r.Review[i] = review
	}
	return r
}

// Percentage 四舍五入到整数，总分为 0 时返回 0
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(score) / float64(total)))
}

func BandFor(percentage int) Band {
	switch {
	case percentage >= 90:
		return BandExcellent
	case percentage >= 70:
		return BandGood
	case percentage >= 50:
		return BandFair
	default:
		return BandNeedsPractice
	}
}

// CurrentQuestion 不包含正确答案，explaining 状态下才附带解析
type CurrentQuestion struct {
	Index       int      `json:"index"`
	ID          string   `json:"id"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Points      int      `json:"points"`
	Selected    *int     `json:"selected,omitempty"`
	Correct     *bool    `json:"correct,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

type Snapshot struct {
	State          State            `json:"state"`
	QuestionCount  int              `json:"questionCount"`
	IsLastQuestion bool             `json:"isLastQuestion"`
	Current        *CurrentQuestion `json:"current,omitempty"`
	Score          int              `json:"score"`
	TotalPoints    int              `json:"totalPoints"`
	Result         *Result          `json:"result,omitempty"`
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Snapshot{
		State:         e.state,
		QuestionCount: len(e.questions),
		Score:         e.score(),
		TotalPoints:   e.totalPoints(),
	}
	if e.state == StateCompleted {
		r := e.result()
		s.Result = &r
		return s
	}

	q := e.questions[e.current]
	s.IsLastQuestion = e.current == len(e.questions)-1
	cur := &CurrentQuestion{
		Index:    e.current,
		ID:       q.ID,
		Question: q.Question,
		Options:  q.Options,
		Points:   q.Points,
	}
	if e.state == StateExplaining {
		option := e.selections[e.current]
		correct := q.IsCorrect(option)
		cur.Selected = &option
		cur.Correct = &correct
		cur.Explanation = q.Explanation
	}
	s.Current = cur
	return s
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}
