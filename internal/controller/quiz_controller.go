package controller

import (
	"creai_edu_backend/internal/service"
	"creai_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// AnswerRequest
// swagger:model AnswerRequest
type AnswerRequest struct {
	OptionIndex *int `json:"optionIndex" binding:"required"`
}

// CreateSession godoc
// @Summary 创建测验会话
// @Description 引用课程中的测验块（moduleId + lessonSlug + blockIndex），或直接提交 questions
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body service.CreateQuizSessionRequest true "测验来源"
// @Success 201 {object} util.Response{data=service.QuizSessionView}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quiz-sessions [post]
func (c *QuizController) CreateSession(ctx *gin.Context) {
	var req service.CreateQuizSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid request body")
		return
	}
	view, err := c.QuizService.CreateSession(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, view, "Quiz session created")
}

// GetSession godoc
// @Summary 获取测验会话
// @Tags quiz
// @Produce json
// @Param id path string true "会话 id"
// @Success 200 {object} util.Response{data=service.QuizSessionView}
// @Failure 404 {object} util.Response
// @Router /api/quiz-sessions/{id} [get]
func (c *QuizController) GetSession(ctx *gin.Context) {
	view, err := c.QuizService.GetSession(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// Answer godoc
// @Summary 选择答案
// @Description 仅在答题状态生效，解析状态下重复选择不改变结果
// @Tags quiz
// @Accept json
// @Produce json
// @Param id path string true "会话 id"
// @Param request body AnswerRequest true "选项下标"
// @Success 200 {object} util.Response{data=service.QuizSessionView}
// @Failure 400 {object} util.Response
// @Router /api/quiz-sessions/{id}/answer [post]
func (c *QuizController) Answer(ctx *gin.Context) {
	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ValidationFailed(ctx, []util.FieldError{{Field: "optionIndex", Message: "optionIndex is required"}})
		return
	}
	view, err := c.QuizService.Answer(ctx.Param("id"), *req.OptionIndex)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// Next godoc
// @Summary 进入下一题
// @Tags quiz
// @Produce json
// @Param id path string true "会话 id"
// @Success 200 {object} util.Response{data=service.QuizSessionView}
// @Failure 400 {object} util.Response "当前状态不能前进"
// @Router /api/quiz-sessions/{id}/next [post]
func (c *QuizController) Next(ctx *gin.Context) {
	view, err := c.QuizService.Next(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// Restart godoc
// @Summary 重新开始测验
// @Tags quiz
// @Produce json
// @Param id path string true "会话 id"
// @Success 200 {object} util.Response{data=service.QuizSessionView}
// @Router /api/quiz-sessions/{id}/restart [post]
func (c *QuizController) Restart(ctx *gin.Context) {
	view, err := c.QuizService.Restart(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}
