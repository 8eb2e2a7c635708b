package controller

import (
	"creai_edu_backend/internal/service"
	"creai_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExerciseController struct {
	ExerciseService *service.ExerciseService
}

func NewExerciseController(exerciseService *service.ExerciseService) *ExerciseController {
	return &ExerciseController{ExerciseService: exerciseService}
}

// RunCodeRequest 提交的代码
// swagger:model RunCodeRequest
type RunCodeRequest struct {
	Code string `json:"code"`
}

// StartExerciseSessionRequest
// swagger:model StartExerciseSessionRequest
type StartExerciseSessionRequest struct {
	ExerciseID string `json:"exerciseId" binding:"required"`
}

// GetExercise godoc
// @Summary 获取代码练习
// @Description 提示内容不直接返回，通过会话逐个揭示
// @Tags exercises
// @Produce json
// @Param exerciseId path string true "练习 id"
// @Success 200 {object} util.Response{data=service.ExerciseView}
// @Failure 404 {object} util.Response
// @Router /api/exercises/{exerciseId} [get]
func (c *ExerciseController) GetExercise(ctx *gin.Context) {
	ex, err := c.ExerciseService.GetExercise(ctx.Request.Context(), ctx.Param("exerciseId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, ex)
}

// RunExercise godoc
// @Summary 无状态评测
// @Description 在沙箱中运行代码并逐个比对测试用例
// @Tags exercises
// @Accept json
// @Produce json
// @Param exerciseId path string true "练习 id"
// @Param request body RunCodeRequest true "代码"
// @Success 200 {object} util.Response{data=exercise.Report}
// @Failure 400 {object} util.Response "代码过长或包含被禁止的调用"
// @Failure 404 {object} util.Response
// @Router /api/exercises/{exerciseId}/run [post]
func (c *ExerciseController) RunExercise(ctx *gin.Context) {
	var req RunCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid request body")
		return
	}
	report, err := c.ExerciseService.Run(ctx.Request.Context(), ctx.Param("exerciseId"), req.Code)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// StartSession godoc
// @Summary 创建练习会话
// @Tags exercises
// @Accept json
// @Produce json
// @Param request body StartExerciseSessionRequest true "练习 id"
// @Success 201 {object} util.Response{data=exercise.SessionView}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/exercise-sessions [post]
func (c *ExerciseController) StartSession(ctx *gin.Context) {
	var req StartExerciseSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ValidationFailed(ctx, []util.FieldError{{Field: "exerciseId", Message: "exerciseId is required"}})
		return
	}
	view, err := c.ExerciseService.StartSession(ctx.Request.Context(), req.ExerciseID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, view, "Exercise session created")
}

// GetSession godoc
// @Summary 获取练习会话
// @Tags exercises
// @Produce json
// @Param id path string true "会话 id"
// @Success 200 {object} util.Response{data=exercise.SessionView}
// @Failure 404 {object} util.Response
// @Router /api/exercise-sessions/{id} [get]
func (c *ExerciseController) GetSession(ctx *gin.Context) {
	view, err := c.ExerciseService.GetSession(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// UpdateCode godoc
// @Summary 保存会话中的代码
// @Tags exercises
// @Accept json
// @Produce json
// @Param id path string true "会话 id"
// @Param request body RunCodeRequest true "代码"
// @Success 200 {object} util.Response{data=exercise.SessionView}
// @Router /api/exercise-sessions/{id}/code [put]
func (c *ExerciseController) UpdateCode(ctx *gin.Context) {
	var req RunCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid request body")
		return
	}
	view, err := c.ExerciseService.UpdateCode(ctx.Param("id"), req.Code)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// RunSession godoc
// @Summary 运行会话中的代码
// @Description 全部用例通过时触发一次完成回调；不安全代码以错误结果返回而不是 400
// @Tags exercises
// @Produce json
// @Param id path string true "会话 id"
// @Success 200 {object} util.Response{data=service.RunResult}
// @Router /api/exercise-sessions/{id}/run [post]
func (c *ExerciseController) RunSession(ctx *gin.Context) {
	result, err := c.ExerciseService.RunSession(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// NextHint godoc
// @Summary 揭示下一条提示
// @Tags exercises
// @Produce json
// @Param id path string true "会话 id"
// @Success 200 {object} util.Response{data=service.HintResult}
// @Router /api/exercise-sessions/{id}/hints/next [post]
func (c *ExerciseController) NextHint(ctx *gin.Context) {
	result, err := c.ExerciseService.NextHint(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// ResetSession godoc
// @Summary 重置练习会话
// @Description 恢复初始代码，清空提示、结果与完成状态
// @Tags exercises
// @Produce json
// @Param id path string true "会话 id"
// @Success 200 {object} util.Response{data=exercise.SessionView}
// @Router /api/exercise-sessions/{id}/reset [post]
func (c *ExerciseController) ResetSession(ctx *gin.Context) {
	view, err := c.ExerciseService.ResetSession(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}
