package controller

import (
	"creai_edu_backend/internal/service"
	"creai_edu_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	ContentService  *service.ContentService
	ProgressService *service.ProgressService
}

func NewLessonController(contentService *service.ContentService, progressService *service.ProgressService) *LessonController {
	return &LessonController{
		ContentService:  contentService,
		ProgressService: progressService,
	}
}

// CompleteLessonRequest 完成课程上报的分数
// swagger:model CompleteLessonRequest
type CompleteLessonRequest struct {
	Score       int `json:"score" binding:"min=0"`
	TotalPoints int `json:"totalPoints" binding:"min=0"`
}

// CompleteLessonResponse 原样回显，不包在 data 里
type CompleteLessonResponse struct {
	Success     bool `json:"success"`
	Score       int  `json:"score"`
	TotalPoints int  `json:"totalPoints"`
}

// ListLessons godoc
// @Summary 分页获取已发布课程
// @Tags lessons
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页条数" default(10)
// @Param sortBy query string false "排序字段" Enums(order, title, createdAt)
// @Param sortOrder query string false "排序方向" Enums(asc, desc)
// @Success 200 {object} util.Response{data=[]model.Lesson}
// @Router /api/lessons [get]
func (c *LessonController) ListLessons(ctx *gin.Context) {
	page, err := c.ContentService.ListPublishedLessons(ctx.Request.Context(), pageParams(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessPage(ctx, page.Data, page.Pagination)
}

// GetLesson godoc
// @Summary 按 id 获取已发布课程
// @Tags lessons
// @Produce json
// @Param lessonId path string true "课程 id"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response
// @Router /api/lessons/{lessonId} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	lesson, err := c.ContentService.FindLessonByID(ctx.Request.Context(), ctx.Param("lessonId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// CompleteLesson godoc
// @Summary 上报课程完成
// @Description 只记录日志和指标，不保存进度，原样返回分数
// @Tags lessons
// @Accept json
// @Produce json
// @Param lessonId path string true "课程 id"
// @Param request body CompleteLessonRequest true "分数"
// @Success 200 {object} CompleteLessonResponse
// @Failure 400 {object} util.Response
// @Router /api/lessons/{lessonId}/complete [post]
func (c *LessonController) CompleteLesson(ctx *gin.Context) {
	var req CompleteLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid request body")
		return
	}

	c.ProgressService.RecordLessonCompletion(ctx.Request.Context(), ctx.Param("lessonId"), req.Score, req.TotalPoints)
	ctx.JSON(http.StatusOK, CompleteLessonResponse{
		Success:     true,
		Score:       req.Score,
		TotalPoints: req.TotalPoints,
	})
}
