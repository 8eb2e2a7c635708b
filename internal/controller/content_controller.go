package controller

import (
	"creai_edu_backend/internal/repository"
	"creai_edu_backend/internal/service"
	"creai_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ContentController 模块与课程的只读接口
type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// pageParams 读取 page/limit/sortBy/sortOrder，缺省值由 Normalize 补齐
func pageParams(ctx *gin.Context) repository.PageParams {
	return repository.PageParams{
		Page:      util.ParseIntDefault(ctx.Query("page"), util.DefaultPage),
		Limit:     util.ParseIntDefault(ctx.Query("limit"), util.DefaultLimit),
		SortBy:    ctx.Query("sortBy"),
		SortOrder: ctx.Query("sortOrder"),
	}.Normalize()
}

func hasPageQuery(ctx *gin.Context) bool {
	for _, key := range []string{"page", "limit", "sortBy", "sortOrder"} {
		if _, ok := ctx.GetQuery(key); ok {
			return true
		}
	}
	return false
}

// ListModules godoc
// @Summary 获取已发布模块
// @Description 按 order 升序返回全部已发布模块；带分页参数时返回分页结果
// @Tags modules
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页条数" default(10)
// @Param sortBy query string false "排序字段" Enums(order, title, createdAt)
// @Param sortOrder query string false "排序方向" Enums(asc, desc)
// @Success 200 {object} util.Response{data=[]model.Module}
// @Failure 500 {object} util.Response
// @Router /api/modules [get]
func (c *ContentController) ListModules(ctx *gin.Context) {
	if hasPageQuery(ctx) {
		page, err := c.ContentService.ListModules(ctx.Request.Context(), pageParams(ctx))
		if err != nil {
			util.HandleError(ctx, err)
			return
		}
		util.SuccessPage(ctx, page.Data, page.Pagination)
		return
	}

	modules, err := c.ContentService.ListPublishedModules(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, modules)
}

// GetModule godoc
// @Summary 按 slug 获取模块
// @Tags modules
// @Produce json
// @Param slug path string true "模块 slug"
// @Success 200 {object} util.Response{data=model.Module}
// @Failure 404 {object} util.Response "不存在或未发布"
// @Router /api/modules/{slug} [get]
func (c *ContentController) GetModule(ctx *gin.Context) {
	module, err := c.ContentService.GetModuleBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, module)
}

// GetModuleLessons godoc
// @Summary 获取模块下的已发布课程
// @Description 参数可以是模块 id 或 slug
// @Tags lessons
// @Produce json
// @Param slug path string true "模块 id 或 slug"
// @Success 200 {object} util.Response{data=[]model.Lesson}
// @Failure 404 {object} util.Response
// @Router /api/modules/{slug}/lessons [get]
func (c *ContentController) GetModuleLessons(ctx *gin.Context) {
	lessons, err := c.ContentService.GetLessonsForModule(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// GetLesson godoc
// @Summary 获取课程内容
// @Tags lessons
// @Produce json
// @Param slug path string true "模块 id 或 slug"
// @Param lessonSlug path string true "课程 slug"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response
// @Router /api/modules/{slug}/lessons/{lessonSlug} [get]
func (c *ContentController) GetLesson(ctx *gin.Context) {
	lesson, err := c.ContentService.GetLessonContent(ctx.Request.Context(), ctx.Param("slug"), ctx.Param("lessonSlug"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// GetRenderedLesson godoc
// @Summary 获取渲染后的课程
// @Description 每个内容块渲染为一个单元，无法识别的块返回占位单元
// @Tags lessons
// @Produce json
// @Param slug path string true "模块 id 或 slug"
// @Param lessonSlug path string true "课程 slug"
// @Success 200 {object} util.Response{data=service.RenderedLesson}
// @Failure 404 {object} util.Response
// @Router /api/modules/{slug}/lessons/{lessonSlug}/rendered [get]
func (c *ContentController) GetRenderedLesson(ctx *gin.Context) {
	rendered, err := c.ContentService.GetRenderedLesson(ctx.Request.Context(), ctx.Param("slug"), ctx.Param("lessonSlug"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rendered)
}

// DebugLessons 仅 debug 模式注册
func (c *ContentController) DebugLessons(ctx *gin.Context) {
	lessons, err := c.ContentService.DebugLessons(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	moduleIDs, err := c.ContentService.DebugModuleIDs(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"totalLessons": len(lessons),
		"moduleIds":    moduleIDs,
		"lessons":      lessons,
	})
}

// PublishModule godoc
// @Summary 发布模块（仅 debug 模式）
// @Tags admin
// @Produce json
// @Param id path string true "模块 id"
// @Success 200 {object} util.Response{data=model.Module}
// @Failure 404 {object} util.Response
// @Router /api/debug/modules/{id}/publish [post]
func (c *ContentController) PublishModule(ctx *gin.Context) {
	module, err := c.ContentService.PublishModule(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, module)
}

func (c *ContentController) ArchiveModule(ctx *gin.Context) {
	module, err := c.ContentService.ArchiveModule(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, module)
}

func (c *ContentController) PublishLesson(ctx *gin.Context) {
	lesson, err := c.ContentService.PublishLesson(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

func (c *ContentController) ArchiveLesson(ctx *gin.Context) {
	lesson, err := c.ContentService.ArchiveLesson(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}
