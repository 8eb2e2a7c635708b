package controller

import (
	"creai_edu_backend/internal/service"
	"creai_edu_backend/internal/util"
	"creai_edu_backend/pkg/jsonplaceholder"
	"strconv"

	"github.com/gin-gonic/gin"
)

// PlaygroundController JSONPlaceholder 代理，列表接口支持 ?q= 搜索
type PlaygroundController struct {
	PlaygroundService *service.PlaygroundService
}

func NewPlaygroundController(playgroundService *service.PlaygroundService) *PlaygroundController {
	return &PlaygroundController{PlaygroundService: playgroundService}
}

func pathID(ctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		util.ValidationFailed(ctx, []util.FieldError{{Field: "id", Message: "id must be a positive number"}})
		return 0, false
	}
	return id, true
}

// ListPosts godoc
// @Summary 帖子列表
// @Tags playground
// @Produce json
// @Param userId query int false "按用户过滤"
// @Param q query string false "搜索标题与正文"
// @Success 200 {object} util.Response{data=[]jsonplaceholder.Post}
// @Failure 502 {object} util.Response
// @Router /api/playground/posts [get]
func (c *PlaygroundController) ListPosts(ctx *gin.Context) {
	userID := util.ParseIntDefault(ctx.Query("userId"), 0)
	posts, err := c.PlaygroundService.ListPosts(ctx.Request.Context(), userID, ctx.Query("q"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, posts)
}

// GetPost godoc
// @Summary 获取帖子
// @Tags playground
// @Produce json
// @Param id path int true "帖子 id"
// @Success 200 {object} util.Response{data=jsonplaceholder.Post}
// @Failure 404 {object} util.Response
// @Router /api/playground/posts/{id} [get]
func (c *PlaygroundController) GetPost(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	post, err := c.PlaygroundService.GetPost(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, post)
}

// CreatePost godoc
// @Summary 创建帖子
// @Tags playground
// @Accept json
// @Produce json
// @Param request body jsonplaceholder.PostInput true "帖子"
// @Success 201 {object} util.Response{data=jsonplaceholder.Post}
// @Failure 400 {object} util.Response
// @Router /api/playground/posts [post]
func (c *PlaygroundController) CreatePost(ctx *gin.Context) {
	var in jsonplaceholder.PostInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, "Invalid request body")
		return
	}
	post, err := c.PlaygroundService.CreatePost(ctx.Request.Context(), in)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, post, "Post created")
}

// UpdatePost godoc
// @Summary 更新帖子
// @Tags playground
// @Accept json
// @Produce json
// @Param id path int true "帖子 id"
// @Param request body jsonplaceholder.PostInput true "帖子"
// @Success 200 {object} util.Response{data=jsonplaceholder.Post}
// @Router /api/playground/posts/{id} [put]
func (c *PlaygroundController) UpdatePost(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var in jsonplaceholder.PostInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, "Invalid request body")
		return
	}
	post, err := c.PlaygroundService.UpdatePost(ctx.Request.Context(), id, in)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, post)
}

// DeletePost godoc
// @Summary 删除帖子
// @Tags playground
// @Produce json
// @Param id path int true "帖子 id"
// @Success 200 {object} util.Response
// @Router /api/playground/posts/{id} [delete]
func (c *PlaygroundController) DeletePost(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.PlaygroundService.DeletePost(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// ListUsers godoc
// @Summary 用户列表
// @Tags playground
// @Produce json
// @Param q query string false "搜索姓名、用户名与邮箱"
// @Success 200 {object} util.Response{data=[]jsonplaceholder.User}
// @Router /api/playground/users [get]
func (c *PlaygroundController) ListUsers(ctx *gin.Context) {
	users, err := c.PlaygroundService.ListUsers(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

// ListComments godoc
// @Summary 评论列表
// @Tags playground
// @Produce json
// @Param postId query int false "按帖子过滤"
// @Param q query string false "搜索"
// @Success 200 {object} util.Response{data=[]jsonplaceholder.Comment}
// @Router /api/playground/comments [get]
func (c *PlaygroundController) ListComments(ctx *gin.Context) {
	postID := util.ParseIntDefault(ctx.Query("postId"), 0)
	comments, err := c.PlaygroundService.ListComments(ctx.Request.Context(), postID, ctx.Query("q"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, comments)
}

// ListTodos godoc
// @Summary 待办列表
// @Tags playground
// @Produce json
// @Param userId query int false "按用户过滤"
// @Param status query string false "完成状态" Enums(all, completed, pending)
// @Param q query string false "搜索标题"
// @Success 200 {object} util.Response{data=[]jsonplaceholder.Todo}
// @Router /api/playground/todos [get]
func (c *PlaygroundController) ListTodos(ctx *gin.Context) {
	userID := util.ParseIntDefault(ctx.Query("userId"), 0)
	todos, err := c.PlaygroundService.ListTodos(ctx.Request.Context(), userID, ctx.Query("q"), ctx.Query("status"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, todos)
}

// ListAlbums godoc
// @Summary 相册列表
// @Tags playground
// @Produce json
// @Success 200 {object} util.Response{data=[]jsonplaceholder.Album}
// @Router /api/playground/albums [get]
func (c *PlaygroundController) ListAlbums(ctx *gin.Context) {
	albums, err := c.PlaygroundService.ListAlbums(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, albums)
}
