package controller

import (
	"creai_edu_backend/internal/service"
	"creai_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// UserController 处理用户相关的HTTP请求
type UserController struct {
	UserService *service.UserService
}

// NewUserController 创建一个新的用户控制器实例
func NewUserController(userService *service.UserService) *UserController {
	return &UserController{
		UserService: userService,
	}
}

// CreateUser godoc
// @Summary 创建用户
// @Description 校验失败时返回全部字段错误
// @Tags 用户管理
// @Accept  json
// @Produce  json
// @Param   body body service.CreateUserRequest true "用户信息"
// @Success 201 {object} util.Response{data=model.User} "创建成功"
// @Failure 400 {object} util.Response "参数校验失败"
// @Failure 409 {object} util.Response "邮箱已存在"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req service.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid request body")
		return
	}

	user, err := c.UserService.Create(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, user, "User created successfully")
}

// GetUser godoc
// @Summary 获取用户
// @Tags 用户管理
// @Produce  json
// @Param   id path string true "用户 id"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	user, err := c.UserService.GetUserByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// ListUsers godoc
// @Summary 获取用户列表
// @Tags 用户管理
// @Produce  json
// @Param   page query int false "页码" default(1)
// @Param   limit query int false "每页条数" default(10)
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /api/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, err := c.UserService.ListUsers(ctx.Request.Context(), pageParams(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessPage(ctx, page.Data, page.Pagination)
}
