package service

import (
	"context"
	"creai_edu_backend/internal/model"
	"creai_edu_backend/internal/repository"
	"creai_edu_backend/internal/util"
	"creai_edu_backend/pkg/logger"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// CreateUserRequest 创建用户的请求体
// swagger:model CreateUserRequest
type CreateUserRequest struct {
	Email     string         `json:"email" validate:"required,email"`
	Password  string         `json:"password" validate:"required,min=8,password"`
	FirstName string         `json:"firstName" validate:"required,max=50,personname"`
	LastName  string         `json:"lastName" validate:"required,max=50,personname"`
	Role      model.UserRole `json:"role" validate:"omitempty,oneof=user admin moderator"`
}

var (
	personNamePattern = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s]+$`)
	lowerPattern      = regexp.MustCompile(`[a-z]`)
	upperPattern      = regexp.MustCompile(`[A-Z]`)
	digitPattern      = regexp.MustCompile(`\d`)
)

// 校验失败时返回给前端的文案，按 字段.规则 索引
var userValidationMessages = map[string]string{
	"email.required":       "Email is required",
	"email.email":          "Invalid email format",
	"password.required":    "Password is required",
	"password.min":         "Password must be at least 8 characters",
	"password.password":    "Password must contain at least one lowercase, one uppercase, and one number",
	"firstName.required":   "First name is required",
	"firstName.max":        "First name must be less than 50 characters",
	"firstName.personname": "First name can only contain letters and spaces",
	"lastName.required":    "Last name is required",
	"lastName.max":         "Last name must be less than 50 characters",
	"lastName.personname":  "Last name can only contain letters and spaces",
	"role.oneof":           "Role must be one of user, admin, moderator",
}

func newUserValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		p := fl.Field().String()
		return lowerPattern.MatchString(p) && upperPattern.MatchString(p) && digitPattern.MatchString(p)
	})
	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return personNamePattern.MatchString(fl.Field().String())
	})
	return v
}

// UserService 处理用户相关的业务逻辑
type UserService struct {
	UserRepo  repository.UserRepository
	validator *validator.Validate
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		UserRepo:  userRepo,
		validator: newUserValidator(),
	}
}

// Validate 返回全部字段错误，而不是遇到第一个就停止
func (s *UserService) Validate(req *CreateUserRequest) error {
	err := s.validator.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	details := make([]util.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := userValidationMessages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("%s is invalid", fe.Field())
		}
		details = append(details, util.FieldError{Field: fe.Field(), Message: msg})
	}
	return util.NewValidationError(details)
}

func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*model.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.Validate(&req); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}
	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(hashed),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		Status:       model.UserActive,
	}

	logger.Log.Info("Creating new user", zap.String("email", req.Email))
	if err := s.UserRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			logger.Log.Warn("User creation failed: user already exists", zap.String("email", req.Email))
			return nil, util.UserAlreadyExists(req.Email)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	logger.Log.Info("User created successfully", zap.String("id", user.ID), zap.String("email", user.Email))
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, util.NewError(util.ErrNotFound, "User with id '%s' not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", id, err)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, params repository.PageParams) (repository.Page[model.User], error) {
	page, err := s.UserRepo.FindAll(ctx, params)
	if err != nil {
		return page, fmt.Errorf("list users: %w", err)
	}
	return page, nil
}
