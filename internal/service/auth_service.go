package service

import (
	"context"
	"creai_edu_backend/internal/config"
	"creai_edu_backend/internal/model"
	"creai_edu_backend/internal/repository"
	"creai_edu_backend/internal/util"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      *model.User `json:"user"`
}

// AuthService 登录只签发令牌，内容接口不校验令牌
type AuthService struct {
	UserRepo repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	invalid := util.NewError(util.ErrUnauthorized, "Invalid credentials")

	user, err := s.UserRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, invalid
	}
	if user.Status != model.UserActive {
		return nil, invalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, invalid
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token:     token,
		ExpiresAt: time.Now().Add(s.Cfg.JWT.ExpireTime),
		User:      user,
	}, nil
}

// GetCurrentUser 请求未携带有效令牌时返回 nil
func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, _ := s.UserRepo.FindByID(c.Request.Context(), claims.UserID)
	return user
}
