package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"creai_edu_backend/internal/config"
	"creai_edu_backend/internal/model"
	"creai_edu_backend/internal/repository"
	"creai_edu_backend/internal/util"
)

func validUserRequest() CreateUserRequest {
	return CreateUserRequest{
		Email:     "Ana.Lopez@Example.com",
		Password:  "Secreto123",
		FirstName: "Ana",
		LastName:  "López",
	}
}

func TestCreateUser(t *testing.T) {
	t.Parallel()
	svc := NewUserService(repository.NewMemoryUserRepository())
	ctx := context.Background()

	user, err := svc.Create(ctx, validUserRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "ana.lopez@example.com" {
		t.Fatalf("unexpected email: got=%s want=%s", user.Email, "ana.lopez@example.com")
	}
	if user.Role != model.RoleUser {
		t.Fatalf("unexpected role: got=%s want=%s", user.Role, model.RoleUser)
	}
	if user.PasswordHash == "" || user.PasswordHash == "Secreto123" {
		t.Fatalf("password was not hashed")
	}

	found, err := svc.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if found.Email != user.Email {
		t.Fatalf("unexpected user: got=%s want=%s", found.Email, user.Email)
	}

	if _, err := svc.Create(ctx, validUserRequest()); !errors.Is(err, util.ErrConflict) {
		t.Fatalf("duplicate email: got=%v want=%v", err, util.ErrConflict)
	}
	if _, err := svc.GetUserByID(ctx, "missing"); !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("missing user: got=%v want=%v", err, util.ErrNotFound)
	}
}

func TestCreateUserValidation(t *testing.T) {
	t.Parallel()
	svc := NewUserService(repository.NewMemoryUserRepository())

	tests := []struct {
		name   string
		mutate func(*CreateUserRequest)
		field  string
		msg    string
	}{
		{"bad email", func(r *CreateUserRequest) { r.Email = "ana" }, "email", "Invalid email format"},
		{"short password", func(r *CreateUserRequest) { r.Password = "Ab1" }, "password", "Password must be at least 8 characters"},
		{"weak password", func(r *CreateUserRequest) { r.Password = "abcdefgh" }, "password", "Password must contain at least one lowercase, one uppercase, and one number"},
		{"digits in name", func(r *CreateUserRequest) { r.FirstName = "Ana2" }, "firstName", "First name can only contain letters and spaces"},
		{"missing last name", func(r *CreateUserRequest) { r.LastName = "" }, "lastName", "Last name is required"},
		{"unknown role", func(r *CreateUserRequest) { r.Role = "root" }, "role", "Role must be one of user, admin, moderator"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validUserRequest()
			tt.mutate(&req)
			_, err := svc.Create(context.Background(), req)

			var de *util.DomainError
			if !errors.As(err, &de) || !errors.Is(err, util.ErrValidation) {
				t.Fatalf("unexpected error: got=%v want=%v", err, util.ErrValidation)
			}
			if len(de.Details) != 1 {
				t.Fatalf("unexpected details: got=%v", de.Details)
			}
			if de.Details[0].Field != tt.field || de.Details[0].Message != tt.msg {
				t.Fatalf("unexpected detail: got=%+v want=%s/%s", de.Details[0], tt.field, tt.msg)
			}
		})
	}
}

func TestCreateUserReportsAllErrors(t *testing.T) {
	t.Parallel()
	svc := NewUserService(repository.NewMemoryUserRepository())

	_, err := svc.Create(context.Background(), CreateUserRequest{})
	var de *util.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(de.Details) != 4 {
		t.Fatalf("unexpected detail count: got=%d want=4 (%v)", len(de.Details), de.Details)
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()
	repo := repository.NewMemoryUserRepository()
	users := NewUserService(repo)
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour}}
	auth := NewAuthService(repo, cfg)
	ctx := context.Background()

	if _, err := users.Create(ctx, validUserRequest()); err != nil {
		t.Fatalf("create: %v", err)
	}

	result, err := auth.Login(ctx, "ana.lopez@example.com", "Secreto123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := util.ParseJWT(result.Token, "test-secret")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Email != "ana.lopez@example.com" {
		t.Fatalf("unexpected claims email: got=%s", claims.Email)
	}

	if _, err := auth.Login(ctx, "ana.lopez@example.com", "otra"); !errors.Is(err, util.ErrUnauthorized) {
		t.Fatalf("wrong password: got=%v want=%v", err, util.ErrUnauthorized)
	}
	if _, err := auth.Login(ctx, "nadie@example.com", "Secreto123"); !errors.Is(err, util.ErrUnauthorized) {
		t.Fatalf("unknown user: got=%v want=%v", err, util.ErrUnauthorized)
	}
}
