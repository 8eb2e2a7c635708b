package service

import (
	"context"
	"creai_edu_backend/internal/util"
	"creai_edu_backend/pkg/jsonplaceholder"
	"creai_edu_backend/pkg/logger"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// PlaygroundService 代理 JSONPlaceholder，演示 REST 的增删改查
type PlaygroundService struct {
	Client *jsonplaceholder.Client
}

func NewPlaygroundService(client *jsonplaceholder.Client) *PlaygroundService {
	return &PlaygroundService{Client: client}
}

// upstreamError 404 映射为 ErrNotFound，其余统一为 ErrUpstream
func upstreamError(resource string, err error) error {
	if errors.Is(err, jsonplaceholder.ErrNotFound) {
		return util.NewError(util.ErrNotFound, "%s not found", resource)
	}
	logger.Log.Warn("playground upstream failed", zap.String("resource", resource), zap.Error(err))
	return util.NewError(util.ErrUpstream, "JSONPlaceholder is unavailable")
}

func (s *PlaygroundService) ListPosts(ctx context.Context, userID int, q string) ([]jsonplaceholder.Post, error) {
	posts, err := s.Client.Posts(ctx, userID)
	if err != nil {
		return nil, upstreamError("posts", err)
	}
	return jsonplaceholder.FilterPosts(posts, q), nil
}

func (s *PlaygroundService) GetPost(ctx context.Context, id int) (*jsonplaceholder.Post, error) {
	post, err := s.Client.Post(ctx, id)
	if err != nil {
		return nil, upstreamError("Post", err)
	}
	return post, nil
}

func validatePost(in jsonplaceholder.PostInput) error {
	var details []util.FieldError
	if strings.TrimSpace(in.Title) == "" {
		details = append(details, util.FieldError{Field: "title", Message: "Title is required"})
	}
	if strings.TrimSpace(in.Body) == "" {
		details = append(details, util.FieldError{Field: "body", Message: "Body is required"})
	}
	if in.UserID <= 0 {
		details = append(details, util.FieldError{Field: "userId", Message: "userId must be a positive number"})
	}
	if len(details) > 0 {
		return util.NewValidationError(details)
	}
	return nil
}

func (s *PlaygroundService) CreatePost(ctx context.Context, in jsonplaceholder.PostInput) (*jsonplaceholder.Post, error) {
	if err := validatePost(in); err != nil {
		return nil, err
	}
	post, err := s.Client.CreatePost(ctx, in)
	if err != nil {
		return nil, upstreamError("Post", err)
	}
	return post, nil
}

func (s *PlaygroundService) UpdatePost(ctx context.Context, id int, in jsonplaceholder.PostInput) (*jsonplaceholder.Post, error) {
	if err := validatePost(in); err != nil {
		return nil, err
	}
	post, err := s.Client.UpdatePost(ctx, id, in)
	if err != nil {
		return nil, upstreamError("Post", err)
	}
	return post, nil
}

func (s *PlaygroundService) DeletePost(ctx context.Context, id int) error {
	if err := s.Client.DeletePost(ctx, id); err != nil {
		return upstreamError("Post", err)
	}
	return nil
}

func (s *PlaygroundService) ListUsers(ctx context.Context, q string) ([]jsonplaceholder.User, error) {
	users, err := s.Client.Users(ctx)
	if err != nil {
		return nil, upstreamError("users", err)
	}
	return jsonplaceholder.FilterUsers(users, q), nil
}

func (s *PlaygroundService) ListComments(ctx context.Context, postID int, q string) ([]jsonplaceholder.Comment, error) {
	comments, err := s.Client.Comments(ctx, postID)
	if err != nil {
		return nil, upstreamError("comments", err)
	}
	return jsonplaceholder.FilterComments(comments, q), nil
}

func (s *PlaygroundService) ListTodos(ctx context.Context, userID int, q, status string) ([]jsonplaceholder.Todo, error) {
	todos, err := s.Client.Todos(ctx, userID)
	if err != nil {
		return nil, upstreamError("todos", err)
	}
	return jsonplaceholder.FilterTodos(todos, q, status), nil
}

func (s *PlaygroundService) ListAlbums(ctx context.Context) ([]jsonplaceholder.Album, error) {
	albums, err := s.Client.Albums(ctx)
	if err != nil {
		return nil, upstreamError("albums", err)
	}
	return albums, nil
}
