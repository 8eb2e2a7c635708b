package util

import (
	"errors"
	"fmt"
)

// 错误类别，使用 errors.Is 判断
var (
	ErrNotFound          = errors.New("not found")
	ErrNotPublished      = errors.New("not published")
	ErrValidation        = errors.New("validation failed")
	ErrConflict          = errors.New("conflict")
	ErrUnsafeInput       = errors.New("unsafe input")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrUpstream          = errors.New("upstream unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
)

// FieldError 单个字段的校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// DomainError 面向用户的错误信息，Unwrap 返回错误类别
type DomainError struct {
	Kind    error
	Message string
	Details []FieldError
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Kind
}

func NewError(kind error, format string, args ...any) *DomainError {
	return &DomainError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NewValidationError(details []FieldError) *DomainError {
	return &DomainError{Kind: ErrValidation, Message: "Validation failed", Details: details}
}

func ModuleNotFound(slug string) *DomainError {
	return NewError(ErrNotFound, "Module with slug '%s' not found", slug)
}

func ModuleNotPublished(slug string) *DomainError {
	return NewError(ErrNotPublished, "Module with slug '%s' is not published", slug)
}

func LessonNotFound(lessonSlug, moduleRef string) *DomainError {
	return NewError(ErrNotFound, "Lesson with slug '%s' not found in module '%s'", lessonSlug, moduleRef)
}

func UserAlreadyExists(email string) *DomainError {
	return NewError(ErrConflict, "User with email %s already exists", email)
}
