package handlers

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i any) error {
	return cv.validator.Struct(i)
}

// PostMessageRequest is the body of POST /messages, accepted as a form or JSON.
type PostMessageRequest struct {
	Role    string `form:"role" json:"role" validate:"required,oneof=user assistant system"`
	Author  string `form:"author" json:"author" validate:"max=64"`
	Content string `form:"content" json:"content" validate:"required,max=4000"`
}

// PreviewRequest holds the query of GET /preview.
type PreviewRequest struct {
	Content string `query:"content" validate:"max=4000"`
	User    bool   `query:"user"`
	Class   string `query:"class" validate:"max=512"`
	ID      string `query:"id" validate:"max=128"`
}

// ListRequest holds the query of GET /messages.
type ListRequest struct {
	Limit int `query:"limit" validate:"gte=0,lte=500"`
}
