package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeReviewNotFound   = "REV001"
	ErrCodeAlreadyReviewed  = "REV002"
	ErrCodeInvalidRating    = "REV003"
	ErrCodeBusinessNotFound = "REV004"
	ErrCodeUserNotFound     = "REV005"
)

// Errors
var (
	ErrReviewNotFound   = errors.New("review not found")
	ErrAlreadyReviewed  = errors.New("You have already reviewed this business.")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrBusinessNotFound = errors.New("business not found")
	ErrUserNotFound     = errors.New("user not found")
)

// ReviewError custom error type
type ReviewError struct {
	Code    string
	Field   string
	Message string
	Err     error
}

func (e *ReviewError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ReviewError) Unwrap() error {
	return e.Err
}

// FieldErrors renders the error as a form error map. "__all__" is a non-field error.
func (e *ReviewError) FieldErrors() map[string]string {
	field := e.Field
	if field == "" {
		field = "__all__"
	}
	return map[string]string{field: e.Message}
}

// Error constructors
func NewReviewNotFoundError() *ReviewError {
	return &ReviewError{
		Code:    ErrCodeReviewNotFound,
		Message: "Review not found",
		Err:     ErrReviewNotFound,
	}
}

func NewAlreadyReviewedError() *ReviewError {
	return &ReviewError{
		Code:    ErrCodeAlreadyReviewed,
		Message: "You have already reviewed this business.",
		Err:     ErrAlreadyReviewed,
	}
}

func NewInvalidRatingError() *ReviewError {
	return &ReviewError{
		Code:    ErrCodeInvalidRating,
		Field:   "rating",
		Message: "Ensure this value is between 1 and 5.",
		Err:     ErrInvalidRating,
	}
}

func NewBusinessNotFoundError() *ReviewError {
	return &ReviewError{
		Code:    ErrCodeBusinessNotFound,
		Field:   "business",
		Message: "Select a valid choice. That choice is not one of the available choices.",
		Err:     ErrBusinessNotFound,
	}
}

func NewUserNotFoundError() *ReviewError {
	return &ReviewError{
		Code:    ErrCodeUserNotFound,
		Field:   "user",
		Message: "Invalid pk - object does not exist.",
		Err:     ErrUserNotFound,
	}
}
