package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeBusinessNotFound = "BIZ001"
	ErrCodeSlugExhausted    = "BIZ002"
	ErrCodeInvalidCategory  = "BIZ003"
	ErrCodeInvalidOwner     = "BIZ004"
	ErrCodeInvalidMedia     = "BIZ005"
)

// Errors
var (
	ErrBusinessNotFound = errors.New("business not found")
	ErrSlugExists       = errors.New("Business with this slug already exists.")
	ErrSlugExhausted    = errors.New("could not allocate a unique slug")
	ErrCategoryNotFound = errors.New("category not found")
	ErrOwnerNotFound    = errors.New("owner not found")
	ErrInvalidMedia     = errors.New("invalid media upload")
)

// BusinessError custom error type
type BusinessError struct {
	Code    string
	Field   string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewBusinessNotFoundError() *BusinessError {
	return &BusinessError{
		Code:    ErrCodeBusinessNotFound,
		Message: "Business not found",
		Err:     ErrBusinessNotFound,
	}
}

func NewSlugExhaustedError() *BusinessError {
	return &BusinessError{
		Code:    ErrCodeSlugExhausted,
		Field:   "name",
		Message: "Could not generate a unique address for this name. Please choose another name.",
		Err:     ErrSlugExhausted,
	}
}

func NewInvalidCategoryError() *BusinessError {
	return &BusinessError{
		Code:    ErrCodeInvalidCategory,
		Field:   "category",
		Message: "Select a valid choice. That choice is not one of the available choices.",
		Err:     ErrCategoryNotFound,
	}
}

func NewInvalidOwnerError() *BusinessError {
	return &BusinessError{
		Code:    ErrCodeInvalidOwner,
		Field:   "owner",
		Message: "Invalid pk - object does not exist.",
		Err:     ErrOwnerNotFound,
	}
}

func NewInvalidMediaError(field string, err error) *BusinessError {
	return &BusinessError{
		Code:    ErrCodeInvalidMedia,
		Field:   field,
		Message: "Upload a valid image. The file you uploaded was either not an image or a corrupted image.",
		Err:     err,
	}
}

// FieldErrors renders a field-scoped BusinessError as form errors.
func (e *BusinessError) FieldErrors() map[string]string {
	field := e.Field
	if field == "" {
		field = "__all__"
	}
	return map[string]string{field: e.Message}
}
