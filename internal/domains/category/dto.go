package category

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// CreateRequest is the API body for POST /api/categories/.
type CreateRequest struct {
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Parent      *uuid.UUID `json:"parent"`
	Description string     `json:"description"`
	IsActive    *bool      `json:"is_active"`
}

func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("This field is required."),
			validation.RuneLength(1, NameMaxLength).Error("Ensure this field has no more than 100 characters."),
		),
		validation.Field(&r.Slug,
			validation.RuneLength(0, SlugMaxLength),
			validation.Match(slugPattern).Error("Enter a valid slug consisting of letters, numbers, underscores or hyphens."),
		),
	)
}
