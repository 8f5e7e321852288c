package model

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"localbiz-backend/internal/shared/utils"
)

// =====================================================
// FORM DTOs
// =====================================================

// ReviewForm is the HTML review form; business is picked by slug.
type ReviewForm struct {
	Business string `form:"business" json:"business"`
	Rating   int    `form:"rating" json:"rating"`
	Title    string `form:"title" json:"title"`
	Comment  string `form:"comment" json:"comment"`
}

func (f ReviewForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Business, validation.Required.Error("This field is required.")),
		validation.Field(&f.Rating, ratingRules()...),
		validation.Field(&f.Title, titleRules()...),
		validation.Field(&f.Comment, validation.Required.Error("This field is required.")),
	)
}

func (f *ReviewForm) Normalize() {
	f.Business = strings.TrimSpace(f.Business)
	f.Title = strings.TrimSpace(f.Title)
	f.Comment = strings.TrimSpace(f.Comment)
}

// =====================================================
// API DTOs
// =====================================================

// APICreateRequest is the full writable field set of POST /api/reviews/.
type APICreateRequest struct {
	Business   uuid.UUID  `json:"business"`
	User       *uuid.UUID `json:"user"`
	Rating     int        `json:"rating"`
	Title      string     `json:"title"`
	Comment    string     `json:"comment"`
	IsApproved bool       `json:"is_approved"`
}

func (r APICreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Business, validation.By(func(v interface{}) error {
			if id, _ := v.(uuid.UUID); id == uuid.Nil {
				return errors.New("This field is required.")
			}
			return nil
		})),
		validation.Field(&r.Rating, ratingRules()...),
		validation.Field(&r.Title, titleRules()...),
		validation.Field(&r.Comment, validation.Required.Error("This field is required.")),
	)
}

func ratingRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("This field is required."),
		validation.Min(MinRating).Error("Ensure this value is greater than or equal to 1."),
		validation.Max(MaxRating).Error("Ensure this value is less than or equal to 5."),
	}
}

func titleRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("This field is required."),
		validation.RuneLength(1, TitleMaxLength).Error("Ensure this value has at most 200 characters."),
	}
}

// =====================================================
// READ MODELS
// =====================================================

// BusinessReviews is what the business detail page shows.
type BusinessReviews struct {
	Reviews []Review
	Summary RatingSummary
}

type ListResult struct {
	Reviews []Review
	Page    utils.Page
}
