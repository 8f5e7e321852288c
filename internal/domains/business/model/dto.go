package model

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"localbiz-backend/internal/shared/utils"
)

// =====================================================
// FORM DTOs (HTML)
// =====================================================

// BusinessForm is the create/update form. Owner is never taken from the form.
type BusinessForm struct {
	Name        string `form:"name" json:"name"`
	Description string `form:"description" json:"description"`
	Address     string `form:"address" json:"address"`
	City        string `form:"city" json:"city"`
	State       string `form:"state" json:"state"`
	ZipCode     string `form:"zip_code" json:"zip_code"`
	Email       string `form:"email" json:"email"`
	Phone       string `form:"phone" json:"phone"`
	Website     string `form:"website" json:"website"`
	Category    string `form:"category" json:"category"` // category slug, empty = none
}

func (f BusinessForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name,
			validation.Required.Error("This field is required."),
			validation.RuneLength(1, NameMaxLength).Error("Ensure this value has at most 255 characters."),
		),
		validation.Field(&f.Address, validation.RuneLength(0, AddressMaxLength)),
		validation.Field(&f.City, validation.RuneLength(0, CityMaxLength)),
		validation.Field(&f.State, validation.RuneLength(0, StateMaxLength)),
		validation.Field(&f.ZipCode, validation.RuneLength(0, ZipMaxLength)),
		validation.Field(&f.Phone, validation.RuneLength(0, PhoneMaxLength)),
		validation.Field(&f.Email, is.EmailFormat.Error("Enter a valid email address.")),
		validation.Field(&f.Website,
			validation.RuneLength(0, WebsiteMaxLength),
			is.URL.Error("Enter a valid URL."),
		),
	)
}

// Normalize trims surrounding whitespace from every field.
func (f *BusinessForm) Normalize() {
	for _, p := range []*string{&f.Name, &f.Description, &f.Address, &f.City, &f.State,
		&f.ZipCode, &f.Email, &f.Phone, &f.Website, &f.Category} {
		*p = strings.TrimSpace(*p)
	}
}

// Uploads carries raw file bytes; nil means "keep what is stored".
type Uploads struct {
	Logo          []byte
	FeaturedImage []byte
}

// =====================================================
// LIST / SEARCH DTOs
// =====================================================

// ListFilter mirrors the list page query string.
type ListFilter struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	Location string `form:"location"`
	Sort     string `form:"sort"`
	Page     string `form:"page"`
}

// Query is what the repository needs to build the WHERE / ORDER BY.
type Query struct {
	ActiveOnly   bool
	Status       string
	CategorySlug string
	CategoryID   *uuid.UUID
	Search       string
	Location     string
	Sort         string
}

func (f ListFilter) Query() Query {
	return Query{
		ActiveOnly:   true,
		CategorySlug: strings.TrimSpace(f.Category),
		Search:       strings.TrimSpace(f.Search),
		Location:     strings.TrimSpace(f.Location),
		Sort:         f.Sort,
	}
}

// CurrentSort defaults to newest first.
func (f ListFilter) CurrentSort() string {
	if f.Sort == "" {
		return SortNewest
	}
	return f.Sort
}

type ListResult struct {
	Businesses []Business
	Page       utils.Page
}

// SearchHit is one row of the AJAX search response.
type SearchHit struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	City     string `json:"city"`
	State    string `json:"state"`
	Category string `json:"category"`
	URL      string `json:"url"`
}

func (b *Business) ToSearchHit() SearchHit {
	return SearchHit{
		Name:     b.Name,
		Slug:     b.Slug,
		City:     b.City,
		State:    b.State,
		Category: b.CategoryName,
		URL:      b.URL(),
	}
}

// =====================================================
// API DTOs
// =====================================================

// APICreateRequest is the full writable field set of POST /api/businesses/.
type APICreateRequest struct {
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	Description   string     `json:"description"`
	Address       string     `json:"address"`
	City          string     `json:"city"`
	State         string     `json:"state"`
	ZipCode       string     `json:"zip_code"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Website       string     `json:"website"`
	Logo          *string    `json:"logo"`
	FeaturedImage *string    `json:"featured_image"`
	Category      *uuid.UUID `json:"category"`
	Owner         *uuid.UUID `json:"owner"`
	IsActive      *bool      `json:"is_active"`
	IsFeatured    bool       `json:"is_featured"`
	IsVerified    bool       `json:"is_verified"`
	Views         int        `json:"views"`
}

func (r APICreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("This field is required."),
			validation.RuneLength(1, NameMaxLength).Error("Ensure this field has no more than 255 characters."),
		),
		validation.Field(&r.Slug, validation.RuneLength(0, 280)),
		validation.Field(&r.Address, validation.RuneLength(0, AddressMaxLength)),
		validation.Field(&r.City, validation.RuneLength(0, CityMaxLength)),
		validation.Field(&r.State, validation.RuneLength(0, StateMaxLength)),
		validation.Field(&r.ZipCode, validation.RuneLength(0, ZipMaxLength)),
		validation.Field(&r.Phone, validation.RuneLength(0, PhoneMaxLength)),
		validation.Field(&r.Email, is.EmailFormat.Error("Enter a valid email address.")),
		validation.Field(&r.Website,
			validation.RuneLength(0, WebsiteMaxLength),
			is.URL.Error("Enter a valid URL."),
		),
		validation.Field(&r.Views, validation.By(func(v interface{}) error {
			if n, _ := v.(int); n < 0 {
				return errors.New("Ensure this value is greater than or equal to 0.")
			}
			return nil
		})),
	)
}
