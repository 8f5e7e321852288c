package service

import (
	"context"
	"strings"

	bizmodel "localbiz-backend/internal/domains/business/model"
	"localbiz-backend/internal/domains/category"
	"localbiz-backend/internal/shared/utils"
)

const (
	GlobalMinLength     = 2
	GlobalCategoryLimit = 3
)

// BusinessSearcher is the slice of the business service that search needs.
type BusinessSearcher interface {
	SearchAll(ctx context.Context, search, location string) ([]bizmodel.Business, error)
	GlobalSearch(ctx context.Context, q string) ([]bizmodel.Business, error)
	LocationSuggestions(ctx context.Context, q string) ([]string, error)
}

type CategorySearcher interface {
	List(ctx context.Context) ([]category.Category, error)
	Search(ctx context.Context, term string, limit int) ([]category.Category, error)
}

// MediaURL maps a stored media key to a public URL.
type MediaURL func(key string) string

// =====================================================
// RESULT TYPES
// =====================================================

// PageResult backs GET /search/.
type PageResult struct {
	Businesses []bizmodel.Business
	Categories []category.Category
}

type BusinessHit struct {
	Name     string  `json:"name"`
	URL      string  `json:"url"`
	Category *string `json:"category"`
	Location string  `json:"location"`
	Image    *string `json:"image"`
}

type CategoryHit struct {
	Name          string `json:"name"`
	URL           string `json:"url"`
	BusinessCount int    `json:"business_count"`
}

// GlobalResult backs GET /search/global/.
type GlobalResult struct {
	Businesses []BusinessHit `json:"businesses"`
	Categories []CategoryHit `json:"categories"`
}

// =====================================================
// SERVICE
// =====================================================

type SearchService struct {
	businesses BusinessSearcher
	categories CategorySearcher
	mediaURL   MediaURL
}

func NewSearchService(businesses BusinessSearcher, categories CategorySearcher, mediaURL MediaURL) *SearchService {
	return &SearchService{
		businesses: businesses,
		categories: categories,
		mediaURL:   mediaURL,
	}
}

// Page: both terms optional, full unpaginated result set plus every category.
func (s *SearchService) Page(ctx context.Context, search, location string) (*PageResult, error) {
	businesses, err := s.businesses.SearchAll(ctx, search, location)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	return &PageResult{Businesses: businesses, Categories: categories}, nil
}

// Global returns nil for queries shorter than two characters.
func (s *SearchService) Global(ctx context.Context, q string) (*GlobalResult, error) {
	q = strings.TrimSpace(q)
	if utils.RuneLen(q) < GlobalMinLength {
		return nil, nil
	}

	businesses, err := s.businesses.GlobalSearch(ctx, q)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.Search(ctx, q, GlobalCategoryLimit)
	if err != nil {
		return nil, err
	}

	out := &GlobalResult{
		Businesses: make([]BusinessHit, 0, len(businesses)),
		Categories: make([]CategoryHit, 0, len(categories)),
	}
	for i := range businesses {
		b := &businesses[i]
		hit := BusinessHit{
			Name:     b.Name,
			URL:      b.URL(),
			Location: b.City + ", " + b.State,
		}
		if b.CategoryName != "" {
			name := b.CategoryName
			hit.Category = &name
		}
		if b.FeaturedImage != nil && *b.FeaturedImage != "" && s.mediaURL != nil {
			img := s.mediaURL(*b.FeaturedImage)
			hit.Image = &img
		}
		out.Businesses = append(out.Businesses, hit)
	}
	for i := range categories {
		c := &categories[i]
		out.Categories = append(out.Categories, CategoryHit{
			Name:          c.Name,
			URL:           c.URL(),
			BusinessCount: c.BusinessCount,
		})
	}
	return out, nil
}

func (s *SearchService) Locations(ctx context.Context, q string) ([]string, error) {
	return s.businesses.LocationSuggestions(ctx, q)
}
