package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Review represents a business review entity
type Review struct {
	ID         uuid.UUID `json:"id"`
	BusinessID uuid.UUID `json:"business"`
	UserID     uuid.UUID `json:"user"`

	// Content
	Rating  int    `json:"rating"` // 1-5
	Title   string `json:"title"`
	Comment string `json:"comment"`

	// Moderation
	IsApproved bool `json:"is_approved"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Joined columns
	Username     string `json:"-"`
	BusinessName string `json:"-"`
	BusinessSlug string `json:"-"`
}

// RatingSummary aggregates approved reviews only
type RatingSummary struct {
	Average decimal.Decimal
	Count   int
}

// NewRatingSummary: average is 0 when there are no approved reviews
func NewRatingSummary(sum int64, count int) RatingSummary {
	if count == 0 {
		return RatingSummary{Average: decimal.Zero}
	}
	return RatingSummary{
		Average: decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(count))),
		Count:   count,
	}
}

// Display rounds to one decimal place, e.g. "4.3"
func (s RatingSummary) Display() string {
	return s.Average.StringFixed(1)
}

// Stars rounds the average to the nearest whole star.
func (s RatingSummary) Stars() int {
	return int(s.Average.Round(0).IntPart())
}

// Stats for the staff dashboard
type Stats struct {
	Total   int
	Pending int
}
