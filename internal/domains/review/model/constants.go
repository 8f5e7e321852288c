package model

const (
	// Rating
	MinRating = 1
	MaxRating = 5

	// Content limits
	TitleMaxLength = 200

	// Listing
	APIPageSize   = 20
	StaffPageSize = 20
	RecentLimit   = 5
)

// Moderation status filters
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)
