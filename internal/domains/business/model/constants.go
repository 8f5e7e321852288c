package model

const (
	// Pagination
	PageSize      = 12
	APIPageSize   = 20
	StaffPageSize = 20

	// Home & search limits
	FeaturedLimit       = 6
	AjaxSearchMinLength = 3 // query must be longer than 2 characters
	AjaxSearchLimit     = 10
	GlobalSearchLimit   = 5
	LocationMinLength   = 2
	LocationLimit       = 10
	RecentLimit         = 5

	// Slug
	FallbackSlug   = "business"
	MaxSlugRetries = 3

	// Field limits
	NameMaxLength    = 255
	AddressMaxLength = 255
	CityMaxLength    = 100
	StateMaxLength   = 100
	ZipMaxLength     = 20
	PhoneMaxLength   = 20
	WebsiteMaxLength = 200
)

// Sort keys accepted by ?sort=
const (
	SortNewest  = "-created_at"
	SortName    = "name"
	SortRating  = "rating"
	SortReviews = "reviews"
)

// Moderation status filters
const (
	StatusAll     = ""
	StatusPending = "pending"
	StatusActive  = "active"
)
