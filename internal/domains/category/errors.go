package category

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrSlugExists       = errors.New("Category with this slug already exists.")
	ErrParentNotFound   = errors.New("parent category does not exist")
)
