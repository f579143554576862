package inventory

import "errors"

// Validation errors returned by Store.AddBanner. Each one is scoped to the
// offending record; the loader logs it and keeps processing the rest of the
// config.
var (
	// ErrIllegalURL is returned when a banner record has an empty URL.
	ErrIllegalURL = errors.New("banner url must not be empty")
	// ErrIllegalImpressionAmount is returned when the impression budget is
	// zero or negative.
	ErrIllegalImpressionAmount = errors.New("impression amount must be positive")
	// ErrEmptyCategories is returned when a banner record lists no categories.
	ErrEmptyCategories = errors.New("banner needs at least one category")
)
