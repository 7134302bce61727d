package domain

import "errors"

// Sentinel errors for the asset domain. Use errors.Is() to check these.
var (
	// ErrAssetNotFound indicates the requested asset does not exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrAssetTagTaken indicates another asset in the org already carries the tag.
	ErrAssetTagTaken = errors.New("asset tag already in use")

	// ErrInvalidAssetTag indicates the asset tag violates domain constraints.
	ErrInvalidAssetTag = errors.New("invalid asset tag")

	// ErrSiteNotFound indicates the referenced site does not exist for the org.
	ErrSiteNotFound = errors.New("site not found")

	// ErrLocationNotFound indicates the referenced location does not exist or
	// does not belong to the given site.
	ErrLocationNotFound = errors.New("location not found in site")

	// ErrCategoryNotFound indicates the referenced category does not exist for the org.
	ErrCategoryNotFound = errors.New("category not found")
)
