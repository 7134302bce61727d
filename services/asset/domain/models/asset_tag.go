package models

import (
	"fmt"
	"strings"
	"unicode"
)

// AssetTag is a value object representing a valid asset tag: the short label
// printed on the physical asset. Unique per org, 1–64 characters, no
// whitespace or control characters.
type AssetTag string

const maxAssetTagLength = 64

// NewAssetTag constructs a valid AssetTag or returns an error if constraints are violated.
func NewAssetTag(s string) (AssetTag, error) {
	if s == "" {
		return "", fmt.Errorf("asset tag must not be empty")
	}
	if len(s) > maxAssetTagLength {
		return "", fmt.Errorf("asset tag must not exceed %d characters", maxAssetTagLength)
	}
	if s != strings.TrimSpace(s) {
		return "", fmt.Errorf("asset tag must not have leading or trailing whitespace")
	}
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return "", fmt.Errorf("asset tag must not contain whitespace or control characters")
		}
	}
	return AssetTag(s), nil
}

// String returns the underlying string value.
func (t AssetTag) String() string {
	return string(t)
}
