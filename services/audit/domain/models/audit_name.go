package models

import "fmt"

// AuditName is a value object representing a valid audit name.
// Encapsulates validation rules: 1 <= len(name) <= 255.
type AuditName string

const (
	minAuditNameLength = 1
	maxAuditNameLength = 255
)

// NewAuditName constructs a valid AuditName or returns an error if constraints are violated.
func NewAuditName(s string) (AuditName, error) {
	if len(s) < minAuditNameLength {
		return "", fmt.Errorf("audit name must not be empty")
	}
	if len(s) > maxAuditNameLength {
		return "", fmt.Errorf("audit name must not exceed %d characters", maxAuditNameLength)
	}
	return AuditName(s), nil
}

// String returns the underlying string value.
func (n AuditName) String() string {
	return string(n)
}
