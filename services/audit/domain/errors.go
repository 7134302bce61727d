package domain

import "errors"

// Sentinel errors for the audit domain. Use errors.Is() to check these.
var (
	// ErrAuditNotFound indicates the requested audit does not exist.
	ErrAuditNotFound = errors.New("audit not found")

	// ErrAuditItemNotFound indicates the requested audit item does not exist.
	ErrAuditItemNotFound = errors.New("audit item not found")

	// ErrInvalidAuditName indicates the audit name violates domain constraints.
	ErrInvalidAuditName = errors.New("invalid audit name")

	// ErrUnknownSite indicates the referenced site does not exist for the org.
	ErrUnknownSite = errors.New("unknown site")

	// ErrLocationNotInSite indicates the referenced location does not belong
	// to the audit's site.
	ErrLocationNotInSite = errors.New("location does not belong to site")

	// ErrUnknownAsset indicates an explicitly listed asset does not exist for the org.
	ErrUnknownAsset = errors.New("unknown asset")

	// ErrAuditNotStarted indicates a completion attempt on a Draft audit,
	// which is terminal and never held a checklist.
	ErrAuditNotStarted = errors.New("audit was never started")
)
