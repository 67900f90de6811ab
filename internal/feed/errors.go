package feed

import (
	"errors"
	"fmt"
	"regexp"
)

// ValidationError rejects malformed input before any store access.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an explicitly requested entity that does not resolve.
type NotFoundError struct {
	Resource string
	Ref      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Ref)
}

// StoreError wraps an underlying data-store failure. One StoreError aborts
// the whole request; blocks are never partially suppressed.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("store %s: %v", e.Op, e.Err) }
func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

const (
	maxSlugLen   = 64
	maxIDListLen = 100
)

// ValidateSlug checks a category slug. Empty means "no filter" and is valid.
func ValidateSlug(slug string) error {
	if slug == "" {
		return nil
	}
	if len(slug) > maxSlugLen || !slugPattern.MatchString(slug) {
		return &ValidationError{Field: "category", Reason: "malformed slug"}
	}
	return nil
}

// ValidateIDList checks a series id list for the following-updates lookup.
func ValidateIDList(ids []string) error {
	if len(ids) == 0 {
		return &ValidationError{Field: "ids", Reason: "empty id list"}
	}
	if len(ids) > maxIDListLen {
		return &ValidationError{Field: "ids", Reason: "too many ids"}
	}
	for _, id := range ids {
		if id == "" {
			return &ValidationError{Field: "ids", Reason: "empty id"}
		}
	}
	return nil
}
