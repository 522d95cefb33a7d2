package services

import "errors"

// ErrForbidden means the resource exists but the caller does not own it.
// It is deliberately distinct from store.ErrNotFound: existence is checked
// first, ownership second.
var ErrForbidden = errors.New("forbidden")

// canMutate is the whole authorization policy: every resource has exactly
// one owner and only that owner may change or delete it.
func canMutate(actingUserID, ownerID int) bool {
	return actingUserID == ownerID
}
