package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrUnknownUser   = errors.New("user not found")
	ErrAdminOnly     = errors.New("only the admin can perform this action")
	ErrWordPoolEmpty = errors.New("word pool is empty")
	ErrStoreFailure  = errors.New("unexpected store failure")
)

// CooldownError rejects a claim-drawer attempt made while the current drawer
// is still within the drawing cooldown window.
type CooldownError struct {
	RemainingSeconds int64
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("the drawer is still drawing; try again in %d seconds", e.RemainingSeconds)
}
