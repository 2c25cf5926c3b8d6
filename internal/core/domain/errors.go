package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrForbidden        = errors.New("access forbidden")
	ErrWeakPassword     = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrInvalidAccountID = errors.New("invalid id")
	ErrProfileExists    = errors.New("profile already exists")
	ErrProfileNotFound  = errors.New("profile not found")
)

// StoreError is a rejection reported by an external store. Message comes from
// the store itself and is safe to surface to the caller.
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}

// FailureKind classifies terminal account-lifecycle failures.
type FailureKind string

const (
	FailureAccountCreate FailureKind = "account_create"
	FailureAccountDelete FailureKind = "account_delete"
	FailureProfileWrite  FailureKind = "profile_write"
)

// LifecycleError is a terminal failure of a create or delete operation.
// Message carries the store's own message when one was reported, otherwise a
// generic fallback.
type LifecycleError struct {
	Kind    FailureKind
	Message string
	Err     error
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *LifecycleError) Unwrap() error {
	return e.Err
}
