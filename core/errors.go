package core

import "errors"

// Every operation surfaces exactly one of these; there is no local retry or
// recovery inside the core, and any error means zero ledger side effects for
// that operation.
var (
	ErrPermissionDenied    = errors.New("permission denied")
	ErrNotInitialized      = errors.New("asset not initialized")
	ErrAlreadyInitialized  = errors.New("asset already initialized")
	ErrNoSuchAccount       = errors.New("no such account")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrSupplyOverflow      = errors.New("supply overflow")
	ErrAccountFrozen       = errors.New("account frozen")
	ErrBadCapability       = errors.New("capability not scoped to an asset")
)
