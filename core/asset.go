package core

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Asset is the display metadata and supply counter backing one fungible
// asset. It lives in the ledger store; everything except Supply is fixed
// at initialization.
type Asset struct {
	Handle     string    `json:"handle,omitempty"`
	Symbol     string    `json:"symbol,omitempty"`
	Name       string    `json:"name,omitempty"`
	Decimals   uint8     `json:"decimals"`
	IconURL    string    `json:"icon_url,omitempty"`
	ProjectURL string    `json:"project_url,omitempty"`
	Supply     uint64    `json:"supply"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

// DeriveHandle computes the stable handle for an asset issued by authority
// under symbol. It is a pure function: the same inputs always yield the
// same handle, and distinct symbols under one authority never collide. It
// touches no storage, so a handle can be derived before (or without) the
// asset being initialized; dereferencing an uninitialized handle is what
// fails, with ErrNotInitialized.
func DeriveHandle(authority, symbol string) string {
	ns := uuid.NewSHA1(uuid.NameSpaceOID, []byte(authority))
	return uuid.NewSHA1(ns, []byte(symbol)).String()
}

// InitializeInput carries the immutable display metadata for a new asset.
type InitializeInput struct {
	Symbol     string `json:"symbol"`
	Name       string `json:"name"`
	Decimals   uint8  `json:"decimals"`
	IconURL    string `json:"icon_url"`
	ProjectURL string `json:"project_url"`
}

// IssuerService is the privileged control surface over the ledger. Every
// mutating operation authorizes the caller against the asset's registry
// before touching the ledger; a failed check leaves the ledger untouched.
type IssuerService interface {
	Authority() string
	Initialize(ctx context.Context, caller string, input InitializeInput) (string, error)
	ResolveHandle(symbol string) string
	GetAsset(ctx context.Context, handle string) (*Asset, error)
	GetName(ctx context.Context, handle string) (string, error)
	Mint(ctx context.Context, caller, handle, to string, amount uint64) error
	Burn(ctx context.Context, caller, handle, from string, amount uint64) error
	ForceTransfer(ctx context.Context, caller, handle, from, to string, amount uint64) error
	FreezeAccount(ctx context.Context, caller, handle, account string) error
	UnfreezeAccount(ctx context.Context, caller, handle, account string) error
}
