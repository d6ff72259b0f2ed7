package core

import (
	"context"
	"time"
)

// AssetRegistry is the only mutable control state for an asset: who owns it
// and the three capabilities that gate ledger mutation. Exactly one registry
// exists per handle. The capabilities are issued atomically by
// NewAssetRegistry and never reissued or revoked; there is deliberately no
// way to transfer or revoke ownership once set.
type AssetRegistry struct {
	Handle    string    `json:"handle,omitempty"`
	Symbol    string    `json:"symbol,omitempty"`
	Owner     string    `json:"owner,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`

	mint     MintCapability
	burn     BurnCapability
	transfer TransferCapability
}

// NewAssetRegistry issues a registry with its three capabilities scoped to
// handle. Store implementations rebuild registries through this constructor
// when scanning rows; nothing outside this package can mint capabilities.
func NewAssetRegistry(handle, symbol, owner string, createdAt time.Time) *AssetRegistry {
	return &AssetRegistry{
		Handle:    handle,
		Symbol:    symbol,
		Owner:     owner,
		CreatedAt: createdAt,
		mint:      MintCapability{handle: handle},
		burn:      BurnCapability{handle: handle},
		transfer:  TransferCapability{handle: handle},
	}
}

func (r *AssetRegistry) MintCapability() MintCapability         { return r.mint }
func (r *AssetRegistry) BurnCapability() BurnCapability         { return r.burn }
func (r *AssetRegistry) TransferCapability() TransferCapability { return r.transfer }

// MintCapability authorizes supply creation for exactly one asset handle.
// The zero value is scoped to no handle and is rejected by the ledger.
type MintCapability struct{ handle string }

func (c MintCapability) Handle() string { return c.handle }

// BurnCapability authorizes supply destruction for exactly one asset handle.
type BurnCapability struct{ handle string }

func (c BurnCapability) Handle() string { return c.handle }

// TransferCapability authorizes transfers that bypass the frozen flag, and
// the freeze/unfreeze switch itself, for exactly one asset handle. The admin
// path must never be blocked by the flag it administers, otherwise freezing
// an account would be irreversible.
type TransferCapability struct{ handle string }

func (c TransferCapability) Handle() string { return c.handle }

type RegistryStore interface {
	// Create persists a new registry. A second create for the same handle
	// fails with ErrAlreadyInitialized.
	Create(ctx context.Context, registry *AssetRegistry) error
	// Find loads the registry for handle, or ErrNotInitialized.
	Find(ctx context.Context, handle string) (*AssetRegistry, error)
}
