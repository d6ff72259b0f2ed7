package core

import (
	"context"
	"time"
)

// BalanceEntry is one (asset, account) row in the ledger. Entries are
// created lazily on first touch with a zero amount; Amount never goes
// negative. Frozen blocks ordinary transfers only, never the admin path.
type BalanceEntry struct {
	Handle    string    `json:"handle,omitempty"`
	Account   string    `json:"account,omitempty"`
	Amount    uint64    `json:"amount"`
	Frozen    bool      `json:"frozen"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// LedgerStore persists balances and the per-asset supply counter. The
// privileged mutators are addressed by capability rather than by handle, so
// a caller cannot reach them without a registry obtained through the
// authorization guard. Each mutation is atomic: it either fully applies or
// leaves the ledger unchanged.
type LedgerStore interface {
	// CreateAsset creates the backing asset row with zero supply.
	// ErrAlreadyInitialized if the handle is already backed.
	CreateAsset(ctx context.Context, asset *Asset) error
	FindAsset(ctx context.Context, handle string) (*Asset, error)
	ListAssets(ctx context.Context) ([]*Asset, error)

	// EnsureEntry lazily creates the (handle, account) entry, unfrozen with
	// a zero amount. Existing entries are left untouched.
	EnsureEntry(ctx context.Context, handle, account string) error
	// FindEntry reads an entry; an account never touched for the asset
	// reads as the default entry (zero amount, unfrozen).
	FindEntry(ctx context.Context, handle, account string) (*BalanceEntry, error)
	// SumBalances totals all entry amounts for one asset. With supply
	// conservation intact it equals the asset's Supply.
	SumBalances(ctx context.Context, handle string) (uint64, error)

	// Credit mints amount new units to account and grows supply.
	// ErrSupplyOverflow if supply would exceed the representable maximum.
	Credit(ctx context.Context, cap MintCapability, account string, amount uint64) error
	// Debit burns amount units from account and shrinks supply.
	// ErrNoSuchAccount if account never held the asset,
	// ErrInsufficientBalance if amount exceeds its balance.
	Debit(ctx context.Context, cap BurnCapability, account string, amount uint64) error
	// Move transfers between accounts ignoring frozen flags on both ends,
	// creating the destination entry if absent.
	Move(ctx context.Context, cap TransferCapability, from, to string, amount uint64) error
	// SetFrozen flips the frozen flag, creating the entry if absent with
	// the requested flag. Idempotent.
	SetFrozen(ctx context.Context, cap TransferCapability, account string, frozen bool) error

	// Transfer is the ordinary, non-admin transfer: rejected with
	// ErrAccountFrozen while either side is frozen.
	Transfer(ctx context.Context, handle, from, to string, amount uint64) error
}
